package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/config"
	apperrors "github.com/lloyd-theophilus/finflow-ghana-dollar/internal/errors"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/models"
)

// userService handles identity creation and authentication.
type userService struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB, cfg *config.Config) UserServicer {
	return &userService{db: db, cfg: cfg}
}

// Register creates a new user together with its profile. The two rows
// are one atomic unit: if the profile insert fails for any reason the
// user row is rolled back, so no identity can exist without a profile.
//
// The profile's role comes from the configured admin allow-list; the
// display name falls back to the email when no name was supplied.
func (s *userService) Register(email, password, fullName string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email and password are required")
	}
	email = strings.ToLower(strings.TrimSpace(email))

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hashedPassword),
		IsActive: true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Duplicates are detected by the unique index on email, not a
		// prior existence check; two concurrent registrations for the
		// same address both reach the insert and the loser gets the
		// constraint violation.
		if err := tx.Create(user).Error; err != nil {
			if isUniqueViolation(err) {
				return apperrors.ErrDuplicateEmail
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		name := strings.TrimSpace(fullName)
		if name == "" {
			name = email
		}

		role := models.RoleUser
		if s.cfg.IsAdminEmail(email) {
			role = models.RoleAdmin
		}

		profile := &models.Profile{
			UserID:   user.ID,
			FullName: name,
			Role:     role,
		}
		if err := tx.Create(profile).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrProvisioningFailed, err)
		}
		user.Profile = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// isUniqueViolation reports whether err is a unique-constraint breach,
// in either the postgres or sqlite wording.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// AttemptLogin verifies credentials and returns the user on success.
// Failures are indistinguishable between unknown email and wrong
// password.
func (s *userService) AttemptLogin(email, password string) (*models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

// GetUserByEmail retrieves an active user by email.
func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ? AND is_active = ?", strings.ToLower(email), true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// StoreRefreshTokenHash saves the SHA-256 hash of the user's current
// refresh token, invalidating any previously issued one.
func (s *userService) StoreRefreshTokenHash(userID, tokenHash string) error {
	result := s.db.Model(&models.User{}).Where("id = ?", userID).Update("refresh_token_hash", tokenHash)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// GetRefreshTokenHash returns the stored refresh token hash for a user.
func (s *userService) GetRefreshTokenHash(userID string) (string, error) {
	var user models.User
	if err := s.db.Select("refresh_token_hash").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrUserNotFound
		}
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user.RefreshTokenHash, nil
}
