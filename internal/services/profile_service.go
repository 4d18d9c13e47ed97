package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/authz"
	apperrors "github.com/lloyd-theophilus/finflow-ghana-dollar/internal/errors"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/models"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/pagination"
)

// profileService handles profile access and caller-context resolution.
type profileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileServicer.
func NewProfileService(db *gorm.DB) ProfileServicer {
	return &profileService{db: db}
}

// CallerFor loads the profile row for a user and builds the
// authorization context from it. The role is read fresh on every
// request so a revoked admin loses access on their next call.
func (s *profileService) CallerFor(userID string) (authz.Caller, error) {
	var profile models.Profile
	if err := s.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return authz.Caller{}, apperrors.ErrUnauthorized
		}
		return authz.Caller{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return authz.Caller{UserID: profile.UserID, Role: profile.Role}, nil
}

// GetOwnProfile returns the caller's own profile.
func (s *profileService) GetOwnProfile(caller authz.Caller) (*models.Profile, error) {
	return s.GetProfileByUserID(caller, caller.UserID)
}

// GetProfileByUserID returns the profile for the given user, subject to
// the profile read policy (own row, or any row for admins).
func (s *profileService) GetProfileByUserID(caller authz.Caller, userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := authz.Authorize(caller, authz.ResourceProfile, authz.ActionRead, authz.Row{OwnerID: profile.UserID}); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListProfiles returns all profiles. Admin only: regular users can see
// nothing here but their own row, which GetOwnProfile already covers.
func (s *profileService) ListProfiles(caller authz.Caller, page pagination.PageRequest) (*pagination.PageResponse[models.Profile], error) {
	if !caller.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Profile{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var profiles []models.Profile
	if err := base.Scopes(pagination.Paginate(page)).Order("created_at").Find(&profiles).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(profiles, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateFullName changes a profile's display name. Users may rename
// themselves; admins may rename anyone.
func (s *profileService) UpdateFullName(caller authz.Caller, userID, fullName string) (*models.Profile, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "full name is required")
	}

	profile, err := s.getForUpdate(caller, userID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(profile).Update("full_name", fullName).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	profile.FullName = fullName
	return profile, nil
}

// UpdateRole changes a profile's role. Admin only; the per-row update
// policy also allows self-updates, but role escalation is gated here.
func (s *profileService) UpdateRole(caller authz.Caller, userID string, role models.Role) (*models.Profile, error) {
	if !caller.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	if role != models.RoleAdmin && role != models.RoleUser {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "role must be admin or user")
	}

	profile, err := s.getForUpdate(caller, userID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(profile).Update("role", role).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	profile.Role = role
	return profile, nil
}

// CreateProfile provisions a profile directly. This is the admin
// escape hatch for repairing accounts; normal provisioning happens
// inside Register.
func (s *profileService) CreateProfile(caller authz.Caller, userID, fullName string, role models.Role) (*models.Profile, error) {
	if err := authz.Authorize(caller, authz.ResourceProfile, authz.ActionCreate, authz.Row{OwnerID: userID}); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var count int64
	s.db.Model(&models.Profile{}).Where("user_id = ?", userID).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateProfile
	}

	name := strings.TrimSpace(fullName)
	if name == "" {
		name = user.Email
	}
	if role == "" {
		role = models.RoleUser
	}

	profile := &models.Profile{UserID: userID, FullName: name, Role: role}
	if err := s.db.Create(profile).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return profile, nil
}

func (s *profileService) getForUpdate(caller authz.Caller, userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := authz.Authorize(caller, authz.ResourceProfile, authz.ActionUpdate, authz.Row{OwnerID: profile.UserID}); err != nil {
		return nil, err
	}
	return &profile, nil
}
