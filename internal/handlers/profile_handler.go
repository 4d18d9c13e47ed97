package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/lloyd-theophilus/finflow-ghana-dollar/internal/errors"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/models"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/pagination"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/services"
)

// ProfileHandler handles profile-related requests.
type ProfileHandler struct {
	profileService services.ProfileServicer
	auditService   services.AuditServicer
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService services.ProfileServicer, auditService services.AuditServicer) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, auditService: auditService}
}

// UpdateProfileRequest represents the profile update payload
type UpdateProfileRequest struct {
	FullName string `json:"full_name" binding:"required,max=200"`
}

// UpdateRoleRequest represents the role update payload
type UpdateRoleRequest struct {
	Role models.Role `json:"role" binding:"required,role"`
}

// CreateProfileRequest represents the admin payload for provisioning a
// profile directly.
type CreateProfileRequest struct {
	UserID   string      `json:"user_id" binding:"required,uuid"`
	FullName string      `json:"full_name" binding:"max=200"`
	Role     models.Role `json:"role" binding:"omitempty,role"`
}

// GetOwnProfile returns the caller's profile
// @Summary     Get own profile
// @Description Get the authenticated user's profile
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Profile "Profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile [get]
func (h *ProfileHandler) GetOwnProfile(c *gin.Context) {
	caller, err := resolveCaller(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.profileService.GetOwnProfile(caller)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateOwnProfile renames the caller's profile
// @Summary     Update own profile
// @Description Change the authenticated user's display name
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateProfileRequest true "Profile fields"
// @Success     200 {object} models.Profile "Updated profile"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile [put]
func (h *ProfileHandler) UpdateOwnProfile(c *gin.Context) {
	caller, err := resolveCaller(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profile, err := h.profileService.UpdateFullName(caller, caller.UserID, req.FullName)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// ListProfiles lists all profiles (admin)
// @Summary     List profiles
// @Description Get a paginated list of all profiles. Admin only.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Profile] "Paginated profiles"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/profiles [get]
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	caller, err := resolveCaller(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.profileService.ListProfiles(caller, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetProfile returns one user's profile (admin, or the owner)
// @Summary     Get a profile
// @Description Get the profile for a specific user
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       user_id path string true "User ID"
// @Success     200 {object} models.Profile "Profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/profiles/{user_id} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	caller, err := resolveCaller(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.profileService.GetProfileByUserID(caller, c.Param("user_id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// CreateProfile provisions a profile directly (admin)
// @Summary     Create a profile
// @Description Provision a profile for an existing user that has none. Admin only.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateProfileRequest true "Profile details"
// @Success     201 {object} models.Profile "Profile created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     409 {object} ErrorResponse "Profile already exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/profiles [post]
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	caller, err := resolveCaller(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profile, err := h.profileService.CreateProfile(caller, req.UserID, req.FullName, req.Role)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(caller.UserID, "CREATE_PROFILE", "profile", profile.ID, c.ClientIP(),
		map[string]interface{}{"user_id": req.UserID, "role": profile.Role})

	c.JSON(http.StatusCreated, gin.H{"profile": profile})
}

// UpdateRole changes a user's role (admin)
// @Summary     Update a user's role
// @Description Promote or demote a user. Admin only; takes effect on the user's next request.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       user_id path string            true "User ID"
// @Param       request body UpdateRoleRequest true "New role"
// @Success     200 {object} models.Profile "Updated profile"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/profiles/{user_id} [put]
func (h *ProfileHandler) UpdateRole(c *gin.Context) {
	caller, err := resolveCaller(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	userID := c.Param("user_id")
	profile, err := h.profileService.UpdateRole(caller, userID, req.Role)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(caller.UserID, "UPDATE_ROLE", "profile", profile.ID, c.ClientIP(),
		map[string]interface{}{"user_id": userID, "role": req.Role})

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
