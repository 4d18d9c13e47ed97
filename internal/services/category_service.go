package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/authz"
	apperrors "github.com/lloyd-theophilus/finflow-ghana-dollar/internal/errors"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/models"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/pagination"
)

// categoryService handles the global expense category catalog.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// ListCategories returns the catalog. Readable by everyone, so no
// caller context is needed.
func (s *categoryService) ListCategories(page pagination.PageRequest) (*pagination.PageResponse[models.ExpenseCategory], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.ExpenseCategory{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.ExpenseCategory
	if err := base.Scopes(pagination.Paginate(page)).Order("name").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(categories, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCategoryByID retrieves one category.
func (s *categoryService) GetCategoryByID(categoryID string) (*models.ExpenseCategory, error) {
	var category models.ExpenseCategory
	if err := s.db.First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// CreateCategory adds a category to the catalog. Admin only.
func (s *categoryService) CreateCategory(caller authz.Caller, name, description string) (*models.ExpenseCategory, error) {
	if err := authz.Authorize(caller, authz.ResourceExpenseCategory, authz.ActionCreate, authz.Row{}); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	var count int64
	s.db.Model(&models.ExpenseCategory{}).Where("name = ?", name).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	category := &models.ExpenseCategory{Name: name, Description: description}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// UpdateCategory renames or re-describes a category. Admin only.
func (s *categoryService) UpdateCategory(caller authz.Caller, categoryID, name, description string) (*models.ExpenseCategory, error) {
	if err := authz.Authorize(caller, authz.ResourceExpenseCategory, authz.ActionUpdate, authz.Row{}); err != nil {
		return nil, err
	}

	category, err := s.GetCategoryByID(categoryID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != "" && name != category.Name {
		var count int64
		s.db.Model(&models.ExpenseCategory{}).Where("name = ? AND id <> ?", name, categoryID).Count(&count)
		if count > 0 {
			return nil, apperrors.ErrDuplicateCategory
		}
		updates["name"] = name
	}
	if description != "" {
		updates["description"] = description
	}
	if len(updates) == 0 {
		return category, nil
	}

	if err := s.db.Model(category).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// DeleteCategory removes a category that no expense record references.
// Admin only.
func (s *categoryService) DeleteCategory(caller authz.Caller, categoryID string) error {
	if err := authz.Authorize(caller, authz.ResourceExpenseCategory, authz.ActionDelete, authz.Row{}); err != nil {
		return err
	}

	category, err := s.GetCategoryByID(categoryID)
	if err != nil {
		return err
	}

	var inUse int64
	if err := s.db.Model(&models.ExpenseRecord{}).Where("category_id = ?", categoryID).Count(&inUse).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if inUse > 0 {
		return apperrors.ErrCategoryInUse
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
