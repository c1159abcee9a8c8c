package services

import (
	"errors"
	"strings"

	"appointly/internal/models"
	"appointly/internal/repositories"
	"appointly/internal/services/dto"
	"appointly/pkg/apperrors"

	"gorm.io/gorm"
)

type CategoryService interface {
	FindAll(db *gorm.DB, authz AuthorizationContext) ([]models.Category, error)
	FindOne(db *gorm.DB, authz AuthorizationContext, id uint) (*models.Category, error)
	Create(db *gorm.DB, req *dto.CreateCategoryRequest) (*models.Category, error)
	Update(db *gorm.DB, authz AuthorizationContext, id uint, req *dto.UpdateCategoryRequest) (*models.Category, error)
	Remove(db *gorm.DB, authz AuthorizationContext, id uint) (*models.Category, error)
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
}

func NewCategoryService(categoryRepo repositories.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) FindAll(db *gorm.DB, authz AuthorizationContext) ([]models.Category, error) {
	categories, err := s.categoryRepo.FindAll(db, authz.ownerFilter())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return categories, nil
}

func (s *categoryService) FindOne(db *gorm.DB, authz AuthorizationContext, id uint) (*models.Category, error) {
	category, err := s.categoryRepo.FindByID(db, id, authz.ownerFilter())
	if err != nil {
		return nil, mapCategoryError(err)
	}
	return category, nil
}

// Create - владелец берётся из тела запроса, а не из сессии
func (s *categoryService) Create(db *gorm.DB, req *dto.CreateCategoryRequest) (*models.Category, error) {
	name := ""
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
	}
	if name == "" {
		return nil, apperrors.ErrCategoryNameRequired
	}
	if req.UserID == nil || *req.UserID <= 0 {
		return nil, apperrors.ErrCategoryOwnerRequired
	}
	if *req.UserID > models.MaxID {
		return nil, apperrors.ErrInvalidOwnerID
	}

	category := &models.Category{
		Name:        name,
		Description: dto.NormalizeText(req.Description),
		UserID:      uint(*req.UserID),
	}
	if err := s.categoryRepo.Create(db, category); err != nil {
		// владелец с таким id не существует
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, apperrors.ErrInvalidOwnerID
		}
		return nil, apperrors.InternalError(err)
	}
	return category, nil
}

// Update меняет только переданные поля. Без полей в базу не ходим.
func (s *categoryService) Update(db *gorm.DB, authz AuthorizationContext, id uint, req *dto.UpdateCategoryRequest) (*models.Category, error) {
	updates := make(map[string]interface{})

	if req.Name.Set {
		name := req.Name.Trimmed()
		if name == "" {
			return nil, apperrors.ErrCategoryNameRequired
		}
		updates["name"] = name
	}
	if req.Description.Set {
		updates["description"] = req.Description.Normalized()
	}

	if len(updates) == 0 {
		return nil, apperrors.ErrNoFieldsToUpdate
	}

	category, err := s.categoryRepo.Update(db, id, authz.ownerFilter(), updates)
	if err != nil {
		return nil, mapCategoryError(err)
	}
	return category, nil
}

func (s *categoryService) Remove(db *gorm.DB, authz AuthorizationContext, id uint) (*models.Category, error) {
	category, err := s.categoryRepo.Delete(db, id, authz.ownerFilter())
	if err != nil {
		return nil, mapCategoryError(err)
	}
	return category, nil
}

// Чужая категория неотличима от отсутствующей: всегда 404
func mapCategoryError(err error) error {
	if errors.Is(err, repositories.ErrCategoryNotFound) {
		return apperrors.ErrCategoryNotFound
	}
	return apperrors.InternalError(err)
}
