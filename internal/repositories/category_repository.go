package repositories

import (
	"errors"

	"appointly/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository - доступ к таблице categories.
// ownerID == nil означает выборку без фильтра по владельцу.
type CategoryRepository interface {
	FindAll(db *gorm.DB, ownerID *uint) ([]models.Category, error)
	FindByID(db *gorm.DB, id uint, ownerID *uint) (*models.Category, error)
	Create(db *gorm.DB, category *models.Category) error
	Update(db *gorm.DB, id uint, ownerID *uint, updates map[string]interface{}) (*models.Category, error)
	Delete(db *gorm.DB, id uint, ownerID *uint) (*models.Category, error)
}

type categoryRepository struct{}

func NewCategoryRepository() CategoryRepository {
	return &categoryRepository{}
}

func scopeByOwner(db *gorm.DB, ownerID *uint) *gorm.DB {
	if ownerID != nil {
		return db.Where("user_id = ?", *ownerID)
	}
	return db
}

func (r *categoryRepository) FindAll(db *gorm.DB, ownerID *uint) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	err := scopeByOwner(db, ownerID).Order("id ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) FindByID(db *gorm.DB, id uint, ownerID *uint) (*models.Category, error) {
	var category models.Category
	err := scopeByOwner(db.Where("id = ?", id), ownerID).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Create(db *gorm.DB, category *models.Category) error {
	return db.Create(category).Error
}

// Update применяет updates к строке в пределах владельца и возвращает её новое состояние
func (r *categoryRepository) Update(db *gorm.DB, id uint, ownerID *uint, updates map[string]interface{}) (*models.Category, error) {
	var updated *models.Category
	err := db.Transaction(func(tx *gorm.DB) error {
		category, err := r.FindByID(tx, id, ownerID)
		if err != nil {
			return err
		}
		if err := tx.Model(category).Updates(updates).Error; err != nil {
			return err
		}
		updated, err = r.FindByID(tx, id, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete удаляет строку в пределах владельца и возвращает удалённую запись
func (r *categoryRepository) Delete(db *gorm.DB, id uint, ownerID *uint) (*models.Category, error) {
	var deleted *models.Category
	err := db.Transaction(func(tx *gorm.DB) error {
		category, err := r.FindByID(tx, id, ownerID)
		if err != nil {
			return err
		}
		result := tx.Delete(&models.Category{}, category.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCategoryNotFound
		}
		deleted = category
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}
