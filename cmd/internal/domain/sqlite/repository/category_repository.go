package repository

import (
	"sorta/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultCategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *DefaultCategoryRepository {
	return &DefaultCategoryRepository{db: db}
}

func (d *DefaultCategoryRepository) FindAll() ([]*entity.Category, error) {
	var categories []*entity.Category
	err := d.db.Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// ReplaceAll swaps the whole category set in one transaction: delete-all
// followed by insert-all. A crash cannot leave the relation half-replaced.
func (d *DefaultCategoryRepository) ReplaceAll(categories []*entity.Category) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entity.Category{}).Error; err != nil {
			return err
		}
		if len(categories) == 0 {
			return nil
		}
		return tx.Create(categories).Error
	})
}
