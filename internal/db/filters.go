package db

import (
	"context"

	"gorm.io/gorm"

	"github.com/asteroid-belt/dishdeck/internal/models"
)

// ListFilterCategories returns the stored filter vocabulary grouped by
// category. An empty table yields the built-in categories.
func (db *DB) ListFilterCategories(ctx context.Context) ([]models.FilterCategory, error) {
	var tags []models.FilterTag
	err := db.WithContext(ctx).Order("rowid").Find(&tags).Error
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return models.DefaultFilterCategories(), nil
	}
	return models.GroupFilterTags(tags), nil
}

// ReplaceFilterCategories swaps the stored vocabulary for cats.
func (db *DB) ReplaceFilterCategories(ctx context.Context, cats []models.FilterCategory) error {
	tags := models.FlattenFilterCategories(cats)
	return db.Transaction(func(tx *DB) error {
		if err := tx.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&models.FilterTag{}).Error; err != nil {
			return err
		}
		if len(tags) == 0 {
			return nil
		}
		return tx.WithContext(ctx).Create(&tags).Error
	})
}
