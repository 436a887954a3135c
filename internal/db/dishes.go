package db

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/asteroid-belt/dishdeck/internal/models"
)

// ListDishes returns public dishes, newest first. When tags are given
// only dishes carrying all of them are returned.
func (db *DB) ListDishes(ctx context.Context, tags []string) ([]models.Dish, error) {
	q := db.WithContext(ctx).Model(&models.Dish{})
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			q = q.Where("tags LIKE ?", `%"`+tag+`"%`)
		}
	}

	var dishes []models.Dish
	if err := q.Order("created_at DESC").Find(&dishes).Error; err != nil {
		return nil, fmt.Errorf("list dishes: %w", err)
	}
	return dishes, nil
}

// GetDish retrieves a dish by id. Returns nil, nil when not found.
func (db *DB) GetDish(ctx context.Context, id string) (*models.Dish, error) {
	var dish models.Dish
	err := db.WithContext(ctx).Where("id = ?", id).First(&dish).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dish, nil
}

// CreateDish inserts a dish.
func (db *DB) CreateDish(ctx context.Context, dish *models.Dish) error {
	return db.WithContext(ctx).Create(dish).Error
}

// DeleteDish removes a dish by id.
func (db *DB) DeleteDish(ctx context.Context, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&models.Dish{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("dish %s: %w", id, ErrNotFound)
	}
	return nil
}

// LikeDish increments the like counter and returns the new count.
func (db *DB) LikeDish(ctx context.Context, id string) (int, error) {
	var likes int
	err := db.Transaction(func(tx *DB) error {
		res := tx.WithContext(ctx).Model(&models.Dish{}).
			Where("id = ?", id).
			UpdateColumn("likes", gorm.Expr("likes + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("dish %s: %w", id, ErrNotFound)
		}
		return tx.WithContext(ctx).Model(&models.Dish{}).
			Where("id = ?", id).
			Select("likes").
			Scan(&likes).Error
	})
	return likes, err
}

// CountDishes returns the number of stored dishes.
func (db *DB) CountDishes(ctx context.Context) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&models.Dish{}).Count(&n).Error
	return n, err
}
