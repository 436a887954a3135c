package db

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asteroid-belt/dishdeck/internal/models"
)

// ReadCollection returns the dish list stored under key. A missing key
// reads as an empty list.
func (db *DB) ReadCollection(ctx context.Context, key string) ([]models.Dish, error) {
	var c models.Collection
	err := db.WithContext(ctx).Where("key = ?", key).First(&c).Error
	if err == gorm.ErrRecordNotFound {
		return []models.Dish{}, nil
	}
	if err != nil {
		return nil, err
	}

	var dishes []models.Dish
	if c.Data == "" {
		return []models.Dish{}, nil
	}
	if err := json.Unmarshal([]byte(c.Data), &dishes); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", key, err)
	}
	return dishes, nil
}

// WriteCollection replaces the dish list stored under key.
func (db *DB) WriteCollection(ctx context.Context, key string, dishes []models.Dish) error {
	if dishes == nil {
		dishes = []models.Dish{}
	}
	data, err := json.Marshal(dishes)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", key, err)
	}

	c := models.Collection{Key: key, Data: string(data)}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&c).Error
}

// CollectionStore exposes one collection as a saved-recipe store.
type CollectionStore struct {
	db  *DB
	key string
}

// NewCollectionStore returns a store over the collection named key.
func NewCollectionStore(db *DB, key string) *CollectionStore {
	return &CollectionStore{db: db, key: key}
}

// ReadAll implements saved.Store.
func (s *CollectionStore) ReadAll(ctx context.Context) ([]models.Dish, error) {
	return s.db.ReadCollection(ctx, s.key)
}

// WriteAll implements saved.Store.
func (s *CollectionStore) WriteAll(ctx context.Context, dishes []models.Dish) error {
	return s.db.WriteCollection(ctx, s.key, dishes)
}
