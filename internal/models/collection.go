package models

import "time"

// Well-known collection keys for locally stored dish lists.
const (
	CollectionPrivateRecipes = "privateRecipes"
	CollectionDeckCache      = "deckCache"
)

// Collection stores a whole dish list as one JSON blob under a key.
type Collection struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Data      string    `gorm:"type:text" json:"data"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Collection) TableName() string {
	return "collections"
}
