package models

import (
	"strings"
	"time"
)

// UserState holds per-install application state.
// Note: The table name is "user_state" to avoid conflicts with reserved keywords.
type UserState struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	TrackingID string    `gorm:"size:64" json:"tracking_id"`
	Filters    string    `gorm:"type:text" json:"filters"` // comma-delimited active tag filters
	SwipeCount int       `gorm:"default:0" json:"swipe_count"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (UserState) TableName() string {
	return "user_state"
}

// GetFilters returns the active filters from the comma-delimited string.
func (s *UserState) GetFilters() []string {
	if s.Filters == "" {
		return []string{}
	}
	parts := strings.Split(s.Filters, ",")
	filters := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			filters = append(filters, trimmed)
		}
	}
	return filters
}

// SetFilters sets the active filters from a list.
func (s *UserState) SetFilters(filters []string) {
	s.Filters = strings.Join(filters, ",")
}
