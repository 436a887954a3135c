package db

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asteroid-belt/dishdeck/internal/models"
)

const defaultStateID = "default"

// GetUserState retrieves the current application state.
func (db *DB) GetUserState() (*models.UserState, error) {
	var state models.UserState
	err := db.Where("id = ?", defaultStateID).First(&state).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &models.UserState{ID: defaultStateID}, nil
		}
		return nil, err
	}
	return &state, nil
}

// SaveFilters persists the active tag filters.
func (db *DB) SaveFilters(filters []string) error {
	state := models.UserState{ID: defaultStateID}
	state.SetFilters(filters)
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"filters", "updated_at"}),
	}).Create(&state).Error
}

// RecordSwipe increments the lifetime swipe counter, creating the state
// row on first use.
func (db *DB) RecordSwipe() error {
	state := models.UserState{ID: defaultStateID, SwipeCount: 1}
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"swipe_count": gorm.Expr("user_state.swipe_count + ?", 1),
			"updated_at":  gorm.Expr("excluded.updated_at"),
		}),
	}).Create(&state).Error
}

// GetOrCreateTrackingID returns the persistent tracking ID, creating one if it doesn't exist.
// On any error, it falls back to generating a per-session ID.
func (db *DB) GetOrCreateTrackingID() string {
	state, err := db.GetUserState()
	if err != nil {
		return generateSessionID()
	}

	if state.TrackingID != "" {
		return state.TrackingID
	}

	trackingID := generateSessionID()
	state.TrackingID = trackingID
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"tracking_id", "updated_at"}),
	}).Create(state).Error
	if err != nil {
		// Even if save fails, return the generated ID for this session
		return trackingID
	}

	return trackingID
}

// generateSessionID creates a new UUID for session-based tracking.
func generateSessionID() string {
	return uuid.New().String()
}
