package db

import (
	"fmt"

	"github.com/balkashynov/wrokout/internal/models"
)

// GetSessionHistory returns completed sessions for ownerID, newest first
func GetSessionHistory(ownerID string, limit int) ([]models.SessionLog, error) {
	var logs []models.SessionLog

	q := DB.Where("owner_id = ? AND completed_at IS NOT NULL", ownerID).
		Preload("Plan").
		Preload("Exercises.Exercise").
		Order("started_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to load session history: %w", err)
	}
	return logs, nil
}
