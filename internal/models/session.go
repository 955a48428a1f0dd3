package models

import "time"

// SessionLog records one workout session for history and the
// "already completed today" check
type SessionLog struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"` // the live session's id
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	PlanID      string     `gorm:"index:idx_session_plan_day;not null" json:"plan_id"`
	OwnerID     string     `gorm:"index:idx_session_plan_day;not null" json:"owner_id"`
	Date        string     `gorm:"index:idx_session_plan_day;size:10;not null" json:"date"` // YYYY-MM-DD, local finish day (start day while unfinished)
	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`

	// Relationships
	Plan      Plan          `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Exercises []ExerciseLog `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE;" json:"exercises"`
}

// ExerciseLog is one completed exercise inside a session
type ExerciseLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	SessionID      string  `gorm:"index;not null" json:"session_id"`
	ExerciseID     string  `gorm:"not null" json:"exercise_id"`
	SetsCompleted  int     `json:"sets_completed"`
	RepsCompleted  int     `json:"reps_completed"`
	WeightUsedKg   float64 `json:"weight_used_kg"`
	ElapsedSeconds int     `json:"elapsed_seconds"`

	Exercise Exercise `gorm:"constraint:OnDelete:CASCADE;" json:"exercise"`
}

// SnapshotSlot is a key/value row used when snapshots are kept in the database
type SnapshotSlot struct {
	Key       string    `gorm:"primaryKey;column:slot_key" json:"key"`
	Value     []byte    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
