package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Plan is a named, ordered list of exercises
type Plan struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name string `gorm:"uniqueIndex;not null" json:"name"`
	Note string `json:"note"`

	// Relationships
	Exercises []Exercise `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE;" json:"exercises"`
}

// BeforeCreate assigns a UUID when none was set
func (p *Plan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Exercise is one entry in a plan
type Exercise struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	PlanID      string  `gorm:"index;not null" json:"plan_id"`
	Name        string  `gorm:"not null" json:"name"`
	Position    int     `gorm:"not null" json:"position"` // plan order, 1-based
	TotalSets   int     `gorm:"not null" json:"total_sets"`
	Reps        int     `json:"reps"`
	WeightKg    float64 `json:"weight_kg"`
	RestSeconds int     `json:"rest_seconds"`
	DayOfWeek   int     `gorm:"default:0" json:"day_of_week"` // 1=Mon..7=Sun, 0=any day
}

// BeforeCreate assigns a UUID when none was set
func (e *Exercise) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
