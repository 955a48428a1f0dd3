package db

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/balkashynov/wrokout/internal/models"
)

// CreatePlanRequest holds the data needed to create a new plan
type CreatePlanRequest struct {
	Name string
	Note string
}

// CreatePlan creates a new, empty plan
func CreatePlan(req CreatePlanRequest) (*models.Plan, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}

	var count int64
	if err := DB.Model(&models.Plan{}).Where("LOWER(name) = LOWER(?)", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("plan %q already exists", name)
	}

	plan := models.Plan{Name: name, Note: strings.TrimSpace(req.Note)}
	if err := DB.Create(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetPlans returns every plan with its exercises in plan order
func GetPlans() ([]models.Plan, error) {
	var plans []models.Plan
	err := DB.Preload("Exercises", orderByPosition).
		Order("name ASC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

// FindPlan resolves ref as a plan id, an id prefix or a name (case-insensitive)
func FindPlan(ref string) (*models.Plan, error) {
	return findPlan(DB, ref)
}

func findPlan(tx *gorm.DB, ref string) (*models.Plan, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("plan reference is required")
	}

	var plan models.Plan
	err := tx.Preload("Exercises", orderByPosition).
		Where("id = ? OR LOWER(name) = LOWER(?)", ref, ref).
		First(&plan).Error
	if err == nil {
		return &plan, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Short id prefixes, as shown by `plan ls`
	var matches []models.Plan
	if err := tx.Preload("Exercises", orderByPosition).Where("id LIKE ?", ref+"%").Limit(2).Find(&matches).Error; err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("plan %q: %w", ref, ErrNotFound)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("plan reference %q is ambiguous", ref)
	}
}

// DeletePlan removes a plan and its exercises. Session history is kept.
func DeletePlan(id string) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", id).Delete(&models.Exercise{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Plan{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("plan %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

// AddExerciseRequest holds the data needed to append an exercise to a plan
type AddExerciseRequest struct {
	PlanID      string
	Name        string
	Sets        int
	Reps        int
	WeightKg    float64
	RestSeconds int
	DayOfWeek   int // 0 = any day
}

// AddExercise appends an exercise to the end of a plan
func AddExercise(req AddExerciseRequest) (*models.Exercise, error) {
	name := strings.TrimSpace(req.Name)
	switch {
	case name == "":
		return nil, fmt.Errorf("exercise name is required")
	case req.Sets <= 0:
		return nil, fmt.Errorf("sets must be at least 1")
	case req.Reps < 0:
		return nil, fmt.Errorf("reps cannot be negative")
	case req.WeightKg < 0:
		return nil, fmt.Errorf("weight cannot be negative")
	case req.RestSeconds < 0:
		return nil, fmt.Errorf("rest cannot be negative")
	case req.DayOfWeek < 0 || req.DayOfWeek > 7:
		return nil, fmt.Errorf("day of week must be 1 (Mon) to 7 (Sun)")
	}

	exercise := models.Exercise{
		PlanID:      req.PlanID,
		Name:        name,
		TotalSets:   req.Sets,
		Reps:        req.Reps,
		WeightKg:    req.WeightKg,
		RestSeconds: req.RestSeconds,
		DayOfWeek:   req.DayOfWeek,
	}

	err := DB.Transaction(func(tx *gorm.DB) error {
		var plan models.Plan
		if err := tx.Select("id").Where("id = ?", req.PlanID).First(&plan).Error; err != nil {
			return notFound(err, "plan "+req.PlanID)
		}

		var last struct{ Max int }
		if err := tx.Model(&models.Exercise{}).Select("COALESCE(MAX(position), 0) AS max").
			Where("plan_id = ?", req.PlanID).Scan(&last).Error; err != nil {
			return err
		}
		exercise.Position = last.Max + 1
		return tx.Create(&exercise).Error
	})
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

// RemoveExercise deletes an exercise by position number or id and closes the gap
// in plan order
func RemoveExercise(planID, ref string) (*models.Exercise, error) {
	var removed models.Exercise
	err := DB.Transaction(func(tx *gorm.DB) error {
		q := tx.Where("plan_id = ?", planID)
		if pos, err := strconv.Atoi(ref); err == nil {
			q = q.Where("position = ?", pos)
		} else {
			q = q.Where("id = ? OR id LIKE ?", ref, ref+"%")
		}
		if err := q.First(&removed).Error; err != nil {
			return notFound(err, "exercise "+ref)
		}
		if err := tx.Delete(&removed).Error; err != nil {
			return err
		}
		return tx.Model(&models.Exercise{}).
			Where("plan_id = ? AND position > ?", planID, removed.Position).
			Update("position", gorm.Expr("position - 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
