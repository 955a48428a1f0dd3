package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/wrokout/internal/log"
	"github.com/balkashynov/wrokout/internal/models"
	"github.com/balkashynov/wrokout/internal/workout"
)

const dayLayout = "2006-01-02"

// PlanStore serves exercise sequences to the session controller.
type PlanStore struct {
	db *gorm.DB
}

// NewPlanStore creates a PlanStore over db.
func NewPlanStore(db *gorm.DB) *PlanStore {
	return &PlanStore{db: db}
}

// Plan loads a plan by id with its exercises in plan order.
func (s *PlanStore) Plan(ctx context.Context, planID string) (*models.Plan, error) {
	var plan models.Plan
	err := s.db.WithContext(ctx).
		Preload("Exercises", orderByPosition).
		Where("id = ?", planID).
		First(&plan).Error
	if err != nil {
		return nil, notFound(err, "plan "+planID)
	}
	return &plan, nil
}

// ExerciseSequence returns the plan's exercises in plan order.
func (s *PlanStore) ExerciseSequence(ctx context.Context, planID string) ([]workout.Exercise, error) {
	plan, err := s.Plan(ctx, planID)
	if err != nil {
		return nil, err
	}
	return sequenceOf(plan), nil
}

func sequenceOf(plan *models.Plan) []workout.Exercise {
	seq := make([]workout.Exercise, 0, len(plan.Exercises))
	for _, e := range plan.Exercises {
		seq = append(seq, toWorkoutExercise(e))
	}
	return seq
}

func toWorkoutExercise(e models.Exercise) workout.Exercise {
	return workout.Exercise{
		ID:          e.ID,
		Name:        e.Name,
		TotalSets:   e.TotalSets,
		Reps:        e.Reps,
		WeightKg:    e.WeightKg,
		RestSeconds: e.RestSeconds,
		DayOfWeek:   e.DayOfWeek,
	}
}

// DayFilter narrows a plan to the exercises scheduled for one weekday.
// Exercises without a day always pass. A plan with no scheduled exercises at
// all is returned unchanged.
type DayFilter struct {
	next workout.PlanStore
	day  int
}

// ForWeekday wraps next so only exercises for weekday (or any day) are returned.
func ForWeekday(next workout.PlanStore, weekday time.Weekday) *DayFilter {
	return &DayFilter{next: next, day: ISODay(weekday)}
}

// ExerciseSequence implements workout.PlanStore.
func (f *DayFilter) ExerciseSequence(ctx context.Context, planID string) ([]workout.Exercise, error) {
	seq, err := f.next.ExerciseSequence(ctx, planID)
	if err != nil {
		return nil, err
	}

	scheduled := false
	var out []workout.Exercise
	for _, e := range seq {
		if e.DayOfWeek != 0 {
			scheduled = true
		}
		if e.DayOfWeek == 0 || e.DayOfWeek == f.day {
			out = append(out, e)
		}
	}
	if !scheduled {
		return seq, nil
	}
	return out, nil
}

// ISODay converts a time.Weekday to 1 (Mon) .. 7 (Sun).
func ISODay(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}

// SessionLogStore records session milestones for history and the
// once-per-day check.
type SessionLogStore struct {
	db *gorm.DB
}

// NewSessionLogStore creates a SessionLogStore over db.
func NewSessionLogStore(db *gorm.DB) *SessionLogStore {
	return &SessionLogStore{db: db}
}

// CompletedToday reports whether ownerID already finished planID on day's calendar date.
func (s *SessionLogStore) CompletedToday(ctx context.Context, planID, ownerID string, day time.Time) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.SessionLog{}).
		Where("plan_id = ? AND owner_id = ? AND date = ? AND completed_at IS NOT NULL", planID, ownerID, day.Local().Format(dayLayout)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check session log: %w", err)
	}
	return count > 0, nil
}

// MarkSessionStarted inserts the session row.
func (s *SessionLogStore) MarkSessionStarted(ctx context.Context, sessionID, planID, ownerID string, startedAt time.Time) error {
	row := models.SessionLog{
		ID:        sessionID,
		PlanID:    planID,
		OwnerID:   ownerID,
		Date:      startedAt.Local().Format(dayLayout),
		StartedAt: startedAt,
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to record session start: %w", err)
	}
	log.Debug(log.CatDB, "session logged", "session", sessionID, "plan", planID)
	return nil
}

// RecordExerciseCompletion appends an exercise row to the session.
func (s *SessionLogStore) RecordExerciseCompletion(ctx context.Context, c workout.ExerciseCompletion) error {
	row := models.ExerciseLog{
		SessionID:      c.SessionID,
		ExerciseID:     c.ExerciseID,
		SetsCompleted:  c.SetsCompleted,
		RepsCompleted:  c.RepsCompleted,
		WeightUsedKg:   c.WeightUsedKg,
		ElapsedSeconds: c.ElapsedSeconds,
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to record exercise completion: %w", err)
	}
	return nil
}

// MarkSessionCompleted stamps the session as completed. The row's date moves
// to the finish day so CompletedToday blocks the day the workout was done on.
func (s *SessionLogStore) MarkSessionCompleted(ctx context.Context, sessionID string, completedAt time.Time) error {
	res := s.db.WithContext(ctx).Model(&models.SessionLog{}).
		Where("id = ?", sessionID).
		Updates(map[string]any{
			"completed_at": completedAt,
			"date":         completedAt.Local().Format(dayLayout),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to record session completion: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	return nil
}
