package workout

import (
	"context"
	"time"
)

// Exercise is one entry of a plan's ordered exercise sequence.
type Exercise struct {
	ID          string
	Name        string
	TotalSets   int
	Reps        int
	WeightKg    float64
	RestSeconds int
	DayOfWeek   int // 1 (Mon) - 7 (Sun), 0 when the exercise is not tied to a day
}

// ExerciseCompletion is what the session log records when an exercise is done.
type ExerciseCompletion struct {
	SessionID      string
	ExerciseID     string
	SetsCompleted  int
	RepsCompleted  int
	WeightUsedKg   float64
	ElapsedSeconds int
}

// PlanStore supplies a plan's exercises in plan order.
type PlanStore interface {
	ExerciseSequence(ctx context.Context, planID string) ([]Exercise, error)
}

// SessionLog persists session milestones. Writes are best effort from the
// controller's point of view; a failure never rolls back local state.
type SessionLog interface {
	CompletedToday(ctx context.Context, planID, ownerID string, day time.Time) (bool, error)
	MarkSessionStarted(ctx context.Context, sessionID, planID, ownerID string, startedAt time.Time) error
	RecordExerciseCompletion(ctx context.Context, c ExerciseCompletion) error
	MarkSessionCompleted(ctx context.Context, sessionID string, completedAt time.Time) error
}

// Snapshotter owns the recovery slot. The controller hands it the session after
// every mutation and tick, and asks it to clear the slot on finish or abandon.
type Snapshotter interface {
	Save(s *Session)
	Clear()
}

type noopSnapshotter struct{}

func (noopSnapshotter) Save(*Session) {}
func (noopSnapshotter) Clear()        {}
