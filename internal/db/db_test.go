package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/balkashynov/wrokout/internal/models"
	"github.com/balkashynov/wrokout/internal/workout"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "wrokout.db"))
	require.NoError(t, err)
	DB = db
	t.Cleanup(func() {
		_ = Close()
		DB = nil
	})
}

func seedPlan(t *testing.T, name string, exercises ...AddExerciseRequest) *models.Plan {
	t.Helper()
	plan, err := CreatePlan(CreatePlanRequest{Name: name})
	require.NoError(t, err)
	for _, req := range exercises {
		req.PlanID = plan.ID
		_, err := AddExercise(req)
		require.NoError(t, err)
	}
	plan, err = FindPlan(plan.ID)
	require.NoError(t, err)
	return plan
}

func TestCreatePlan(t *testing.T) {
	setupTestDB(t)

	plan, err := CreatePlan(CreatePlanRequest{Name: "  Push Day ", Note: "chest"})
	require.NoError(t, err)
	require.Len(t, plan.ID, 36)
	require.Equal(t, "Push Day", plan.Name)

	_, err = CreatePlan(CreatePlanRequest{Name: "push day"})
	require.ErrorContains(t, err, "already exists")

	_, err = CreatePlan(CreatePlanRequest{Name: " "})
	require.Error(t, err)
}

func TestFindPlan(t *testing.T) {
	setupTestDB(t)
	plan := seedPlan(t, "Legs")

	byName, err := FindPlan("legs")
	require.NoError(t, err)
	require.Equal(t, plan.ID, byName.ID)

	byPrefix, err := FindPlan(plan.ID[:8])
	require.NoError(t, err)
	require.Equal(t, plan.ID, byPrefix.ID)

	_, err = FindPlan("arms")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAddAndRemoveExercise(t *testing.T) {
	setupTestDB(t)
	plan := seedPlan(t, "Full body",
		AddExerciseRequest{Name: "Squat", Sets: 3, Reps: 5, WeightKg: 100, RestSeconds: 120},
		AddExerciseRequest{Name: "Bench", Sets: 3, Reps: 5, WeightKg: 80, RestSeconds: 90},
		AddExerciseRequest{Name: "Row", Sets: 3, Reps: 8, WeightKg: 60, RestSeconds: 60},
	)
	require.Len(t, plan.Exercises, 3)
	for i, e := range plan.Exercises {
		require.Equal(t, i+1, e.Position)
	}

	removed, err := RemoveExercise(plan.ID, "2")
	require.NoError(t, err)
	require.Equal(t, "Bench", removed.Name)

	plan, err = FindPlan(plan.ID)
	require.NoError(t, err)
	require.Len(t, plan.Exercises, 2)
	require.Equal(t, "Row", plan.Exercises[1].Name)
	require.Equal(t, 2, plan.Exercises[1].Position)

	_, err = RemoveExercise(plan.ID, "9")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAddExercise_Validation(t *testing.T) {
	setupTestDB(t)
	plan := seedPlan(t, "Core")

	tests := []AddExerciseRequest{
		{PlanID: plan.ID, Name: "", Sets: 3},
		{PlanID: plan.ID, Name: "Plank", Sets: 0},
		{PlanID: plan.ID, Name: "Plank", Sets: 3, RestSeconds: -5},
		{PlanID: plan.ID, Name: "Plank", Sets: 3, DayOfWeek: 8},
	}
	for _, req := range tests {
		_, err := AddExercise(req)
		require.Error(t, err, "%+v", req)
	}

	_, err := AddExercise(AddExerciseRequest{PlanID: "missing", Name: "Plank", Sets: 3})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePlan(t *testing.T) {
	setupTestDB(t)
	plan := seedPlan(t, "Temp", AddExerciseRequest{Name: "Curl", Sets: 2})

	require.NoError(t, DeletePlan(plan.ID))
	_, err := FindPlan(plan.ID)
	require.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, DB.Model(&models.Exercise{}).Count(&count).Error)
	require.Zero(t, count)

	require.ErrorIs(t, DeletePlan(plan.ID), ErrNotFound)
}

func TestPlanStore_ExerciseSequence(t *testing.T) {
	setupTestDB(t)
	plan := seedPlan(t, "Pull",
		AddExerciseRequest{Name: "Deadlift", Sets: 1, Reps: 5, WeightKg: 140, RestSeconds: 180},
		AddExerciseRequest{Name: "Chin-up", Sets: 3, Reps: 8, RestSeconds: 90, DayOfWeek: 3},
	)

	store := NewPlanStore(DB)
	seq, err := store.ExerciseSequence(context.Background(), plan.ID)
	require.NoError(t, err)
	require.Len(t, seq, 2)
	require.Equal(t, workout.Exercise{
		ID: plan.Exercises[0].ID, Name: "Deadlift", TotalSets: 1, Reps: 5, WeightKg: 140, RestSeconds: 180,
	}, seq[0])

	_, err = store.ExerciseSequence(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

type fixedSequence []workout.Exercise

func (f fixedSequence) ExerciseSequence(context.Context, string) ([]workout.Exercise, error) {
	return f, nil
}

func TestDayFilter(t *testing.T) {
	seq := fixedSequence{
		{ID: "a", DayOfWeek: 1},
		{ID: "b", DayOfWeek: 0},
		{ID: "c", DayOfWeek: 7},
	}

	monday, err := ForWeekday(seq, time.Monday).ExerciseSequence(context.Background(), "p")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, ids(monday))

	sunday, err := ForWeekday(seq, time.Sunday).ExerciseSequence(context.Background(), "p")
	require.NoError(t, err)
	require.Equal(t, []string{"b", "c"}, ids(sunday))

	unscheduled := fixedSequence{{ID: "x"}, {ID: "y"}}
	all, err := ForWeekday(unscheduled, time.Friday).ExerciseSequence(context.Background(), "p")
	require.NoError(t, err)
	require.Equal(t, []string{"x", "y"}, ids(all))
}

func ids(seq []workout.Exercise) []string {
	out := make([]string, 0, len(seq))
	for _, e := range seq {
		out = append(out, e.ID)
	}
	return out
}

func TestSessionLogStore(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	plan := seedPlan(t, "Push", AddExerciseRequest{Name: "Bench", Sets: 3, Reps: 5})
	store := NewSessionLogStore(DB)

	morning := time.Date(2026, 5, 4, 8, 0, 0, 0, time.Local)

	done, err := store.CompletedToday(ctx, plan.ID, "alice", morning)
	require.NoError(t, err)
	require.False(t, done)

	require.NoError(t, store.MarkSessionStarted(ctx, "s1", plan.ID, "alice", morning))
	done, err = store.CompletedToday(ctx, plan.ID, "alice", morning)
	require.NoError(t, err)
	require.False(t, done, "a started session is not a completed one")

	require.NoError(t, store.RecordExerciseCompletion(ctx, workout.ExerciseCompletion{
		SessionID: "s1", ExerciseID: plan.Exercises[0].ID,
		SetsCompleted: 3, RepsCompleted: 15, WeightUsedKg: 60, ElapsedSeconds: 420,
	}))
	require.NoError(t, store.MarkSessionCompleted(ctx, "s1", morning.Add(time.Hour)))

	done, err = store.CompletedToday(ctx, plan.ID, "alice", morning.Add(10*time.Hour))
	require.NoError(t, err)
	require.True(t, done)

	done, err = store.CompletedToday(ctx, plan.ID, "bob", morning)
	require.NoError(t, err)
	require.False(t, done)

	done, err = store.CompletedToday(ctx, plan.ID, "alice", morning.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.False(t, done)

	history, err := GetSessionHistory("alice", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "Push", history[0].Plan.Name)
	require.Len(t, history[0].Exercises, 1)
	require.Equal(t, "Bench", history[0].Exercises[0].Exercise.Name)
	require.Equal(t, 420, history[0].Exercises[0].ElapsedSeconds)

	err = store.MarkSessionCompleted(ctx, "nope", morning)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSessionLogStore_FinishedAfterMidnight(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	plan := seedPlan(t, "Push", AddExerciseRequest{Name: "Bench", Sets: 3, Reps: 5})
	store := NewSessionLogStore(DB)

	lateNight := time.Date(2026, 5, 4, 23, 30, 0, 0, time.Local)
	afterMidnight := lateNight.Add(50 * time.Minute)

	require.NoError(t, store.MarkSessionStarted(ctx, "s1", plan.ID, "alice", lateNight))
	require.NoError(t, store.MarkSessionCompleted(ctx, "s1", afterMidnight))

	done, err := store.CompletedToday(ctx, plan.ID, "alice", afterMidnight.Add(8*time.Hour))
	require.NoError(t, err)
	require.True(t, done, "the finish day is blocked")

	done, err = store.CompletedToday(ctx, plan.ID, "alice", lateNight)
	require.NoError(t, err)
	require.False(t, done)

	var row models.SessionLog
	require.NoError(t, DB.Where("id = ?", "s1").First(&row).Error)
	require.Equal(t, "2026-05-05", row.Date)
	require.True(t, row.StartedAt.Equal(lateNight))
}

func TestPlanCatalog_FindFeedsSequence(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	seeded := seedPlan(t, "Push day",
		AddExerciseRequest{Name: "Bench", Sets: 3, Reps: 5},
		AddExerciseRequest{Name: "Dips", Sets: 2, Reps: 10},
	)
	plans := NewPlanCatalog(DB, time.Minute)

	plan, err := plans.Find("push DAY")
	require.NoError(t, err)
	require.Equal(t, seeded.ID, plan.ID)

	// rows removed behind the catalog's back are still served from the cache
	require.NoError(t, DB.Where("plan_id = ?", plan.ID).Delete(&models.Exercise{}).Error)
	require.NoError(t, DB.Where("id = ?", plan.ID).Delete(&models.Plan{}).Error)

	again, err := plans.Find("Push day")
	require.NoError(t, err)
	require.Equal(t, plan.ID, again.ID)
	require.Len(t, again.Exercises, 2)

	seq, err := plans.ExerciseSequence(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, seq, 2)
	require.Equal(t, "Bench", seq[0].Name)

	_, err = FindPlan(plan.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPlanCatalog_SequenceLoadsOnce(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	plan := seedPlan(t, "Legs", AddExerciseRequest{Name: "Squat", Sets: 5, Reps: 5})
	plans := NewPlanCatalog(DB, time.Minute)

	seq, err := plans.ExerciseSequence(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, seq, 1)

	_, err = AddExercise(AddExerciseRequest{PlanID: plan.ID, Name: "Lunge", Sets: 3, Reps: 8})
	require.NoError(t, err)

	seq, err = plans.ExerciseSequence(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, seq, 1)

	// callers get copies
	seq[0].Name = "changed"
	found, err := plans.Find(plan.ID)
	require.NoError(t, err)
	require.Equal(t, "Squat", found.Exercises[0].Name)
}

func TestPlanCatalog_ErrorsNotCached(t *testing.T) {
	setupTestDB(t)
	plans := NewPlanCatalog(DB, time.Minute)

	_, err := plans.Find("Pull")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = plans.ExerciseSequence(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)

	seedPlan(t, "Pull", AddExerciseRequest{Name: "Row", Sets: 3, Reps: 8})
	plan, err := plans.Find("Pull")
	require.NoError(t, err)
	require.Len(t, plan.Exercises, 1)
}
