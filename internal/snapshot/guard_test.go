package snapshot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/balkashynov/wrokout/internal/workout"
)

var today = time.Date(2026, 6, 1, 14, 30, 0, 0, time.Local)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func activeSession(owner string) *workout.Session {
	return &workout.Session{
		SessionID:            "s1",
		OwnerID:              owner,
		PlanID:               "plan-1",
		StartedAt:            today.Add(-time.Hour),
		Phase:                workout.PhaseInProgress,
		TotalElapsedSeconds:  300,
		CurrentExerciseID:    "ex2",
		CompletedExerciseIDs: []string{"ex1"},
		Progress: map[string]*workout.ExerciseProgress{
			"ex1": {ExerciseID: "ex1", ElapsedSeconds: 200, CurrentSet: 3},
			"ex2": {ExerciseID: "ex2", ElapsedSeconds: 100, CurrentSet: 2},
		},
	}
}

func TestGuard_RoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())
	g := NewGuard(store, "alice", WithClock(fixedClock(today)))

	g.Save(activeSession("alice"))

	got, ok := g.Recover()
	require.True(t, ok)
	require.Equal(t, activeSession("alice").Progress, got.Progress)
	require.Equal(t, []string{"ex1"}, got.CompletedExerciseIDs)
	require.Equal(t, "ex2", got.CurrentExerciseID)
	require.True(t, got.StartedAt.Equal(today.Add(-time.Hour)))
}

func TestGuard_DiscardsIneligible(t *testing.T) {
	tests := []struct {
		name    string
		savedAt time.Time
		session *workout.Session
		owner   string
	}{
		{"other owner", today, activeSession("bob"), "alice"},
		{"yesterday", today.AddDate(0, 0, -1), activeSession("alice"), "alice"},
		{"finished", today, func() *workout.Session {
			s := activeSession("alice")
			s.Phase = workout.PhaseFinished
			return s
		}(), "alice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewFileStore(t.TempDir())
			NewGuard(store, tt.session.OwnerID, WithClock(fixedClock(tt.savedAt))).Save(tt.session)

			g := NewGuard(store, tt.owner, WithClock(fixedClock(today)))
			_, ok := g.Recover()
			require.False(t, ok)

			_, err := store.Read(DefaultKey)
			require.ErrorIs(t, err, ErrNotFound, "ineligible snapshot must be deleted")
		})
	}
}

func TestGuard_CorruptRecordIsDiscarded(t *testing.T) {
	store := NewFileStore(t.TempDir())
	require.NoError(t, store.Write(DefaultKey, []byte("{not json")))

	g := NewGuard(store, "alice", WithClock(fixedClock(today)))
	_, ok := g.Recover()
	require.False(t, ok)

	_, err := store.Read(DefaultKey)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGuard_MissingIsNotRecoverable(t *testing.T) {
	g := NewGuard(NewFileStore(t.TempDir()), "alice")
	_, ok := g.Recover()
	require.False(t, ok)
}

type failingStore struct{}

func (failingStore) Read(string) ([]byte, error) { return nil, errors.New("io error") }
func (failingStore) Write(string, []byte) error  { return errors.New("disk full") }
func (failingStore) Delete(string) error         { return errors.New("read-only") }

type memStore map[string][]byte

func (m memStore) Read(key string) ([]byte, error) {
	v, ok := m[key]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func (m memStore) Write(key string, value []byte) error {
	m[key] = value
	return nil
}

func (m memStore) Delete(key string) error {
	delete(m, key)
	return nil
}

func TestGuard_FailuresAreNonFatal(t *testing.T) {
	g := NewGuard(failingStore{}, "alice")
	g.Save(activeSession("alice"))
	g.Clear()
	_, ok := g.Recover()
	require.False(t, ok)
}

func TestGuard_SameDayProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		offset := time.Duration(rapid.IntRange(-72, 72).Draw(t, "hours")) * time.Hour
		saved := today.Add(offset)

		store := memStore{}
		NewGuard(store, "alice", WithClock(fixedClock(saved))).Save(activeSession("alice"))
		_, ok := NewGuard(store, "alice", WithClock(fixedClock(today))).Recover()
		require.Equal(t, sameDay(saved, today), ok)
	})
}

func TestFileStore_WriteReplaces(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "nested"))

	require.NoError(t, store.Write("k", []byte("one")))
	require.NoError(t, store.Write("k", []byte("two")))

	data, err := store.Read("k")
	require.NoError(t, err)
	require.Equal(t, "two", string(data))

	entries, err := os.ReadDir(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")

	require.NoError(t, store.Delete("k"))
	require.NoError(t, store.Delete("k"))
}

type memPlans []workout.Exercise

func (m memPlans) ExerciseSequence(context.Context, string) ([]workout.Exercise, error) {
	return m, nil
}

type nopLog struct{}

func (nopLog) CompletedToday(context.Context, string, string, time.Time) (bool, error) {
	return false, nil
}
func (nopLog) MarkSessionStarted(context.Context, string, string, string, time.Time) error {
	return nil
}
func (nopLog) RecordExerciseCompletion(context.Context, workout.ExerciseCompletion) error {
	return nil
}
func (nopLog) MarkSessionCompleted(context.Context, string, time.Time) error { return nil }

// Complete one of two exercises, reload without finishing, recover.
func TestGuard_RecoversControllerSession(t *testing.T) {
	ctx := context.Background()
	plans := memPlans{
		{ID: "ex1", Name: "Squat", TotalSets: 1, RestSeconds: 60},
		{ID: "ex2", Name: "Bench", TotalSets: 3, RestSeconds: 60},
	}
	store := NewFileStore(t.TempDir())

	first := workout.NewController(workout.Deps{
		Plans: plans,
		Logs:  nopLog{},
		Guard: NewGuard(store, "alice", WithClock(fixedClock(today))),
		Now:   fixedClock(today),
	})
	_, err := first.Start(ctx, "plan-1", "alice")
	require.NoError(t, err)
	for i := 0; i < 45; i++ {
		first.Tick()
	}
	first.CompleteSet(ctx)
	first.Tick()

	guard := NewGuard(store, "alice", WithClock(fixedClock(today.Add(2*time.Hour))))
	recovered, ok := guard.Recover()
	require.True(t, ok)

	second := workout.NewController(workout.Deps{Plans: plans, Logs: nopLog{}, Guard: guard, Now: fixedClock(today)})
	s, err := second.Resume(ctx, recovered)
	require.NoError(t, err)
	require.Equal(t, []string{"ex1"}, s.CompletedExerciseIDs)
	require.Equal(t, "ex2", s.CurrentExerciseID)
	require.Equal(t, 45, s.TotalElapsedSeconds)

	second.Finish(ctx)
	second.Finish(ctx)
	_, ok = guard.Recover()
	require.False(t, ok)
}

func TestDBStore(t *testing.T) {
	db := openTestDB(t)
	store := NewDBStore(db)

	_, err := store.Read("k")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Write("k", []byte("one")))
	require.NoError(t, store.Write("k", []byte("two")))
	data, err := store.Read("k")
	require.NoError(t, err)
	require.Equal(t, "two", string(data))

	g := NewGuard(store, "alice", WithClock(fixedClock(today)))
	g.Save(activeSession("alice"))
	_, ok := g.Recover()
	require.True(t, ok)
	g.Clear()
	_, ok = g.Recover()
	require.False(t, ok)
}
