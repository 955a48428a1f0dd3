// Package workout runs a live training session: it walks a plan's exercise
// sequence, counts sets, inserts rest phases, keeps the session clocks and
// hands every state change to the persistence guard.
//
// Everything in this package is driven from one goroutine. The Controller is
// not safe for concurrent use; the Driver and the TUI both funnel user actions
// and ticks through a single loop.
package workout

import "time"

// Phase is the session-level state.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseInProgress Phase = "in_progress"
	PhaseResting    Phase = "resting"
	PhaseAllDone    Phase = "all_exercises_done"
	PhaseFinished   Phase = "finished"
	PhaseAbandoned  Phase = "abandoned"
)

// ExerciseProgress is the per-exercise state inside a session.
type ExerciseProgress struct {
	ExerciseID     string `json:"exercise_id"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
	CurrentSet     int    `json:"current_set"`
	// SetsDone counts finished sets across every visit to the exercise.
	// CurrentSet restarts when the exercise becomes current again; SetsDone does not.
	SetsDone       int    `json:"sets_done"`
}

// Session is the live training instance and the payload of a snapshot.
type Session struct {
	SessionID            string                       `json:"session_id"`
	OwnerID              string                       `json:"owner_id"`
	PlanID               string                       `json:"plan_id"`
	StartedAt            time.Time                    `json:"started_at"`
	Phase                Phase                        `json:"phase"`
	IsPaused             bool                         `json:"is_paused"`
	TotalElapsedSeconds  int                          `json:"total_elapsed_seconds"`
	CurrentExerciseID    string                       `json:"current_exercise_id,omitempty"` // empty once every exercise is done
	CompletedExerciseIDs []string                     `json:"completed_exercise_ids"`
	Progress             map[string]*ExerciseProgress `json:"progress"`
}

// Active reports whether the session still accepts actions.
func (s *Session) Active() bool {
	if s == nil {
		return false
	}
	switch s.Phase {
	case PhaseInProgress, PhaseResting, PhaseAllDone:
		return true
	}
	return false
}

// IsCompleted reports whether exerciseID has been completed in this session.
func (s *Session) IsCompleted(exerciseID string) bool {
	for _, id := range s.CompletedExerciseIDs {
		if id == exerciseID {
			return true
		}
	}
	return false
}

// HasProgress reports whether anything would be lost by discarding the session:
// a completed exercise or a completed set.
func (s *Session) HasProgress() bool {
	if s == nil {
		return false
	}
	if len(s.CompletedExerciseIDs) > 0 {
		return true
	}
	for _, p := range s.Progress {
		if p.SetsDone > 0 {
			return true
		}
	}
	return false
}

// ProgressFor returns the progress entry for exerciseID, creating it on first use.
func (s *Session) ProgressFor(exerciseID string) *ExerciseProgress {
	if s.Progress == nil {
		s.Progress = make(map[string]*ExerciseProgress)
	}
	p, ok := s.Progress[exerciseID]
	if !ok {
		p = &ExerciseProgress{ExerciseID: exerciseID, CurrentSet: 1}
		s.Progress[exerciseID] = p
	}
	return p
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.CompletedExerciseIDs = append([]string(nil), s.CompletedExerciseIDs...)
	c.Progress = make(map[string]*ExerciseProgress, len(s.Progress))
	for id, p := range s.Progress {
		cp := *p
		c.Progress[id] = &cp
	}
	return &c
}

// Summary is surfaced when a session finishes.
type Summary struct {
	SessionID           string
	PlanID              string
	TotalElapsedSeconds int
	SetsCompleted       int
	CompletedExercises  []Exercise // plan order
	FinishedAt          time.Time
}
