package workout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/balkashynov/wrokout/internal/audio"
	"github.com/balkashynov/wrokout/internal/log"
	"github.com/balkashynov/wrokout/internal/pubsub"
)

var (
	ErrEmptySequence         = errors.New("plan has no exercises")
	ErrInvalidExercise       = errors.New("invalid exercise configuration")
	ErrAlreadyCompletedToday = errors.New("plan already completed today")
	ErrSessionActive         = errors.New("another session is already in progress")
	ErrNoActiveSession       = errors.New("no active session")
)

// Deps wires a Controller to its collaborators. Plans and Logs are required;
// everything else falls back to a no-op.
type Deps struct {
	Plans   PlanStore
	Logs    SessionLog
	Guard   Snapshotter
	Cues    audio.Player
	Notices pubsub.Publisher[Notice]
	Now     func() time.Time
	NewID   func() string

	// KeepRestOnSelect lets a running rest continue when the user picks a
	// different exercise. By default the rest is cancelled.
	KeepRestOnSelect bool
}

// Controller owns the session state and mediates every user action.
type Controller struct {
	plans   PlanStore
	logs    SessionLog
	guard   Snapshotter
	cues    audio.Player
	notices pubsub.Publisher[Notice]
	now     func() time.Time
	newID   func() string

	keepRestOnSelect bool

	session  *Session
	sequence []Exercise
	rest     *RestCoordinator
	summary  *Summary
}

// NewController creates a controller with no session loaded.
func NewController(deps Deps) *Controller {
	c := &Controller{
		plans:            deps.Plans,
		logs:             deps.Logs,
		guard:            deps.Guard,
		cues:             deps.Cues,
		notices:          deps.Notices,
		now:              deps.Now,
		newID:            deps.NewID,
		keepRestOnSelect: deps.KeepRestOnSelect,
	}
	if c.guard == nil {
		c.guard = noopSnapshotter{}
	}
	if c.cues == nil {
		c.cues = audio.NoopPlayer{}
	}
	if c.notices == nil {
		c.notices = discardNotices{}
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	c.rest = NewRestCoordinator(c.cues)
	return c
}

// Session returns the live session, or nil before Start.
func (c *Controller) Session() *Session {
	return c.session
}

// Sequence returns the plan's exercises in plan order.
func (c *Controller) Sequence() []Exercise {
	return c.sequence
}

// Rest exposes the rest coordinator for display.
func (c *Controller) Rest() *RestCoordinator {
	return c.rest
}

// Phase returns the session phase.
func (c *Controller) Phase() Phase {
	if c.session == nil {
		return PhaseNotStarted
	}
	return c.session.Phase
}

// HasProgress reports whether abandoning now would discard completed work.
func (c *Controller) HasProgress() bool {
	return c.session.HasProgress()
}

// Current returns the exercise currently being performed.
func (c *Controller) Current() (Exercise, bool) {
	if c.session == nil || c.session.CurrentExerciseID == "" {
		return Exercise{}, false
	}
	i := c.indexOf(c.session.CurrentExerciseID)
	if i < 0 {
		return Exercise{}, false
	}
	return c.sequence[i], true
}

// Start begins a session for planID, or returns the in-progress one if it is
// already loaded for the same plan and owner.
func (c *Controller) Start(ctx context.Context, planID, ownerID string) (*Session, error) {
	if c.session.Active() {
		if c.session.PlanID == planID && c.session.OwnerID == ownerID {
			return c.session, nil
		}
		return nil, ErrSessionActive
	}

	now := c.now()
	done, err := c.logs.CompletedToday(ctx, planID, ownerID, now)
	if err != nil {
		c.warn("could not check today's sessions", err)
	}
	if done {
		c.notify(NoticeAlreadyCompletedToday, "This workout was already completed today")
		return nil, ErrAlreadyCompletedToday
	}

	seq, err := c.loadSequence(ctx, planID)
	if err != nil {
		return nil, err
	}

	s := &Session{
		SessionID: c.newID(),
		OwnerID:   ownerID,
		PlanID:    planID,
		StartedAt: now,
		Phase:     PhaseInProgress,
		Progress:  make(map[string]*ExerciseProgress),
	}
	c.install(s, seq)
	c.setCurrent(c.nextIncomplete(-1))

	if err := c.logs.MarkSessionStarted(ctx, s.SessionID, planID, ownerID, now); err != nil {
		c.warn("could not record session start", err)
	}

	log.Info(log.CatSession, "session started", "session", s.SessionID, "plan", planID, "exercises", len(seq))
	c.notify(NoticeStarted, fmt.Sprintf("Workout started: %d exercises", len(seq)))
	c.snapshot()
	return s, nil
}

// Resume installs a recovered session. Completed exercises and the current
// exercise are kept exactly as stored; a rest that was running when the
// snapshot was taken is not resumed.
func (c *Controller) Resume(ctx context.Context, recovered *Session) (*Session, error) {
	if recovered == nil {
		return nil, ErrNoActiveSession
	}
	if c.session.Active() {
		return nil, ErrSessionActive
	}

	seq, err := c.loadSequence(ctx, recovered.PlanID)
	if err != nil {
		return nil, err
	}

	s := recovered.Clone()
	if s.Progress == nil {
		s.Progress = make(map[string]*ExerciseProgress)
	}
	s.Phase = PhaseInProgress
	c.install(s, seq)

	if s.CurrentExerciseID != "" && (c.indexOf(s.CurrentExerciseID) < 0 || s.IsCompleted(s.CurrentExerciseID)) {
		s.CurrentExerciseID = ""
	}
	if s.CurrentExerciseID == "" {
		c.setCurrent(c.nextIncomplete(-1))
	}

	log.Info(log.CatSession, "session recovered", "session", s.SessionID, "completed", len(s.CompletedExerciseIDs))
	c.notify(NoticeRecovered, fmt.Sprintf("Recovered in-progress workout (%d/%d exercises done)", len(s.CompletedExerciseIDs), len(seq)))

	if c.allComplete() {
		s.Phase = PhaseAllDone
		c.Finish(ctx)
		return s, nil
	}
	c.snapshot()
	return s, nil
}

// SelectExercise makes exerciseID current and restarts its set count.
// Accumulated time and finished sets are kept. Selecting the exercise that is
// already current changes nothing.
func (c *Controller) SelectExercise(exerciseID string) {
	if !c.requireActive() {
		return
	}
	i := c.indexOf(exerciseID)
	if i < 0 {
		c.violation("Unknown exercise")
		return
	}
	if c.session.IsCompleted(exerciseID) {
		c.violation(fmt.Sprintf("%s is already completed", c.sequence[i].Name))
		return
	}
	if exerciseID == c.session.CurrentExerciseID {
		c.notify(NoticeSelected, fmt.Sprintf("Already on %s", c.sequence[i].Name))
		return
	}

	if c.rest.Resting() && !c.keepRestOnSelect {
		c.rest.Cancel()
		c.session.Phase = PhaseInProgress
	}
	c.setCurrent(exerciseID)
	c.notify(NoticeSelected, fmt.Sprintf("Now: %s", c.sequence[i].Name))
	c.snapshot()
}

// CompleteSet finishes the current set. The last set completes the exercise.
func (c *Controller) CompleteSet(ctx context.Context) {
	if !c.requireActive() {
		return
	}
	if c.session.Phase == PhaseResting {
		c.violation("Rest in progress, skip it to continue")
		return
	}
	ex, ok := c.Current()
	if !ok {
		c.violation("No exercise selected")
		return
	}

	p := c.session.ProgressFor(ex.ID)
	switch {
	case p.CurrentSet > ex.TotalSets:
		c.violation(fmt.Sprintf("%s has only %d sets", ex.Name, ex.TotalSets))
	case p.CurrentSet < ex.TotalSets:
		p.CurrentSet++
		p.SetsDone++
		c.cues.Play(audio.CueSetComplete)
		c.notify(NoticeSetComplete, fmt.Sprintf("%s: set %d/%d done", ex.Name, p.CurrentSet-1, ex.TotalSets))
		c.beginRest(ex.RestSeconds)
		c.snapshot()
	default:
		c.CompleteExercise(ctx)
	}
}

// CompleteExercise records the current exercise as done and moves on to the
// next incomplete one, or finishes the session when none are left.
func (c *Controller) CompleteExercise(ctx context.Context) {
	if !c.requireActive() {
		return
	}
	if c.session.Phase == PhaseResting {
		c.violation("Rest in progress, skip it to continue")
		return
	}
	ex, ok := c.Current()
	if !ok {
		c.violation("No exercise selected")
		return
	}

	s := c.session
	p := s.ProgressFor(ex.ID)
	p.SetsDone++
	s.CompletedExerciseIDs = append(s.CompletedExerciseIDs, ex.ID)

	err := c.logs.RecordExerciseCompletion(ctx, ExerciseCompletion{
		SessionID:      s.SessionID,
		ExerciseID:     ex.ID,
		SetsCompleted:  p.SetsDone,
		RepsCompleted:  p.SetsDone * ex.Reps,
		WeightUsedKg:   ex.WeightKg,
		ElapsedSeconds: p.ElapsedSeconds,
	})
	if err != nil {
		c.warn("could not record exercise completion", err)
	}
	c.cues.Play(audio.CueExerciseComplete)
	log.Info(log.CatSession, "exercise completed", "exercise", ex.ID, "sets", p.SetsDone, "elapsed", p.ElapsedSeconds)

	if c.allComplete() {
		s.CurrentExerciseID = ""
		s.Phase = PhaseAllDone
		c.notify(NoticeExerciseComplete, fmt.Sprintf("%s completed, all exercises done", ex.Name))
		c.Finish(ctx)
		return
	}

	c.setCurrent(c.nextIncomplete(c.indexOf(ex.ID)))
	if c.beginRest(ex.RestSeconds) {
		c.notify(NoticeExerciseComplete, fmt.Sprintf("%s completed, resting %ds", ex.Name, ex.RestSeconds))
	} else {
		c.notify(NoticeExerciseComplete, fmt.Sprintf("%s completed", ex.Name))
	}
	c.snapshot()
}

// SkipRest ends the current rest early.
func (c *Controller) SkipRest() {
	if !c.requireActive() {
		return
	}
	if !c.rest.Skip() {
		c.violation("Not resting")
		return
	}
	c.endRest()
}

// TogglePause stops or restarts the session and exercise clocks.
func (c *Controller) TogglePause() {
	if !c.requireActive() {
		return
	}
	if c.session.Phase == PhaseResting {
		c.violation("Rest can't be paused")
		return
	}
	c.session.IsPaused = !c.session.IsPaused
	if c.session.IsPaused {
		c.notify(NoticePaused, "Paused")
	} else {
		c.notify(NoticeResumed, "Resumed")
	}
	c.snapshot()
}

// Tick advances the session by one second: the rest timer if resting,
// otherwise the session and current exercise clocks unless paused.
func (c *Controller) Tick() {
	s := c.session
	if !s.Active() {
		return
	}

	if c.rest.Resting() {
		if c.rest.Tick() {
			c.endRest()
			return
		}
	} else if s.Phase == PhaseInProgress && !s.IsPaused {
		s.TotalElapsedSeconds++
		if s.CurrentExerciseID != "" {
			s.ProgressFor(s.CurrentExerciseID).ElapsedSeconds++
		}
	}
	c.snapshot()
}

// Finish marks the session complete and clears the recovery snapshot.
// Calling it again returns the same summary.
func (c *Controller) Finish(ctx context.Context) Summary {
	c.guard.Clear()

	s := c.session
	if s == nil {
		c.violation("No workout in progress")
		return Summary{}
	}
	if s.Phase == PhaseFinished && c.summary != nil {
		return *c.summary
	}
	if s.Phase == PhaseAbandoned {
		c.violation("Workout was abandoned")
		return Summary{}
	}

	c.rest.Cancel()
	s.Phase = PhaseFinished
	now := c.now()
	if err := c.logs.MarkSessionCompleted(ctx, s.SessionID, now); err != nil {
		c.warn("could not record session completion", err)
	}

	summary := c.buildSummary(now)
	c.summary = &summary

	log.Info(log.CatSession, "session finished", "session", s.SessionID, "elapsed", s.TotalElapsedSeconds, "sets", summary.SetsCompleted)
	c.notify(NoticeFinished, fmt.Sprintf("Workout finished: %d exercises, %d sets", len(summary.CompletedExercises), summary.SetsCompleted))
	return summary
}

// Abandon ends the session. With save it behaves like Finish; otherwise the
// session and its snapshot are discarded without recording completion.
// Callers should confirm first when HasProgress is true.
func (c *Controller) Abandon(ctx context.Context, save bool) Summary {
	if save {
		return c.Finish(ctx)
	}

	c.rest.Cancel()
	c.guard.Clear()
	if c.session.Active() {
		c.session.Phase = PhaseAbandoned
		log.Info(log.CatSession, "session abandoned", "session", c.session.SessionID)
	}
	c.notify(NoticeAbandoned, "Workout discarded")
	return Summary{}
}

func (c *Controller) loadSequence(ctx context.Context, planID string) ([]Exercise, error) {
	seq, err := c.plans.ExerciseSequence(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to load exercises for plan %s: %w", planID, err)
	}
	if len(seq) == 0 {
		return nil, ErrEmptySequence
	}
	seen := make(map[string]bool, len(seq))
	for i, ex := range seq {
		if ex.ID == "" || seen[ex.ID] {
			return nil, fmt.Errorf("%w: exercise %d has a missing or duplicate id", ErrInvalidExercise, i)
		}
		if ex.TotalSets <= 0 {
			return nil, fmt.Errorf("%w: %s needs at least one set", ErrInvalidExercise, ex.Name)
		}
		if ex.RestSeconds < 0 {
			return nil, fmt.Errorf("%w: %s has negative rest", ErrInvalidExercise, ex.Name)
		}
		seen[ex.ID] = true
	}
	return seq, nil
}

func (c *Controller) install(s *Session, seq []Exercise) {
	c.rest.Cancel()
	c.session = s
	c.sequence = seq
	c.summary = nil
}

func (c *Controller) setCurrent(exerciseID string) {
	c.session.CurrentExerciseID = exerciseID
	if exerciseID != "" {
		c.session.ProgressFor(exerciseID).CurrentSet = 1
	}
}

func (c *Controller) beginRest(seconds int) bool {
	if seconds <= 0 {
		return false
	}
	if err := c.rest.Begin(seconds); err != nil {
		log.ErrorErr(log.CatRest, "could not start rest", err, "seconds", seconds)
		return false
	}
	c.session.Phase = PhaseResting
	return true
}

func (c *Controller) endRest() {
	c.session.Phase = PhaseInProgress
	if ex, ok := c.Current(); ok {
		c.notify(NoticeRestOver, fmt.Sprintf("Rest over: %s, set %d/%d", ex.Name, c.session.ProgressFor(ex.ID).CurrentSet, ex.TotalSets))
	} else {
		c.notify(NoticeRestOver, "Rest over")
	}
	c.snapshot()
}

func (c *Controller) indexOf(exerciseID string) int {
	for i, ex := range c.sequence {
		if ex.ID == exerciseID {
			return i
		}
	}
	return -1
}

// nextIncomplete returns the first incomplete exercise after index from,
// wrapping around to the start of the plan. Empty when all are complete.
func (c *Controller) nextIncomplete(from int) string {
	n := len(c.sequence)
	for step := 1; step <= n; step++ {
		ex := c.sequence[((from+step)%n+n)%n]
		if !c.session.IsCompleted(ex.ID) {
			return ex.ID
		}
	}
	return ""
}

func (c *Controller) allComplete() bool {
	for _, ex := range c.sequence {
		if !c.session.IsCompleted(ex.ID) {
			return false
		}
	}
	return true
}

func (c *Controller) buildSummary(now time.Time) Summary {
	s := c.session
	summary := Summary{
		SessionID:           s.SessionID,
		PlanID:              s.PlanID,
		TotalElapsedSeconds: s.TotalElapsedSeconds,
		FinishedAt:          now,
	}
	for _, ex := range c.sequence {
		if p, ok := s.Progress[ex.ID]; ok {
			summary.SetsCompleted += p.SetsDone
		}
		if s.IsCompleted(ex.ID) {
			summary.CompletedExercises = append(summary.CompletedExercises, ex)
		}
	}
	return summary
}

func (c *Controller) snapshot() {
	if c.session.Active() {
		c.guard.Save(c.session)
	}
}

func (c *Controller) requireActive() bool {
	if !c.session.Active() {
		c.violation("No workout in progress")
		return false
	}
	return true
}

func (c *Controller) notify(kind NoticeKind, msg string) {
	c.notices.Publish(Notice{Kind: kind, Message: msg})
}

func (c *Controller) violation(reason string) {
	log.Info(log.CatSession, "action rejected", "reason", reason)
	c.notify(NoticeViolation, reason)
}

func (c *Controller) warn(msg string, err error) {
	log.ErrorErr(log.CatSession, msg, err)
	c.notify(NoticeWarning, fmt.Sprintf("%s: %v", msg, err))
}
