// Package snapshot is the persistence guard: it writes the live session to a
// single durable slot after every change and offers it back on the next start
// when it was saved today by the same owner.
package snapshot

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/balkashynov/wrokout/internal/log"
	"github.com/balkashynov/wrokout/internal/workout"
)

// DefaultKey is the slot the guard writes to.
const DefaultKey = "wrokout.active_session"

const recordVersion = 1

// Record is the serialized form stored in the slot.
type Record struct {
	Version int             `json:"version"`
	OwnerID string          `json:"owner_id"`
	SavedAt time.Time       `json:"saved_at"`
	Session workout.Session `json:"session"`
}

// Guard owns the snapshot slot. It implements workout.Snapshotter.
type Guard struct {
	store   Store
	key     string
	ownerID string
	now     func() time.Time
}

// Option configures a Guard.
type Option func(*Guard)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(g *Guard) {
		if key != "" {
			g.key = key
		}
	}
}

// WithClock injects the time source used for savedAt and the same-day check.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGuard creates a guard for ownerID over store.
func NewGuard(store Store, ownerID string, opts ...Option) *Guard {
	g := &Guard{
		store:   store,
		key:     DefaultKey,
		ownerID: ownerID,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Save writes s to the slot. Failures are logged and otherwise ignored.
func (g *Guard) Save(s *workout.Session) {
	if s == nil {
		return
	}
	data, err := json.Marshal(Record{
		Version: recordVersion,
		OwnerID: s.OwnerID,
		SavedAt: g.now(),
		Session: *s,
	})
	if err != nil {
		log.ErrorErr(log.CatSnapshot, "failed to encode snapshot", err, "session", s.SessionID)
		return
	}
	if err := g.store.Write(g.key, data); err != nil {
		log.ErrorErr(log.CatSnapshot, "failed to write snapshot", err, "session", s.SessionID)
	}
}

// Clear deletes the slot.
func (g *Guard) Clear() {
	if err := g.store.Delete(g.key); err != nil {
		log.ErrorErr(log.CatSnapshot, "failed to delete snapshot", err)
	}
}

// Peek returns the stored record if it is eligible for recovery. Ineligible
// records are deleted so they are never offered again.
func (g *Guard) Peek() (*Record, bool) {
	data, err := g.store.Read(g.key)
	if errors.Is(err, ErrNotFound) {
		return nil, false
	}
	if err != nil {
		log.ErrorErr(log.CatSnapshot, "failed to read snapshot", err)
		return nil, false
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		g.discard("corrupt", "error", err)
		return nil, false
	}

	switch {
	case rec.Version != recordVersion:
		g.discard("unknown version", "version", rec.Version)
	case rec.OwnerID != g.ownerID || rec.Session.OwnerID != g.ownerID:
		g.discard("owner mismatch", "owner", rec.OwnerID)
	case !sameDay(rec.SavedAt, g.now()):
		g.discard("stale", "saved_at", rec.SavedAt.Format(time.RFC3339))
	case !rec.Session.Active() || rec.Session.SessionID == "" || rec.Session.PlanID == "":
		g.discard("not in progress", "phase", rec.Session.Phase)
	default:
		return &rec, true
	}
	return nil, false
}

// Recover returns a copy of the stored session if it is eligible for recovery.
func (g *Guard) Recover() (*workout.Session, bool) {
	rec, ok := g.Peek()
	if !ok {
		return nil, false
	}
	log.Info(log.CatSnapshot, "snapshot recovered", "session", rec.Session.SessionID, "saved_at", rec.SavedAt.Format(time.RFC3339))
	return rec.Session.Clone(), true
}

func (g *Guard) discard(reason string, fields ...any) {
	log.Info(log.CatSnapshot, "discarding snapshot", append([]any{"reason", reason}, fields...)...)
	g.Clear()
}

// sameDay compares calendar dates in local time.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
