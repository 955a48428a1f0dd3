// Package audio plays short cues for timer and session transitions.
// Playback is queued to a single background worker so callers on the tick
// loop never wait on a sound, and every playback failure is logged and dropped.
package audio

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/balkashynov/wrokout/internal/log"
)

// Cue identifies a sound.
type Cue string

const (
	CueWarning          Cue = "warning"
	CueExpired          Cue = "expired"
	CueSetComplete      Cue = "set_complete"
	CueExerciseComplete Cue = "exercise_complete"
	CueRoundBoundary    Cue = "round_boundary"
)

// AllCues lists every cue the engine can raise.
var AllCues = []Cue{CueWarning, CueExpired, CueSetComplete, CueExerciseComplete, CueRoundBoundary}

// Player is the fire-and-forget contract the engine depends on.
type Player interface {
	Play(cue Cue)
}

// NoopPlayer discards every cue.
type NoopPlayer struct{}

// Play implements Player.
func (NoopPlayer) Play(Cue) {}

// Backend produces the actual sound for a cue. It may block; the Service runs it
// off the caller's goroutine.
type Backend interface {
	Play(ctx context.Context, cue Cue) error
}

const (
	defaultQueueSize   = 16
	defaultPlayTimeout = 5 * time.Second
)

// Service is the Player used in production.
type Service struct {
	backend Backend
	enabled atomic.Bool
	cues    map[Cue]bool
	timeout time.Duration

	queue     chan Cue
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// Option configures a Service.
type Option func(*Service)

// WithEnabledCues restricts playback to cues mapped to true. Cues missing from
// the map stay enabled.
func WithEnabledCues(cues map[string]bool) Option {
	return func(s *Service) {
		for name, on := range cues {
			s.cues[Cue(name)] = on
		}
	}
}

// WithQueueSize sets how many cues may wait for the worker before new ones are dropped.
func WithQueueSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.queue = make(chan Cue, n)
		}
	}
}

// WithPlayTimeout bounds a single backend call.
func WithPlayTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewService starts a playback worker for backend. A nil backend plays nothing.
func NewService(backend Backend, enabled bool, opts ...Option) *Service {
	if backend == nil {
		backend = NoopBackend{}
	}
	s := &Service{
		backend: backend,
		cues:    make(map[Cue]bool),
		timeout: defaultPlayTimeout,
		queue:   make(chan Cue, defaultQueueSize),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.enabled.Store(enabled)

	s.wg.Add(1)
	go s.loop()
	return s
}

// SetEnabled toggles playback globally.
func (s *Service) SetEnabled(enabled bool) {
	s.enabled.Store(enabled)
}

// Enabled reports the global flag.
func (s *Service) Enabled() bool {
	return s.enabled.Load()
}

// Play queues cue for playback and returns immediately.
func (s *Service) Play(cue Cue) {
	if !s.enabled.Load() {
		return
	}
	if on, ok := s.cues[cue]; ok && !on {
		return
	}
	select {
	case <-s.done:
		return
	default:
	}
	select {
	case s.queue <- cue:
	default:
		log.Warn(log.CatAudio, "cue dropped, queue full", "cue", cue)
	}
}

// Close stops the worker after the cue it is currently playing.
func (s *Service) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
}

func (s *Service) loop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case cue := <-s.queue:
			s.play(cue)
		}
	}
}

func (s *Service) play(cue Cue) {
	defer func() {
		if r := recover(); r != nil {
			log.Error(log.CatAudio, "cue backend panicked", "cue", cue, "panic", fmt.Sprint(r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.backend.Play(ctx, cue); err != nil {
		log.ErrorErr(log.CatAudio, "cue playback failed", err, "cue", cue)
		return
	}
	log.Debug(log.CatAudio, "cue played", "cue", cue)
}
