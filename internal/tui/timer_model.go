package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/wrokout/internal/audio"
	"github.com/balkashynov/wrokout/internal/timer"
)

// timerTickMsg is sent every second to advance the utility timer
type timerTickMsg struct{}

// TimerModel is the standalone utility timer screen
type TimerModel struct {
	surface  *timer.Surface
	cues     audio.Player
	interval time.Duration

	keys TimerKeyMap
	help help.Model
	bar  progress.Model

	width  int
	height int
	paused bool
	flash  string // last transition, e.g. "Round 3"
}

// NewTimerModel creates a utility timer for cfg
func NewTimerModel(cfg timer.Config, cues audio.Player, interval time.Duration) (TimerModel, error) {
	surface := timer.NewSurface("utility")
	if err := surface.Set(cfg); err != nil {
		return TimerModel{}, err
	}
	if cues == nil {
		cues = audio.NoopPlayer{}
	}
	if interval <= 0 {
		interval = time.Second
	}
	return TimerModel{
		surface:  surface,
		cues:     cues,
		interval: interval,
		keys:     DefaultTimerKeyMap(),
		help:     help.New(),
		bar:      progress.New(progress.WithGradient(ColorAccentMain, ColorAccentBright), progress.WithoutPercentage()),
	}, nil
}

func (m TimerModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return timerTickMsg{}
	})
}

// Init starts the tick
func (m TimerModel) Init() tea.Cmd {
	return m.tick()
}

// Update handles messages
func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if !m.paused {
			m.handleEvents(m.surface.Tick())
		}
		// The tick stays armed after expiry so a reset can restart the timer
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.bar.Width = max(10, min(50, msg.Width-10))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			if !m.surface.State().Done() {
				m.paused = !m.paused
			}
		case key.Matches(msg, m.keys.Reset):
			m.surface.Reset()
			m.paused = false
			m.flash = ""
		case key.Matches(msg, m.keys.AddRep):
			m.surface.AddRep()
		}
	}

	return m, nil
}

// handleEvents forwards timer transitions to the cue player
func (m *TimerModel) handleEvents(events []timer.Event) {
	for _, e := range events {
		switch e.Kind {
		case timer.EventWarning:
			m.cues.Play(audio.CueWarning)
		case timer.EventRoundBoundary:
			if !e.Final {
				m.cues.Play(audio.CueRoundBoundary)
			}
			m.flash = fmt.Sprintf("Round %d done", e.Round)
		case timer.EventPhaseSwitch:
			m.flash = fmt.Sprintf("%s · round %d", strings.ToUpper(string(e.Phase)), e.Round)
		case timer.EventExpired:
			m.cues.Play(audio.CueExpired)
			if e.Final {
				m.flash = "Time!"
			}
		}
	}
}

// View renders the utility timer
func (m TimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	st := m.surface.State()
	cfg := st.Config
	centered := lipgloss.NewStyle().Align(lipgloss.Center).Width(m.width)
	var components []string

	// Header
	components = append(components, centered.
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Render(strings.ToUpper(cfg.String())))

	// Mode-specific status line
	var status string
	switch cfg.Mode {
	case timer.ModeEMOM:
		status = fmt.Sprintf("Round %d/%d", min(st.Round, cfg.TotalRounds), cfg.TotalRounds)
	case timer.ModeTabata:
		status = fmt.Sprintf("%s · round %d/%d", strings.ToUpper(string(st.Phase)), st.Round, cfg.TotalRounds)
	case timer.ModeAMRAP:
		status = fmt.Sprintf("Reps: %d", st.Reps)
	}
	if status != "" {
		components = append(components, centered.Foreground(lipgloss.Color(ColorPrimaryText)).Bold(true).Render(status))
	}

	// Big clock: remaining for countdown modes and EMOM intervals, elapsed otherwise
	color := ColorAccentBright
	switch {
	case st.Done():
		color = ColorSuccess
	case m.paused:
		color = ColorWarning
	case cfg.Mode == timer.ModeTabata && st.Phase == timer.PhaseRest:
		color = ColorRest
	case cfg.CountsDown() && st.Remaining <= 3:
		color = ColorError
	}
	shown := st.Elapsed
	if cfg.CountsDown() || cfg.Mode == timer.ModeEMOM {
		shown = st.Remaining
	}
	components = append(components, centerLines(renderBigClock(shown, color), m.width))

	if cfg.Mode != timer.ModeStopwatch {
		components = append(components, centered.Render(m.bar.ViewAs(st.Progress())))
	}

	info := m.flash
	switch {
	case st.Done():
		info = "Done. r to restart, q to quit"
	case m.paused:
		info = "Paused"
	}
	if info != "" {
		components = append(components, centered.Foreground(lipgloss.Color(ColorSecondaryText)).Italic(true).Render(info))
	}

	helpBar := centered.Render(m.help.View(m.keys))
	content := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height-lipgloss.Height(helpBar)-1).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(components, "\n\n"))

	return lipgloss.JoinVertical(lipgloss.Left, content, helpBar)
}

// RunTimerTUI runs the utility timer until the user quits
func RunTimerTUI(cfg timer.Config, cues audio.Player, interval time.Duration) error {
	model, err := NewTimerModel(cfg, cues, interval)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
