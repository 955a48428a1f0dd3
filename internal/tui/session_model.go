package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/wrokout/internal/log"
	"github.com/balkashynov/wrokout/internal/pubsub"
	"github.com/balkashynov/wrokout/internal/workout"
)

const noticeTicks = 5

// sessionTickMsg is the one-second session tick
type sessionTickMsg struct{}

// animationTickMsg is sent for faster animations
type animationTickMsg struct{}

// SessionResult reports how the workout screen was closed
type SessionResult struct {
	Summary   *workout.Summary
	Abandoned bool
	Detached  bool // quit with the session still recoverable
}

// SessionModel is the live workout screen. Every controller call happens in
// Update, so ticks and key presses never overlap.
type SessionModel struct {
	ctx      context.Context
	ctrl     *workout.Controller
	notices  <-chan workout.Notice
	interval time.Duration
	planName string

	keys    SessionKeyMap
	help    help.Model
	restBar progress.Model

	width     int
	height    int
	cursor    int
	animation int

	notice    workout.Notice
	noticeTTL int

	confirmAbandon bool
	result         SessionResult
	done           bool
}

// NewSessionModel creates the workout screen for a started controller
func NewSessionModel(ctx context.Context, ctrl *workout.Controller, notices *pubsub.Feed[workout.Notice], planName string, interval time.Duration) SessionModel {
	if interval <= 0 {
		interval = time.Second
	}
	m := SessionModel{
		ctx:      ctx,
		ctrl:     ctrl,
		notices:  notices.Subscribe(ctx),
		interval: interval,
		planName: planName,
		keys:     DefaultSessionKeyMap(),
		help:     help.New(),
		restBar:  progress.New(progress.WithGradient(ColorRest, ColorAccentBright), progress.WithoutPercentage()),
	}
	m.syncCursor()
	return m
}

func (m SessionModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return sessionTickMsg{}
	})
}

func animate() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return animationTickMsg{}
	})
}

// Init starts the session tick, the animation tick and the notice listener
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(m.tick(), animate(), pubsub.Listen(m.notices))
}

// Update handles messages
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionTickMsg:
		if m.done {
			return m, nil
		}
		m.ctrl.Tick()
		if m.noticeTTL > 0 {
			m.noticeTTL--
		}
		if m.checkEnd() {
			return m, tea.Quit
		}
		return m, m.tick()

	case animationTickMsg:
		m.animation = (m.animation + 1) % 4
		if m.done {
			return m, nil
		}
		return m, animate()

	case workout.Notice:
		m.notice = msg
		m.noticeTTL = noticeTicks
		return m, pubsub.Listen(m.notices)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.restBar.Width = max(10, min(40, msg.Width/2-8))
		return m, nil

	case tea.KeyMsg:
		if m.confirmAbandon {
			return m.handleConfirmKeys(msg)
		}
		return m.handleKeys(msg)
	}

	return m, nil
}

func (m SessionModel) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	seq := m.ctrl.Sequence()

	switch {
	case key.Matches(msg, m.keys.ForceQuit), key.Matches(msg, m.keys.Detach):
		m.result.Detached = true
		m.done = true
		log.Info(log.CatUI, "detached from session")
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(seq)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if m.cursor < len(seq) {
			m.ctrl.SelectExercise(seq[m.cursor].ID)
		}

	case key.Matches(msg, m.keys.CompleteSet):
		m.ctrl.CompleteSet(m.ctx)

	case key.Matches(msg, m.keys.CompleteExercise):
		m.ctrl.CompleteExercise(m.ctx)

	case key.Matches(msg, m.keys.Pause):
		m.ctrl.TogglePause()

	case key.Matches(msg, m.keys.SkipRest):
		m.ctrl.SkipRest()

	case key.Matches(msg, m.keys.Finish):
		m.ctrl.Finish(m.ctx)

	case key.Matches(msg, m.keys.Abandon):
		if m.ctrl.HasProgress() {
			m.confirmAbandon = true
			return m, nil
		}
		m.ctrl.Abandon(m.ctx, false)

	default:
		return m, nil
	}

	m.syncCursor()
	if m.checkEnd() {
		return m, tea.Quit
	}
	return m, nil
}

func (m SessionModel) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ConfirmDiscard):
		m.ctrl.Abandon(m.ctx, false)
	case key.Matches(msg, m.keys.ConfirmSave):
		m.ctrl.Abandon(m.ctx, true)
	case key.Matches(msg, m.keys.Cancel):
		m.confirmAbandon = false
		return m, nil
	case key.Matches(msg, m.keys.ForceQuit):
		m.result.Detached = true
		m.done = true
		return m, tea.Quit
	default:
		return m, nil
	}

	m.confirmAbandon = false
	if m.checkEnd() {
		return m, tea.Quit
	}
	return m, nil
}

// checkEnd records the result once the session reaches a terminal phase
func (m *SessionModel) checkEnd() bool {
	switch m.ctrl.Phase() {
	case workout.PhaseFinished:
		summary := m.ctrl.Finish(m.ctx)
		m.result.Summary = &summary
	case workout.PhaseAbandoned:
		m.result.Abandoned = true
	default:
		return false
	}
	m.done = true
	return true
}

// syncCursor moves the list cursor onto the current exercise
func (m *SessionModel) syncCursor() {
	cur, ok := m.ctrl.Current()
	if !ok {
		return
	}
	for i, e := range m.ctrl.Sequence() {
		if e.ID == cur.ID {
			m.cursor = i
			return
		}
	}
}

// Result returns how the screen was closed
func (m SessionModel) Result() SessionResult {
	return m.result
}

// View renders the workout TUI
func (m SessionModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpBar := lipgloss.NewStyle().Align(lipgloss.Center).Width(m.width).Render(m.help.View(m.keys))
	noticeBar := m.renderNotice()
	contentHeight := m.height - lipgloss.Height(helpBar) - 2

	if m.confirmAbandon {
		modal := m.renderConfirm()
		return lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, modal),
			noticeBar,
			helpBar,
		)
	}

	// Narrow view: just the clock panel
	if m.width < 90 {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.renderMainPanel(m.width, contentHeight),
			noticeBar,
			helpBar,
		)
	}

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth - 2 // -2 for gap

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderMainPanel(leftWidth, contentHeight),
		"  ",
		m.renderExercisePanel(rightWidth, contentHeight),
	)

	return lipgloss.JoinVertical(lipgloss.Left, content, noticeBar, helpBar)
}

// renderMainPanel renders the clock side of the screen
func (m SessionModel) renderMainPanel(width, height int) string {
	s := m.ctrl.Session()
	resting := m.ctrl.Rest().Resting()
	var components []string

	// Animated header
	centered := lipgloss.NewStyle().Align(lipgloss.Center).Width(width)
	headerColor := ColorAccentBright
	var header string
	switch {
	case resting:
		glyphs := []string{"◐", "◓", "◑", "◒"}
		header = fmt.Sprintf("%s  RESTING  %s", glyphs[m.animation], glyphs[m.animation])
		headerColor = ColorRest
	case s.IsPaused:
		header = "⏸  PAUSED  ⏸"
		headerColor = ColorWarning
	default:
		glyphs := []string{"⏱", "⏲", "⏱", "⏲"}
		header = fmt.Sprintf("%s  WORKOUT  %s", glyphs[m.animation], glyphs[m.animation])
	}
	components = append(components, centered.Foreground(lipgloss.Color(headerColor)).Bold(true).Render(header))

	// Plan name
	components = append(components, centered.Foreground(lipgloss.Color(ColorAccentMain)).Bold(true).Render(m.planName))

	// Current exercise
	titleStyle := centered.Foreground(lipgloss.Color(ColorPrimaryText)).Bold(true)
	detailStyle := centered.Foreground(lipgloss.Color(ColorSecondaryText))
	if cur, ok := m.ctrl.Current(); ok {
		p := s.Progress[cur.ID]
		set := 1
		if p != nil {
			set = p.CurrentSet
		}
		title := cur.Name
		if len(title) > width-4 && width > 7 {
			title = title[:width-7] + "..."
		}
		components = append(components,
			titleStyle.Render(title)+"\n"+
				detailStyle.Render(fmt.Sprintf("Set %d/%d · %s", set, cur.TotalSets, describeLoad(cur))))
	} else {
		components = append(components, titleStyle.Render("All exercises done"))
	}

	// Big clock: rest countdown while resting, session time otherwise
	var clock string
	switch {
	case resting:
		clock = renderBigClock(m.ctrl.Rest().State().Remaining, ColorRest)
	case s.IsPaused:
		clock = renderBigClock(s.TotalElapsedSeconds, ColorWarning)
	default:
		clock = renderBigClock(s.TotalElapsedSeconds, ColorAccentBright)
	}
	components = append(components, centerLines(clock, width))

	infoStyle := centered.Foreground(lipgloss.Color(ColorSecondaryText)).Italic(true)
	if resting {
		components = append(components, centered.Render(m.restBar.ViewAs(m.ctrl.Rest().State().Progress())))
		components = append(components, infoStyle.Render("n to skip rest"))
	} else if cur, ok := m.ctrl.Current(); ok {
		elapsed := 0
		if p := s.Progress[cur.ID]; p != nil {
			elapsed = p.ElapsedSeconds
		}
		components = append(components, infoStyle.Render("Exercise time "+clockText(elapsed)))
	}

	components = append(components, infoStyle.Render(fmt.Sprintf("Started at %s", s.StartedAt.Local().Format("15:04:05"))))

	panelStyle := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return panelStyle.Render(strings.Join(components, "\n\n"))
}

// renderExercisePanel renders the plan's exercises in plan order
func (m SessionModel) renderExercisePanel(width, height int) string {
	s := m.ctrl.Session()
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Width(width - 4).
		Padding(0, 1)
	b.WriteString(titleStyle.Render(fmt.Sprintf("Exercises · %d/%d done", len(s.CompletedExerciseIDs), len(m.ctrl.Sequence()))))
	b.WriteString("\n\n")

	for i, e := range m.ctrl.Sequence() {
		icon := "○"
		color := ColorSecondaryText
		switch {
		case s.IsCompleted(e.ID):
			icon = "✓"
			color = ColorSuccess
		case e.ID == s.CurrentExerciseID:
			icon = "▶"
			color = ColorAccentBright
		}

		pointer := "  "
		if i == m.cursor {
			pointer = "› "
		}

		elapsed := 0
		if p := s.Progress[e.ID]; p != nil {
			elapsed = p.ElapsedSeconds
		}

		line := fmt.Sprintf("%s%s %-24s %-18s %s", pointer, icon, truncate(e.Name, 24), describeLoad(e), clockText(elapsed))
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		if i == m.cursor {
			style = style.Bold(true)
		}
		if s.IsCompleted(e.ID) {
			style = style.Foreground(lipgloss.Color(ColorDisabledText)).Strikethrough(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(width).Height(height).Padding(1, 0).Render(b.String())
}

// renderNotice renders the latest status event
func (m SessionModel) renderNotice() string {
	style := lipgloss.NewStyle().Align(lipgloss.Center).Width(m.width)
	if m.noticeTTL == 0 || m.notice.Message == "" {
		return style.Render("")
	}
	color := ColorSuccess
	icon := "✓"
	if m.notice.IsProblem() {
		color = ColorError
		icon = "!"
	}
	return style.Foreground(lipgloss.Color(color)).Bold(true).Render(icon + " " + m.notice.Message)
}

// renderConfirm renders the abandon confirmation box
func (m SessionModel) renderConfirm() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWarning)).Render("Abandon workout?"),
		"",
		lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render("You have completed work in this session."),
		"",
		"y discard · s save & finish · esc keep training",
	)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorWarning)).
		Padding(1, 3).
		Render(body)
}

// RunSessionTUI runs the workout screen until the session ends or the user quits
func RunSessionTUI(ctx context.Context, ctrl *workout.Controller, notices *pubsub.Feed[workout.Notice], planName string, interval time.Duration) (SessionResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewSessionModel(ctx, ctrl, notices, planName, interval)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	finalModel, err := p.Run()
	if err != nil {
		return SessionResult{}, err
	}

	m, ok := finalModel.(SessionModel)
	if !ok {
		return SessionResult{}, fmt.Errorf("unexpected model type %T", finalModel)
	}
	return m.Result(), nil
}
