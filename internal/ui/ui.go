package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/DaanHessen/budgethero/internal/catalog"
	"github.com/DaanHessen/budgethero/internal/engine"
	"github.com/DaanHessen/budgethero/internal/game"
	"github.com/DaanHessen/budgethero/internal/text"
)

const (
	viewScenario     = "scenario"
	viewCustom       = "custom"
	viewThinking     = "thinking"
	viewOutcome      = "outcome"
	viewLessons      = "lessons"
	viewLesson       = "lesson"
	viewLessonDone   = "lesson_done"
	viewLeaderboard  = "leaderboard"
	viewHelp         = "help"
	viewConfirmReset = "confirm_reset"
)

const sidebarWidth = 30

type thinkDoneMsg struct{ play int }

type revealMsg struct {
	play int
	part game.RevealPart
}

type model struct {
	ctx      context.Context
	session  *game.Session
	version  string
	theme    string
	styles   styles
	renderer text.Renderer
	// fixed renderers are kept across resizes
	fixedRenderer bool

	width  int
	height int
	view   string
	status string

	// current play
	play    int
	outcome engine.Outcome
	shown   map[game.RevealPart]bool
	steps   []game.RevealStep

	spinner spinner.Model
	input   textinput.Model

	lessons      []catalog.Lesson
	lesson       catalog.Lesson
	lessonResult game.LessonResult
	board        []game.LeaderboardEntry
}

func newModel(ctx context.Context, s *game.Session, theme, version string, r text.Renderer) model {
	ti := textinput.New()
	ti.Placeholder = "Describe what you would do..."
	ti.CharLimit = 200
	ti.Width = 60

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	if _, ok := palettes[theme]; !ok {
		theme = defaultTheme
	}
	m := model{
		ctx:           ctx,
		session:       s,
		version:       version,
		theme:         theme,
		styles:        stylesFor(paletteFor(theme)),
		renderer:      r,
		fixedRenderer: r != nil,
		view:          viewScenario,
		shown:         map[game.RevealPart]bool{},
		spinner:       sp,
		input:         ti,
	}
	if m.renderer == nil {
		m.resizeRenderer(100)
	}
	m.spinner.Style = m.styles.accent
	return m
}

func (m *model) resizeRenderer(width int) {
	if m.fixedRenderer {
		return
	}
	g, err := text.NewGlamour(width - sidebarWidth - 4)
	if err != nil {
		m.renderer = text.Plain()
		return
	}
	m.renderer = text.WithFallback(g, text.Plain())
}

func (m model) render(md string) string {
	out, err := m.renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// tea.Model implementation ---------------------------------------------------
func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeRenderer(msg.Width)
		return m, nil
	case spinner.TickMsg:
		if m.view != viewThinking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case thinkDoneMsg:
		if msg.play != m.play || m.view != viewThinking {
			return m, nil
		}
		return m, m.startReveal()
	case revealMsg:
		if msg.play == m.play {
			m.shown[msg.part] = true
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}
	if m.view == viewCustom {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	switch m.view {
	case viewCustom:
		switch msg.Type {
		case tea.KeyEsc:
			m.input.Blur()
			m.input.Reset()
			m.view = viewScenario
			return m, nil
		case tea.KeyEnter:
			choice := strings.TrimSpace(m.input.Value())
			if choice == "" {
				return m, nil
			}
			m.input.Blur()
			m.input.Reset()
			o, err := m.session.ChooseText(m.ctx, choice)
			return m.played(o, err)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	case viewThinking:
		return m, nil
	case viewOutcome:
		switch k {
		case "q":
			return m, tea.Quit
		case "enter", " ", "n":
			if !m.revealComplete() {
				for _, s := range m.steps {
					m.shown[s.Part] = true
				}
				return m, nil
			}
			if _, err := m.session.Next(m.ctx); err != nil {
				m.status = err.Error()
			}
			m.view = viewScenario
		}
		return m, nil
	case viewConfirmReset:
		switch k {
		case "y":
			m.session.Reset(m.ctx)
			m.status = "Progress reset."
		}
		m.view = viewScenario
		return m, nil
	case viewLessons:
		if k == "esc" || k == "q" {
			m.view = viewScenario
			return m, nil
		}
		if i, ok := digitIndex(k); ok && i < len(m.lessons) {
			m.lesson = m.lessons[i]
			m.view = viewLesson
		}
		return m, nil
	case viewLesson:
		if k == "esc" || k == "q" {
			m.view = viewLessons
			return m, nil
		}
		if i, ok := digitIndex(k); ok && i < len(m.lesson.Quiz.Options) {
			res, err := m.session.CompleteLesson(m.ctx, m.lesson.ID, i)
			if err != nil {
				m.status = err.Error()
				m.view = viewLessons
				return m, nil
			}
			m.lessonResult = res
			m.view = viewLessonDone
		}
		return m, nil
	case viewLessonDone:
		m.view = viewLessons
		return m, nil
	case viewLeaderboard, viewHelp:
		m.view = viewScenario
		return m, nil
	}
	return m.handleScenarioKey(k)
}

func (m model) handleScenarioKey(k string) (tea.Model, tea.Cmd) {
	sc, err := m.session.Scenario()
	if err != nil {
		m.status = err.Error()
		if k == "q" {
			return m, tea.Quit
		}
		return m, nil
	}
	if len(k) == 1 {
		if i := int(k[0] - 'a'); k[0] >= 'a' && i < len(sc.Choices) {
			o, err := m.session.Choose(m.ctx, sc.Choices[i].ID)
			return m.played(o, err)
		}
	}
	m.status = ""
	switch k {
	case "q":
		return m, tea.Quit
	case "/":
		m.view = viewCustom
		return m, m.input.Focus()
	case "l":
		m.lessons = m.session.Lessons()
		m.view = viewLessons
	case "s":
		board, err := m.session.Leaderboard(m.ctx, game.LeaderboardSize)
		if err != nil {
			m.status = "Leaderboard unavailable: " + err.Error()
			return m, nil
		}
		m.board = board
		m.view = viewLeaderboard
	case "r":
		m.view = viewConfirmReset
	case "p":
		m.session.SetPremium(m.ctx, !m.session.State().Premium)
	case "t":
		m.theme = nextThemeName(m.theme, 1)
		m.styles = stylesFor(paletteFor(m.theme))
		m.spinner.Style = m.styles.accent
	case "?", "h":
		m.view = viewHelp
	}
	return m, nil
}

// played moves to the thinking view; the reveal starts after ThinkDelay.
func (m model) played(o engine.Outcome, err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.status = err.Error()
		m.view = viewScenario
		return m, nil
	}
	m.play++
	m.outcome = o
	m.steps = game.Reveal(o)
	m.shown = map[game.RevealPart]bool{}
	m.view = viewThinking
	play := m.play
	return m, tea.Batch(m.spinner.Tick, tea.Tick(game.ThinkDelay, func(time.Time) tea.Msg {
		return thinkDoneMsg{play: play}
	}))
}

func (m *model) startReveal() tea.Cmd {
	m.view = viewOutcome
	cmds := make([]tea.Cmd, 0, len(m.steps))
	for _, s := range m.steps {
		s, play := s, m.play
		cmds = append(cmds, tea.Tick(s.At, func(time.Time) tea.Msg {
			return revealMsg{play: play, part: s.Part}
		}))
	}
	return tea.Batch(cmds...)
}

func (m model) revealComplete() bool {
	for _, s := range m.steps {
		if !m.shown[s.Part] {
			return false
		}
	}
	return true
}

func digitIndex(k string) (int, bool) {
	if len(k) != 1 || k[0] < '1' || k[0] > '9' {
		return 0, false
	}
	return int(k[0] - '1'), true
}

// Layout rendering -----------------------------------------------------------
func (m model) View() string {
	w := m.width
	if w <= 0 {
		w = 100
	}
	mainWidth := w - sidebarWidth - 1

	main := lipgloss.NewStyle().Width(mainWidth).Render(m.buildMain())
	side := m.styles.panel.Width(sidebarWidth - 2).Render(m.buildSidebar())
	body := lipgloss.JoinHorizontal(lipgloss.Top, main, side)
	return lipgloss.JoinVertical(lipgloss.Left, m.renderTopBar(w), body, m.renderBottomBar())
}

func (m model) buildMain() string {
	switch m.view {
	case viewThinking:
		return m.spinner.View() + " " + m.styles.muted.Render("Weighing your decision...")
	case viewOutcome:
		out := m.render(text.Outcome(m.outcome, m.shown))
		if m.revealComplete() {
			out += "\n\n" + m.styles.muted.Render("Enter for the next scenario")
		}
		return out
	case viewLessons:
		return m.render(text.LessonList(m.lessons))
	case viewLesson:
		return m.render(text.Lesson(m.lesson))
	case viewLessonDone:
		return m.render(text.LessonResult(m.lessonResult))
	case viewLeaderboard:
		return m.renderLeaderboard()
	case viewHelp:
		return m.renderHelp()
	case viewConfirmReset:
		return m.styles.accent.Render("Reset all progress back to "+engine.KSh(game.StartingMoney)+"?") + "\n\n" +
			m.styles.muted.Render("y confirm  any other key cancels")
	}
	sc, err := m.session.Scenario()
	if err != nil {
		return m.styles.loss.Render("No scenarios available: " + err.Error())
	}
	out := m.render(text.Scenario(sc))
	if m.view == viewCustom {
		out += "\n\n" + m.input.View()
	}
	return out
}

func (m model) buildSidebar() string {
	p := m.session.State()
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Savings") + "\n")
	b.WriteString(engine.KSh(p.MoneySaved) + "\n")
	b.WriteString(m.goalBar(sidebarWidth-6, game.GoalProgress(p.MoneySaved)) + "\n")
	b.WriteString(m.styles.muted.Render("Goal "+engine.KSh(game.GoalMoney)) + "\n\n")
	b.WriteString(m.styles.title.Render("Level") + "\n" + string(p.Level()) + "\n\n")
	b.WriteString(m.styles.title.Render(fmt.Sprintf("Badges (%d)", len(p.Badges))) + "\n")
	if len(p.Badges) == 0 {
		b.WriteString(m.styles.muted.Render("(none yet)") + "\n")
	}
	for _, badge := range p.Badges {
		b.WriteString("• " + badge + "\n")
	}
	if p.Premium {
		b.WriteString("\n" + m.styles.accent.Render("★ Premium"))
	}
	return b.String()
}

func (m model) goalBar(width int, frac float64) string {
	if width < 1 {
		width = 1
	}
	filled := int(frac * float64(width))
	return m.styles.fill.Render(strings.Repeat("█", filled)) + m.styles.empty.Render(strings.Repeat("░", width-filled))
}

func (m model) renderTopBar(w int) string {
	p := m.session.State()
	left := "BUDGET HERO • " + string(p.Level())
	right := engine.KSh(p.MoneySaved)
	if m.session.Offline() {
		right += "  [offline]"
	}
	gap := w - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return m.styles.title.Render(left + strings.Repeat(" ", gap) + right)
}

func (m model) renderBottomBar() string {
	keys := "[a-d] choose  [/] own answer  [l] lessons  [s] leaderboard  [r] reset  [t] theme  [?] help  [q] quit"
	switch m.view {
	case viewCustom:
		keys = "[Enter] submit  [Esc] cancel"
	case viewLessons:
		keys = "[1-9] open lesson  [Esc] back"
	case viewLesson:
		keys = "[1-9] answer  [Esc] back"
	}
	line := keys
	if m.status != "" {
		line += "\n" + m.status
	}
	return m.styles.muted.Render(line)
}

func (m model) renderLeaderboard() string {
	me := m.session.State().UserID
	rows := make([][]string, 0, len(m.board))
	for i, e := range m.board {
		name := shortID(e.UserID)
		if e.UserID == me {
			name += " (you)"
		}
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), name, engine.KSh(e.MoneySaved), fmt.Sprintf("%d", e.Badges)})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(m.styles.border).
		Headers("#", "Player", "Saved", "Badges").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return m.styles.header
			}
			return m.styles.cell
		})
	out := m.styles.title.Render("Leaderboard") + "\n" + t.Render()
	if len(rows) == 0 {
		out += "\n" + m.styles.muted.Render("No players yet.")
	}
	return out + "\n\n" + m.styles.muted.Render("any key to return")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (m model) renderHelp() string {
	return fmt.Sprintf("ABOUT / RULES\n\nBudget Hero %s\n\nGrow your savings from %s to %s by making everyday money decisions."+
		" Each scenario offers lettered choices, or press / to describe your own. Outcomes depend on your choice and some luck;"+
		" good decisions earn badges. Lessons pay a small bonus once per day.\n\nControls: a-d choose | / own answer | l lessons |"+
		" s leaderboard | r reset | p premium | t theme | q quit.\n\nAny key returns.",
		m.version, engine.KSh(game.StartingMoney), engine.KSh(game.GoalMoney))
}
