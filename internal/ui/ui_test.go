package ui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaanHessen/budgethero/internal/catalog"
	"github.com/DaanHessen/budgethero/internal/engine"
	"github.com/DaanHessen/budgethero/internal/game"
	"github.com/DaanHessen/budgethero/internal/store"
	"github.com/DaanHessen/budgethero/internal/text"
)

func newTestModel(t *testing.T) model {
	t.Helper()
	ctx := context.Background()
	cat, err := catalog.Load()
	require.NoError(t, err)
	lessons, err := catalog.Lessons()
	require.NoError(t, err)
	local, err := store.OpenLocal(ctx, filepath.Join(t.TempDir(), "progress.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = local.Close() })

	ctrl := game.NewController(cat, engine.NewRules(engine.Fixed(0.95)), engine.Fixed(0.1), game.WithLessons(lessons))
	sess, err := game.Start(ctx, ctrl, store.NewFallback(nil, local), "player-1", false)
	require.NoError(t, err)
	return newModel(ctx, sess, "catppuccin", "test", text.Plain())
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, keys ...string) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(model)
	}
	return m, cmd
}

func TestChoiceThinkingThenReveal(t *testing.T) {
	m := newTestModel(t)
	require.Equal(t, game.FirstScenarioID, m.session.State().CurrentScenarioID)

	m, cmd := press(t, m, "a")
	require.NotNil(t, cmd)
	assert.Equal(t, viewThinking, m.view)
	assert.Equal(t, "negotiate", m.session.State().ScenarioState[game.MemoLastChoiceID])

	// stale timer from an earlier play is ignored
	next, _ := m.Update(thinkDoneMsg{play: m.play - 1})
	m = next.(model)
	assert.Equal(t, viewThinking, m.view)

	next, cmd = m.Update(thinkDoneMsg{play: m.play})
	m = next.(model)
	assert.Equal(t, viewOutcome, m.view)
	assert.NotNil(t, cmd)
	assert.False(t, m.revealComplete())

	next, _ = m.Update(revealMsg{play: m.play, part: game.RevealNarrative})
	m = next.(model)
	assert.True(t, m.shown[game.RevealNarrative])
	assert.Contains(t, m.buildMain(), m.outcome.Narrative)

	m, _ = press(t, m, "enter")
	assert.True(t, m.revealComplete())
	assert.Equal(t, viewOutcome, m.view)

	m, _ = press(t, m, "enter")
	assert.Equal(t, viewScenario, m.view)
}

func TestCustomChoice(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, "/")
	require.Equal(t, viewCustom, m.view)

	m, _ = press(t, m, "enter")
	assert.Equal(t, viewCustom, m.view, "empty input is ignored")

	m.input.SetValue("find a roommate to share costs")
	m, _ = press(t, m, "enter")
	assert.Equal(t, viewThinking, m.view)
	assert.Equal(t, game.CustomChoiceID, m.session.State().ScenarioState[game.MemoLastChoiceID])
}

func TestResetNeedsConfirmation(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, "a")
	m.view = viewScenario
	before := m.session.State().MoneySaved

	m, _ = press(t, m, "r", "n")
	assert.Equal(t, before, m.session.State().MoneySaved)
	assert.Equal(t, viewScenario, m.view)

	m, _ = press(t, m, "r", "y")
	assert.Equal(t, game.StartingMoney, m.session.State().MoneySaved)
	assert.Equal(t, game.FirstScenarioID, m.session.State().CurrentScenarioID)
}

func TestLessonQuizPaysBonus(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, "l")
	require.Equal(t, viewLessons, m.view)
	require.NotEmpty(t, m.lessons)

	m, _ = press(t, m, "1")
	require.Equal(t, viewLesson, m.view)
	m, _ = press(t, m, "2")
	require.Equal(t, viewLessonDone, m.view)
	assert.True(t, m.lessonResult.Correct)
	assert.Equal(t, game.StartingMoney+game.LessonBonus, m.session.State().MoneySaved)

	m, _ = press(t, m, "x", "1", "2")
	assert.Equal(t, 0, m.lessonResult.Bonus)
	assert.Equal(t, game.StartingMoney+game.LessonBonus, m.session.State().MoneySaved)
}

func TestLeaderboardShowsPlayer(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, "s")
	require.Equal(t, viewLeaderboard, m.view)
	require.Len(t, m.board, 1)
	assert.Contains(t, m.View(), "(you)")

	m, _ = press(t, m, "x")
	assert.Equal(t, viewScenario, m.view)
}

func TestViewShowsScenarioAndSidebar(t *testing.T) {
	m := newTestModel(t)
	v := m.View()
	for _, want := range []string{"BUDGET HERO", "Rent Shock!", "KSh 50,000", "BEGINNER", "(none yet)"} {
		assert.True(t, strings.Contains(v, want), "view missing %q", want)
	}
}

func TestThemeCycling(t *testing.T) {
	assert.Equal(t, "dracula", nextThemeName("catppuccin", 1))
	assert.Equal(t, "catppuccin", nextThemeName("solarized_dark", 1))
	assert.Equal(t, "solarized_dark", nextThemeName("catppuccin", -1))
	assert.Equal(t, palettes[defaultTheme], paletteFor("unknown"))

	m := newTestModel(t)
	m, _ = press(t, m, "t")
	assert.Equal(t, "dracula", m.theme)
}
