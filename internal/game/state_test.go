package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaanHessen/budgethero/internal/engine"
)

func TestApplyOutcomeClampsMoney(t *testing.T) {
	p := NewPlayerState("u1")
	for _, delta := range []int{-1, -StartingMoney, -StartingMoney - 1, -1 << 40} {
		next := ApplyOutcome(p, "x", engine.Outcome{Narrative: "n", MoneyChange: delta})
		assert.Equal(t, max(0, StartingMoney+delta), next.MoneySaved)
		assert.GreaterOrEqual(t, next.MoneySaved, 0)
	}
}

func TestApplyOutcomeBadgeIsIdempotent(t *testing.T) {
	p := NewPlayerState("u1")
	o := engine.Outcome{Narrative: "n", Badge: engine.BadgeDebtDestroyer}
	for i := 0; i < 3; i++ {
		p = ApplyOutcome(p, "pay_debt", o)
	}
	assert.Equal(t, []string{"Debt Destroyer"}, p.Badges)
	p = ApplyOutcome(p, "invest", engine.Outcome{Narrative: "n", Badge: engine.BadgeSmartInvestor})
	assert.Equal(t, []string{"Debt Destroyer", "Smart Investor"}, p.Badges)
}

func TestApplyOutcomeOverwritesMemoAndKeepsInput(t *testing.T) {
	p := NewPlayerState("u1")
	p.ScenarioState["custom_key"] = "kept"
	first := ApplyOutcome(p, "a", engine.Outcome{Narrative: "first"})
	second := ApplyOutcome(first, "b", engine.Outcome{Narrative: "second"})
	assert.Equal(t, "b", second.ScenarioState[MemoLastChoiceID])
	assert.Equal(t, "second", second.ScenarioState[MemoLastOutcome])
	assert.Equal(t, "kept", second.ScenarioState["custom_key"])
	assert.Len(t, second.ScenarioState, 3)
	// inputs untouched
	assert.Equal(t, "a", first.ScenarioState[MemoLastChoiceID])
	assert.NotContains(t, p.ScenarioState, MemoLastChoiceID)
	assert.Equal(t, p.CurrentScenarioID, second.CurrentScenarioID)
}

func TestLevels(t *testing.T) {
	assert.Equal(t, LevelBeginner, LevelFor(0))
	assert.Equal(t, LevelBeginner, LevelFor(99999))
	assert.Equal(t, LevelIntermediate, LevelFor(100000))
	assert.Equal(t, LevelAdvanced, LevelFor(250000))
	assert.Equal(t, LevelExpert, LevelFor(400000))
	assert.InDelta(t, 0.1, GoalProgress(StartingMoney), 1e-9)
	assert.Equal(t, 1.0, GoalProgress(GoalMoney*3))
	assert.Equal(t, 0.0, GoalProgress(-5))
}

func TestRevealOrder(t *testing.T) {
	steps := Reveal(engine.Outcome{Narrative: "n", MoneyChange: 5, Badge: engine.BadgeSmartMover, Consequence: "c"})
	require.Len(t, steps, 4)
	want := []RevealPart{RevealNarrative, RevealMoney, RevealBadge, RevealConsequence}
	for i, s := range steps {
		assert.Equal(t, want[i], s.Part)
		if i > 0 {
			assert.Greater(t, s.At, steps[i-1].At)
		}
	}
	only := Reveal(engine.Outcome{Narrative: "n"})
	require.Len(t, only, 1)
	assert.Equal(t, 300*time.Millisecond, only[0].At)
}

func TestDiffAndApply(t *testing.T) {
	prev := NewPlayerState("u1")
	assert.True(t, Diff(prev, prev.Clone()).Empty())

	next := ApplyOutcome(prev, "negotiate", engine.Outcome{Narrative: "won", MoneyChange: 15000, Badge: engine.BadgeMasterNegotiator})
	patch := Diff(prev, next)
	require.NotNil(t, patch.MoneySaved)
	require.NotNil(t, patch.Badges)
	require.NotNil(t, patch.ScenarioState)
	assert.Nil(t, patch.CurrentScenarioID)
	assert.Nil(t, patch.Premium)

	got := patch.Apply(prev)
	assert.Equal(t, next.MoneySaved, got.MoneySaved)
	assert.Equal(t, next.Badges, got.Badges)
	assert.Equal(t, next.ScenarioState, got.ScenarioState)

	lesson := prev.Clone()
	lesson.LastLessonDay = "2026-03-14"
	patch = Diff(prev, lesson)
	require.NotNil(t, patch.LastLessonDay)
	assert.Nil(t, patch.MoneySaved)
	assert.Equal(t, "2026-03-14", patch.Apply(prev).LastLessonDay)
}
