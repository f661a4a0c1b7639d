package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaanHessen/budgethero/internal/catalog"
	"github.com/DaanHessen/budgethero/internal/engine"
)

type panicEvaluator struct{}

func (panicEvaluator) Evaluate(string, engine.Context) engine.Outcome { panic("boom") }

type blankEvaluator struct{}

func (blankEvaluator) Evaluate(string, engine.Context) engine.Outcome {
	return engine.Outcome{MoneyChange: -999999}
}

// mutatingEvaluator scribbles on the context it was given.
type mutatingEvaluator struct{}

func (mutatingEvaluator) Evaluate(_ string, c engine.Context) engine.Outcome {
	c.ScenarioState["evil"] = "yes"
	return engine.Outcome{Narrative: "ok"}
}

func newTestController(t *testing.T, ev engine.Evaluator, draws ...float64) *Controller {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	lessons, err := catalog.Lessons()
	require.NoError(t, err)
	if ev == nil {
		ev = engine.NewRules(engine.Fixed(draws...))
	}
	return NewController(cat, ev, engine.Fixed(draws...), WithLessons(lessons))
}

func choice(t *testing.T, c *Controller, scenarioID, choiceID string) catalog.Choice {
	t.Helper()
	sc, ok := c.Catalog().ByID(scenarioID)
	require.True(t, ok)
	ch, ok := sc.Choice(choiceID)
	require.True(t, ok)
	return ch
}

func TestSubmitChoiceAppliesOutcome(t *testing.T) {
	c := newTestController(t, nil, 0.9)
	p := NewPlayerState("u1")
	p.MoneySaved = 100000
	o, next := c.SubmitChoice(choice(t, c, "rent_increase", "negotiate"), p)
	assert.Equal(t, 15000, o.MoneyChange)
	assert.Equal(t, 115000, next.MoneySaved)
	assert.Equal(t, []string{"Master Negotiator"}, next.Badges)
	assert.Equal(t, "negotiate", next.ScenarioState[MemoLastChoiceID])
	assert.Equal(t, o.Narrative, next.ScenarioState[MemoLastOutcome])
	assert.Equal(t, "rent_increase", next.CurrentScenarioID, "submit must not advance the scenario")
	assert.Equal(t, 100000, p.MoneySaved, "input state must not change")
}

func TestSubmitChoiceRepeatBadgeNoDuplicate(t *testing.T) {
	c := newTestController(t, nil, 0.9)
	p := NewPlayerState("u1")
	ch := choice(t, c, "rent_increase", "negotiate")
	for i := 0; i < 4; i++ {
		_, p = c.SubmitChoice(ch, p)
	}
	assert.Equal(t, []string{"Master Negotiator"}, p.Badges)
}

func TestSubmitChoiceRecoversFromPanic(t *testing.T) {
	c := newTestController(t, panicEvaluator{})
	p := NewPlayerState("u1")
	o, next := c.SubmitChoice(catalog.Choice{ID: "negotiate", Text: "negotiate"}, p)
	assert.Equal(t, 0, o.MoneyChange)
	assert.Empty(t, o.Badge)
	assert.NotEmpty(t, o.Narrative)
	assert.Contains(t, o.Reasoning, "boom")
	assert.Equal(t, p.MoneySaved, next.MoneySaved)
}

func TestSubmitChoiceRejectsInvalidOutcome(t *testing.T) {
	c := newTestController(t, blankEvaluator{})
	p := NewPlayerState("u1")
	o, next := c.SubmitChoice(catalog.Choice{ID: "x", Text: "x"}, p)
	assert.Equal(t, 0, o.MoneyChange)
	assert.Contains(t, o.Reasoning, "invalid outcome")
	assert.Equal(t, StartingMoney, next.MoneySaved)
}

func TestSubmitChoiceIsolatesEvaluatorFromState(t *testing.T) {
	c := newTestController(t, mutatingEvaluator{})
	p := NewPlayerState("u1")
	_, next := c.SubmitChoice(catalog.Choice{ID: "x", Text: "x"}, p)
	assert.NotContains(t, p.ScenarioState, "evil")
	assert.NotContains(t, next.ScenarioState, "evil")
}

func TestSubmitTextUsesCustomID(t *testing.T) {
	c := newTestController(t, nil, 0.5, 0.5)
	_, next := c.SubmitText("asdfqwerty nonsense", NewPlayerState("u1"))
	assert.Equal(t, CustomChoiceID, next.ScenarioState[MemoLastChoiceID])
	assert.Empty(t, next.Badges)
}

func TestNextScenarioOverwritesCurrent(t *testing.T) {
	c := newTestController(t, nil, 0.99)
	p := NewPlayerState("u1")
	next, sc, err := c.NextScenario(p)
	require.NoError(t, err)
	assert.Equal(t, "medical_emergency", sc.ID)
	assert.Equal(t, sc.ID, next.CurrentScenarioID)
	assert.Equal(t, FirstScenarioID, p.CurrentScenarioID)
}

func TestNextScenarioEmptyCatalog(t *testing.T) {
	c := NewController(catalog.New(nil), engine.NewRules(engine.Fixed()), engine.Fixed())
	_, _, err := c.NextScenario(NewPlayerState("u1"))
	assert.ErrorIs(t, err, catalog.ErrDataUnavailable)
}

func TestResetAlwaysCanonical(t *testing.T) {
	c := newTestController(t, nil, 0.5)
	p := NewPlayerState("u1")
	p.MoneySaved = 1
	p.Badges = []string{"Smart Mover", "Budget Master"}
	p.CurrentScenarioID = "windfall"
	p.ScenarioState = map[string]string{"a": "b"}
	p.Premium = true
	p.LastLessonDay = "2026-03-14"
	r := c.Reset(p)
	assert.Equal(t, StartingMoney, r.MoneySaved)
	assert.Empty(t, r.Badges)
	assert.Equal(t, FirstScenarioID, r.CurrentScenarioID)
	assert.Empty(t, r.ScenarioState)
	assert.Equal(t, "u1", r.UserID)
	assert.True(t, r.Premium)
	assert.Equal(t, "2026-03-14", r.LastLessonDay)
}

func TestCurrentScenarioFallback(t *testing.T) {
	c := newTestController(t, nil, 0.5)
	p := NewPlayerState("u1")
	p.CurrentScenarioID = "retired_scenario"
	sc, err := c.CurrentScenario(p)
	require.NoError(t, err)
	assert.Equal(t, "rent_increase", sc.ID)
}

func TestCompleteLessonOncePerDay(t *testing.T) {
	c := newTestController(t, nil, 0.5)
	p := NewPlayerState("u1")
	day := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	res, p, err := c.CompleteLesson(p, "emergency_fund_basics", 1, day)
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, LessonBonus, res.Bonus)
	assert.Equal(t, StartingMoney+LessonBonus, p.MoneySaved)

	res, p, err = c.CompleteLesson(p, "emergency_fund_basics", 0, day.Add(3*time.Hour))
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Zero(t, res.Bonus)
	assert.Equal(t, StartingMoney+LessonBonus, p.MoneySaved)

	res, _, err = c.CompleteLesson(p, "emergency_fund_basics", 1, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, LessonBonus, res.Bonus)
}

func TestCompleteLessonPremiumGate(t *testing.T) {
	c := newTestController(t, nil, 0.5)
	p := NewPlayerState("u1")
	_, _, err := c.CompleteLesson(p, "digital_loan_dangers", 1, time.Now())
	assert.ErrorIs(t, err, ErrLessonLocked)
	_, _, err = c.CompleteLesson(p, "nope", 1, time.Now())
	assert.ErrorIs(t, err, ErrUnknownLesson)
	assert.Len(t, c.Lessons(p), 1)
	p.Premium = true
	assert.Len(t, c.Lessons(p), 3)
}

func TestLessonBonusSurvivesReset(t *testing.T) {
	c := newTestController(t, nil, 0.5)
	day := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	res, p, err := c.CompleteLesson(NewPlayerState("u1"), "emergency_fund_basics", 1, day)
	require.NoError(t, err)
	require.Equal(t, LessonBonus, res.Bonus)

	p = c.Reset(p)
	assert.Empty(t, p.ScenarioState)

	res, p, err = c.CompleteLesson(p, "emergency_fund_basics", 1, day.Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, res.Bonus)
	assert.Equal(t, StartingMoney, p.MoneySaved)

	res, _, err = c.CompleteLesson(p, "emergency_fund_basics", 1, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, LessonBonus, res.Bonus)
}
