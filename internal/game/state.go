// Package game applies outcomes to player progress and runs a play session.
package game

import (
	"time"

	"github.com/DaanHessen/budgethero/internal/engine"
)

const (
	StartingMoney   = 50000
	GoalMoney       = 500000
	FirstScenarioID = "rent_increase"
	LessonBonus     = 2500
)

// Memo keys written into PlayerState.ScenarioState.
const (
	MemoLastChoiceID = "last_choice_id"
	MemoLastOutcome  = "last_outcome"
)

// PlayerState is the persisted per-player progress. Values are treated as
// immutable: every transition returns a new state.
type PlayerState struct {
	UserID            string
	MoneySaved        int
	Badges            []string
	CurrentScenarioID string
	ScenarioState     map[string]string
	Premium           bool
	// LastLessonDay is the date (YYYY-MM-DD) the lesson bonus was last paid.
	LastLessonDay string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewPlayerState is the canonical fresh state.
func NewPlayerState(userID string) PlayerState {
	return PlayerState{
		UserID:            userID,
		MoneySaved:        StartingMoney,
		Badges:            []string{},
		CurrentScenarioID: FirstScenarioID,
		ScenarioState:     map[string]string{},
	}
}

// Clone deep-copies the slice and map fields.
func (p PlayerState) Clone() PlayerState {
	out := p
	out.Badges = append([]string{}, p.Badges...)
	out.ScenarioState = make(map[string]string, len(p.ScenarioState))
	for k, v := range p.ScenarioState {
		out.ScenarioState[k] = v
	}
	return out
}

func (p PlayerState) HasBadge(name string) bool {
	for _, b := range p.Badges {
		if b == name {
			return true
		}
	}
	return false
}

func (p PlayerState) Level() Level { return LevelFor(p.MoneySaved) }

// ApplyOutcome returns the state after an outcome: money floored at zero,
// badge added once, and the last choice memo overwritten.
func ApplyOutcome(p PlayerState, choiceID string, o engine.Outcome) PlayerState {
	next := p.Clone()
	next.MoneySaved = clampMoney(p.MoneySaved + o.MoneyChange)
	if o.Badge != "" && !next.HasBadge(string(o.Badge)) {
		next.Badges = append(next.Badges, string(o.Badge))
	}
	next.ScenarioState[MemoLastChoiceID] = choiceID
	next.ScenarioState[MemoLastOutcome] = o.Narrative
	return next
}

func clampMoney(v int) int { return max(0, v) }

type Level string

const (
	LevelBeginner     Level = "BEGINNER"
	LevelIntermediate Level = "INTERMEDIATE"
	LevelAdvanced     Level = "ADVANCED"
	LevelExpert       Level = "EXPERT"
)

func LevelFor(money int) Level {
	switch {
	case money < 100000:
		return LevelBeginner
	case money < 250000:
		return LevelIntermediate
	case money < 400000:
		return LevelAdvanced
	default:
		return LevelExpert
	}
}

// GoalProgress is the fraction of GoalMoney saved, capped at 1.
func GoalProgress(money int) float64 {
	if money <= 0 {
		return 0
	}
	return min(1, float64(money)/GoalMoney)
}
