package game

import (
	"context"
	"maps"
	"slices"
)

// ProgressStore persists PlayerState keyed by user id.
type ProgressStore interface {
	// Load returns the stored state and whether it exists.
	Load(ctx context.Context, userID string) (PlayerState, bool, error)
	Create(ctx context.Context, userID string, initial PlayerState) (PlayerState, error)
	Update(ctx context.Context, userID string, p Patch) (PlayerState, error)
}

// Leaderboard is implemented by stores that can rank players.
type Leaderboard interface {
	Top(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}

type LeaderboardEntry struct {
	UserID     string
	MoneySaved int
	Badges     int
}

// LeaderboardSize is the default number of entries shown.
const LeaderboardSize = 10

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	MoneySaved        *int
	Badges            *[]string
	CurrentScenarioID *string
	ScenarioState     *map[string]string
	Premium           *bool
	LastLessonDay     *string
}

func (p Patch) Empty() bool {
	return p.MoneySaved == nil && p.Badges == nil && p.CurrentScenarioID == nil && p.ScenarioState == nil && p.Premium == nil && p.LastLessonDay == nil
}

// Apply returns s with the patch's fields replaced.
func (p Patch) Apply(s PlayerState) PlayerState {
	out := s.Clone()
	if p.MoneySaved != nil {
		out.MoneySaved = clampMoney(*p.MoneySaved)
	}
	if p.Badges != nil {
		out.Badges = append([]string{}, (*p.Badges)...)
	}
	if p.CurrentScenarioID != nil {
		out.CurrentScenarioID = *p.CurrentScenarioID
	}
	if p.ScenarioState != nil {
		out.ScenarioState = maps.Clone(*p.ScenarioState)
		if out.ScenarioState == nil {
			out.ScenarioState = map[string]string{}
		}
	}
	if p.Premium != nil {
		out.Premium = *p.Premium
	}
	if p.LastLessonDay != nil {
		out.LastLessonDay = *p.LastLessonDay
	}
	return out
}

// Diff builds the patch that turns prev into next.
func Diff(prev, next PlayerState) Patch {
	var p Patch
	if prev.MoneySaved != next.MoneySaved {
		v := next.MoneySaved
		p.MoneySaved = &v
	}
	if !slices.Equal(prev.Badges, next.Badges) {
		v := append([]string{}, next.Badges...)
		p.Badges = &v
	}
	if prev.CurrentScenarioID != next.CurrentScenarioID {
		v := next.CurrentScenarioID
		p.CurrentScenarioID = &v
	}
	if !maps.Equal(prev.ScenarioState, next.ScenarioState) {
		v := maps.Clone(next.ScenarioState)
		if v == nil {
			v = map[string]string{}
		}
		p.ScenarioState = &v
	}
	if prev.Premium != next.Premium {
		v := next.Premium
		p.Premium = &v
	}
	if prev.LastLessonDay != next.LastLessonDay {
		v := next.LastLessonDay
		p.LastLessonDay = &v
	}
	return p
}

