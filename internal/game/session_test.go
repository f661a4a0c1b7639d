package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaanHessen/budgethero/internal/apperr"
	"github.com/DaanHessen/budgethero/internal/catalog"
	"github.com/DaanHessen/budgethero/internal/engine"
)

type memStore struct {
	rows    map[string]PlayerState
	fail    bool
	updates int
}

func newMemStore() *memStore { return &memStore{rows: map[string]PlayerState{}} }

var errDown = errors.New("connection refused")

func (m *memStore) Load(_ context.Context, id string) (PlayerState, bool, error) {
	if m.fail {
		return PlayerState{}, false, errDown
	}
	p, ok := m.rows[id]
	return p.Clone(), ok, nil
}

func (m *memStore) Create(_ context.Context, id string, p PlayerState) (PlayerState, error) {
	if m.fail {
		return PlayerState{}, errDown
	}
	m.rows[id] = p.Clone()
	return p, nil
}

func (m *memStore) Update(_ context.Context, id string, patch Patch) (PlayerState, error) {
	if m.fail {
		return PlayerState{}, errDown
	}
	m.updates++
	m.rows[id] = patch.Apply(m.rows[id])
	return m.rows[id], nil
}

func (m *memStore) Top(_ context.Context, limit int) ([]LeaderboardEntry, error) {
	out := []LeaderboardEntry{}
	for id, p := range m.rows {
		out = append(out, LeaderboardEntry{UserID: id, MoneySaved: p.MoneySaved, Badges: len(p.Badges)})
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func TestStartCreatesFreshProgress(t *testing.T) {
	store := newMemStore()
	s, err := Start(context.Background(), newTestController(t, nil, 0.5), store, "u1", false)
	require.NoError(t, err)
	assert.False(t, s.Offline())
	st := s.State()
	assert.Equal(t, StartingMoney, st.MoneySaved)
	assert.Equal(t, FirstScenarioID, st.CurrentScenarioID)
	assert.Contains(t, store.rows, "u1")
}

func TestStartRepairsDanglingScenario(t *testing.T) {
	store := newMemStore()
	p := NewPlayerState("u1")
	p.CurrentScenarioID = "removed"
	store.rows["u1"] = p
	s, err := Start(context.Background(), newTestController(t, nil, 0.5), store, "u1", false)
	require.NoError(t, err)
	assert.Equal(t, FirstScenarioID, s.State().CurrentScenarioID)
	assert.Equal(t, FirstScenarioID, store.rows["u1"].CurrentScenarioID)
}

func TestChoosePersistsPatch(t *testing.T) {
	store := newMemStore()
	s, err := Start(context.Background(), newTestController(t, nil, 0.9), store, "u1", false)
	require.NoError(t, err)
	o, err := s.Choose(context.Background(), "negotiate")
	require.NoError(t, err)
	assert.Equal(t, 15000, o.MoneyChange)
	assert.Equal(t, StartingMoney+15000, store.rows["u1"].MoneySaved)
	assert.Equal(t, []string{"Master Negotiator"}, store.rows["u1"].Badges)

	_, err = s.Choose(context.Background(), "does_not_exist")
	assert.ErrorIs(t, err, ErrUnknownChoice)
}

func TestStoreFailureDegradesButPlayContinues(t *testing.T) {
	store := newMemStore()
	store.fail = true
	s, err := Start(context.Background(), newTestController(t, nil, 0.9), store, "u1", false)
	require.NoError(t, err)
	assert.True(t, s.Offline())
	assert.True(t, errors.Is(s.LastError(), apperr.New(apperr.CodePersistenceFailure, "")))

	o, err := s.ChooseText(context.Background(), "negotiate with the landlord")
	require.NoError(t, err)
	assert.Equal(t, StartingMoney+o.MoneyChange, s.State().MoneySaved)

	sc, err := s.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sc.ID, s.State().CurrentScenarioID)

	s.Reset(context.Background())
	assert.Equal(t, StartingMoney, s.State().MoneySaved)
}

func TestStartFailsOnEmptyCatalog(t *testing.T) {
	ctrl := NewController(catalog.New(nil), engine.NewRules(engine.Fixed()), engine.Fixed())
	_, err := Start(context.Background(), ctrl, newMemStore(), "u1", false)
	require.Error(t, err)
	assert.True(t, apperr.Blocking(err))
}

func TestPremiumFlagPersisted(t *testing.T) {
	store := newMemStore()
	s, err := Start(context.Background(), newTestController(t, nil, 0.5), store, "u1", true)
	require.NoError(t, err)
	assert.True(t, store.rows["u1"].Premium)
	assert.Len(t, s.Lessons(), 3)
	s.SetPremium(context.Background(), false)
	assert.False(t, store.rows["u1"].Premium)
	assert.Len(t, s.Lessons(), 1)
}

func TestSessionLessonBonus(t *testing.T) {
	store := newMemStore()
	day := time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC)
	s, err := Start(context.Background(), newTestController(t, nil, 0.5), store, "u1", false, WithClock(func() time.Time { return day }))
	require.NoError(t, err)
	res, err := s.CompleteLesson(context.Background(), "emergency_fund_basics", 1)
	require.NoError(t, err)
	assert.Equal(t, LessonBonus, res.Bonus)
	assert.Equal(t, StartingMoney+LessonBonus, store.rows["u1"].MoneySaved)
}

func TestNoopTransitionSkipsWrite(t *testing.T) {
	store := newMemStore()
	s, err := Start(context.Background(), newTestController(t, nil, 0.5), store, "u1", false)
	require.NoError(t, err)
	before := store.updates
	s.SetPremium(context.Background(), false)
	assert.Equal(t, before, store.updates)
}

func TestLeaderboardThroughSession(t *testing.T) {
	store := newMemStore()
	s, err := Start(context.Background(), newTestController(t, nil, 0.5), store, "u1", false)
	require.NoError(t, err)
	top, err := s.Leaderboard(context.Background(), LeaderboardSize)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "u1", top[0].UserID)
}
