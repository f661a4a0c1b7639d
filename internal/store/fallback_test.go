package store

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaanHessen/budgethero/internal/game"
)

type flakyPrimary struct {
	down  bool
	rows  map[string]game.PlayerState
	calls int
}

var errDown = errors.New("connection refused")

func newFlaky() *flakyPrimary { return &flakyPrimary{rows: map[string]game.PlayerState{}} }

func (f *flakyPrimary) Load(_ context.Context, id string) (game.PlayerState, bool, error) {
	f.calls++
	if f.down {
		return game.PlayerState{}, false, errDown
	}
	p, ok := f.rows[id]
	return p, ok, nil
}

func (f *flakyPrimary) Create(_ context.Context, id string, initial game.PlayerState) (game.PlayerState, error) {
	f.calls++
	if f.down {
		return game.PlayerState{}, errDown
	}
	initial.UserID = id
	f.rows[id] = initial
	return initial, nil
}

func (f *flakyPrimary) Update(_ context.Context, id string, p game.Patch) (game.PlayerState, error) {
	f.calls++
	if f.down {
		return game.PlayerState{}, errDown
	}
	next := p.Apply(f.rows[id])
	f.rows[id] = next
	return next, nil
}

func (f *flakyPrimary) Top(context.Context, int) ([]game.LeaderboardEntry, error) {
	f.calls++
	if f.down {
		return nil, errDown
	}
	return []game.LeaderboardEntry{{UserID: "remote"}}, nil
}

func TestFallbackMirrorsWrites(t *testing.T) {
	ctx := context.Background()
	local := openTestLocal(t)
	primary := newFlaky()
	f := NewFallback(primary, local)

	_, err := f.Create(ctx, "u1", game.NewPlayerState("u1"))
	require.NoError(t, err)
	money := 80000
	_, err = f.Update(ctx, "u1", game.Patch{MoneySaved: &money})
	require.NoError(t, err)
	assert.False(t, f.Offline())

	mirrored, ok, err := local.Load(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 80000, mirrored.MoneySaved)
}

func TestFallbackSwitchesToLocal(t *testing.T) {
	ctx := context.Background()
	local := openTestLocal(t)
	primary := newFlaky()
	f := NewFallback(primary, local)

	_, err := f.Create(ctx, "u1", game.NewPlayerState("u1"))
	require.NoError(t, err)

	primary.down = true
	money := 42000
	got, err := f.Update(ctx, "u1", game.Patch{MoneySaved: &money})
	require.NoError(t, err)
	assert.Equal(t, 42000, got.MoneySaved)
	assert.True(t, f.Offline())

	calls := primary.calls
	primary.down = false
	_, _, err = f.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, calls, primary.calls, "offline store must not retry the primary")

	top, err := f.Top(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "u1", top[0].UserID)
}

func TestFallbackWithoutPrimary(t *testing.T) {
	ctx := context.Background()
	f := NewFallback(nil, openTestLocal(t))
	assert.True(t, f.Offline())

	p, err := f.Create(ctx, "u1", game.NewPlayerState("u1"))
	require.NoError(t, err)
	assert.Equal(t, game.StartingMoney, p.MoneySaved)
}

func TestFallbackLogsSwitchOnce(t *testing.T) {
	ctx := context.Background()
	local := openTestLocal(t)
	primary := newFlaky()
	var buf bytes.Buffer
	f := NewFallback(primary, local, WithLogger(log.New(&buf, "", 0)))

	primary.down = true
	_, _, err := f.Load(ctx, "u1")
	require.NoError(t, err)
	_, err = f.Create(ctx, "u1", game.NewPlayerState("u1"))
	require.NoError(t, err)

	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("continuing offline")))
	assert.Contains(t, buf.String(), local.Path())
}
