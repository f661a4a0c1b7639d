package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaanHessen/budgethero/internal/catalog"
	"github.com/DaanHessen/budgethero/internal/game"
)

func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("BUDGETHERO_DATABASE_URL", "")
	t.Setenv("BUDGETHERO_DATA_DIR", filepath.Join(t.TempDir(), "data"))
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	out := runCmd(t, "version")
	assert.Contains(t, out, "budgethero "+version)
	assert.Contains(t, out, rulesVersion)

	cat, err := catalog.Load()
	require.NoError(t, err)
	assert.Contains(t, out, fmt.Sprintf("Catalog: v%d", cat.Version()))
}

func TestScenariosCommand(t *testing.T) {
	out := runCmd(t, "scenarios")
	for _, id := range []string{"rent_increase", "car_repair", "job_promotion", "windfall", "medical_emergency"} {
		assert.Contains(t, out, id)
	}
}

func TestSimulateIsDeterministic(t *testing.T) {
	opts := simOptions{seed: "abc", rounds: 12, strategy: strategyRandom}
	var a, b bytes.Buffer
	pa, err := simulate(&a, opts)
	require.NoError(t, err)
	pb, err := simulate(&b, opts)
	require.NoError(t, err)
	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, pa.MoneySaved, pb.MoneySaved)
	assert.GreaterOrEqual(t, pa.MoneySaved, 0)
}

func TestSimulateRejectsBadOptions(t *testing.T) {
	var out bytes.Buffer
	_, err := simulate(&out, simOptions{seed: "x", rounds: 0, strategy: strategyFirst})
	assert.Error(t, err)
	_, err = simulate(&out, simOptions{seed: "x", rounds: 3, strategy: "greedy"})
	assert.Error(t, err)
}

func TestSimulateCommandPrintsSummary(t *testing.T) {
	out := runCmd(t, "simulate", "--rounds", "3", "--strategy", "cycle", "--sim-seed", "seed-1")
	assert.Contains(t, out, "Seed seed-1 · cycle")
	assert.Contains(t, out, "Balance")
}

func TestLeaderboardCommandOffline(t *testing.T) {
	out := runCmd(t, "leaderboard")
	assert.Contains(t, out, "offline")
	assert.Contains(t, out, "Player")
}

func TestMigrateRequiresDSN(t *testing.T) {
	t.Setenv("BUDGETHERO_DATABASE_URL", "")
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"migrate", "up"})
	assert.Error(t, root.Execute())
}

func TestLeaderboardTable(t *testing.T) {
	out := leaderboardTable([]game.LeaderboardEntry{{UserID: "0123456789abcdef", MoneySaved: 120000, Badges: 3}})
	assert.Contains(t, out, "01234567")
	assert.Contains(t, out, "KSh 120,000")
	assert.Contains(t, out, "INTERMEDIATE")
}
