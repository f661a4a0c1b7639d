package store

import (
	"context"
	"database/sql"
	errs "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/DaanHessen/budgethero/internal/game"
)

const localDSNOptions = "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

// ErrExists is returned by Insert when the row is already present.
var ErrExists = errs.New("progress already exists")

// LocalStore keeps progress in a SQLite file next to the player's config.
type LocalStore struct {
	sqlDB *sql.DB
	path  string
}

// OpenLocal opens (creating if needed) the SQLite file at path.
func OpenLocal(ctx context.Context, path string) (*LocalStore, error) {
	if path == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, wrap(err, "create data dir")
		}
	}
	sqlDB, err := sql.Open("sqlite", path+localDSNOptions)
	if err != nil {
		return nil, wrap(err, "open sqlite")
	}
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, wrap(err, "ping sqlite")
	}
	if err := applyMigrations(ctx, sqlDB, migrationFS, sqliteMigrations); err != nil {
		_ = sqlDB.Close()
		return nil, wrap(err, "migrate sqlite")
	}
	return &LocalStore{sqlDB: sqlDB, path: path}, nil
}

func (s *LocalStore) Path() string { return s.path }

// Close is safe on a nil store.
func (s *LocalStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

const localSelect = `SELECT user_id, money_saved, badges, current_scenario, scenario_state, premium, last_lesson_day, created_at, updated_at FROM progress`

func scanLocal(row *sql.Row) (game.PlayerState, error) {
	var (
		r                progressRow
		badges, memo     string
		premium          int64
		created, updated int64
	)
	if err := row.Scan(&r.UserID, &r.MoneySaved, &badges, &r.CurrentScenario, &memo, &premium, &r.LastLessonDay, &created, &updated); err != nil {
		if errs.Is(err, sql.ErrNoRows) {
			return game.PlayerState{}, ErrNotFound
		}
		return game.PlayerState{}, err
	}
	r.Badges = []byte(badges)
	r.ScenarioState = []byte(memo)
	r.Premium = premium != 0
	r.CreatedAt = time.UnixMilli(created).UTC()
	r.UpdatedAt = time.UnixMilli(updated).UTC()
	return r.state()
}

func (s *LocalStore) Load(ctx context.Context, userID string) (game.PlayerState, bool, error) {
	if err := ctx.Err(); err != nil {
		return game.PlayerState{}, false, err
	}
	p, err := scanLocal(s.sqlDB.QueryRowContext(ctx, localSelect+` WHERE user_id = ?`, userID))
	if errs.Is(err, ErrNotFound) {
		return game.PlayerState{}, false, nil
	}
	if err != nil {
		return game.PlayerState{}, false, wrap(err, "load local progress")
	}
	return p, true, nil
}

// Insert adds a new row and fails with ErrExists on a duplicate user id.
func (s *LocalStore) Insert(ctx context.Context, p game.PlayerState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	row, err := rowFor(p)
	if err != nil {
		return err
	}
	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO progress (user_id, money_saved, badges, current_scenario, scenario_state, premium, last_lesson_day, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.UserID, row.MoneySaved, string(row.Badges), row.CurrentScenario, string(row.ScenarioState),
		boolInt(row.Premium), row.LastLessonDay, row.CreatedAt.UnixMilli(), row.UpdatedAt.UnixMilli(),
	)
	if isUniqueViolation(err) {
		return ErrExists
	}
	return wrap(err, "insert local progress")
}

// Put upserts the full row.
func (s *LocalStore) Put(ctx context.Context, p game.PlayerState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	row, err := rowFor(p)
	if err != nil {
		return err
	}
	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO progress (user_id, money_saved, badges, current_scenario, scenario_state, premium, last_lesson_day, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
    money_saved = excluded.money_saved,
    badges = excluded.badges,
    current_scenario = excluded.current_scenario,
    scenario_state = excluded.scenario_state,
    premium = excluded.premium,
    last_lesson_day = excluded.last_lesson_day,
    updated_at = excluded.updated_at`,
		row.UserID, row.MoneySaved, string(row.Badges), row.CurrentScenario, string(row.ScenarioState),
		boolInt(row.Premium), row.LastLessonDay, row.CreatedAt.UnixMilli(), row.UpdatedAt.UnixMilli(),
	)
	return wrap(err, "put local progress")
}

func (s *LocalStore) Create(ctx context.Context, userID string, initial game.PlayerState) (game.PlayerState, error) {
	initial.UserID = userID
	now := time.Now().UTC()
	if initial.CreatedAt.IsZero() {
		initial.CreatedAt = now
	}
	initial.UpdatedAt = now
	err := s.Insert(ctx, initial)
	if err != nil && !errs.Is(err, ErrExists) {
		return game.PlayerState{}, err
	}
	p, ok, err := s.Load(ctx, userID)
	if err != nil {
		return game.PlayerState{}, err
	}
	if !ok {
		return game.PlayerState{}, ErrNotFound
	}
	return p, nil
}

func (s *LocalStore) Update(ctx context.Context, userID string, patch game.Patch) (game.PlayerState, error) {
	cur, ok, err := s.Load(ctx, userID)
	if err != nil {
		return game.PlayerState{}, err
	}
	if !ok {
		return game.PlayerState{}, ErrNotFound
	}
	if patch.Empty() {
		return cur, nil
	}
	next := patch.Apply(cur)
	next.UpdatedAt = time.Now().UTC()
	if err := s.Put(ctx, next); err != nil {
		return game.PlayerState{}, err
	}
	return next, nil
}

func (s *LocalStore) Top(ctx context.Context, limit int) ([]game.LeaderboardEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = game.LeaderboardSize
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT user_id, money_saved, json_array_length(badges)
FROM progress
ORDER BY money_saved DESC, updated_at ASC
LIMIT ?`, limit)
	if err != nil {
		return nil, wrap(err, "local leaderboard")
	}
	defer rows.Close()
	var out []game.LeaderboardEntry
	for rows.Next() {
		var e game.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.MoneySaved, &e.Badges); err != nil {
			return nil, wrap(err, "scan local leaderboard")
		}
		out = append(out, e)
	}
	return out, wrap(rows.Err(), "local leaderboard rows")
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if !errs.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
		return true
	}
	return false
}

var (
	_ game.ProgressStore = (*LocalStore)(nil)
	_ game.Leaderboard   = (*LocalStore)(nil)
)
