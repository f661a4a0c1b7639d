package store

import (
	"context"
	"database/sql"
	errs "errors"
	"time"

	"gorm.io/gorm"

	"github.com/DaanHessen/budgethero/internal/game"
)

// ProgressRepo stores PlayerState rows in Postgres.
type ProgressRepo struct{ db *DB }

func NewProgressRepo(db *DB) *ProgressRepo { return &ProgressRepo{db: db} }

const selectProgress = `SELECT user_id, money_saved, badges, current_scenario, scenario_state, premium, last_lesson_day, created_at, updated_at FROM progress`

func scanProgress(row *sql.Row) (game.PlayerState, error) {
	var r progressRow
	if err := row.Scan(&r.UserID, &r.MoneySaved, &r.Badges, &r.CurrentScenario, &r.ScenarioState, &r.Premium, &r.LastLessonDay, &r.CreatedAt, &r.UpdatedAt); err != nil {
		if errs.Is(err, sql.ErrNoRows) {
			return game.PlayerState{}, ErrNotFound
		}
		return game.PlayerState{}, err
	}
	return r.state()
}

func (r *ProgressRepo) Load(ctx context.Context, userID string) (game.PlayerState, bool, error) {
	p, err := scanProgress(r.db.gorm.WithContext(ctx).Raw(selectProgress+` WHERE user_id = ?`, userID).Row())
	if errs.Is(err, ErrNotFound) {
		return game.PlayerState{}, false, nil
	}
	if err != nil {
		return game.PlayerState{}, false, wrap(err, "load progress")
	}
	return p, true, nil
}

// Create inserts the initial row. An existing row wins and is returned as is.
func (r *ProgressRepo) Create(ctx context.Context, userID string, initial game.PlayerState) (game.PlayerState, error) {
	initial.UserID = userID
	now := time.Now().UTC()
	if initial.CreatedAt.IsZero() {
		initial.CreatedAt = now
	}
	initial.UpdatedAt = now
	row, err := rowFor(initial)
	if err != nil {
		return game.PlayerState{}, err
	}
	err = r.db.gorm.WithContext(ctx).Exec(`
INSERT INTO progress (user_id, money_saved, badges, current_scenario, scenario_state, premium, last_lesson_day, created_at, updated_at)
VALUES (?, ?, ?::jsonb, ?, ?::jsonb, ?, ?, ?, ?)
ON CONFLICT (user_id) DO NOTHING`,
		row.UserID, row.MoneySaved, string(row.Badges), row.CurrentScenario, string(row.ScenarioState), row.Premium, row.LastLessonDay, row.CreatedAt, row.UpdatedAt,
	).Error
	if err != nil {
		return game.PlayerState{}, wrap(err, "create progress")
	}
	p, ok, err := r.Load(ctx, userID)
	if err != nil {
		return game.PlayerState{}, err
	}
	if !ok {
		return game.PlayerState{}, ErrNotFound
	}
	return p, nil
}

// Update applies the patch to the locked row and returns the stored result.
func (r *ProgressRepo) Update(ctx context.Context, userID string, patch game.Patch) (game.PlayerState, error) {
	var out game.PlayerState
	err := r.db.WithTx(ctx, func(tx *gorm.DB) error {
		cur, err := scanProgress(tx.Raw(selectProgress+` WHERE user_id = ? FOR UPDATE`, userID).Row())
		if err != nil {
			return err
		}
		if patch.Empty() {
			out = cur
			return nil
		}
		next := patch.Apply(cur)
		next.UpdatedAt = time.Now().UTC()
		row, err := rowFor(next)
		if err != nil {
			return err
		}
		res := tx.Exec(`
UPDATE progress SET money_saved = ?, badges = ?::jsonb, current_scenario = ?, scenario_state = ?::jsonb, premium = ?, last_lesson_day = ?, updated_at = ?
WHERE user_id = ?`,
			row.MoneySaved, string(row.Badges), row.CurrentScenario, string(row.ScenarioState), row.Premium, row.LastLessonDay, row.UpdatedAt, userID,
		)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		out = next
		return nil
	})
	if err != nil {
		return game.PlayerState{}, wrap(err, "update progress")
	}
	return out, nil
}

// Top ranks players by money saved.
func (r *ProgressRepo) Top(ctx context.Context, limit int) ([]game.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = game.LeaderboardSize
	}
	rows, err := r.db.gorm.WithContext(ctx).Raw(`
SELECT user_id, money_saved, jsonb_array_length(badges)
FROM progress
ORDER BY money_saved DESC, updated_at ASC
LIMIT ?`, limit).Rows()
	if err != nil {
		return nil, wrap(err, "leaderboard")
	}
	defer rows.Close()
	var out []game.LeaderboardEntry
	for rows.Next() {
		var e game.LeaderboardEntry
		var money int64
		if err := rows.Scan(&e.UserID, &money, &e.Badges); err != nil {
			return nil, wrap(err, "scan leaderboard")
		}
		e.MoneySaved = int(money)
		out = append(out, e)
	}
	return out, wrap(rows.Err(), "leaderboard rows")
}

var (
	_ game.ProgressStore = (*ProgressRepo)(nil)
	_ game.Leaderboard   = (*ProgressRepo)(nil)
)
