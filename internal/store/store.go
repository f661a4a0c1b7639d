// Package store persists player progress: Postgres when reachable, a local
// SQLite file otherwise.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	errs "errors"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DaanHessen/budgethero/internal/game"
)

var (
	ErrNoChange = errs.New("no change")
	ErrNotFound = errs.New("progress not found")
)

// DB wraps gorm.DB for repositories and exposes Close.
type DB struct {
	gorm *gorm.DB
	sql  *sql.DB
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// Open connects to Postgres.
func Open(ctx context.Context, dsn string) (*DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("missing DSN")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, wrap(err, "open postgres")
	}
	sdb, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sdb.SetConnMaxLifetime(30 * time.Minute)
	sdb.SetMaxOpenConns(10)
	sdb.SetMaxIdleConns(5)
	if err := sdb.PingContext(ctx); err != nil {
		_ = sdb.Close()
		return nil, wrap(err, "ping postgres")
	}
	return &DB{gorm: gdb, sql: sdb}, nil
}

// WithTx executes fn within a database transaction.
func (d *DB) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.gorm.WithContext(ctx).Transaction(fn)
}

// progressRow is the column layout shared by both backends.
type progressRow struct {
	UserID          string
	MoneySaved      int64
	Badges          []byte
	CurrentScenario string
	ScenarioState   []byte
	Premium         bool
	LastLessonDay   string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (r progressRow) state() (game.PlayerState, error) {
	p := game.PlayerState{
		UserID:            r.UserID,
		MoneySaved:        int(r.MoneySaved),
		CurrentScenarioID: r.CurrentScenario,
		Premium:           r.Premium,
		LastLessonDay:     r.LastLessonDay,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
	if err := json.Unmarshal(r.Badges, &p.Badges); err != nil {
		return game.PlayerState{}, wrap(err, "decode badges")
	}
	if err := json.Unmarshal(r.ScenarioState, &p.ScenarioState); err != nil {
		return game.PlayerState{}, wrap(err, "decode scenario state")
	}
	if p.Badges == nil {
		p.Badges = []string{}
	}
	if p.ScenarioState == nil {
		p.ScenarioState = map[string]string{}
	}
	return p, nil
}

func rowFor(p game.PlayerState) (progressRow, error) {
	badges := p.Badges
	if badges == nil {
		badges = []string{}
	}
	b, err := json.Marshal(badges)
	if err != nil {
		return progressRow{}, wrap(err, "encode badges")
	}
	memo := p.ScenarioState
	if memo == nil {
		memo = map[string]string{}
	}
	m, err := json.Marshal(memo)
	if err != nil {
		return progressRow{}, wrap(err, "encode scenario state")
	}
	return progressRow{
		UserID:          p.UserID,
		MoneySaved:      int64(max(0, p.MoneySaved)),
		Badges:          b,
		CurrentScenario: p.CurrentScenarioID,
		ScenarioState:   m,
		Premium:         p.Premium,
		LastLessonDay:   p.LastLessonDay,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}, nil
}

// wrap annotates err with msg. A nil err stays nil.
func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, msg)
}
