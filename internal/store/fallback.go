package store

import (
	"context"
	"io"
	"log"
	"sync/atomic"

	"github.com/DaanHessen/budgethero/internal/game"
)

// Primary is the remote store used by Fallback.
type Primary interface {
	game.ProgressStore
	game.Leaderboard
}

// Fallback writes to the primary and mirrors every successful write into the
// local store. Once the primary fails it stays on the local store.
type Fallback struct {
	primary Primary
	local   *LocalStore
	offline atomic.Bool
	logger  *log.Logger
}

type FallbackOption func(*Fallback)

// WithLogger routes degraded-mode messages to l.
func WithLogger(l *log.Logger) FallbackOption { return func(f *Fallback) { f.logger = l } }

// NewFallback returns a store backed by local only when primary is nil.
func NewFallback(primary Primary, local *LocalStore, opts ...FallbackOption) *Fallback {
	f := &Fallback{primary: primary, local: local, logger: log.New(io.Discard, "", 0)}
	for _, o := range opts {
		o(f)
	}
	if primary == nil {
		f.offline.Store(true)
	}
	return f
}

func (f *Fallback) Offline() bool { return f.offline.Load() }

func (f *Fallback) fail(op string, err error) {
	if f.offline.CompareAndSwap(false, true) {
		f.logger.Printf("store: %s failed, continuing offline on %s: %v", op, f.local.Path(), err)
	}
}

func (f *Fallback) mirror(ctx context.Context, p game.PlayerState) {
	if err := f.local.Put(ctx, p); err != nil {
		f.logger.Printf("store: local mirror: %v", err)
	}
}

func (f *Fallback) Load(ctx context.Context, userID string) (game.PlayerState, bool, error) {
	if !f.Offline() {
		p, ok, err := f.primary.Load(ctx, userID)
		if err == nil {
			if ok {
				f.mirror(ctx, p)
			}
			return p, ok, nil
		}
		f.fail("load", err)
	}
	return f.local.Load(ctx, userID)
}

func (f *Fallback) Create(ctx context.Context, userID string, initial game.PlayerState) (game.PlayerState, error) {
	if !f.Offline() {
		p, err := f.primary.Create(ctx, userID, initial)
		if err == nil {
			f.mirror(ctx, p)
			return p, nil
		}
		f.fail("create", err)
	}
	return f.local.Create(ctx, userID, initial)
}

func (f *Fallback) Update(ctx context.Context, userID string, patch game.Patch) (game.PlayerState, error) {
	if !f.Offline() {
		p, err := f.primary.Update(ctx, userID, patch)
		if err == nil {
			f.mirror(ctx, p)
			return p, nil
		}
		f.fail("update", err)
	}
	return f.local.Update(ctx, userID, patch)
}

func (f *Fallback) Top(ctx context.Context, limit int) ([]game.LeaderboardEntry, error) {
	if !f.Offline() {
		out, err := f.primary.Top(ctx, limit)
		if err == nil {
			return out, nil
		}
		f.fail("leaderboard", err)
	}
	return f.local.Top(ctx, limit)
}

var (
	_ game.ProgressStore = (*Fallback)(nil)
	_ game.Leaderboard   = (*Fallback)(nil)
)
