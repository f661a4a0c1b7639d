package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/DaanHessen/budgethero/internal/apperr"
	"github.com/DaanHessen/budgethero/internal/catalog"
	"github.com/DaanHessen/budgethero/internal/engine"
)

const tracerName = "github.com/DaanHessen/budgethero/internal/game"

var ErrUnknownChoice = errors.New("unknown choice")

// Session is one player's game: the in-memory state is the source of truth and
// every transition is persisted best effort. Not safe for concurrent use.
type Session struct {
	ctrl     *Controller
	store    ProgressStore
	state    PlayerState
	degraded bool
	lastErr  error
	tracer   trace.Tracer
	logger   *log.Logger
	now      func() time.Time
}

type SessionOption func(*Session)

func WithSessionLogger(l *log.Logger) SessionOption { return func(s *Session) { s.logger = l } }

// WithClock overrides time.Now for lesson days.
func WithClock(now func() time.Time) SessionOption { return func(s *Session) { s.now = now } }

// Start loads or creates progress for userID. Store failures degrade the session
// to offline play; only an empty catalog is returned as an error.
func Start(ctx context.Context, ctrl *Controller, store ProgressStore, userID string, premium bool, opts ...SessionOption) (*Session, error) {
	s := &Session{
		ctrl:   ctrl,
		store:  store,
		tracer: otel.Tracer(tracerName),
		logger: log.New(io.Discard, "", 0),
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	ctx, span := s.tracer.Start(ctx, "game.start", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	state, found, err := store.Load(ctx, userID)
	switch {
	case err != nil:
		s.degrade(span, "load progress", err)
		state = NewPlayerState(userID)
	case !found:
		state, err = store.Create(ctx, userID, NewPlayerState(userID))
		if err != nil {
			s.degrade(span, "create progress", err)
			state = NewPlayerState(userID)
		}
	}
	if state.UserID == "" {
		state.UserID = userID
	}
	s.state = state

	sc, err := ctrl.CurrentScenario(state)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	next := state.Clone()
	next.CurrentScenarioID = sc.ID
	if premium {
		next.Premium = true
	}
	s.commit(ctx, next)
	return s, nil
}

func (s *Session) State() PlayerState { return s.state.Clone() }

// Offline reports whether progress is currently kept only locally or in memory.
func (s *Session) Offline() bool {
	if s.degraded {
		return true
	}
	if r, ok := s.store.(interface{ Offline() bool }); ok {
		return r.Offline()
	}
	return false
}

// LastError is the most recent persistence failure, if any.
func (s *Session) LastError() error { return s.lastErr }

func (s *Session) Scenario() (catalog.Scenario, error) { return s.ctrl.CurrentScenario(s.state) }

// Choose plays the catalog choice with the given id on the current scenario.
func (s *Session) Choose(ctx context.Context, choiceID string) (engine.Outcome, error) {
	sc, err := s.Scenario()
	if err != nil {
		return engine.Outcome{}, err
	}
	ch, ok := sc.Choice(choiceID)
	if !ok {
		return engine.Outcome{}, fmt.Errorf("%w: %s/%s", ErrUnknownChoice, sc.ID, choiceID)
	}
	return s.play(ctx, sc, ch), nil
}

// ChooseText plays a free-text choice on the current scenario.
func (s *Session) ChooseText(ctx context.Context, text string) (engine.Outcome, error) {
	sc, err := s.Scenario()
	if err != nil {
		return engine.Outcome{}, err
	}
	return s.play(ctx, sc, catalog.Choice{ID: CustomChoiceID, Text: text}), nil
}

func (s *Session) play(ctx context.Context, sc catalog.Scenario, ch catalog.Choice) engine.Outcome {
	route := engine.Classify(ch.Text, sc.Title)
	ctx, span := s.tracer.Start(ctx, "game.choose", trace.WithAttributes(
		attribute.String("scenario.id", sc.ID),
		attribute.String("choice.id", ch.ID),
		attribute.String("route.family", string(route.Family)),
		attribute.String("route.intent", string(route.Intent)),
		attribute.Bool("player.premium", s.state.Premium),
	))
	defer span.End()

	o, next := s.ctrl.SubmitChoice(ch, s.state)
	span.SetAttributes(
		attribute.Int("outcome.money_change", o.MoneyChange),
		attribute.String("outcome.badge", string(o.Badge)),
		attribute.Int("player.money", next.MoneySaved),
	)
	s.commit(ctx, next)
	return o
}

// Next moves to a randomly drawn scenario.
func (s *Session) Next(ctx context.Context) (catalog.Scenario, error) {
	ctx, span := s.tracer.Start(ctx, "game.next")
	defer span.End()
	next, sc, err := s.ctrl.NextScenario(s.state)
	if err != nil {
		span.RecordError(err)
		return catalog.Scenario{}, err
	}
	span.SetAttributes(attribute.String("scenario.id", sc.ID))
	s.commit(ctx, next)
	return sc, nil
}

// Reset starts the game over.
func (s *Session) Reset(ctx context.Context) {
	ctx, span := s.tracer.Start(ctx, "game.reset")
	defer span.End()
	s.commit(ctx, s.ctrl.Reset(s.state))
}

func (s *Session) Lessons() []catalog.Lesson { return s.ctrl.Lessons(s.state) }

func (s *Session) CompleteLesson(ctx context.Context, lessonID string, answer int) (LessonResult, error) {
	res, next, err := s.ctrl.CompleteLesson(s.state, lessonID, answer, s.now())
	if err != nil {
		return res, err
	}
	s.commit(ctx, next)
	return res, nil
}

// SetPremium switches the plan for this player.
func (s *Session) SetPremium(ctx context.Context, on bool) {
	next := s.state.Clone()
	next.Premium = on
	s.commit(ctx, next)
}

// Leaderboard returns the top players when the store can rank them.
func (s *Session) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	lb, ok := s.store.(Leaderboard)
	if !ok {
		return nil, nil
	}
	return lb.Top(ctx, limit)
}

// commit swaps in next and persists the difference. Persistence errors never
// undo the in-memory transition.
func (s *Session) commit(ctx context.Context, next PlayerState) {
	prev := s.state
	s.state = next
	patch := Diff(prev, next)
	if patch.Empty() {
		return
	}
	if _, err := s.store.Update(ctx, next.UserID, patch); err != nil {
		s.degrade(trace.SpanFromContext(ctx), "update progress", err)
		return
	}
	s.state.UpdatedAt = s.now()
}

func (s *Session) degrade(span trace.Span, op string, err error) {
	err = apperr.Wrap(apperr.CodePersistenceFailure, op, err)
	s.degraded = true
	s.lastErr = err
	span.RecordError(err)
	s.logger.Printf("offline: %v", err)
}
