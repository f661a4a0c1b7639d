package game

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/DaanHessen/budgethero/internal/apperr"
	"github.com/DaanHessen/budgethero/internal/catalog"
	"github.com/DaanHessen/budgethero/internal/engine"
)

// CustomChoiceID marks a free-text choice typed by the player.
const CustomChoiceID = "custom"

var (
	ErrUnknownLesson = errors.New("unknown lesson")
	ErrLessonLocked  = errors.New("lesson requires premium")
)

// Controller runs single decisions. It holds no player state.
type Controller struct {
	catalog *catalog.Catalog
	eval    engine.Evaluator
	picker  catalog.Picker
	lessons []catalog.Lesson
	logger  *log.Logger
}

type Option func(*Controller)

func WithLessons(l []catalog.Lesson) Option { return func(c *Controller) { c.lessons = l } }

func WithLogger(l *log.Logger) Option { return func(c *Controller) { c.logger = l } }

func NewController(cat *catalog.Catalog, eval engine.Evaluator, picker catalog.Picker, opts ...Option) *Controller {
	c := &Controller{catalog: cat, eval: eval, picker: picker, logger: log.New(io.Discard, "", 0)}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Controller) Catalog() *catalog.Catalog { return c.catalog }

// CurrentScenario resolves the scenario the player is on, falling back to the
// first catalog entry when the stored id no longer exists.
func (c *Controller) CurrentScenario(p PlayerState) (catalog.Scenario, error) {
	return c.catalog.SelectInitialOrCurrent(p.CurrentScenarioID, c.picker)
}

// SubmitChoice evaluates choice against the current scenario and returns the
// outcome with the resulting state. It never fails: evaluator panics and invalid
// outcomes become a neutral outcome.
func (c *Controller) SubmitChoice(choice catalog.Choice, p PlayerState) (engine.Outcome, PlayerState) {
	title := ""
	if sc, err := c.CurrentScenario(p); err == nil {
		title = sc.Title
	}
	ctx := engine.Context{
		ScenarioTitle: title,
		CurrentMoney:  p.MoneySaved,
		ScenarioState: p.Clone().ScenarioState,
		Premium:       p.Premium,
	}
	o, err := c.evaluate(choice.Text, ctx)
	if err != nil {
		c.logger.Printf("choice %q on %q: %v", choice.ID, p.CurrentScenarioID, err)
		o = engine.Neutral("Error in outcome generation: " + err.Error())
	}
	return o, ApplyOutcome(p, choice.ID, o)
}

// SubmitText evaluates a free-text choice.
func (c *Controller) SubmitText(text string, p PlayerState) (engine.Outcome, PlayerState) {
	return c.SubmitChoice(catalog.Choice{ID: CustomChoiceID, Text: text}, p)
}

func (c *Controller) evaluate(text string, ctx engine.Context) (o engine.Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperr.New(apperr.CodeEvaluationFailure, fmt.Sprintf("evaluator panicked: %v", r))
		}
	}()
	o = c.eval.Evaluate(text, ctx)
	if !o.Valid() {
		return engine.Outcome{}, apperr.New(apperr.CodeEvaluationFailure, "evaluator returned an invalid outcome")
	}
	return o, nil
}

// NextScenario draws a random scenario and points the player at it.
func (c *Controller) NextScenario(p PlayerState) (PlayerState, catalog.Scenario, error) {
	sc, err := c.catalog.Random(c.picker)
	if err != nil {
		return p, catalog.Scenario{}, err
	}
	next := p.Clone()
	next.CurrentScenarioID = sc.ID
	return next, sc, nil
}

// Reset restores a fresh game. Identity, plan and the lesson bonus day are kept.
func (c *Controller) Reset(p PlayerState) PlayerState {
	next := NewPlayerState(p.UserID)
	next.Premium = p.Premium
	next.LastLessonDay = p.LastLessonDay
	next.CreatedAt = p.CreatedAt
	return next
}

// Lessons lists the lessons open to p.
func (c *Controller) Lessons(p PlayerState) []catalog.Lesson {
	return catalog.AvailableLessons(c.lessons, p.Premium)
}

type LessonResult struct {
	Lesson  catalog.Lesson
	Correct bool
	Bonus   int
}

// CompleteLesson records a finished lesson. The bonus is paid once per calendar day.
func (c *Controller) CompleteLesson(p PlayerState, lessonID string, answer int, now time.Time) (LessonResult, PlayerState, error) {
	l, ok := catalog.LessonByID(c.lessons, lessonID)
	if !ok {
		return LessonResult{}, p, fmt.Errorf("%w: %s", ErrUnknownLesson, lessonID)
	}
	if l.Premium && !p.Premium {
		return LessonResult{}, p, ErrLessonLocked
	}
	res := LessonResult{Lesson: l, Correct: l.Answer(answer)}
	day := now.Format(time.DateOnly)
	if p.LastLessonDay == day {
		return res, p, nil
	}
	next := p.Clone()
	next.MoneySaved += LessonBonus
	next.LastLessonDay = day
	res.Bonus = LessonBonus
	return res, next, nil
}
