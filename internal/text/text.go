// Package text builds the markdown shown by the TUI and renders it.
package text

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/DaanHessen/budgethero/internal/catalog"
	"github.com/DaanHessen/budgethero/internal/engine"
	"github.com/DaanHessen/budgethero/internal/game"
)

// Renderer turns markdown into terminal output.
type Renderer interface {
	Render(md string) (string, error)
}

type plainRenderer struct{}

// Plain returns markdown unchanged.
func Plain() Renderer { return plainRenderer{} }

func (plainRenderer) Render(md string) (string, error) { return md, nil }

// NewGlamour returns a glamour renderer wrapped to width.
func NewGlamour(width int) (Renderer, error) {
	if width <= 0 {
		width = 80
	}
	return glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
}

// WithFallback returns a renderer that prefers primary and falls back on error.
func WithFallback(primary, fallback Renderer) Renderer {
	return &fallbackRenderer{p: primary, f: fallback}
}

type fallbackRenderer struct{ p, f Renderer }

func (r *fallbackRenderer) Render(md string) (string, error) {
	if r.p == nil {
		return r.f.Render(md)
	}
	if s, err := r.p.Render(md); err == nil {
		return s, nil
	}
	return r.f.Render(md)
}

// Scenario is the scenario card with its lettered choices.
func Scenario(sc catalog.Scenario) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", sc.Title)
	fmt.Fprintf(&b, "_%s · %s_\n\n", titleCase(string(sc.Category)), sc.Difficulty)
	if sc.Description != "" {
		b.WriteString(sc.Description + "\n\n")
	}
	if sc.Situation != "" {
		b.WriteString("> " + sc.Situation + "\n\n")
	}
	b.WriteString("## What will you do?\n\n")
	for i, c := range sc.Choices {
		fmt.Fprintf(&b, "- **%s.** %s\n", catalog.Label(i), c.Text)
	}
	return b.String()
}

// Outcome renders the parts of o listed in shown, in reveal order.
func Outcome(o engine.Outcome, shown map[game.RevealPart]bool) string {
	var b strings.Builder
	b.WriteString("## Outcome\n\n")
	if shown[game.RevealNarrative] {
		b.WriteString(o.Narrative + "\n\n")
	}
	if shown[game.RevealMoney] && o.MoneyChange != 0 {
		fmt.Fprintf(&b, "**%s**\n\n", engine.Signed(o.MoneyChange))
	}
	if shown[game.RevealBadge] && o.Badge != "" {
		fmt.Fprintf(&b, "🏅 New badge: **%s**\n\n", o.Badge)
	}
	if shown[game.RevealConsequence] && o.Consequence != "" {
		fmt.Fprintf(&b, "_%s_\n", o.Consequence)
	}
	return b.String()
}

// FullOutcome renders every part of o.
func FullOutcome(o engine.Outcome) string {
	shown := map[game.RevealPart]bool{}
	for _, s := range game.Reveal(o) {
		shown[s.Part] = true
	}
	return Outcome(o, shown)
}

// Status is the one-line progress summary.
func Status(p game.PlayerState) string {
	return fmt.Sprintf("%s saved · %s · %d badges · %.0f%% to goal",
		engine.KSh(p.MoneySaved), p.Level(), len(p.Badges), game.GoalProgress(p.MoneySaved)*100)
}

// Lesson renders the lesson body followed by its quiz.
func Lesson(l catalog.Lesson) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n_%d min read_", l.Title, l.Minutes)
	if l.Premium {
		b.WriteString(" · _premium_")
	}
	b.WriteString("\n\n")
	for i, step := range l.Content {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	b.WriteString("\n## Quick quiz\n\n")
	b.WriteString(l.Quiz.Question + "\n\n")
	for i, opt := range l.Quiz.Options {
		fmt.Fprintf(&b, "- **%d.** %s\n", i+1, opt)
	}
	return b.String()
}

// LessonResult renders the quiz feedback.
func LessonResult(r game.LessonResult) string {
	var b strings.Builder
	if r.Correct {
		b.WriteString("✅ Correct!\n\n")
	} else {
		fmt.Fprintf(&b, "❌ Not quite. The answer was **%s**.\n\n", r.Lesson.Quiz.Options[r.Lesson.Quiz.Correct])
	}
	if r.Bonus > 0 {
		fmt.Fprintf(&b, "Daily learning bonus: **%s**\n", engine.Signed(r.Bonus))
	} else {
		b.WriteString("Today's learning bonus has already been collected.\n")
	}
	return b.String()
}

// LessonList renders the lesson menu.
func LessonList(ls []catalog.Lesson) string {
	var b strings.Builder
	b.WriteString("# Lessons\n\n")
	if len(ls) == 0 {
		b.WriteString("No lessons available.\n")
		return b.String()
	}
	for i, l := range ls {
		fmt.Fprintf(&b, "- **%d.** %s (%d min)\n", i+1, l.Title, l.Minutes)
	}
	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
