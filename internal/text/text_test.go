package text

import (
	"errors"
	"strings"
	"testing"

	"github.com/DaanHessen/budgethero/internal/catalog"
	"github.com/DaanHessen/budgethero/internal/engine"
	"github.com/DaanHessen/budgethero/internal/game"
)

func TestScenarioListsLabelledChoices(t *testing.T) {
	sc := catalog.Scenario{
		ID: "rent_increase", Title: "Rent Shock!", Category: catalog.CategoryHousing, Difficulty: catalog.DifficultyMedium,
		Situation: "Your landlord wants KSh 15,000 more.",
		Choices:   []catalog.Choice{{ID: "a", Text: "Negotiate"}, {ID: "b", Text: "Move out"}},
	}
	md := Scenario(sc)
	for _, want := range []string{"# Rent Shock!", "Housing", "> Your landlord", "**A.** Negotiate", "**B.** Move out"} {
		if !strings.Contains(md, want) {
			t.Fatalf("scenario markdown missing %q:\n%s", want, md)
		}
	}
}

func TestOutcomeRevealsOnlyShownParts(t *testing.T) {
	o := engine.Outcome{Narrative: "It worked.", MoneyChange: 15000, Badge: "Master Negotiator", Consequence: "Landlord respects you."}
	partial := Outcome(o, map[game.RevealPart]bool{game.RevealNarrative: true})
	if !strings.Contains(partial, "It worked.") || strings.Contains(partial, "Master Negotiator") {
		t.Fatalf("partial reveal wrong:\n%s", partial)
	}
	full := FullOutcome(o)
	for _, want := range []string{"It worked.", "+KSh 15,000", "Master Negotiator", "Landlord respects you."} {
		if !strings.Contains(full, want) {
			t.Fatalf("full outcome missing %q:\n%s", want, full)
		}
	}
}

func TestStatusLine(t *testing.T) {
	p := game.NewPlayerState("u")
	got := Status(p)
	if !strings.Contains(got, "KSh 50,000") || !strings.Contains(got, "BEGINNER") || !strings.Contains(got, "10%") {
		t.Fatalf("status = %q", got)
	}
}

func TestLessonAndResult(t *testing.T) {
	l := catalog.Lesson{ID: "x", Title: "Basics", Minutes: 3, Content: []string{"Save first."},
		Quiz: catalog.Quiz{Question: "How many months?", Options: []string{"One", "Three to six"}, Correct: 1}}
	md := Lesson(l)
	if !strings.Contains(md, "1. Save first.") || !strings.Contains(md, "**2.** Three to six") {
		t.Fatalf("lesson markdown:\n%s", md)
	}
	wrong := LessonResult(game.LessonResult{Lesson: l, Correct: false})
	if !strings.Contains(wrong, "Three to six") || !strings.Contains(wrong, "already been collected") {
		t.Fatalf("result markdown:\n%s", wrong)
	}
}

type failingRenderer struct{}

func (failingRenderer) Render(string) (string, error) { return "", errors.New("no tty") }

func TestWithFallback(t *testing.T) {
	r := WithFallback(failingRenderer{}, Plain())
	out, err := r.Render("# hi")
	if err != nil || out != "# hi" {
		t.Fatalf("fallback render = %q, %v", out, err)
	}
	out, err = WithFallback(nil, Plain()).Render("x")
	if err != nil || out != "x" {
		t.Fatalf("nil primary render = %q, %v", out, err)
	}
}
