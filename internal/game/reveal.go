package game

import (
	"time"

	"github.com/DaanHessen/budgethero/internal/engine"
)

// ThinkDelay is the pause shown before an outcome is revealed.
const ThinkDelay = 1200 * time.Millisecond

type RevealPart string

const (
	RevealNarrative   RevealPart = "narrative"
	RevealMoney       RevealPart = "money"
	RevealBadge       RevealPart = "badge"
	RevealConsequence RevealPart = "consequence"
)

// RevealStep says when a part appears, measured from the start of the reveal.
type RevealStep struct {
	Part RevealPart
	At   time.Duration
}

// Reveal returns the staged order for showing o. Empty parts are skipped.
func Reveal(o engine.Outcome) []RevealStep {
	steps := []RevealStep{{RevealNarrative, 300 * time.Millisecond}}
	if o.MoneyChange != 0 {
		steps = append(steps, RevealStep{RevealMoney, 1000 * time.Millisecond})
	}
	if o.Badge != "" {
		steps = append(steps, RevealStep{RevealBadge, 1500 * time.Millisecond})
	}
	if o.Consequence != "" {
		steps = append(steps, RevealStep{RevealConsequence, 1800 * time.Millisecond})
	}
	return steps
}
