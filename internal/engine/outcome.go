package engine

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Context is what the rules know about the player when evaluating a choice.
// ScenarioState is passed through untouched.
type Context struct {
	ScenarioTitle string
	CurrentMoney  int
	ScenarioState map[string]string
	Premium       bool
}

// Outcome is the structured result of one evaluation.
type Outcome struct {
	Narrative   string
	MoneyChange int
	Badge       Badge
	Consequence string
	Reasoning   string
}

// Valid reports whether o can be shown and applied.
func (o Outcome) Valid() bool {
	return strings.TrimSpace(o.Narrative) != "" && (o.Badge == "" || o.Badge.Validate() == nil)
}

// Neutral is the zero-impact outcome used when evaluation cannot complete.
func Neutral(reasoning string) Outcome {
	return Outcome{
		Narrative: "Something unexpected happened, but you learned from the experience.",
		Reasoning: reasoning,
	}
}

// Evaluator turns a choice into an outcome. Rules is the production implementation.
type Evaluator interface {
	Evaluate(choiceText string, c Context) Outcome
}

// Rules evaluates choices against the keyword rules using src for every draw.
type Rules struct {
	src Source
}

func NewRules(src Source) *Rules { return &Rules{src: src} }

func (r *Rules) Evaluate(choiceText string, c Context) Outcome {
	return Evaluate(choiceText, c, r.src)
}

type handler func(r roll, money int) Outcome

var handlers = map[Intent]handler{
	IntentGeneral: general,

	IntentNegotiateRent: negotiateRent,
	IntentMove:          moveOut,
	IntentBudget:        budgetForIncrease,
	IntentRoommate:      findRoommate,

	IntentNegotiateRemote: negotiateRemote,
	IntentAcceptOffer:     acceptOffer,
	IntentDecline:         declineOffer,
	IntentResearch:        researchOffer,

	IntentSplit:         splitWindfall,
	IntentPayDebt:       payDebt,
	IntentInvest:        investWindfall,
	IntentEmergencyFund: emergencyFund,

	IntentInsurance:   claimInsurance,
	IntentPaymentPlan: paymentPlan,
	IntentLoan:        medicalLoan,
	IntentFamilyHelp:  familyHelp,
	IntentDelay:       delayPayment,

	IntentCarpool:         carpool,
	IntentPublicTransport: publicTransport,
	IntentUsedCar:         usedCar,
	IntentRepair:          repairCar,
}

// Evaluate maps a free-text choice to an outcome. It never panics for any string;
// the only randomness comes from src.
func Evaluate(choiceText string, c Context, src Source) Outcome {
	route := Classify(choiceText, c.ScenarioTitle)
	h, ok := handlers[route.Intent]
	if !ok {
		h = general
	}
	money := c.CurrentMoney
	if money < 0 {
		money = 0
	}
	return h(roll{src: src, premium: c.Premium}, money)
}

// PremiumEdge is added to every tier draw for premium players. Magnitude draws
// (prices, markets, availability) are never shifted.
const PremiumEdge = 0.15

// TierFor partitions a draw into a quality tier.
func TierFor(draw float64, premium bool) Tier {
	eff := Effective(draw, premium)
	switch {
	case eff > 0.7:
		return TierExcellent
	case eff > 0.4:
		return TierModerate
	default:
		return TierPoor
	}
}

// Effective is the draw after the premium shift.
func Effective(draw float64, premium bool) float64 {
	d := unit(draw)
	if premium {
		d += PremiumEdge
	}
	return d
}

// roll wraps a source for one evaluation. Every handler consumes a fixed number
// of draws so premium and non-premium calls stay aligned on the same sequence.
type roll struct {
	src     Source
	premium bool
}

func (r roll) draw() float64 { return unit(r.src.Float64()) }

// tier draws a skill value and returns its tier and shifted value.
func (r roll) tier() (Tier, float64) {
	d := r.draw()
	return TierFor(d, r.premium), Effective(d, r.premium)
}

// between draws an amount in [lo, hi) rounded down to step.
func (r roll) between(lo, hi, step int) int {
	v := lo + int(r.draw()*float64(hi-lo))
	if step > 1 {
		v -= (v - lo) % step
	}
	return v
}

// loanPremiumPct is what a digital lender adds when an upfront cost cannot be covered.
const loanPremiumPct = 20

// settle applies the affordability gate to an upfront cost. Unaffordable costs
// are financed and cost more.
func settle(cost, money int) (paid int, financed bool) {
	if cost <= money {
		return cost, false
	}
	return cost + cost*loanPremiumPct/100, true
}

const financedNote = "You had to borrow from a digital lender at steep interest to cover it."

func joinNotes(notes ...string) string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		if n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, " ")
}

var printer = message.NewPrinter(language.English)

// KSh formats an amount in Kenyan shillings with digit grouping.
func KSh(n int) string {
	if n < 0 {
		return printer.Sprintf("-KSh %d", -n)
	}
	return printer.Sprintf("KSh %d", n)
}

// Signed formats a money delta with an explicit sign.
func Signed(n int) string {
	if n > 0 {
		return "+" + KSh(n)
	}
	return KSh(n)
}
