package engine

import "fmt"

const (
	windfallAmount  = 250000
	outstandingDebt = 200000
)

func splitWindfall(r roll, _ int) Outcome {
	t, _ := r.tier()
	switch t {
	case TierExcellent:
		return Outcome{
			Narrative:   "You cleared the costliest debt, banked a cushion, and kept a small fun budget you actually stuck to.",
			MoneyChange: windfallAmount - 10000,
			Badge:       BadgeBalancedPlanner,
			Reasoning:   "A plan with room for enjoyment is easier to keep.",
		}
	case TierModerate:
		return Outcome{
			Narrative:   "The split mostly worked, though the fun portion grew a little.",
			MoneyChange: windfallAmount - 50000,
			Reasoning:   "Close to plan.",
		}
	default:
		return Outcome{
			Narrative:   "The fun budget ran over and ate into the savings share.",
			MoneyChange: windfallAmount - 90000,
			Consequence: "Less of the bonus is working for you.",
			Reasoning:   "Loose splits drift toward spending.",
		}
	}
}

func payDebt(r roll, _ int) Outcome {
	t, _ := r.tier()
	switch t {
	case TierExcellent:
		return Outcome{
			Narrative:   fmt.Sprintf("You paid off the %s in debt, highest interest first, starting with the digital lenders.", KSh(outstandingDebt)),
			MoneyChange: windfallAmount + 50000,
			Badge:       BadgeDebtDestroyer,
			Reasoning:   "Interest you no longer pay is a guaranteed return.",
		}
	case TierModerate:
		return Outcome{
			Narrative:   "You cleared most of the debt and the monthly repayments dropped.",
			MoneyChange: windfallAmount + 30000,
			Reasoning:   "Good interest savings, with a few balances left.",
		}
	default:
		return Outcome{
			Narrative:   "You cleared the small balances first and left the expensive digital loans running.",
			MoneyChange: windfallAmount + 10000,
			Consequence: "The costliest loans are still charging interest.",
			Reasoning:   "Order matters when paying off debt.",
		}
	}
}

// investReturns[tier] holds the gain for a good, flat and bad market.
var investReturns = map[Tier][3]int{
	TierExcellent: {40000, 10000, -5000},
	TierModerate:  {25000, 5000, -15000},
	TierPoor:      {10000, -5000, -25000},
}

func investWindfall(r roll, _ int) Outcome {
	t, _ := r.tier()
	m := r.draw()
	market := 2
	switch {
	case m > 0.6:
		market = 0
	case m > 0.3:
		market = 1
	}
	gain := investReturns[t][market]
	o := Outcome{
		MoneyChange: windfallAmount + gain,
		Reasoning:   fmt.Sprintf("Investment result after six months: %s.", Signed(gain)),
	}
	switch t {
	case TierExcellent:
		o.Narrative = "You spread the money across SACCO shares, a money market fund and an index fund."
	case TierModerate:
		o.Narrative = "You put most of it into one SACCO."
	default:
		o.Narrative = "You bought shares in a single company a friend recommended."
	}
	if t == TierExcellent && market != 2 {
		o.Badge = BadgeSmartInvestor
	}
	if market == 2 {
		o.Consequence = "Markets dipped. Your portfolio is down for now."
	}
	return o
}

func emergencyFund(r roll, _ int) Outcome {
	t, _ := r.tier()
	switch t {
	case TierExcellent:
		return Outcome{
			Narrative:   "You parked the bonus in a money market fund earning around 8%. Your emergency fund is fully built.",
			MoneyChange: windfallAmount + 20000,
			Badge:       BadgeEmergencyFundHero,
			Reasoning:   "Liquid and earning. The next emergency won't become debt.",
		}
	case TierModerate:
		return Outcome{
			Narrative:   "You opened a savings account for emergencies. Safe, with modest interest.",
			MoneyChange: windfallAmount + 5000,
			Reasoning:   "Safe, though the money could earn more.",
		}
	default:
		return Outcome{
			Narrative:   "You kept the money on M-Pesa, and some of it slowly got spent.",
			MoneyChange: windfallAmount - 20000,
			Consequence: "Easy access made it easy to spend.",
			Reasoning:   "An emergency fund works best out of daily reach.",
		}
	}
}
