package engine

import "fmt"

const (
	baseSalary      = 60000
	raisePct        = 40
	costOfLivingPct = 15
	leaseBreak      = 30000
	researchTrip    = 8000
)

func monthlyRaise() int { return baseSalary * raisePct / 100 }

// netRaise is the monthly raise after Mombasa's higher cost of living.
func netRaise() int { return monthlyRaise() - baseSalary*costOfLivingPct/100 }

func negotiateRemote(r roll, _ int) Outcome {
	t, _ := r.tier()
	full := horizonMonths * monthlyRaise()
	switch t {
	case TierExcellent:
		return Outcome{
			Narrative:   "Your manager agreed: full promotion, fully remote from Nairobi. No relocation, no lease penalty.",
			MoneyChange: full,
			Badge:       BadgeMasterNegotiator,
			Reasoning:   fmt.Sprintf("Six months of the full %s raise without higher living costs.", KSh(monthlyRaise())),
		}
	case TierModerate:
		return Outcome{
			Narrative:   "You got a hybrid deal: the promotion with a monthly week in Mombasa.",
			MoneyChange: full / 2,
			Consequence: "Regular travel eats into the raise.",
			Reasoning:   "Hybrid arrangements split the difference.",
		}
	default:
		return Outcome{
			Narrative:   "The company wanted someone on site. You kept a smaller raise in your current role.",
			MoneyChange: full / 4,
			Consequence: "Passed over for the full role this cycle.",
			Reasoning:   "Remote requests need a track record behind them.",
		}
	}
}

func acceptOffer(r roll, money int) Outcome {
	t, _ := r.tier()
	paid, financed := settle(leaseBreak, money)
	gain := horizonMonths*netRaise() - paid
	o := Outcome{Reasoning: fmt.Sprintf("Six months of a %s net raise after living costs, minus %s to break the lease.", KSh(netRaise()), KSh(paid))}
	switch t {
	case TierExcellent:
		o.Narrative = "You settled into Mombasa quickly and the new role suits you."
		o.MoneyChange = gain
		o.Badge = BadgeCareerClimber
	case TierModerate:
		o.Narrative = "The move went fine, though settling in cost more than planned."
		o.MoneyChange = gain - 15000
		o.Consequence = "Settling in took longer and cost more than expected."
	default:
		o.Narrative = "You're struggling to adapt to the new city. The raise barely covers the upheaval."
		o.MoneyChange = gain - 45000
		o.Consequence = "Homesick and stretched thin for now."
	}
	if financed {
		o.Consequence = joinNotes(o.Consequence, financedNote)
	}
	return o
}

func declineOffer(r roll, _ int) Outcome {
	t, _ := r.tier()
	switch t {
	case TierExcellent:
		return Outcome{
			Narrative:   "You declined politely, and your manager countered with a retention bonus to keep you.",
			MoneyChange: 20000,
			Badge:       BadgeSteadyHand,
			Reasoning:   "Being valued where you are has a price too.",
		}
	case TierModerate:
		return Outcome{
			Narrative:   "You stayed put and got a small adjustment at the next review.",
			MoneyChange: 5000,
			Reasoning:   "Stability, with a modest bump.",
		}
	default:
		return Outcome{
			Narrative:   "You stayed in your role. Nothing changed.",
			Consequence: "Your manager notes you're not looking to grow.",
			Reasoning:   "Turning down growth can stall a career.",
		}
	}
}

func researchOffer(r roll, money int) Outcome {
	t, _ := r.tier()
	trip, financed := settle(researchTrip, money)
	o := Outcome{}
	switch t {
	case TierExcellent:
		o.Narrative = "Your research trip turned up housing near the office, and you used it to negotiate a relocation package that covers the lease."
		o.MoneyChange = horizonMonths*netRaise() - trip
		o.Badge = BadgeDueDiligence
		o.Reasoning = "Knowing the real costs let you ask for the right support."
	case TierModerate:
		o.Narrative = "You went in informed and accepted. No surprises."
		o.MoneyChange = horizonMonths*netRaise() - leaseBreak - trip
		o.Reasoning = "Research avoided costly mistakes."
	default:
		o.Narrative = "The offer went to another candidate while you deliberated."
		o.MoneyChange = -trip
		o.Consequence = "You missed this opportunity."
		o.Reasoning = "Offers have deadlines."
	}
	if financed {
		o.Consequence = joinNotes(o.Consequence, financedNote)
	}
	return o
}
