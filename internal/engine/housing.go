package engine

import "fmt"

const (
	rentIncrease  = 15000
	movingCostMin = 60000
	movingCostMax = 90000
	// horizonMonths is the window monthly savings are counted over.
	horizonMonths = 6
)

func negotiateRent(r roll, _ int) Outcome {
	t, eff := r.tier()
	switch t {
	case TierExcellent:
		return Outcome{
			Narrative:   fmt.Sprintf("Your market research paid off. You showed the landlord three comparable listings and the increase was dropped entirely. You keep %s a month.", KSh(rentIncrease)),
			MoneyChange: rentIncrease,
			Badge:       BadgeMasterNegotiator,
			Reasoning:   "Comparable listings below the new rent gave you real leverage.",
		}
	case TierModerate:
		return Outcome{
			Narrative:   fmt.Sprintf("The landlord met you halfway and cut the increase to %s.", KSh(rentIncrease-8000)),
			MoneyChange: 8000,
			Badge:       ternary(eff > 0.55, BadgeSilverTongue, Badge("")),
			Reasoning:   "A partial win. Landlords often split the difference with reliable tenants.",
		}
	default:
		return Outcome{
			Narrative:   fmt.Sprintf("The landlord would not budge. You pay the full %s increase.", KSh(rentIncrease)),
			MoneyChange: -rentIncrease,
			Consequence: "The landlord is less flexible with you now.",
			Reasoning:   "Without a credible alternative lined up, the landlord had no reason to move.",
		}
	}
}

type area struct {
	name    string
	saving  int
	commute int
}

var moveAreas = map[Tier]area{
	TierExcellent: {"Kasarani", 30000, 4000},
	TierModerate:  {"Kahawa West", 22000, 5000},
	TierPoor:      {"Githurai", 14000, 6000},
}

func moveOut(r roll, money int) Outcome {
	t, _ := r.tier()
	cost := r.between(movingCostMin, movingCostMax, 500)
	if cost > money {
		return Outcome{
			Narrative:   fmt.Sprintf("You found a cheaper place but could not raise the %s deposit and moving costs. You stay and absorb the increase.", KSh(cost)),
			MoneyChange: -rentIncrease,
			Consequence: "You're paying more rent until you have a moving fund.",
			Reasoning:   "Moving needs cash up front. Without savings the cheaper option is out of reach.",
		}
	}
	a := moveAreas[t]
	net := horizonMonths*(a.saving-a.commute) - cost
	o := Outcome{
		Narrative: fmt.Sprintf("You moved to %s. Rent is %s lower each month, the commute costs %s, and moving cost %s.",
			a.name, KSh(a.saving), KSh(a.commute), KSh(cost)),
		MoneyChange: net,
		Reasoning:   fmt.Sprintf("Six months of rent savings minus commute and moving costs: %s.", Signed(net)),
	}
	switch t {
	case TierExcellent:
		o.Badge = BadgeSmartMover
	case TierModerate:
		o.Consequence = "Your commute is longer than before."
	default:
		o.Consequence = "The commute is long and the savings are thinner than you hoped."
	}
	return o
}

func budgetForIncrease(r roll, _ int) Outcome {
	t, _ := r.tier()
	switch t {
	case TierExcellent:
		return Outcome{
			Narrative:   "You tracked every shilling and cut takeaways and subscriptions. Most of the increase is covered by savings elsewhere.",
			MoneyChange: -5000,
			Badge:       BadgeBudgetMaster,
			Reasoning:   "A line-by-line budget recovers more than people expect.",
		}
	case TierModerate:
		return Outcome{
			Narrative:   "You trimmed some spending, but the increase still bites.",
			MoneyChange: -9000,
			Reasoning:   "Partial cuts offset part of the increase.",
		}
	default:
		return Outcome{
			Narrative:   "The budget didn't hold. Small expenses crept back in.",
			MoneyChange: -13000,
			Consequence: "Less room for savings each month.",
			Reasoning:   "Without tracking, cuts rarely stick.",
		}
	}
}

func findRoommate(r roll, _ int) Outcome {
	t, _ := r.tier()
	switch t {
	case TierExcellent:
		return Outcome{
			Narrative:   "You screened carefully and found a tidy, reliable roommate who pays on time.",
			MoneyChange: 25000,
			Badge:       BadgeSocialButterfly,
			Reasoning:   "Sharing halves the rent when the match is good.",
		}
	case TierModerate:
		return Outcome{
			Narrative:   "The roommate is fine, and your costs dropped.",
			MoneyChange: 18000,
			Consequence: "Splitting chores takes some negotiating.",
			Reasoning:   "A decent match still saves a lot.",
		}
	default:
		return Outcome{
			Narrative:   "Your roommate is often late with their share.",
			MoneyChange: 8000,
			Consequence: "You sometimes cover their half of the utilities.",
			Reasoning:   "Skipping the screening is expensive.",
		}
	}
}
