package engine

import "fmt"

const (
	repairCost      = 75000
	comebackRepair  = 10000
	usedCarMin      = 150000
	usedCarMax      = 350000
	fuelAndParking  = 15000
	bargainPriceCap = 200000
)

func repairCar(r roll, money int) Outcome {
	t, _ := r.tier()
	paid, financed := settle(repairCost, money)
	o := Outcome{MoneyChange: -paid}
	switch t {
	case TierExcellent:
		o.Narrative = fmt.Sprintf("You found a trusted mechanic and paid %s. The car runs like new.", KSh(paid))
		o.Reasoning = "Fixing a known car is often cheaper than replacing it."
		if !financed {
			o.Badge = BadgeMaintenanceMaster
		}
	case TierModerate:
		o.Narrative = fmt.Sprintf("The repair cost %s and the car is running again.", KSh(paid))
		o.Consequence = "The mechanic warned more work may be needed next year."
		o.Reasoning = "A decent repair, though the car is aging."
	default:
		o.MoneyChange -= comebackRepair
		o.Narrative = fmt.Sprintf("The repair cost %s, and the car was back in the garage within a month.", KSh(paid))
		o.Consequence = fmt.Sprintf("A comeback repair cost another %s.", KSh(comebackRepair))
		o.Reasoning = "Cheap parts and a rushed job rarely last."
	}
	if financed {
		o.Consequence = joinNotes(o.Consequence, financedNote)
	}
	return o
}

var monthlyFares = map[Tier]int{TierExcellent: 8000, TierModerate: 10000, TierPoor: 12000}

func publicTransport(r roll, _ int) Outcome {
	t, _ := r.tier()
	fare := monthlyFares[t]
	o := Outcome{
		Narrative:   fmt.Sprintf("You switched to matatus. Fares run about %s a month against %s in fuel and parking.", KSh(fare), KSh(fuelAndParking)),
		MoneyChange: fuelAndParking - fare,
		Reasoning:   "Public transport trades time for money.",
	}
	if t == TierExcellent {
		o.Badge = BadgePublicTransportPro
	} else {
		o.Consequence = "Your commute is longer and less predictable."
	}
	return o
}

func usedCar(r roll, money int) Outcome {
	t, _ := r.tier()
	price := r.between(usedCarMin, usedCarMax, 1000)
	if price > money {
		loss := money * 4 / 5
		return Outcome{
			Narrative:   fmt.Sprintf("A decent car costs around %s. You could only afford an old one from a roadside dealer.", KSh(price)),
			MoneyChange: -loss,
			Consequence: "Expect frequent breakdowns.",
			Reasoning:   "Buying a car without savings limits you to the riskiest options.",
		}
	}
	o := Outcome{MoneyChange: -price}
	switch t {
	case TierExcellent:
		o.Narrative = fmt.Sprintf("A mechanic friend inspected it first. You paid %s for a car in great condition.", KSh(price))
		o.Reasoning = "A pre-purchase inspection is the cheapest insurance on a used car."
		if price < bargainPriceCap {
			o.Badge = BadgeBargainHunter
		}
	case TierModerate:
		o.MoneyChange -= 15000
		o.Narrative = fmt.Sprintf("You paid %s. It needed new tyres within weeks.", KSh(price))
		o.Consequence = "Small repairs keep coming up."
		o.Reasoning = "Most used cars need some work."
	default:
		o.MoneyChange -= 40000
		o.Narrative = fmt.Sprintf("You paid %s, and the engine turned out to have hidden problems.", KSh(price))
		o.Consequence = "Major engine repairs on a car you just bought."
		o.Reasoning = "Skipping the inspection was expensive."
	}
	return o
}

func carpool(r roll, _ int) Outcome {
	t, _ := r.tier()
	switch t {
	case TierExcellent:
		return Outcome{
			Narrative:   "Three coworkers joined your carpool and share fuel and parking.",
			MoneyChange: 12000,
			Badge:       BadgeCommunityBuilder,
			Reasoning:   "Shared costs while the car waits for a proper repair.",
		}
	case TierModerate:
		return Outcome{
			Narrative:   "One colleague offered rides most days.",
			MoneyChange: 6000,
			Consequence: "Your schedule depends on theirs.",
			Reasoning:   "A partial fix that buys you time.",
		}
	default:
		return Outcome{
			Narrative:   "The carpool fell apart after a few weeks.",
			MoneyChange: 2000,
			Consequence: "You're back to finding your own way to work.",
			Reasoning:   "Informal arrangements need someone to keep them going.",
		}
	}
}
