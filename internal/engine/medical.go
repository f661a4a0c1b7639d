package engine

import "fmt"

const medicalBill = 150000

// coveragePct is the share of the bill NHIF covers by how well the claim was handled.
var coveragePct = map[Tier]int{TierExcellent: 85, TierModerate: 75, TierPoor: 60}

func claimInsurance(r roll, money int) Outcome {
	t, _ := r.tier()
	active := r.draw() > 0.2
	outOfPocket := medicalBill
	if active {
		outOfPocket = medicalBill * (100 - coveragePct[t]) / 100
	}
	paid, financed := settle(outOfPocket, money)
	o := Outcome{MoneyChange: -paid}
	if active {
		o.Narrative = fmt.Sprintf("NHIF covered %d%% of the bill. You paid %s out of pocket.", coveragePct[t], KSh(paid))
		o.Reasoning = "Knowing your cover and filing correctly reduces what you owe."
		if t.AtLeast(TierModerate) {
			o.Badge = BadgeInsuranceWise
		}
	} else {
		o.Narrative = fmt.Sprintf("Your NHIF cover had lapsed. You paid the full %s.", KSh(paid))
		o.Consequence = "Reinstate your cover before the next emergency."
		o.Reasoning = "Insurance only helps if contributions are current."
	}
	if financed {
		o.Consequence = joinNotes(o.Consequence, financedNote)
	}
	return o
}

var firstInstallment = map[Tier]int{TierExcellent: 15000, TierModerate: 20000, TierPoor: 25000}

func paymentPlan(r roll, money int) Outcome {
	t, _ := r.tier()
	paid, financed := settle(firstInstallment[t], money)
	o := Outcome{MoneyChange: -paid}
	switch t {
	case TierExcellent:
		o.Narrative = fmt.Sprintf("The hospital agreed to an interest-free plan. First installment: %s.", KSh(paid))
		o.Reasoning = "Hospitals often prefer a plan to chasing a debt."
	case TierModerate:
		o.Narrative = fmt.Sprintf("You got a payment plan with some interest. First installment: %s.", KSh(paid))
		o.Consequence = "Interest is added to the remaining balance."
		o.Reasoning = "A plan spreads the cost, at a price."
	default:
		o.Narrative = fmt.Sprintf("The plan was strict and you missed a date. You paid %s including late fees.", KSh(paid))
		o.Consequence = "Late fees on every missed installment."
		o.Reasoning = "Only agree to installments you can actually meet."
	}
	if financed {
		o.Consequence = joinNotes(o.Consequence, financedNote)
	}
	return o
}

var loanInterest = map[Tier]int{TierExcellent: 18000, TierModerate: 30000, TierPoor: 60000}

func medicalLoan(r roll, _ int) Outcome {
	t, _ := r.tier()
	interest := loanInterest[t]
	o := Outcome{
		MoneyChange: -interest,
		Reasoning:   fmt.Sprintf("The loan clears the bill; what it costs you is %s in interest and fees.", KSh(interest)),
	}
	switch t {
	case TierExcellent:
		o.Narrative = "Your SACCO approved a low-interest emergency loan within a day."
	case TierModerate:
		o.Narrative = "The bank approved a personal loan at a fair rate."
	default:
		o.Narrative = "You took a digital loan. Approval was instant, and so were the fees."
		o.Consequence = "The digital lender's fees keep piling up."
	}
	return o
}

var familyShare = map[Tier]int{TierExcellent: 25000, TierModerate: 60000, TierPoor: 100000}

func familyHelp(r roll, money int) Outcome {
	t, _ := r.tier()
	available := r.draw() > 0.15
	share := medicalBill
	if available {
		share = familyShare[t]
	}
	paid, financed := settle(share, money)
	o := Outcome{MoneyChange: -paid}
	switch {
	case !available:
		o.Narrative = fmt.Sprintf("Family couldn't contribute this time. You covered %s yourself.", KSh(paid))
		o.Consequence = "Everyone is stretched right now."
		o.Reasoning = "Community support isn't always available when you need it."
	case t == TierExcellent:
		o.Narrative = fmt.Sprintf("The harambee raised most of the bill. Your share was %s.", KSh(paid))
		o.Badge = BadgeCommunityChampion
		o.Reasoning = "Strong community ties are a real safety net."
	case t == TierModerate:
		o.Narrative = fmt.Sprintf("Relatives chipped in. You still paid %s.", KSh(paid))
		o.Reasoning = "Family helped, but not with everything."
	default:
		o.Narrative = fmt.Sprintf("Only a little came in from family. You paid %s.", KSh(paid))
		o.Consequence = "Some relatives expect help in return."
		o.Reasoning = "Asking late limits how much people can plan to give."
	}
	if financed {
		o.Consequence = joinNotes(o.Consequence, financedNote)
	}
	return o
}

var delayedSettlement = map[Tier]int{TierExcellent: 100000, TierModerate: medicalBill, TierPoor: medicalBill + 45000}

func delayPayment(r roll, money int) Outcome {
	t, _ := r.tier()
	paid, financed := settle(delayedSettlement[t], money)
	o := Outcome{MoneyChange: -paid}
	switch t {
	case TierExcellent:
		o.Narrative = fmt.Sprintf("After a few weeks the hospital accepted a reduced settlement of %s.", KSh(paid))
		o.Reasoning = "Sometimes waiting opens a negotiation. It rarely does."
	case TierModerate:
		o.Narrative = fmt.Sprintf("The bill didn't go away. You eventually paid %s.", KSh(paid))
		o.Consequence = "Weeks of reminder calls."
		o.Reasoning = "Delaying doesn't reduce what you owe."
	default:
		o.Narrative = fmt.Sprintf("Penalties stacked up and a debt collector got involved. You paid %s.", KSh(paid))
		o.Consequence = "A negative listing with a credit bureau."
		o.Reasoning = "Ignoring a bill makes it bigger."
	}
	if financed {
		o.Consequence = joinNotes(o.Consequence, financedNote)
	}
	return o
}
