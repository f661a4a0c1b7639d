package engine

import "strings"

// Route is the two-level classification of a choice: family, then intent.
type Route struct {
	Family Family
	Intent Intent
}

// General is the fallback route for text no rule recognises.
var General = Route{Family: FamilyGeneral, Intent: IntentGeneral}

type intentRule struct {
	intent   Intent
	keywords []string
}

// familyRule matches on the scenario title or on the choice text, then tries
// its intents in order.
type familyRule struct {
	family  Family
	title   []string
	choice  []string
	intents []intentRule
}

// Order matters: career is checked before transport because "career" contains "car",
// and intents are ordered so that narrower phrases win ("index funds" is an investment,
// not an emergency fund).
var familyRules = []familyRule{
	{
		family: FamilyHousing,
		title:  []string{"rent", "landlord", "housing", "apartment", "lease"},
		choice: []string{"rent", "landlord"},
		intents: []intentRule{
			{IntentNegotiateRent, []string{"negotiate", "bargain", "haggle"}},
			{IntentMove, []string{"move", "relocat", "cheaper apartment", "cheaper place"}},
			{IntentBudget, []string{"accept", "tighten", "budget", "absorb", "cut back"}},
			{IntentRoommate, []string{"roommate", "flatmate", "share the", "sublet"}},
		},
	},
	{
		family: FamilyCareer,
		title:  []string{"promotion", "job", "career", "salary", "offer"},
		choice: []string{"promotion", "salary", "raise"},
		intents: []intentRule{
			{IntentNegotiateRemote, []string{"negotiate", "remote", "hybrid", "work from home"}},
			{IntentAcceptOffer, []string{"accept", "relocate", "take the", "move"}},
			{IntentDecline, []string{"decline", "stay", "turn down", "reject"}},
			{IntentResearch, []string{"research", "visit", "investigate", "first"}},
		},
	},
	{
		family: FamilyWindfall,
		title:  []string{"windfall", "bonus", "unexpected money", "refund", "inheritance", "lottery"},
		choice: []string{"windfall", "bonus", "refund"},
		intents: []intentRule{
			{IntentSplit, []string{"split", "divide", "balance between"}},
			{IntentPayDebt, []string{"debt", "pay off", "loan"}},
			{IntentInvest, []string{"invest", "sacco", "index", "stock", "shares", "bond"}},
			{IntentEmergencyFund, []string{"emergency", "savings", "save", "fund"}},
		},
	},
	{
		family: FamilyMedical,
		title:  []string{"medical", "hospital", "health", "illness", "clinic"},
		choice: []string{"hospital", "medical", "nhif", "insurance"},
		intents: []intentRule{
			{IntentInsurance, []string{"nhif", "insurance", "sha cover"}},
			{IntentPaymentPlan, []string{"payment plan", "installment", "instalment", "plan"}},
			{IntentLoan, []string{"loan", "borrow", "credit"}},
			{IntentFamilyHelp, []string{"family", "harambee", "relatives", "friends"}},
			{IntentDelay, []string{"delay", "postpone", "wait", "later"}},
		},
	},
	{
		family: FamilyTransport,
		title:  []string{"car", "transport", "vehicle", "commute", "matatu"},
		choice: []string{"car", "vehicle", "matatu", "bus"},
		intents: []intentRule{
			{IntentCarpool, []string{"carpool", "coworker", "colleague", "share a ride", "ride share"}},
			{IntentPublicTransport, []string{"public", "matatu", "bus", "boda", "walk"}},
			{IntentUsedCar, []string{"used", "buy", "another car", "different car"}},
			{IntentRepair, []string{"repair", "fix", "mechanic", "gearbox"}},
		},
	},
}

// Classify routes a choice. Families are tried in order; a family matches when its
// keywords appear in the title or the choice. The first matched family that also
// recognises an intent wins. Anything else, including a matched family with no
// recognised intent, routes to General.
func Classify(choiceText, scenarioTitle string) Route {
	choice := strings.ToLower(strings.TrimSpace(choiceText))
	title := strings.ToLower(strings.TrimSpace(scenarioTitle))
	for _, fr := range familyRules {
		if !hasAny(title, fr.title...) && !hasAny(choice, fr.choice...) {
			continue
		}
		for _, ir := range fr.intents {
			if hasAny(choice, ir.keywords...) {
				return Route{Family: fr.family, Intent: ir.intent}
			}
		}
	}
	return General
}

func hasAny(s string, subs ...string) bool {
	if s == "" {
		return false
	}
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func ternary[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}
