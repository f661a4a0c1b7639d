package engine

import "fmt"

// String backed enums so routes and badges can be logged, traced and stored as-is.

type Family string
type Intent string
type Tier string
type Badge string

const (
	FamilyHousing   Family = "housing"
	FamilyCareer    Family = "career"
	FamilyWindfall  Family = "windfall"
	FamilyMedical   Family = "medical"
	FamilyTransport Family = "transport"
	FamilyGeneral   Family = "general"
)

// AllFamilies is also the dispatch order.
var AllFamilies = []Family{FamilyHousing, FamilyCareer, FamilyWindfall, FamilyMedical, FamilyTransport, FamilyGeneral}

const (
	IntentGeneral Intent = "general"

	IntentNegotiateRent Intent = "housing.negotiate"
	IntentMove          Intent = "housing.move"
	IntentBudget        Intent = "housing.budget"
	IntentRoommate      Intent = "housing.roommate"

	IntentNegotiateRemote Intent = "career.negotiate"
	IntentAcceptOffer     Intent = "career.accept"
	IntentDecline         Intent = "career.decline"
	IntentResearch        Intent = "career.research"

	IntentSplit         Intent = "windfall.split"
	IntentPayDebt       Intent = "windfall.debt"
	IntentInvest        Intent = "windfall.invest"
	IntentEmergencyFund Intent = "windfall.emergency_fund"

	IntentInsurance   Intent = "medical.insurance"
	IntentPaymentPlan Intent = "medical.payment_plan"
	IntentLoan        Intent = "medical.loan"
	IntentFamilyHelp  Intent = "medical.family"
	IntentDelay       Intent = "medical.delay"

	IntentCarpool         Intent = "transport.carpool"
	IntentPublicTransport Intent = "transport.public"
	IntentUsedCar         Intent = "transport.used_car"
	IntentRepair          Intent = "transport.repair"
)

var AllIntents = []Intent{
	IntentGeneral,
	IntentNegotiateRent, IntentMove, IntentBudget, IntentRoommate,
	IntentNegotiateRemote, IntentAcceptOffer, IntentDecline, IntentResearch,
	IntentSplit, IntentPayDebt, IntentInvest, IntentEmergencyFund,
	IntentInsurance, IntentPaymentPlan, IntentLoan, IntentFamilyHelp, IntentDelay,
	IntentCarpool, IntentPublicTransport, IntentUsedCar, IntentRepair,
}

const (
	TierPoor      Tier = "poor"
	TierModerate  Tier = "moderate"
	TierExcellent Tier = "excellent"
)

const (
	BadgeMasterNegotiator   Badge = "Master Negotiator"
	BadgeSilverTongue       Badge = "Silver Tongue"
	BadgeSmartMover         Badge = "Smart Mover"
	BadgeBudgetMaster       Badge = "Budget Master"
	BadgeSocialButterfly    Badge = "Social Butterfly"
	BadgeMaintenanceMaster  Badge = "Maintenance Master"
	BadgePublicTransportPro Badge = "Public Transport Pro"
	BadgeBargainHunter      Badge = "Bargain Hunter"
	BadgeCommunityBuilder   Badge = "Community Builder"
	BadgeCareerClimber      Badge = "Career Climber"
	BadgeSteadyHand         Badge = "Steady Hand"
	BadgeDueDiligence       Badge = "Due Diligence"
	BadgeEmergencyFundHero  Badge = "Emergency Fund Hero"
	BadgeDebtDestroyer      Badge = "Debt Destroyer"
	BadgeSmartInvestor      Badge = "Smart Investor"
	BadgeBalancedPlanner    Badge = "Balanced Planner"
	BadgeInsuranceWise      Badge = "Insurance Wise"
	BadgeCommunityChampion  Badge = "Community Champion"
)

var AllBadges = []Badge{
	BadgeMasterNegotiator, BadgeSilverTongue, BadgeSmartMover, BadgeBudgetMaster, BadgeSocialButterfly,
	BadgeMaintenanceMaster, BadgePublicTransportPro, BadgeBargainHunter, BadgeCommunityBuilder,
	BadgeCareerClimber, BadgeSteadyHand, BadgeDueDiligence,
	BadgeEmergencyFundHero, BadgeDebtDestroyer, BadgeSmartInvestor, BadgeBalancedPlanner,
	BadgeInsuranceWise, BadgeCommunityChampion,
}

func contains[T ~string](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func (f Family) Validate() error {
	if !contains(AllFamilies, f) {
		return fmt.Errorf("invalid family: %s", f)
	}
	return nil
}

func (i Intent) Validate() error {
	if !contains(AllIntents, i) {
		return fmt.Errorf("invalid intent: %s", i)
	}
	return nil
}

func (b Badge) Validate() error {
	if !contains(AllBadges, b) {
		return fmt.Errorf("invalid badge: %s", b)
	}
	return nil
}

// rank orders tiers so callers can compare them.
func (t Tier) rank() int {
	switch t {
	case TierExcellent:
		return 2
	case TierModerate:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether t is the same or better than other.
func (t Tier) AtLeast(other Tier) bool { return t.rank() >= other.rank() }
