package engine

// Default pool bounds: every general outcome has DefaultMoneyMin <= MoneyChange < DefaultMoneyMax.
const (
	DefaultMoneyMin = -500
	DefaultMoneyMax = 3000
)

type generic struct {
	narrative string
	lo, hi    int
}

var genericPool = []generic{
	{"You took an unconventional approach. It worked out better than expected.", 1000, DefaultMoneyMax},
	{"You made a cautious choice. Nothing dramatic happened, but you learned something.", 0, 2000},
	{"Your choice had mixed results. Some things went well, others didn't.", DefaultMoneyMin, 500},
}

func general(r roll, _ int) Outcome {
	pick := int(r.draw() * float64(len(genericPool)))
	if pick >= len(genericPool) {
		pick = len(genericPool) - 1
	}
	g := genericPool[pick]
	return Outcome{
		Narrative:   g.narrative,
		MoneyChange: r.between(g.lo, g.hi, 1),
		Reasoning:   "No specific rule matched this choice, so a general outcome was used.",
	}
}
