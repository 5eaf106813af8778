package scheduler

// ScoringWeights scale each scoring term. All values are positive; the scorer
// applies the sign.
type ScoringWeights struct {
	CreditDeviation float64
	StrategyBonus   float64
	FreeDay         float64
	TeamProject     float64
	Online          float64
	OnlineOnlyDay   float64
	AvoidedDay      float64
	Morning         float64
	Lunch           float64
	DailyOverload   float64
	Consecutive     float64
}

func DefaultWeights() ScoringWeights {
	return ScoringWeights{
		CreditDeviation: 5,
		StrategyBonus:   20,
		FreeDay:         8,
		TeamProject:     6,
		Online:          4,
		OnlineOnlyDay:   6,
		AvoidedDay:      8,
		Morning:         5,
		Lunch:           6,
		DailyOverload:   7,
		Consecutive:     6,
	}
}

// Options tunes one Engine. Zero fields fall back to DefaultOptions.
type Options struct {
	// MaxCandidates caps how many combinations the search emits before stopping.
	MaxCandidates int
	// TopN is how many ranked candidates are returned.
	TopN int
	// CreditSlack is how far above the target a combination may go. The
	// accepted window is [target, target+CreditSlack].
	CreditSlack int
	// ConsecutiveGap is the largest gap in minutes that still counts two
	// classes as back-to-back.
	ConsecutiveGap int
	// MaxSearchNodes aborts the search after this many visited nodes.
	MaxSearchNodes int

	MorningEnd int // classes starting before this minute are morning classes
	LunchStart int
	LunchEnd   int

	BaseScore float64
	Weights   ScoringWeights
}

func DefaultOptions() Options {
	return Options{
		MaxCandidates:  50,
		TopN:           3,
		CreditSlack:    3,
		ConsecutiveGap: 30,
		MaxSearchNodes: 200_000,
		MorningEnd:     10 * 60,
		LunchStart:     12 * 60,
		LunchEnd:       13 * 60,
		BaseScore:      100,
		Weights:        DefaultWeights(),
	}
}

// withDefaults fills zero-valued fields from DefaultOptions. CreditSlack and
// ConsecutiveGap accept an explicit zero only through a negative sentinel, so
// callers wanting an exact-target window pass CreditSlack: -1.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.MaxCandidates <= 0 {
		o.MaxCandidates = def.MaxCandidates
	}
	if o.TopN <= 0 {
		o.TopN = def.TopN
	}
	switch {
	case o.CreditSlack == 0:
		o.CreditSlack = def.CreditSlack
	case o.CreditSlack < 0:
		o.CreditSlack = 0
	}
	switch {
	case o.ConsecutiveGap == 0:
		o.ConsecutiveGap = def.ConsecutiveGap
	case o.ConsecutiveGap < 0:
		o.ConsecutiveGap = 0
	}
	if o.MaxSearchNodes <= 0 {
		o.MaxSearchNodes = def.MaxSearchNodes
	}
	if o.MorningEnd <= 0 {
		o.MorningEnd = def.MorningEnd
	}
	if o.LunchStart <= 0 || o.LunchEnd <= o.LunchStart {
		o.LunchStart = def.LunchStart
		o.LunchEnd = def.LunchEnd
	}
	if o.BaseScore <= 0 {
		o.BaseScore = def.BaseScore
	}
	if o.Weights == (ScoringWeights{}) {
		o.Weights = def.Weights
	}
	return o
}
