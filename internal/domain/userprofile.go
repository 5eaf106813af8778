package domain

// UserProfile holds the saved defaults applied when a recommend request
// leaves a field unset. There is a single profile per database.
type UserProfile struct {
	ID                   string
	DefaultTerm          string
	DefaultTargetCredits int
	DefaultStrategy      Strategy
	Tracks               []string
	Interests            []string

	// Saved preferences, merged under explicit request constraints.
	AvoidMorning  bool
	KeepLunchTime bool
	AvoidDays     []Weekday

	WeightCreditDeviation float64
	WeightStrategyBonus   float64
	WeightFreeDay         float64
}
