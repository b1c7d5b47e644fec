package models

// HydrationProfile holds the user's body parameters and daily target.
type HydrationProfile struct {
	WeightKg           float64
	ActivityMinutes    float64
	HydrationGoalMl    int
	IdealWaterIntakeMl int
}

// IsSet reports whether the user has entered any profile data.
func (p HydrationProfile) IsSet() bool {
	return p.WeightKg > 0 || p.ActivityMinutes > 0 || p.HydrationGoalMl > 0
}
