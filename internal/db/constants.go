package db

// Keys under which the application persists its state.
const (
	KeyDrinkHistory  = "drinkHistory"
	KeyWeight        = "weight"
	KeyActiveMinutes = "activeMinutes"
	KeyWaterGoal     = "waterGoal"
	KeyDarkTheme     = "darkTheme"
)
