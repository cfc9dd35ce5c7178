package domain

type SessionType string

const (
	SessionTwentyFourHour SessionType = "twenty_four_hour"
	SessionCustom         SessionType = "custom"
	SessionIntermittent   SessionType = "intermittent"
	SessionJuice          SessionType = "juice"
	SessionWater          SessionType = "water"
	SessionDry            SessionType = "dry"
)

// ValidSessionTypes is the canonical set of accepted session type strings.
var ValidSessionTypes = map[string]bool{
	"twenty_four_hour": true, "custom": true, "intermittent": true,
	"juice": true, "water": true, "dry": true,
}

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionPaused    SessionStatus = "paused"
	SessionCompleted SessionStatus = "completed"
	SessionStopped   SessionStatus = "stopped"
)

type StreakType string

const (
	StreakFasting     StreakType = "fasting"
	StreakDieting     StreakType = "dieting"
	StreakCalorieGoal StreakType = "calorie_goal"
	StreakWaterIntake StreakType = "water_intake"
)

// ValidStreakTypes is the canonical set of accepted streak type strings.
var ValidStreakTypes = map[string]bool{
	"fasting": true, "dieting": true, "calorie_goal": true, "water_intake": true,
}
