package domain

import "time"

// Settings holds the user's fasting preset, applied when a session is
// started without explicit flags. A single row keyed "default".
type Settings struct {
	ID             string
	DefaultType    SessionType
	DefaultPlanned time.Duration
}
