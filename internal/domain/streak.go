package domain

import (
	"math"
	"time"
)

// Streak counts consecutive calendar days with a qualifying activity in one
// category. Day comparisons use local midnight boundaries, not raw 24-hour
// deltas: two timestamps 20 hours apart that cross midnight are one day apart.
type Streak struct {
	ID            string
	Type          StreakType
	CurrentStreak int
	// LongestStreak never decreases across RecordActivity calls; Reset
	// leaves it untouched.
	LongestStreak    int
	LastActivityDate *time.Time
	TotalActivities  int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewStreak creates an empty streak for the given category.
func NewStreak(id string, streakType StreakType, now time.Time) *Streak {
	return &Streak{
		ID:        id,
		Type:      streakType,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// RecordActivity registers a qualifying activity on the given day.
//
// A one-day gap since the last activity extends the streak, a larger gap
// restarts it at 1, and a repeat on the same day leaves the counter alone.
// A day earlier than the last recorded one (clock skew, timezone change,
// manual date edit) is treated like a same-day repeat: the counter and the
// anchor date stay put. TotalActivities and UpdatedAt advance on every call.
func (s *Streak) RecordActivity(today time.Time) {
	switch {
	case s.LastActivityDate == nil:
		s.CurrentStreak = 1
		s.setLastActivity(today)
	default:
		switch days := CalendarDaysBetween(*s.LastActivityDate, today); {
		case days == 1:
			s.CurrentStreak++
			s.setLastActivity(today)
		case days > 1:
			s.CurrentStreak = 1
			s.setLastActivity(today)
		default:
			// Same day or out-of-order date: counter and anchor unchanged.
		}
	}

	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
	s.TotalActivities++
	s.UpdatedAt = today
}

// Reset zeroes the running counter. LongestStreak, LastActivityDate, and
// TotalActivities are preserved.
func (s *Streak) Reset(now time.Time) {
	s.CurrentStreak = 0
	s.UpdatedAt = now
}

// ActiveOn reports whether the last activity falls on the same calendar day
// as the given time.
func (s *Streak) ActiveOn(day time.Time) bool {
	if s.LastActivityDate == nil {
		return false
	}
	return CalendarDaysBetween(*s.LastActivityDate, day) == 0
}

func (s *Streak) setLastActivity(today time.Time) {
	t := today
	s.LastActivityDate = &t
}

// CalendarDaysBetween returns the signed number of local calendar days from
// a to b. Rounding the hour difference keeps 23- and 25-hour DST days at
// exactly one day.
func CalendarDaysBetween(a, b time.Time) int {
	am := midnight(a)
	bm := midnight(b)
	return int(math.Round(bm.Sub(am).Hours() / 24))
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
