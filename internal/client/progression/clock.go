package progression

import (
	"time"

	"github.com/farag11/daheeh/internal/client/models"
)

// Clock supplies the current time. Tests substitute a controllable one.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func calendarDate(t time.Time) string {
	return t.Format(models.DateLayout)
}

func previousCalendarDate(t time.Time) string {
	y, m, d := t.Date()
	// noon avoids DST transitions landing on the wrong day
	return time.Date(y, m, d-1, 12, 0, 0, 0, t.Location()).Format(models.DateLayout)
}

// nextStreak applies the streak rules for an award made at now.
func nextStreak(s models.GamificationState, now time.Time) int {
	switch s.LastActiveDate {
	case "":
		return 1
	case calendarDate(now):
		// hydrate may have shown 0 for a stale streak; today still counts
		return max(s.Streak, 1)
	case previousCalendarDate(now):
		return s.Streak + 1
	default:
		return 1
	}
}

// visibleStreak is the streak to expose after loading s at now.
func visibleStreak(s models.GamificationState, now time.Time) int {
	switch s.LastActiveDate {
	case calendarDate(now), previousCalendarDate(now):
		return s.Streak
	default:
		return 0
	}
}
