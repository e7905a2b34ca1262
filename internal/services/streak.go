package services

import "time"

// Streak milestones that trigger an advisory notification.
var streakMilestones = map[int]bool{3: true, 7: true, 14: true, 30: true, 100: true}

// NextStreak applies the consecutive-day rule: same calendar day keeps the
// streak, the day after the last scan extends it, anything else (a gap of two
// or more days, or a first-ever scan) resets it to 1.
func NextStreak(current int, lastScan *time.Time, at time.Time) int {
	if lastScan == nil {
		return 1
	}
	today := dateOf(at)
	last := dateOf(*lastScan)

	switch {
	case last.Equal(today):
		return current
	case last.AddDate(0, 0, 1).Equal(today):
		return current + 1
	default:
		return 1
	}
}

// IsStreakMilestone reports whether reaching value should fire a milestone
// notification. Only a streak that actually changed counts; the caller checks
// that.
func IsStreakMilestone(value int) bool {
	return streakMilestones[value]
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
