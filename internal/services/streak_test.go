package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestNextStreak(t *testing.T) {
	jan1 := date(2024, time.January, 1)

	tests := []struct {
		name     string
		current  int
		lastScan *time.Time
		at       time.Time
		want     int
	}{
		{"first ever scan", 0, nil, jan1, 1},
		{"consecutive day extends", 5, &jan1, date(2024, time.January, 2), 6},
		{"same day keeps streak", 5, &jan1, date(2024, time.January, 1), 5},
		{"gap resets", 5, &jan1, date(2024, time.January, 4), 1},
		{"long gap resets", 30, &jan1, date(2024, time.March, 1), 1},
		{"month boundary extends", 3, ptr(date(2024, time.January, 31)), date(2024, time.February, 1), 4},
		{"year boundary extends", 9, ptr(date(2023, time.December, 31)), date(2024, time.January, 1), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextStreak(tt.current, tt.lastScan, tt.at))
		})
	}
}

func TestNextStreak_SameCalendarDayDifferentHours(t *testing.T) {
	morning := time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, time.June, 10, 22, 45, 0, 0, time.UTC)

	assert.Equal(t, 4, NextStreak(4, &morning, evening))
}

func TestIsStreakMilestone(t *testing.T) {
	for _, v := range []int{3, 7, 14, 30, 100} {
		assert.True(t, IsStreakMilestone(v), "expected %d to be a milestone", v)
	}
	for _, v := range []int{1, 2, 4, 13, 99} {
		assert.False(t, IsStreakMilestone(v), "expected %d not to be a milestone", v)
	}
}

func ptr(t time.Time) *time.Time {
	return &t
}
