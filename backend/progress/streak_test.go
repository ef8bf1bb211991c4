package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"linguaplatform/backend/models"
)

var today = time.Date(2026, 5, 20, 15, 30, 0, 0, time.UTC)

func daysAgo(days ...int) []models.ActivityEntry {
	var out []models.ActivityEntry
	for _, d := range days {
		out = append(out, models.ActivityEntry{Date: Day(today.AddDate(0, 0, -d)), Actions: []string{models.ActionLogin}})
	}
	return out
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.ActivityEntry
		want    int
	}{
		{"three consecutive days", daysAgo(0, 1, 2), 3},
		{"gap yesterday", daysAgo(0, 2), 1},
		{"nothing today", daysAgo(1, 2, 3), 0},
		{"empty", nil, 0},
		{"unordered input", daysAgo(2, 0, 1), 3},
		{"empty action list does not count", append(daysAgo(0), models.ActivityEntry{Date: Day(today.AddDate(0, 0, -1))}), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Streak(tt.entries, today))
		})
	}
}

func TestStreakIsCappedAtLookback(t *testing.T) {
	var days []int
	for i := 0; i < 45; i++ {
		days = append(days, i)
	}
	assert.Equal(t, StreakLookbackDays, Streak(daysAgo(days...), today))
}

func TestRecordAction(t *testing.T) {
	entries := RecordAction(nil, today, models.ActionLogin)
	entries = RecordAction(entries, today, models.ActionEnrolled)
	entries = RecordAction(entries, today.AddDate(0, 0, 1), models.ActionLogin)

	assert.Len(t, entries, 2)
	assert.Equal(t, "2026-05-20", entries[0].Date)
	assert.Equal(t, []string{models.ActionLogin, models.ActionEnrolled}, entries[0].Actions)
	assert.Equal(t, "2026-05-21", entries[1].Date)
}
