package progress

import (
	"time"

	"linguaplatform/backend/models"
)

// StreakLookbackDays bounds how far back Streak walks.
const StreakLookbackDays = 30

const dayLayout = "2006-01-02"

// Day formats t as the activity log date key.
func Day(t time.Time) string {
	return t.Format(dayLayout)
}

// Streak counts consecutive days with at least one action, walking back from
// today and stopping at the first gap or after StreakLookbackDays days.
func Streak(entries []models.ActivityEntry, today time.Time) int {
	active := make(map[string]bool, len(entries))
	for _, e := range entries {
		if len(e.Actions) > 0 {
			active[e.Date] = true
		}
	}

	streak := 0
	for i := 0; i < StreakLookbackDays; i++ {
		if !active[Day(today.AddDate(0, 0, -i))] {
			break
		}
		streak++
	}
	return streak
}

// RecordAction appends action to today's entry, creating the entry if needed.
func RecordAction(entries []models.ActivityEntry, today time.Time, action string) []models.ActivityEntry {
	d := Day(today)
	for i := range entries {
		if entries[i].Date == d {
			entries[i].Actions = append(entries[i].Actions, action)
			return entries
		}
	}
	return append(entries, models.ActivityEntry{Date: d, Actions: []string{action}})
}
