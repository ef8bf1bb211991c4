package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linguaplatform/backend/models"
)

func achievementIDs(list []models.Achievement) []string {
	ids := make([]string, 0, len(list))
	for _, a := range list {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestDashboardEmpty(t *testing.T) {
	f := newFixture(t)
	who := f.learner(t, "maria")

	d, err := f.svc.Dashboard.Load(context.Background(), who)
	require.NoError(t, err)
	assert.Empty(t, d.Courses)
	assert.Equal(t, 0, d.Percent)
	assert.Equal(t, 0, d.Streak)
	assert.NotNil(t, d.Achievements)
	assert.Empty(t, d.Achievements)
}

func TestDashboardAggregates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	who := f.enrolled(t, "maria", "es-101", "fr-101")

	_, err := f.svc.Ledger.MarkLessonWatched(ctx, who, "es-101", "l1")
	require.NoError(t, err)
	f.clock.advance(24 * time.Hour)
	_, err = f.svc.Ledger.SkipLesson(ctx, who, "es-101", "l2")
	require.NoError(t, err)
	_, err = f.svc.Assessments.Submit(ctx, who, "es-101", eightOfTen())
	require.NoError(t, err)

	d, err := f.svc.Dashboard.Load(ctx, who)
	require.NoError(t, err)
	assert.Equal(t, 2, d.EnrolledCourses)
	assert.Equal(t, 1, d.CompletedCourses)
	assert.Equal(t, 2, d.CompletedLessons)
	assert.Equal(t, 5, d.TotalLessons)
	assert.Equal(t, 40, d.Percent)
	assert.Equal(t, 2, d.Streak)

	require.Len(t, d.Courses, 2)
	es := d.Courses[0]
	assert.Equal(t, "es-101", es.ID)
	assert.Equal(t, 100, es.Percent)
	assert.True(t, es.IsCompleted)
	assert.True(t, es.AssessmentCompleted)
	require.NotNil(t, es.AssessmentScore)
	assert.Equal(t, 80, *es.AssessmentScore)
	assert.Equal(t, 0, d.Courses[1].Percent)

	assert.Equal(t, []string{"first-enrollment", "first-lesson", "progress-25", "polyglot-2"}, achievementIDs(d.Achievements))

	require.Len(t, d.RecentActivity, 2)
	assert.Equal(t, "2026-03-11", d.RecentActivity[0].Date)
}

func TestRecentActivityKeepsNewestDays(t *testing.T) {
	var entries []models.ActivityEntry
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		entries = append(entries, models.ActivityEntry{Date: start.AddDate(0, 0, i).Format("2006-01-02"), Actions: []string{"login"}})
	}
	recent := recentActivity(entries)
	require.Len(t, recent, RecentActivityDays)
	assert.Equal(t, "2026-01-10", recent[0].Date)
	assert.Equal(t, "2026-01-04", recent[RecentActivityDays-1].Date)
	assert.Equal(t, "2026-01-01", entries[0].Date)
}
