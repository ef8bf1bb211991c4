package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linguaplatform/backend/models"
)

func TestCourseAnalytics(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	maria := f.enrolled(t, "maria", "es-101")
	tom := f.enrolled(t, "tom", "es-101")
	f.enrolled(t, "ana", "fr-101")

	_, err := f.svc.Ledger.MarkLessonWatched(ctx, maria, "es-101", "l1")
	require.NoError(t, err)
	_, err = f.svc.Ledger.MarkLessonWatched(ctx, maria, "es-101", "l2")
	require.NoError(t, err)
	_, err = f.svc.Assessments.Submit(ctx, maria, "es-101", eightOfTen())
	require.NoError(t, err)
	_, err = f.svc.Assessments.Submit(ctx, tom, "es-101", nil)
	require.NoError(t, err)

	stats, err := f.svc.Analytics.Course(ctx, f.admin, "es-101")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalEnrollments)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 50, stats.AvgCompletionRate)
	assert.Equal(t, 2, stats.AssessmentsTaken)
	assert.Equal(t, 40, stats.AvgScore)
	assert.Equal(t, 50, stats.PassRate)
	assert.Equal(t, []models.EnrollmentTrend{{Date: "2026-03-10", Count: 2}}, stats.EnrollmentTrends)

	_, err = f.svc.Analytics.Course(ctx, maria, "es-101")
	assert.ErrorIs(t, err, ErrForbiddenRole)
}
