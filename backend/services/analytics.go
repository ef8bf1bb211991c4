package services

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"linguaplatform/backend/models"
	"linguaplatform/backend/progress"
	"linguaplatform/backend/store"
)

// analyticsFanout bounds concurrent profile reads.
const analyticsFanout = 8

// Analytics aggregates records across every learner profile.
type Analytics struct {
	repo    *store.Repository
	catalog *Catalog
	now     func() time.Time
}

type learnerCourse struct {
	enrolled  *models.Enrollment
	progress  models.CourseProgress
	hasResult bool
	result    models.AssessmentResult
}

// Course returns analytics for one course. Only its author or an admin may
// read them.
func (a *Analytics) Course(ctx context.Context, actor Learner, courseID string) (models.CourseAnalytics, error) {
	course, err := a.catalog.Get(ctx, courseID)
	if err != nil {
		return models.CourseAnalytics{}, err
	}
	if course.AuthorID != actor.UserID && !actor.Role.AtLeast(models.RoleAdmin) {
		return models.CourseAnalytics{}, ErrForbiddenRole
	}

	users, err := a.repo.Users(ctx)
	if err != nil {
		return models.CourseAnalytics{}, err
	}
	list := make([]models.User, 0, len(users))
	for _, u := range users {
		list = append(list, u)
	}

	rows := make([]learnerCourse, len(list))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(analyticsFanout)
	for i, u := range list {
		i, u := i, u
		g.Go(func() error {
			row, err := a.load(gctx, course, u)
			rows[i] = row
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return models.CourseAnalytics{}, err
	}

	out := models.CourseAnalytics{CourseID: course.ID, Title: course.Title, EnrollmentTrends: []models.EnrollmentTrend{}}
	trends := map[string]int{}
	var rateSum, scoreSum, passed int
	for _, r := range rows {
		if r.enrolled == nil {
			continue
		}
		out.TotalEnrollments++
		trends[progress.Day(r.enrolled.EnrolledAt)]++
		rateSum += progress.Percent(r.progress.CompletedLessons, r.progress.TotalLessons)
		if r.progress.IsCompleted {
			out.Completed++
		}
		if r.hasResult {
			out.AssessmentsTaken++
			scoreSum += r.result.Score
			if r.result.Passed {
				passed++
			}
		}
	}
	if out.TotalEnrollments > 0 {
		out.AvgCompletionRate = rateSum / out.TotalEnrollments
	}
	if out.AssessmentsTaken > 0 {
		out.AvgScore = scoreSum / out.AssessmentsTaken
		out.PassRate = progress.Percent(passed, out.AssessmentsTaken)
	}
	for day, n := range trends {
		out.EnrollmentTrends = append(out.EnrollmentTrends, models.EnrollmentTrend{Date: day, Count: n})
	}
	sort.Slice(out.EnrollmentTrends, func(i, j int) bool {
		return out.EnrollmentTrends[i].Date < out.EnrollmentTrends[j].Date
	})
	return out, nil
}

func (a *Analytics) load(ctx context.Context, course models.Course, u models.User) (learnerCourse, error) {
	p := a.repo.Profile(u.ID)
	list, err := p.Enrollments(ctx)
	if err != nil {
		return learnerCourse{}, err
	}
	var row learnerCourse
	for i := range list {
		if list[i].ID == course.ID {
			row.enrolled = &list[i]
			break
		}
	}
	if row.enrolled == nil {
		return row, nil
	}

	lp, err := p.LessonProgress(ctx, course.ID)
	if err != nil {
		return row, err
	}
	row.progress, _ = progress.Recompute(course, models.CourseProgress{Lessons: lp}, a.now())
	row.result, row.hasResult, err = p.AssessmentResult(ctx, course.ID, u.Email)
	return row, err
}
