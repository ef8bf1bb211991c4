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

// RecentActivityDays is how many activity days the dashboard returns.
const RecentActivityDays = 7

type Dashboard struct {
	repo    *store.Repository
	catalog *Catalog
	now     func() time.Time
}

// Load assembles the learner dashboard. Achievements are derived from the
// current snapshot and never stored.
func (d *Dashboard) Load(ctx context.Context, who Learner) (models.Dashboard, error) {
	p := d.repo.Profile(who.UserID)

	var (
		enrollments []models.Enrollment
		ucp         models.UserCourseProgress
		activity    models.LearningActivity
		courses     []models.Course
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		enrollments, err = p.Enrollments(gctx)
		return err
	})
	g.Go(func() (err error) {
		ucp, err = p.CourseProgress(gctx, who.Email)
		return err
	})
	g.Go(func() (err error) {
		activity, err = p.Activity(gctx)
		return err
	})
	g.Go(func() (err error) {
		courses, err = d.catalog.List(gctx, CourseFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Dashboard{}, err
	}

	byID := make(map[string]models.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}

	records := make([]models.LessonProgress, len(enrollments))
	g, gctx = errgroup.WithContext(ctx)
	for i, en := range enrollments {
		i, en := i, en
		g.Go(func() (err error) {
			records[i], err = p.LessonProgress(gctx, en.ID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return models.Dashboard{}, err
	}

	now := d.now()
	out := models.Dashboard{
		Courses:         make([]models.DashboardCourse, 0, len(enrollments)),
		EnrolledCourses: len(enrollments),
	}
	languages := make(map[string]struct{})
	for i, en := range enrollments {
		languages[en.Language] = struct{}{}
		dc := models.DashboardCourse{Enrollment: en}
		cp := ucp[en.ID]
		if course, ok := byID[en.ID]; ok {
			cp.Lessons = records[i]
			cp, _ = progress.Recompute(course, cp, now)
		}
		dc.TotalLessons = cp.TotalLessons
		dc.CompletedLessons = cp.CompletedLessons
		dc.Percent = progress.Percent(cp.CompletedLessons, cp.TotalLessons)
		dc.IsCompleted = cp.IsCompleted
		dc.AssessmentCompleted = cp.AssessmentCompleted
		dc.AssessmentScore = cp.AssessmentScore

		out.TotalLessons += dc.TotalLessons
		out.CompletedLessons += dc.CompletedLessons
		if dc.IsCompleted {
			out.CompletedCourses++
		}
		out.Courses = append(out.Courses, dc)
	}
	out.Percent = progress.Percent(out.CompletedLessons, out.TotalLessons)

	entries := activity[who.Email]
	out.Streak = progress.Streak(entries, now)
	out.Achievements = progress.Achievements(progress.AchievementInput{
		Enrollments:      len(enrollments),
		CompletedLessons: out.CompletedLessons,
		TotalLessons:     out.TotalLessons,
		Streak:           out.Streak,
		Languages:        len(languages),
	})
	out.RecentActivity = recentActivity(entries)
	return out, nil
}

// recentActivity returns the newest RecentActivityDays entries, newest first.
func recentActivity(entries []models.ActivityEntry) []models.ActivityEntry {
	recent := make([]models.ActivityEntry, len(entries))
	copy(recent, entries)
	sort.Slice(recent, func(i, j int) bool { return recent[i].Date > recent[j].Date })
	if len(recent) > RecentActivityDays {
		recent = recent[:RecentActivityDays]
	}
	return recent
}
