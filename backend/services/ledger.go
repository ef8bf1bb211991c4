package services

import (
	"context"
	"fmt"
	"time"

	"linguaplatform/backend/models"
	"linguaplatform/backend/progress"
	"linguaplatform/backend/store"
	"linguaplatform/backend/utils"
)

// Ledger tracks per-lesson watched/skipped state and the derived lock graph.
//
// course_progress_<courseId> is the authoritative lesson map. The copy kept
// on the user_course_progress entry is rewritten from it on every mutation,
// together with the derived counters.
type Ledger struct {
	repo        *store.Repository
	catalog     *Catalog
	enrollments *Enrollments
	activity    *activityRecorder
	notifier    Notifier
	locks       *profileLocks
	now         func() time.Time
	log         *utils.Logger
}

// CourseLessons returns the learner's view of a course: lessons with state,
// progress and the current lesson.
func (l *Ledger) CourseLessons(ctx context.Context, who Learner, courseID string) (models.LessonUpdate, error) {
	course, err := l.catalog.Get(ctx, courseID)
	if err != nil {
		return models.LessonUpdate{}, err
	}
	p := l.repo.Profile(who.UserID)
	if err := l.enrollments.requireEnrolled(ctx, p, courseID); err != nil {
		return models.LessonUpdate{}, err
	}

	lp, err := p.LessonProgress(ctx, courseID)
	if err != nil {
		return models.LessonUpdate{}, err
	}
	ucp, err := p.CourseProgress(ctx, who.Email)
	if err != nil {
		return models.LessonUpdate{}, err
	}

	stored := ucp[courseID]
	cp := stored
	cp.Lessons = lp
	cp, _ = progress.Recompute(course, cp, l.now())
	cp.LastUpdated = stored.LastUpdated

	states := progress.LessonStates(course, lp)
	current := cp.CurrentLessonID
	if current == "" {
		current = progress.FirstOpen(states)
	}
	return models.LessonUpdate{Lessons: states, Progress: cp, CurrentLessonID: current}, nil
}

// MarkLessonWatched records natural playback completion of a lesson.
func (l *Ledger) MarkLessonWatched(ctx context.Context, who Learner, courseID, lessonID string) (models.LessonUpdate, error) {
	return l.complete(ctx, who, courseID, lessonID, false)
}

// SkipLesson marks a lesson watched without playback. Skipping a lesson that
// is already watched changes nothing.
func (l *Ledger) SkipLesson(ctx context.Context, who Learner, courseID, lessonID string) (models.LessonUpdate, error) {
	return l.complete(ctx, who, courseID, lessonID, true)
}

func (l *Ledger) complete(ctx context.Context, who Learner, courseID, lessonID string, skip bool) (models.LessonUpdate, error) {
	course, err := l.catalog.Get(ctx, courseID)
	if err != nil {
		return models.LessonUpdate{}, err
	}

	unlock := l.locks.lock(who.UserID)
	defer unlock()

	p := l.repo.Profile(who.UserID)
	if err := l.enrollments.requireEnrolled(ctx, p, courseID); err != nil {
		return models.LessonUpdate{}, err
	}
	lp, err := p.LessonProgress(ctx, courseID)
	if err != nil {
		return models.LessonUpdate{}, err
	}
	target, err := findState(progress.LessonStates(course, lp), lessonID)
	if err != nil {
		return models.LessonUpdate{}, err
	}
	if target.Locked && !target.Watched {
		return models.LessonUpdate{}, ErrLessonLocked
	}

	now := l.now()
	rec, changed := transition(lp[lessonID], skip, now)
	lp[lessonID] = rec
	if changed {
		if err := p.SaveLessonProgress(ctx, courseID, lp); err != nil {
			return models.LessonUpdate{}, err
		}
	}

	ucp, err := p.CourseProgress(ctx, who.Email)
	if err != nil {
		return models.LessonUpdate{}, err
	}
	cp := ucp[courseID]
	cp.Lessons = lp
	cp, newlyCompleted := progress.Recompute(course, cp, now)

	states := progress.LessonStates(course, lp)
	if newlyCompleted {
		l.notifier.CourseCompleted(ctx, CompletionEvent{
			Type:        "course_completed",
			UserID:      who.UserID,
			Email:       who.Email,
			CourseID:    course.ID,
			CourseTitle: course.Title,
			CompletedAt: now,
		})
	} else if next := progress.NextUnlocked(states, lessonID); next != "" {
		cp.CurrentLessonID = next
	}
	if cp.CurrentLessonID == "" {
		cp.CurrentLessonID = lessonID
	}

	ucp[courseID] = cp
	if err := p.SaveCourseProgress(ctx, who.Email, ucp); err != nil {
		return models.LessonUpdate{}, err
	}

	if changed {
		action := models.ActionLessonWatched
		if skip {
			action = models.ActionLessonSkipped
		}
		l.activity.record(ctx, who.UserID, who.Email, action)
	}
	if newlyCompleted {
		l.activity.record(ctx, who.UserID, who.Email, models.ActionCourseCompleted)
	}

	return models.LessonUpdate{
		Lessons:         states,
		Progress:        cp,
		CurrentLessonID: cp.CurrentLessonID,
		CourseCompleted: newlyCompleted,
	}, nil
}

// transition applies a watch or skip to a lesson record. WATCHED is terminal:
// re-watching or re-skipping keeps the original completion time, and a real
// watch of a previously skipped lesson only clears the skipped flag.
func transition(rec models.LessonRecord, skip bool, now time.Time) (models.LessonRecord, bool) {
	if rec.IsWatched {
		if !skip && rec.IsSkipped {
			rec.IsSkipped = false
			return rec, true
		}
		return rec, false
	}
	t := now
	return models.LessonRecord{IsWatched: true, IsSkipped: skip, CompletedAt: &t}, true
}

// SelectLesson moves the current-lesson pointer. Locked lessons that were
// never watched are rejected.
func (l *Ledger) SelectLesson(ctx context.Context, who Learner, courseID, lessonID string) (models.LessonUpdate, error) {
	course, err := l.catalog.Get(ctx, courseID)
	if err != nil {
		return models.LessonUpdate{}, err
	}

	unlock := l.locks.lock(who.UserID)
	defer unlock()

	p := l.repo.Profile(who.UserID)
	if err := l.enrollments.requireEnrolled(ctx, p, courseID); err != nil {
		return models.LessonUpdate{}, err
	}
	lp, err := p.LessonProgress(ctx, courseID)
	if err != nil {
		return models.LessonUpdate{}, err
	}
	states := progress.LessonStates(course, lp)
	target, err := findState(states, lessonID)
	if err != nil {
		return models.LessonUpdate{}, err
	}
	if target.Locked && !target.Watched {
		return models.LessonUpdate{}, ErrLessonLocked
	}

	ucp, err := p.CourseProgress(ctx, who.Email)
	if err != nil {
		return models.LessonUpdate{}, err
	}
	cp := ucp[courseID]
	cp.Lessons = lp
	cp, _ = progress.Recompute(course, cp, l.now())
	cp.CurrentLessonID = lessonID
	ucp[courseID] = cp
	if err := p.SaveCourseProgress(ctx, who.Email, ucp); err != nil {
		return models.LessonUpdate{}, err
	}
	return models.LessonUpdate{Lessons: states, Progress: cp, CurrentLessonID: lessonID}, nil
}

func findState(states []models.LessonState, lessonID string) (models.LessonState, error) {
	for _, st := range states {
		if st.ID == lessonID {
			return st, nil
		}
	}
	return models.LessonState{}, fmt.Errorf("%w: %s", ErrLessonNotFound, lessonID)
}
