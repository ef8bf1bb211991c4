package services

import (
	"context"
	"time"

	"linguaplatform/backend/models"
	"linguaplatform/backend/store"
)

type Enrollments struct {
	repo     *store.Repository
	catalog  *Catalog
	activity *activityRecorder
	locks    *profileLocks
	now      func() time.Time
}

func (e *Enrollments) List(ctx context.Context, who Learner) ([]models.Enrollment, error) {
	list, err := e.repo.Profile(who.UserID).Enrollments(ctx)
	if list == nil {
		list = []models.Enrollment{}
	}
	return list, err
}

// Enroll snapshots the course display fields into enrolled_courses.
func (e *Enrollments) Enroll(ctx context.Context, who Learner, courseID string) (models.Enrollment, error) {
	course, err := e.catalog.Get(ctx, courseID)
	if err != nil {
		return models.Enrollment{}, err
	}

	unlock := e.locks.lock(who.UserID)
	defer unlock()

	p := e.repo.Profile(who.UserID)
	list, err := p.Enrollments(ctx)
	if err != nil {
		return models.Enrollment{}, err
	}
	for _, en := range list {
		if en.ID == courseID {
			return models.Enrollment{}, ErrAlreadyEnrolled
		}
	}

	en := models.NewEnrollment(course, e.now())
	if err := p.SaveEnrollments(ctx, append(list, en)); err != nil {
		return models.Enrollment{}, err
	}
	e.activity.record(ctx, who.UserID, who.Email, models.ActionEnrolled)
	return en, nil
}

// Unenroll removes the enrollment and every record keyed by the course.
// It cannot be undone.
func (e *Enrollments) Unenroll(ctx context.Context, who Learner, courseID string) error {
	unlock := e.locks.lock(who.UserID)
	defer unlock()

	p := e.repo.Profile(who.UserID)
	list, err := p.Enrollments(ctx)
	if err != nil {
		return err
	}
	kept := make([]models.Enrollment, 0, len(list))
	found := false
	for _, en := range list {
		if en.ID == courseID {
			found = true
			continue
		}
		kept = append(kept, en)
	}
	if !found {
		return ErrNotEnrolled
	}

	if err := p.SaveEnrollments(ctx, kept); err != nil {
		return err
	}
	if err := p.DeleteCourseKeys(ctx, courseID, who.Email); err != nil {
		return err
	}

	ucp, err := p.CourseProgress(ctx, who.Email)
	if err != nil {
		return err
	}
	if _, ok := ucp[courseID]; ok {
		delete(ucp, courseID)
		if err := p.SaveCourseProgress(ctx, who.Email, ucp); err != nil {
			return err
		}
	}

	sessions, err := p.AssessmentSessions(ctx)
	if err != nil {
		return err
	}
	if _, ok := sessions[courseID]; ok {
		delete(sessions, courseID)
		return p.SaveAssessmentSessions(ctx, sessions)
	}
	return nil
}

// requireEnrolled returns ErrNotEnrolled unless the learner joined courseID.
// Callers hold the profile lock.
func (e *Enrollments) requireEnrolled(ctx context.Context, p *store.Profile, courseID string) error {
	list, err := p.Enrollments(ctx)
	if err != nil {
		return err
	}
	for _, en := range list {
		if en.ID == courseID {
			return nil
		}
	}
	return ErrNotEnrolled
}
