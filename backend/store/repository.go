package store

import (
	"context"
	"encoding/json"
	"fmt"

	"linguaplatform/backend/models"
	"linguaplatform/backend/utils"
)

// Repository is the typed gateway over KV. Global keys are read through it
// directly; per-user keys through Profile.
type Repository struct {
	kv  KV
	log *utils.Logger
}

func NewRepository(kv KV, log *utils.Logger) *Repository {
	return &Repository{kv: kv, log: log.With("component", "store")}
}

// Close closes the underlying backend.
func (r *Repository) Close() error { return r.kv.Close() }

// Profile returns the accessors for one user's namespace.
func (r *Repository) Profile(userID string) *Profile {
	return &Profile{
		kv:  Namespace(r.kv, ProfilePrefix(userID)),
		log: r.log.With("profile", userID),
	}
}

// load reads and decodes key. A value that fails to decode is logged and
// treated as absent, so one corrupted key never takes a feature down.
func load[T any](ctx context.Context, kv KV, log *utils.Logger, spec KeySpec, key string) (T, bool, error) {
	var v T
	e, ok, err := kv.Get(ctx, key)
	if err != nil {
		return v, false, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return v, false, nil
	}
	if e.Version > spec.Version {
		log.Warn("stored value has a newer schema version", "key", key, "stored", e.Version, "known", spec.Version)
	}
	if err := json.Unmarshal(e.Value, &v); err != nil {
		log.Error("corrupted value, falling back to default", "key", key, "error", err)
		var zero T
		return zero, false, nil
	}
	return v, true, nil
}

func save[T any](ctx context.Context, kv KV, spec KeySpec, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, Entry{Value: raw, Version: spec.Version}); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (r *Repository) Catalog(ctx context.Context) (models.CourseCatalog, bool, error) {
	return load[models.CourseCatalog](ctx, r.kv, r.log, KeyCatalog, KeyCatalog.Key())
}

func (r *Repository) SaveCatalog(ctx context.Context, c models.CourseCatalog) error {
	return save(ctx, r.kv, KeyCatalog, KeyCatalog.Key(), c)
}

func (r *Repository) Users(ctx context.Context) (models.UserStorage, error) {
	users, _, err := load[models.UserStorage](ctx, r.kv, r.log, KeyUsers, KeyUsers.Key())
	if users == nil {
		users = models.UserStorage{}
	}
	return users, err
}

func (r *Repository) SaveUsers(ctx context.Context, users models.UserStorage) error {
	return save(ctx, r.kv, KeyUsers, KeyUsers.Key(), users)
}

func (r *Repository) LoginHistory(ctx context.Context) ([]models.LoginHistory, error) {
	h, _, err := load[[]models.LoginHistory](ctx, r.kv, r.log, KeyLoginHistory, KeyLoginHistory.Key())
	return h, err
}

func (r *Repository) SaveLoginHistory(ctx context.Context, h []models.LoginHistory) error {
	return save(ctx, r.kv, KeyLoginHistory, KeyLoginHistory.Key(), h)
}

// Profile holds the accessors for keys scoped to one user.
type Profile struct {
	kv  KV
	log *utils.Logger
}

func (p *Profile) Enrollments(ctx context.Context) ([]models.Enrollment, error) {
	e, _, err := load[[]models.Enrollment](ctx, p.kv, p.log, KeyEnrolledCourses, KeyEnrolledCourses.Key())
	return e, err
}

func (p *Profile) SaveEnrollments(ctx context.Context, e []models.Enrollment) error {
	if e == nil {
		e = []models.Enrollment{}
	}
	return save(ctx, p.kv, KeyEnrolledCourses, KeyEnrolledCourses.Key(), e)
}

func (p *Profile) LessonProgress(ctx context.Context, courseID string) (models.LessonProgress, error) {
	lp, _, err := load[models.LessonProgress](ctx, p.kv, p.log, KeyCourseProgress, KeyCourseProgress.Key(courseID))
	if lp == nil {
		lp = models.LessonProgress{}
	}
	return lp, err
}

func (p *Profile) SaveLessonProgress(ctx context.Context, courseID string, lp models.LessonProgress) error {
	return save(ctx, p.kv, KeyCourseProgress, KeyCourseProgress.Key(courseID), lp)
}

func (p *Profile) CourseProgress(ctx context.Context, email string) (models.UserCourseProgress, error) {
	ucp, _, err := load[models.UserCourseProgress](ctx, p.kv, p.log, KeyUserCourseProgress, KeyUserCourseProgress.Key(email))
	if ucp == nil {
		ucp = models.UserCourseProgress{}
	}
	return ucp, err
}

func (p *Profile) SaveCourseProgress(ctx context.Context, email string, ucp models.UserCourseProgress) error {
	return save(ctx, p.kv, KeyUserCourseProgress, KeyUserCourseProgress.Key(email), ucp)
}

func (p *Profile) AssessmentResult(ctx context.Context, courseID, email string) (models.AssessmentResult, bool, error) {
	return load[models.AssessmentResult](ctx, p.kv, p.log, KeyAssessmentResults, KeyAssessmentResults.Key(courseID, email))
}

func (p *Profile) SaveAssessmentResult(ctx context.Context, courseID, email string, res models.AssessmentResult) error {
	return save(ctx, p.kv, KeyAssessmentResults, KeyAssessmentResults.Key(courseID, email), res)
}

func (p *Profile) DeleteAssessmentResult(ctx context.Context, courseID, email string) error {
	return p.kv.Delete(ctx, KeyAssessmentResults.Key(courseID, email))
}

func (p *Profile) AssessmentSessions(ctx context.Context) (models.AssessmentStorage, error) {
	s, _, err := load[models.AssessmentStorage](ctx, p.kv, p.log, KeyAssessmentStorage, KeyAssessmentStorage.Key())
	if s == nil {
		s = models.AssessmentStorage{}
	}
	return s, err
}

func (p *Profile) SaveAssessmentSessions(ctx context.Context, s models.AssessmentStorage) error {
	return save(ctx, p.kv, KeyAssessmentStorage, KeyAssessmentStorage.Key(), s)
}

func (p *Profile) Notes(ctx context.Context, courseID string) ([]models.Note, error) {
	n, _, err := load[[]models.Note](ctx, p.kv, p.log, KeyCourseNotes, KeyCourseNotes.Key(courseID))
	return n, err
}

func (p *Profile) SaveNotes(ctx context.Context, courseID string, n []models.Note) error {
	return save(ctx, p.kv, KeyCourseNotes, KeyCourseNotes.Key(courseID), n)
}

func (p *Profile) Bookmarks(ctx context.Context, courseID string) ([]models.Bookmark, error) {
	b, _, err := load[[]models.Bookmark](ctx, p.kv, p.log, KeyCourseBookmarks, KeyCourseBookmarks.Key(courseID))
	return b, err
}

func (p *Profile) SaveBookmarks(ctx context.Context, courseID string, b []models.Bookmark) error {
	return save(ctx, p.kv, KeyCourseBookmarks, KeyCourseBookmarks.Key(courseID), b)
}

func (p *Profile) Activity(ctx context.Context) (models.LearningActivity, error) {
	a, _, err := load[models.LearningActivity](ctx, p.kv, p.log, KeyLearningActivity, KeyLearningActivity.Key())
	if a == nil {
		a = models.LearningActivity{}
	}
	return a, err
}

func (p *Profile) SaveActivity(ctx context.Context, a models.LearningActivity) error {
	return save(ctx, p.kv, KeyLearningActivity, KeyLearningActivity.Key(), a)
}

// DeleteCourseKeys drops every key that belongs to a single course.
func (p *Profile) DeleteCourseKeys(ctx context.Context, courseID, email string) error {
	return p.kv.Delete(ctx,
		KeyCourseProgress.Key(courseID),
		KeyCourseNotes.Key(courseID),
		KeyCourseBookmarks.Key(courseID),
		KeyAssessmentResults.Key(courseID, email),
	)
}
