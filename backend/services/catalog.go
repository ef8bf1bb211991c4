package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"linguaplatform/backend/models"
	"linguaplatform/backend/store"
	"linguaplatform/backend/utils"
)

// Catalog owns courses-storage. Edits never reach enrollment snapshots.
type Catalog struct {
	repo *store.Repository
	log  *utils.Logger
	mu   sync.Mutex
}

// CourseFilter narrows List. Empty fields match everything.
type CourseFilter struct {
	Language string
	Level    string
	Search   string
}

type seedFile struct {
	Courses []models.Course `yaml:"courses"`
}

// Seed loads a YAML catalog into an empty store. It reports false without
// touching anything when a catalog is already present.
func (c *Catalog) Seed(ctx context.Context, raw []byte) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok, err := c.repo.Catalog(ctx)
	if err != nil {
		return false, err
	}
	if ok {
		return false, nil
	}

	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return false, fmt.Errorf("parse catalog seed: %w", err)
	}
	for i := range f.Courses {
		if err := validateCourse(f.Courses[i]); err != nil {
			return false, fmt.Errorf("seed course %q: %w", f.Courses[i].ID, err)
		}
		renumberLessons(&f.Courses[i])
	}
	if err := c.repo.SaveCatalog(ctx, models.CourseCatalog{Courses: f.Courses}); err != nil {
		return false, err
	}
	c.log.Info("catalog seeded", "courses", len(f.Courses))
	return true, nil
}

func (c *Catalog) List(ctx context.Context, f CourseFilter) ([]models.Course, error) {
	cat, _, err := c.repo.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := []models.Course{}
	for _, course := range cat.Courses {
		if f.Language != "" && !strings.EqualFold(course.Language, f.Language) {
			continue
		}
		if f.Level != "" && !strings.EqualFold(course.Level, f.Level) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(course.Title), search) &&
			!strings.Contains(strings.ToLower(course.Description), search) {
			continue
		}
		out = append(out, course)
	}
	return out, nil
}

func (c *Catalog) Get(ctx context.Context, id string) (models.Course, error) {
	cat, _, err := c.repo.Catalog(ctx)
	if err != nil {
		return models.Course{}, err
	}
	for _, course := range cat.Courses {
		if course.ID == id {
			return course, nil
		}
	}
	return models.Course{}, fmt.Errorf("%w: %s", ErrCourseNotFound, id)
}

// Create adds a course authored by actor. Lesson orders are renumbered
// 1..n across topics.
func (c *Catalog) Create(ctx context.Context, actor Learner, course models.Course) (models.Course, error) {
	if !actor.Role.AtLeast(models.RoleTeacher) {
		return models.Course{}, ErrForbiddenRole
	}
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	for ti := range course.Topics {
		if course.Topics[ti].ID == "" {
			course.Topics[ti].ID = uuid.NewString()
		}
		for li := range course.Topics[ti].Lessons {
			if course.Topics[ti].Lessons[li].ID == "" {
				course.Topics[ti].Lessons[li].ID = uuid.NewString()
			}
		}
	}
	if err := validateCourse(course); err != nil {
		return models.Course{}, err
	}
	renumberLessons(&course)
	course.AuthorID = actor.UserID

	err := c.mutate(ctx, func(cat *models.CourseCatalog) error {
		for _, existing := range cat.Courses {
			if existing.ID == course.ID {
				return fmt.Errorf("%w: %s", ErrCourseExists, course.ID)
			}
		}
		cat.Courses = append(cat.Courses, course)
		return nil
	})
	return course, err
}

// AddTopic appends an empty topic to the course.
func (c *Catalog) AddTopic(ctx context.Context, actor Learner, courseID, title string) (models.Topic, error) {
	if strings.TrimSpace(title) == "" {
		return models.Topic{}, invalid("title", "required")
	}
	topic := models.Topic{ID: uuid.NewString(), Title: title, Lessons: []models.Lesson{}}
	err := c.mutateCourse(ctx, actor, courseID, func(course *models.Course) error {
		course.Topics = append(course.Topics, topic)
		return nil
	})
	return topic, err
}

// AddLesson appends a lesson to a topic. Its order is the course's current
// lesson count plus one.
func (c *Catalog) AddLesson(ctx context.Context, actor Learner, courseID, topicID string, lesson models.Lesson) (models.Lesson, error) {
	if strings.TrimSpace(lesson.Title) == "" {
		return models.Lesson{}, invalid("title", "required")
	}
	if lesson.Duration < 0 {
		return models.Lesson{}, invalid("duration", "must not be negative")
	}
	if lesson.ID == "" {
		lesson.ID = uuid.NewString()
	}

	err := c.mutateCourse(ctx, actor, courseID, func(course *models.Course) error {
		if _, dup := course.FindLesson(lesson.ID); dup {
			return invalid("id", "lesson id already used in this course")
		}
		for i := range course.Topics {
			if course.Topics[i].ID != topicID {
				continue
			}
			lesson.Order = len(course.Lessons()) + 1
			course.Topics[i].Lessons = append(course.Topics[i].Lessons, lesson)
			return nil
		}
		return fmt.Errorf("%w: %s", ErrTopicNotFound, topicID)
	})
	return lesson, err
}

// SetAssessment replaces the course's question set.
func (c *Catalog) SetAssessment(ctx context.Context, actor Learner, courseID string, questions []models.Question) error {
	if err := validateQuestions(questions); err != nil {
		return err
	}
	return c.mutateCourse(ctx, actor, courseID, func(course *models.Course) error {
		course.Assessment = questions
		return nil
	})
}

func (c *Catalog) mutate(ctx context.Context, fn func(*models.CourseCatalog) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cat, _, err := c.repo.Catalog(ctx)
	if err != nil {
		return err
	}
	if err := fn(&cat); err != nil {
		return err
	}
	return c.repo.SaveCatalog(ctx, cat)
}

// mutateCourse applies fn to one course. Only the course author or an admin
// may edit it.
func (c *Catalog) mutateCourse(ctx context.Context, actor Learner, courseID string, fn func(*models.Course) error) error {
	return c.mutate(ctx, func(cat *models.CourseCatalog) error {
		for i := range cat.Courses {
			course := &cat.Courses[i]
			if course.ID != courseID {
				continue
			}
			if course.AuthorID != actor.UserID && !actor.Role.AtLeast(models.RoleAdmin) {
				return ErrForbiddenRole
			}
			return fn(course)
		}
		return fmt.Errorf("%w: %s", ErrCourseNotFound, courseID)
	})
}

func validateCourse(course models.Course) error {
	fields := map[string]string{}
	if strings.TrimSpace(course.ID) == "" {
		fields["id"] = "required"
	}
	if strings.TrimSpace(course.Title) == "" {
		fields["title"] = "required"
	}
	if strings.TrimSpace(course.Language) == "" {
		fields["language"] = "required"
	}
	seen := map[string]bool{}
	for _, l := range course.Lessons() {
		if seen[l.ID] {
			fields["lessons"] = "duplicate lesson id " + l.ID
		}
		seen[l.ID] = true
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	if len(course.Assessment) > 0 {
		return validateQuestions(course.Assessment)
	}
	return nil
}

func validateQuestions(questions []models.Question) error {
	fields := map[string]string{}
	for i, q := range questions {
		key := "questions[" + strconv.Itoa(i) + "]"
		switch {
		case strings.TrimSpace(q.Question) == "":
			fields[key] = "question text required"
		case len(q.Options) != models.OptionsPerQuestion:
			fields[key] = fmt.Sprintf("must have exactly %d options", models.OptionsPerQuestion)
		case q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options):
			fields[key] = "invalid correct answer index"
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// renumberLessons assigns orders 1..n keeping the authored relative order.
// Lessons without an order keep their topic position after ordered ones.
func renumberLessons(course *models.Course) {
	type ref struct{ t, l, order, seq int }
	var refs []ref
	seq := 0
	for ti, t := range course.Topics {
		for li, l := range t.Lessons {
			order := l.Order
			if order <= 0 {
				order = int(^uint(0) >> 1)
			}
			refs = append(refs, ref{ti, li, order, seq})
			seq++
		}
	}
	sort.SliceStable(refs, func(i, j int) bool {
		if refs[i].order != refs[j].order {
			return refs[i].order < refs[j].order
		}
		return refs[i].seq < refs[j].seq
	})
	for n, r := range refs {
		course.Topics[r.t].Lessons[r.l].Order = n + 1
	}
}
