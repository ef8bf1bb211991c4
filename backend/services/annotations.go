package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"linguaplatform/backend/models"
	"linguaplatform/backend/store"
)

// MaxNoteLength bounds a single note body.
const MaxNoteLength = 2000

// Annotations keeps per-course notes and bookmarks.
type Annotations struct {
	repo        *store.Repository
	catalog     *Catalog
	enrollments *Enrollments
	locks       *profileLocks
	now         func() time.Time
}

func (a *Annotations) lesson(ctx context.Context, p *store.Profile, courseID, lessonID string) error {
	course, err := a.catalog.Get(ctx, courseID)
	if err != nil {
		return err
	}
	if err := a.enrollments.requireEnrolled(ctx, p, courseID); err != nil {
		return err
	}
	if _, ok := course.FindLesson(lessonID); !ok {
		return ErrLessonNotFound
	}
	return nil
}

func (a *Annotations) AddNote(ctx context.Context, who Learner, courseID, lessonID, text string) (models.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Note{}, invalid("text", "must not be empty")
	}
	if len(text) > MaxNoteLength {
		return models.Note{}, invalid("text", "is too long")
	}

	unlock := a.locks.lock(who.UserID)
	defer unlock()

	p := a.repo.Profile(who.UserID)
	if err := a.lesson(ctx, p, courseID, lessonID); err != nil {
		return models.Note{}, err
	}
	notes, err := p.Notes(ctx, courseID)
	if err != nil {
		return models.Note{}, err
	}
	n := models.Note{ID: uuid.NewString(), LessonID: lessonID, Text: text, CreatedAt: a.now()}
	if err := p.SaveNotes(ctx, courseID, append(notes, n)); err != nil {
		return models.Note{}, err
	}
	return n, nil
}

// Notes lists notes for a course, optionally narrowed to one lesson.
func (a *Annotations) Notes(ctx context.Context, who Learner, courseID, lessonID string) ([]models.Note, error) {
	p := a.repo.Profile(who.UserID)
	if err := a.enrollments.requireEnrolled(ctx, p, courseID); err != nil {
		return nil, err
	}
	notes, err := p.Notes(ctx, courseID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if lessonID == "" || n.LessonID == lessonID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (a *Annotations) DeleteNote(ctx context.Context, who Learner, courseID, noteID string) error {
	unlock := a.locks.lock(who.UserID)
	defer unlock()

	p := a.repo.Profile(who.UserID)
	if err := a.enrollments.requireEnrolled(ctx, p, courseID); err != nil {
		return err
	}
	notes, err := p.Notes(ctx, courseID)
	if err != nil {
		return err
	}
	for i, n := range notes {
		if n.ID == noteID {
			return p.SaveNotes(ctx, courseID, append(notes[:i:i], notes[i+1:]...))
		}
	}
	return ErrNoteNotFound
}

// ToggleBookmark adds the lesson to the course bookmarks or removes it if
// already present. It reports whether the lesson is bookmarked afterwards.
func (a *Annotations) ToggleBookmark(ctx context.Context, who Learner, courseID, lessonID string) (bool, error) {
	unlock := a.locks.lock(who.UserID)
	defer unlock()

	p := a.repo.Profile(who.UserID)
	if err := a.lesson(ctx, p, courseID, lessonID); err != nil {
		return false, err
	}
	marks, err := p.Bookmarks(ctx, courseID)
	if err != nil {
		return false, err
	}
	for i, b := range marks {
		if b.LessonID == lessonID {
			return false, p.SaveBookmarks(ctx, courseID, append(marks[:i:i], marks[i+1:]...))
		}
	}
	marks = append(marks, models.Bookmark{LessonID: lessonID, CreatedAt: a.now()})
	return true, p.SaveBookmarks(ctx, courseID, marks)
}

func (a *Annotations) Bookmarks(ctx context.Context, who Learner, courseID string) ([]models.Bookmark, error) {
	p := a.repo.Profile(who.UserID)
	if err := a.enrollments.requireEnrolled(ctx, p, courseID); err != nil {
		return nil, err
	}
	marks, err := p.Bookmarks(ctx, courseID)
	if marks == nil {
		marks = []models.Bookmark{}
	}
	return marks, err
}
