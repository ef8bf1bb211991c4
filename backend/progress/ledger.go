// Package progress holds the pure derivations behind lesson sequencing,
// assessment scoring and the dashboard gamification. Nothing here touches
// storage; callers load records, derive, and persist.
package progress

import (
	"math"
	"sort"
	"time"

	"linguaplatform/backend/models"
)

// ComputeLockState returns the lessons sorted by Order with Locked recomputed
// from scratch: the first lesson is unlocked and every later lesson is unlocked
// iff its predecessor is watched.
func ComputeLockState(lessons []models.LessonState) []models.LessonState {
	out := make([]models.LessonState, len(lessons))
	copy(out, lessons)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	for i := range out {
		if i == 0 {
			out[i].Locked = false
			continue
		}
		out[i].Locked = !out[i-1].Watched
	}
	return out
}

// LessonStates joins the course lessons with the learner's records and
// computes the lock graph.
func LessonStates(course models.Course, records models.LessonProgress) []models.LessonState {
	var states []models.LessonState
	for _, t := range course.Topics {
		for _, l := range t.Lessons {
			st := models.LessonState{Lesson: l, TopicID: t.ID}
			if rec, ok := records[l.ID]; ok {
				st.Watched = rec.IsWatched
				st.Skipped = rec.IsSkipped
				st.CompletedAt = rec.CompletedAt
			}
			states = append(states, st)
		}
	}
	return ComputeLockState(states)
}

// Recompute derives TotalLessons, CompletedLessons and IsCompleted from the
// lesson records. CompletionDate is stamped the first time the course
// becomes complete and is never moved afterwards. The second return value
// reports whether this call flipped IsCompleted from false to true.
func Recompute(course models.Course, p models.CourseProgress, now time.Time) (models.CourseProgress, bool) {
	wasCompleted := p.IsCompleted
	lessons := course.Lessons()

	completed := 0
	for _, l := range lessons {
		if p.Lessons[l.ID].IsWatched {
			completed++
		}
	}
	p.TotalLessons = len(lessons)
	p.CompletedLessons = completed
	p.IsCompleted = p.TotalLessons > 0 && completed == p.TotalLessons
	if p.IsCompleted && p.CompletionDate == nil {
		t := now
		p.CompletionDate = &t
	}
	p.LastUpdated = now
	return p, p.IsCompleted && !wasCompleted
}

// NextUnlocked returns the id of the first unlocked lesson after afterID in
// flattened order, or "" when there is none.
func NextUnlocked(states []models.LessonState, afterID string) string {
	seen := false
	for _, st := range states {
		if seen && !st.Locked {
			return st.ID
		}
		if st.ID == afterID {
			seen = true
		}
	}
	return ""
}

// FirstOpen returns the first unlocked, unwatched lesson, falling back to the
// first lesson.
func FirstOpen(states []models.LessonState) string {
	for _, st := range states {
		if !st.Locked && !st.Watched {
			return st.ID
		}
	}
	if len(states) > 0 {
		return states[0].ID
	}
	return ""
}

// Percent is round(100*part/total), or 0 for an empty total.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}
