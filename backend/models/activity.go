package models

const (
	ActionLogin               = "login"
	ActionEnrolled            = "enrolled"
	ActionLessonWatched       = "lesson_watched"
	ActionLessonSkipped       = "lesson_skipped"
	ActionCourseCompleted     = "course_completed"
	ActionAssessmentCompleted = "assessment_completed"
)

// ActivityEntry holds the actions recorded on one calendar day (YYYY-MM-DD).
type ActivityEntry struct {
	Date    string   `json:"date"`
	Actions []string `json:"actions"`
}

// LearningActivity is the value stored under learningActivity, keyed by email.
type LearningActivity map[string][]ActivityEntry
