package models

import "time"

// LessonRecord is the per-lesson entry of course_progress_<courseId>.
type LessonRecord struct {
	IsWatched   bool       `json:"isWatched"`
	IsSkipped   bool       `json:"isSkipped"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// LessonProgress maps lesson id to its record.
type LessonProgress map[string]LessonRecord

// CourseProgress is one entry of user_course_progress_<userEmail>.
// CompletedLessons and IsCompleted are derived from Lessons.
type CourseProgress struct {
	Lessons             LessonProgress `json:"lessons"`
	TotalLessons        int            `json:"totalLessons"`
	CompletedLessons    int            `json:"completedLessons"`
	IsCompleted         bool           `json:"isCompleted"`
	CompletionDate      *time.Time     `json:"completionDate,omitempty"`
	AssessmentCompleted bool           `json:"assessmentCompleted"`
	AssessmentScore     *int           `json:"assessmentScore"`
	AssessmentDate      *time.Time     `json:"assessmentDate"`
	CurrentLessonID     string         `json:"currentLessonId,omitempty"`
	LastUpdated         time.Time      `json:"lastUpdated"`
}

// UserCourseProgress maps course id to progress.
type UserCourseProgress map[string]CourseProgress

// LessonState is a lesson joined with the learner's state for it.
type LessonState struct {
	Lesson
	TopicID     string     `json:"topicId"`
	Watched     bool       `json:"watched"`
	Skipped     bool       `json:"skipped"`
	Locked      bool       `json:"locked"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// LessonUpdate is returned by every ledger mutation.
type LessonUpdate struct {
	Lessons         []LessonState  `json:"lessons"`
	Progress        CourseProgress `json:"progress"`
	CurrentLessonID string         `json:"currentLessonId"`
	CourseCompleted bool           `json:"courseCompleted"`
}
