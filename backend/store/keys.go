package store

import "fmt"

type Scope int

const (
	// ScopeGlobal keys are shared by every user.
	ScopeGlobal Scope = iota
	// ScopeProfile keys live inside a user's profile namespace.
	ScopeProfile
)

// KeySpec declares one persisted key: its name pattern, where it lives and
// the version of the value shape written under it.
type KeySpec struct {
	Pattern string
	Scope   Scope
	Version int
}

// Key renders the concrete key name.
func (k KeySpec) Key(args ...interface{}) string {
	if len(args) == 0 {
		return k.Pattern
	}
	return fmt.Sprintf(k.Pattern, args...)
}

var (
	KeyCatalog      = KeySpec{Pattern: "courses-storage", Scope: ScopeGlobal, Version: 1}
	KeyUsers        = KeySpec{Pattern: "user-storage", Scope: ScopeGlobal, Version: 1}
	KeyLoginHistory = KeySpec{Pattern: "loginHistory", Scope: ScopeGlobal, Version: 1}

	KeyEnrolledCourses    = KeySpec{Pattern: "enrolled_courses", Scope: ScopeProfile, Version: 1}
	KeyCourseProgress     = KeySpec{Pattern: "course_progress_%s", Scope: ScopeProfile, Version: 1}
	KeyUserCourseProgress = KeySpec{Pattern: "user_course_progress_%s", Scope: ScopeProfile, Version: 1}
	KeyAssessmentResults  = KeySpec{Pattern: "assessment_results_%s_%s", Scope: ScopeProfile, Version: 1}
	KeyAssessmentStorage  = KeySpec{Pattern: "assessment-storage", Scope: ScopeProfile, Version: 1}
	KeyCourseNotes        = KeySpec{Pattern: "course_notes_%s", Scope: ScopeProfile, Version: 1}
	KeyCourseBookmarks    = KeySpec{Pattern: "course_bookmarks_%s", Scope: ScopeProfile, Version: 1}
	KeyLearningActivity   = KeySpec{Pattern: "learningActivity", Scope: ScopeProfile, Version: 1}
)

// Registry lists every declared key.
func Registry() []KeySpec {
	return []KeySpec{
		KeyCatalog, KeyUsers, KeyLoginHistory,
		KeyEnrolledCourses, KeyCourseProgress, KeyUserCourseProgress,
		KeyAssessmentResults, KeyAssessmentStorage,
		KeyCourseNotes, KeyCourseBookmarks, KeyLearningActivity,
	}
}
