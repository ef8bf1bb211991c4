package progress

import "linguaplatform/backend/models"

// AchievementInput is the snapshot achievements are derived from.
type AchievementInput struct {
	Enrollments      int
	CompletedLessons int
	TotalLessons     int
	Streak           int
	Languages        int
}

type rule struct {
	achievement models.Achievement
	holds       func(AchievementInput) bool
}

func atLeast(field func(AchievementInput) int, n int) func(AchievementInput) bool {
	return func(in AchievementInput) bool { return field(in) >= n }
}

var (
	enrollments = func(in AchievementInput) int { return in.Enrollments }
	lessons     = func(in AchievementInput) int { return in.CompletedLessons }
	percent     = func(in AchievementInput) int { return Percent(in.CompletedLessons, in.TotalLessons) }
	streakDays  = func(in AchievementInput) int { return in.Streak }
	languages   = func(in AchievementInput) int { return in.Languages }
)

var rules = []rule{
	{models.Achievement{ID: "first-enrollment", Title: "First Steps", Description: "Enrolled in your first course", Icon: "🎯"}, atLeast(enrollments, 1)},
	{models.Achievement{ID: "three-enrollments", Title: "Explorer", Description: "Enrolled in 3 courses", Icon: "🧭"}, atLeast(enrollments, 3)},
	{models.Achievement{ID: "first-lesson", Title: "Getting Started", Description: "Completed your first lesson", Icon: "📘"}, atLeast(lessons, 1)},
	{models.Achievement{ID: "five-lessons", Title: "Eager Learner", Description: "Completed 5 lessons", Icon: "📚"}, atLeast(lessons, 5)},
	{models.Achievement{ID: "ten-lessons", Title: "Dedicated Student", Description: "Completed 10 lessons", Icon: "🎓"}, atLeast(lessons, 10)},
	{models.Achievement{ID: "twenty-five-lessons", Title: "Scholar", Description: "Completed 25 lessons", Icon: "🏛️"}, atLeast(lessons, 25)},
	{models.Achievement{ID: "progress-25", Title: "Quarter Way", Description: "Reached 25% overall progress", Icon: "🌱"}, atLeast(percent, 25)},
	{models.Achievement{ID: "progress-50", Title: "Halfway There", Description: "Reached 50% overall progress", Icon: "🌿"}, atLeast(percent, 50)},
	{models.Achievement{ID: "progress-75", Title: "Almost Done", Description: "Reached 75% overall progress", Icon: "🌳"}, atLeast(percent, 75)},
	{models.Achievement{ID: "progress-100", Title: "Completionist", Description: "Completed every enrolled lesson", Icon: "🏆"}, atLeast(percent, 100)},
	{models.Achievement{ID: "streak-3", Title: "On a Roll", Description: "3-day learning streak", Icon: "🔥"}, atLeast(streakDays, 3)},
	{models.Achievement{ID: "streak-7", Title: "Week Warrior", Description: "7-day learning streak", Icon: "⚡"}, atLeast(streakDays, 7)},
	{models.Achievement{ID: "streak-14", Title: "Fortnight Focus", Description: "14-day learning streak", Icon: "💪"}, atLeast(streakDays, 14)},
	{models.Achievement{ID: "streak-30", Title: "Monthly Master", Description: "30-day learning streak", Icon: "👑"}, atLeast(streakDays, 30)},
	{models.Achievement{ID: "polyglot-2", Title: "Bilingual", Description: "Studying 2 languages", Icon: "🌍"}, atLeast(languages, 2)},
	{models.Achievement{ID: "polyglot-3", Title: "Polyglot", Description: "Studying 3 languages", Icon: "🗺️"}, atLeast(languages, 3)},
}

// Achievements returns, in a fixed order, every achievement whose threshold
// currently holds. Nothing is persisted, so an achievement disappears if the
// snapshot regresses.
func Achievements(in AchievementInput) []models.Achievement {
	out := []models.Achievement{}
	for _, r := range rules {
		if r.holds(in) {
			out = append(out, r.achievement)
		}
	}
	return out
}
