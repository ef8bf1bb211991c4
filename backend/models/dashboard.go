package models

type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type DashboardCourse struct {
	Enrollment
	TotalLessons        int  `json:"totalLessons"`
	CompletedLessons    int  `json:"completedLessons"`
	Percent             int  `json:"percent"`
	IsCompleted         bool `json:"isCompleted"`
	AssessmentCompleted bool `json:"assessmentCompleted"`
	AssessmentScore     *int `json:"assessmentScore"`
}

type Dashboard struct {
	Courses          []DashboardCourse `json:"courses"`
	EnrolledCourses  int               `json:"enrolledCourses"`
	CompletedCourses int               `json:"completedCourses"`
	CompletedLessons int               `json:"completedLessons"`
	TotalLessons     int               `json:"totalLessons"`
	Percent          int               `json:"percent"`
	Streak           int               `json:"streak"`
	Achievements     []Achievement     `json:"achievements"`
	RecentActivity   []ActivityEntry   `json:"recentActivity"`
}
