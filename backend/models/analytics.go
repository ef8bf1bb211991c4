package models

// EnrollmentTrend counts enrollments made on one day.
type EnrollmentTrend struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// CourseAnalytics aggregates learner records for one course.
type CourseAnalytics struct {
	CourseID          string            `json:"courseId"`
	Title             string            `json:"title"`
	TotalEnrollments  int               `json:"totalEnrollments"`
	Completed         int               `json:"completed"`
	AvgCompletionRate int               `json:"avgCompletionRate"`
	AssessmentsTaken  int               `json:"assessmentsTaken"`
	AvgScore          int               `json:"avgScore"`
	PassRate          int               `json:"passRate"`
	EnrollmentTrends  []EnrollmentTrend `json:"enrollmentTrends"`
}
