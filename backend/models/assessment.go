package models

import "time"

// OptionsPerQuestion is the number of answer options every question carries.
const OptionsPerQuestion = 4

type Question struct {
	Question      string   `json:"question" yaml:"question"`
	Options       []string `json:"options" yaml:"options"`
	CorrectAnswer int      `json:"correctAnswer" yaml:"correctAnswer"`
}

// AssessmentSession is one in-flight attempt. Order is the working
// presentation order, a permutation of canonical question indices.
// Answers are keyed by canonical index. QuestionSet fingerprints the
// question list the session was started against.
type AssessmentSession struct {
	AttemptID   string      `json:"attemptId"`
	QuestionSet string      `json:"questionSet"`
	Order       []int       `json:"order"`
	Answers     map[int]int `json:"answers"`
	Current     int         `json:"current"`
	StartedAt   time.Time   `json:"startedAt"`
	Submitted   bool        `json:"submitted"`
}

// AssessmentStorage is the value stored under assessment-storage, keyed by course id.
type AssessmentStorage map[string]AssessmentSession

type QuestionResult struct {
	Index          int      `json:"index"`
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	SelectedAnswer *int     `json:"selectedAnswer"`
	CorrectAnswer  int      `json:"correctAnswer"`
	IsCorrect      bool     `json:"isCorrect"`
}

// AssessmentResult is the detailed record stored under
// assessment_results_<courseId>_<userEmail>.
type AssessmentResult struct {
	AttemptID      string           `json:"attemptId"`
	CourseID       string           `json:"courseId"`
	UserEmail      string           `json:"userEmail"`
	Score          int              `json:"score"`
	CorrectAnswers int              `json:"correctAnswers"`
	TotalQuestions int              `json:"totalQuestions"`
	Unanswered     []int            `json:"unanswered"`
	Passed         bool             `json:"passed"`
	CompletedAt    time.Time        `json:"completedAt"`
	Questions      []QuestionResult `json:"questions"`
}

// PresentedQuestion is a question as shown to the learner, without the answer key.
type PresentedQuestion struct {
	Index    int      `json:"index"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type Certificate struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"courseId"`
	CourseTitle string    `json:"courseTitle"`
	Language    string    `json:"language"`
	Level       string    `json:"level"`
	LearnerName string    `json:"learnerName"`
	Score       int       `json:"score"`
	IssuedAt    time.Time `json:"issuedAt"`
}
