package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"linguaplatform/backend/models"
	"linguaplatform/backend/progress"
	"linguaplatform/backend/store"
)

// Assessments runs the scored quiz at the end of a course.
//
// The course's question list is the canonical order and is never reordered.
// Each session keeps its own working order, a permutation of canonical
// indices, and answers are always keyed by canonical index.
type Assessments struct {
	repo            *store.Repository
	catalog         *Catalog
	enrollments     *Enrollments
	activity        *activityRecorder
	locks           *profileLocks
	now             func() time.Time
	shuffle         func(n int) []int
	shuffleOnRetake bool
}

// AssessmentView is the learner-facing state of an assessment.
type AssessmentView struct {
	CourseID      string                     `json:"courseId"`
	AttemptID     string                     `json:"attemptId"`
	Questions     []models.PresentedQuestion `json:"questions"`
	Answers       map[int]int                `json:"answers"`
	Current       int                        `json:"current"`
	Submitted     bool                       `json:"submitted"`
	PassThreshold int                        `json:"passThreshold"`
	Result        *models.AssessmentResult   `json:"result,omitempty"`
}

// questionSetFingerprint identifies a question list. Any edit to a prompt,
// option or answer key changes it.
func questionSetFingerprint(questions []models.Question) string {
	raw, err := json.Marshal(questions)
	if err != nil {
		return ""
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, raw).String()
}

func (a *Assessments) newSession(questions []models.Question, shuffled bool) models.AssessmentSession {
	n := len(questions)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if shuffled && n > 1 {
		order = a.shuffle(n)
	}
	return models.AssessmentSession{
		AttemptID:   uuid.NewString(),
		QuestionSet: questionSetFingerprint(questions),
		Order:       order,
		Answers:     map[int]int{},
		StartedAt:   a.now(),
	}
}

// validOrder reports whether order is a permutation of 0..n-1.
func validOrder(order []int, n int) bool {
	if len(order) != n {
		return false
	}
	seen := make([]bool, n)
	for _, i := range order {
		if i < 0 || i >= n || seen[i] {
			return false
		}
		seen[i] = true
	}
	return true
}

// begin loads the course and session under the profile lock, creating a
// session when there is none or the question set changed underneath it.
// A replacement session starts without answers and stays submitted while a
// result is stored, so only Retake opens a new attempt.
func (a *Assessments) begin(ctx context.Context, who Learner, courseID string) (models.Course, *store.Profile, models.AssessmentStorage, models.AssessmentSession, error) {
	course, err := a.catalog.Get(ctx, courseID)
	if err != nil {
		return course, nil, nil, models.AssessmentSession{}, err
	}
	if len(course.Assessment) == 0 {
		return course, nil, nil, models.AssessmentSession{}, ErrNoAssessment
	}
	p := a.repo.Profile(who.UserID)
	if err := a.enrollments.requireEnrolled(ctx, p, courseID); err != nil {
		return course, nil, nil, models.AssessmentSession{}, err
	}
	sessions, err := p.AssessmentSessions(ctx)
	if err != nil {
		return course, nil, nil, models.AssessmentSession{}, err
	}
	s, ok := sessions[courseID]
	if !ok || s.QuestionSet != questionSetFingerprint(course.Assessment) || !validOrder(s.Order, len(course.Assessment)) {
		_, hasResult, err := p.AssessmentResult(ctx, courseID, who.Email)
		if err != nil {
			return course, nil, nil, models.AssessmentSession{}, err
		}
		s = a.newSession(course.Assessment, false)
		s.Submitted = hasResult
		sessions[courseID] = s
		if err := p.SaveAssessmentSessions(ctx, sessions); err != nil {
			return course, nil, nil, models.AssessmentSession{}, err
		}
	}
	if s.Answers == nil {
		s.Answers = map[int]int{}
	}
	return course, p, sessions, s, nil
}

func (a *Assessments) view(ctx context.Context, p *store.Profile, who Learner, course models.Course, s models.AssessmentSession) (AssessmentView, error) {
	qs := make([]models.PresentedQuestion, 0, len(s.Order))
	for _, idx := range s.Order {
		q := course.Assessment[idx]
		qs = append(qs, models.PresentedQuestion{Index: idx, Question: q.Question, Options: q.Options})
	}
	v := AssessmentView{
		CourseID:      course.ID,
		AttemptID:     s.AttemptID,
		Questions:     qs,
		Answers:       s.Answers,
		Current:       s.Current,
		Submitted:     s.Submitted,
		PassThreshold: progress.PassThreshold,
	}
	res, ok, err := p.AssessmentResult(ctx, course.ID, who.Email)
	if err != nil {
		return AssessmentView{}, err
	}
	if ok {
		v.Result = &res
	}
	return v, nil
}

// Start returns the current attempt, creating one in canonical order on
// first use.
func (a *Assessments) Start(ctx context.Context, who Learner, courseID string) (AssessmentView, error) {
	unlock := a.locks.lock(who.UserID)
	defer unlock()

	course, p, _, s, err := a.begin(ctx, who, courseID)
	if err != nil {
		return AssessmentView{}, err
	}
	return a.view(ctx, p, who, course, s)
}

func checkAnswer(course models.Course, questionIndex, option int) error {
	if questionIndex < 0 || questionIndex >= len(course.Assessment) {
		return ErrInvalidAnswer
	}
	if option < 0 || option >= len(course.Assessment[questionIndex].Options) {
		return ErrInvalidAnswer
	}
	return nil
}

// Answer records the selected option for one question (canonical index) and
// moves the cursor past it.
func (a *Assessments) Answer(ctx context.Context, who Learner, courseID string, questionIndex, option int) (AssessmentView, error) {
	unlock := a.locks.lock(who.UserID)
	defer unlock()

	course, p, sessions, s, err := a.begin(ctx, who, courseID)
	if err != nil {
		return AssessmentView{}, err
	}
	if s.Submitted {
		return AssessmentView{}, ErrAssessmentSubmitted
	}
	if err := checkAnswer(course, questionIndex, option); err != nil {
		return AssessmentView{}, err
	}

	s.Answers[questionIndex] = option
	for pos, idx := range s.Order {
		if idx == questionIndex {
			s.Current = min(pos+1, len(s.Order)-1)
			break
		}
	}
	sessions[courseID] = s
	if err := p.SaveAssessmentSessions(ctx, sessions); err != nil {
		return AssessmentView{}, err
	}
	return a.view(ctx, p, who, course, s)
}

// Submit merges answers into the attempt and scores it. Unanswered questions
// count as wrong, so an empty submission scores 0.
func (a *Assessments) Submit(ctx context.Context, who Learner, courseID string, answers map[int]int) (models.AssessmentResult, error) {
	unlock := a.locks.lock(who.UserID)
	defer unlock()

	course, p, sessions, s, err := a.begin(ctx, who, courseID)
	if err != nil {
		return models.AssessmentResult{}, err
	}
	if s.Submitted {
		return models.AssessmentResult{}, ErrAssessmentSubmitted
	}
	for q, opt := range answers {
		if err := checkAnswer(course, q, opt); err != nil {
			return models.AssessmentResult{}, err
		}
	}
	for q, opt := range answers {
		s.Answers[q] = opt
	}

	now := a.now()
	scored := progress.Score(course.Assessment, s.Answers)
	res := models.AssessmentResult{
		AttemptID:      s.AttemptID,
		CourseID:       course.ID,
		UserEmail:      who.Email,
		Score:          scored.Score,
		CorrectAnswers: scored.Correct,
		TotalQuestions: len(course.Assessment),
		Unanswered:     scored.Unanswered,
		Passed:         progress.Passed(scored.Score),
		CompletedAt:    now,
		Questions:      scored.Questions,
	}
	if err := p.SaveAssessmentResult(ctx, course.ID, who.Email, res); err != nil {
		return models.AssessmentResult{}, err
	}

	ucp, err := p.CourseProgress(ctx, who.Email)
	if err != nil {
		return models.AssessmentResult{}, err
	}
	cp := ucp[course.ID]
	score := res.Score
	cp.AssessmentCompleted = true
	cp.AssessmentScore = &score
	cp.AssessmentDate = &now
	cp.LastUpdated = now
	ucp[course.ID] = cp
	if err := p.SaveCourseProgress(ctx, who.Email, ucp); err != nil {
		return models.AssessmentResult{}, err
	}

	s.Submitted = true
	sessions[courseID] = s
	if err := p.SaveAssessmentSessions(ctx, sessions); err != nil {
		return models.AssessmentResult{}, err
	}

	a.activity.record(ctx, who.UserID, who.Email, models.ActionAssessmentCompleted)
	return res, nil
}

// Retake discards the stored result and summary and starts a fresh attempt.
func (a *Assessments) Retake(ctx context.Context, who Learner, courseID string) (AssessmentView, error) {
	unlock := a.locks.lock(who.UserID)
	defer unlock()

	course, p, sessions, _, err := a.begin(ctx, who, courseID)
	if err != nil {
		return AssessmentView{}, err
	}
	if err := p.DeleteAssessmentResult(ctx, course.ID, who.Email); err != nil {
		return AssessmentView{}, err
	}

	ucp, err := p.CourseProgress(ctx, who.Email)
	if err != nil {
		return AssessmentView{}, err
	}
	if cp, ok := ucp[course.ID]; ok {
		cp.AssessmentCompleted = false
		cp.AssessmentScore = nil
		cp.AssessmentDate = nil
		cp.LastUpdated = a.now()
		ucp[course.ID] = cp
		if err := p.SaveCourseProgress(ctx, who.Email, ucp); err != nil {
			return AssessmentView{}, err
		}
	}

	s := a.newSession(course.Assessment, a.shuffleOnRetake)
	sessions[courseID] = s
	if err := p.SaveAssessmentSessions(ctx, sessions); err != nil {
		return AssessmentView{}, err
	}
	return a.view(ctx, p, who, course, s)
}

// Result returns the stored detailed result.
func (a *Assessments) Result(ctx context.Context, who Learner, courseID string) (models.AssessmentResult, error) {
	res, ok, err := a.repo.Profile(who.UserID).AssessmentResult(ctx, courseID, who.Email)
	if err != nil {
		return models.AssessmentResult{}, err
	}
	if !ok {
		return models.AssessmentResult{}, ErrNoResult
	}
	return res, nil
}

// Certificate returns certificate metadata for a passed attempt. The id is
// derived from the attempt so repeated calls agree.
func (a *Assessments) Certificate(ctx context.Context, who Learner, courseID string) (models.Certificate, error) {
	course, err := a.catalog.Get(ctx, courseID)
	if err != nil {
		return models.Certificate{}, err
	}
	res, err := a.Result(ctx, who, courseID)
	if err != nil {
		if errors.Is(err, ErrNoResult) {
			return models.Certificate{}, ErrCertificateLocked
		}
		return models.Certificate{}, err
	}
	if !res.Passed {
		return models.Certificate{}, ErrCertificateLocked
	}
	users, err := a.repo.Users(ctx)
	if err != nil {
		return models.Certificate{}, err
	}
	learnerName := who.Email
	if u, ok := users[who.Email]; ok && u.Name != "" {
		learnerName = u.Name
	}
	return models.Certificate{
		ID:          uuid.NewSHA1(uuid.NameSpaceOID, []byte(res.AttemptID)).String(),
		CourseID:    course.ID,
		CourseTitle: course.Title,
		Language:    course.Language,
		Level:       course.Level,
		LearnerName: learnerName,
		Score:       res.Score,
		IssuedAt:    res.CompletedAt,
	}, nil
}
