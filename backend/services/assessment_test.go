package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linguaplatform/backend/models"
)

// eightOfTen answers questions 0-7 correctly and 8-9 wrongly.
func eightOfTen() map[int]int {
	answers := map[int]int{}
	for i := 0; i < 10; i++ {
		correct := i % models.OptionsPerQuestion
		if i >= 8 {
			correct = (correct + 1) % models.OptionsPerQuestion
		}
		answers[i] = correct
	}
	return answers
}

func TestAssessmentPassAndCertificate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	who := f.enrolled(t, "maria", "es-101")

	view, err := f.svc.Assessments.Start(ctx, who, "es-101")
	require.NoError(t, err)
	require.Len(t, view.Questions, 10)
	for i, q := range view.Questions {
		assert.Equal(t, i, q.Index)
	}
	assert.Equal(t, 70, view.PassThreshold)
	assert.Nil(t, view.Result)

	answers := eightOfTen()
	view, err = f.svc.Assessments.Answer(ctx, who, "es-101", 0, answers[0])
	require.NoError(t, err)
	assert.Equal(t, 1, view.Current)
	delete(answers, 0)

	res, err := f.svc.Assessments.Submit(ctx, who, "es-101", answers)
	require.NoError(t, err)
	assert.Equal(t, 8, res.CorrectAnswers)
	assert.Equal(t, 10, res.TotalQuestions)
	assert.Equal(t, 80, res.Score)
	assert.True(t, res.Passed)
	assert.Empty(t, res.Unanswered)

	stored, err := f.svc.Assessments.Result(ctx, who, "es-101")
	require.NoError(t, err)
	assert.Equal(t, res.AttemptID, stored.AttemptID)

	ucp, err := f.repo.Profile(who.UserID).CourseProgress(ctx, who.Email)
	require.NoError(t, err)
	assert.True(t, ucp["es-101"].AssessmentCompleted)
	require.NotNil(t, ucp["es-101"].AssessmentScore)
	assert.Equal(t, 80, *ucp["es-101"].AssessmentScore)

	cert, err := f.svc.Assessments.Certificate(ctx, who, "es-101")
	require.NoError(t, err)
	assert.Equal(t, "maria", cert.LearnerName)
	assert.Equal(t, "Spanish Basics", cert.CourseTitle)
	assert.Equal(t, 80, cert.Score)
	again, err := f.svc.Assessments.Certificate(ctx, who, "es-101")
	require.NoError(t, err)
	assert.Equal(t, cert.ID, again.ID)

	_, err = f.svc.Assessments.Submit(ctx, who, "es-101", nil)
	assert.ErrorIs(t, err, ErrAssessmentSubmitted)
	_, err = f.svc.Assessments.Answer(ctx, who, "es-101", 1, 1)
	assert.ErrorIs(t, err, ErrAssessmentSubmitted)
}

func TestAssessmentEmptySubmissionScoresZero(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	who := f.enrolled(t, "maria", "es-101")

	res, err := f.svc.Assessments.Submit(ctx, who, "es-101", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Score)
	assert.False(t, res.Passed)
	assert.Len(t, res.Unanswered, 10)

	_, err = f.svc.Assessments.Certificate(ctx, who, "es-101")
	assert.ErrorIs(t, err, ErrCertificateLocked)
}

func TestAssessmentThresholdIsInclusive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	who := f.enrolled(t, "maria", "es-101")

	answers := map[int]int{}
	for i := 0; i < 7; i++ {
		answers[i] = i % models.OptionsPerQuestion
	}
	res, err := f.svc.Assessments.Submit(ctx, who, "es-101", answers)
	require.NoError(t, err)
	assert.Equal(t, 70, res.Score)
	assert.True(t, res.Passed)
}

func TestAssessmentRetakeReshufflesWorkingOrderOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	who := f.enrolled(t, "maria", "es-101")

	first, err := f.svc.Assessments.Submit(ctx, who, "es-101", eightOfTen())
	require.NoError(t, err)

	view, err := f.svc.Assessments.Retake(ctx, who, "es-101")
	require.NoError(t, err)
	assert.NotEqual(t, first.AttemptID, view.AttemptID)
	assert.False(t, view.Submitted)
	assert.Empty(t, view.Answers)
	assert.Nil(t, view.Result)
	require.Len(t, view.Questions, 10)
	assert.Equal(t, 9, view.Questions[0].Index)
	assert.Equal(t, "Question 10", view.Questions[0].Question)

	course, err := f.svc.Catalog.Get(ctx, "es-101")
	require.NoError(t, err)
	assert.Equal(t, "Question 1", course.Assessment[0].Question)

	_, err = f.svc.Assessments.Result(ctx, who, "es-101")
	assert.ErrorIs(t, err, ErrNoResult)
	ucp, err := f.repo.Profile(who.UserID).CourseProgress(ctx, who.Email)
	require.NoError(t, err)
	assert.False(t, ucp["es-101"].AssessmentCompleted)
	assert.Nil(t, ucp["es-101"].AssessmentScore)
	assert.Nil(t, ucp["es-101"].AssessmentDate)

	// answers stay keyed by canonical index regardless of presentation order
	res, err := f.svc.Assessments.Submit(ctx, who, "es-101", eightOfTen())
	require.NoError(t, err)
	assert.Equal(t, 80, res.Score)
}

func TestAssessmentRejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	who := f.enrolled(t, "maria", "es-101", "fr-101")
	stranger := f.learner(t, "tom")

	_, err := f.svc.Assessments.Answer(ctx, who, "es-101", 10, 0)
	assert.ErrorIs(t, err, ErrInvalidAnswer)
	_, err = f.svc.Assessments.Answer(ctx, who, "es-101", 0, 4)
	assert.ErrorIs(t, err, ErrInvalidAnswer)
	_, err = f.svc.Assessments.Submit(ctx, who, "es-101", map[int]int{-1: 0})
	assert.ErrorIs(t, err, ErrInvalidAnswer)

	_, err = f.svc.Assessments.Start(ctx, who, "fr-101")
	assert.ErrorIs(t, err, ErrNoAssessment)
	_, err = f.svc.Assessments.Start(ctx, stranger, "es-101")
	assert.ErrorIs(t, err, ErrNotEnrolled)
	_, err = f.svc.Assessments.Result(ctx, who, "es-101")
	assert.ErrorIs(t, err, ErrNoResult)
	_, err = f.svc.Assessments.Certificate(ctx, who, "es-101")
	assert.ErrorIs(t, err, ErrCertificateLocked)
}

func TestAssessmentQuestionSetChangeKeepsSubmittedAttempt(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	who := f.enrolled(t, "maria", "es-101")

	first, err := f.svc.Assessments.Submit(ctx, who, "es-101", eightOfTen())
	require.NoError(t, err)
	require.True(t, first.Passed)

	require.NoError(t, f.svc.Catalog.SetAssessment(ctx, f.admin, "es-101", quiz(5)))

	_, err = f.svc.Assessments.Submit(ctx, who, "es-101", nil)
	assert.ErrorIs(t, err, ErrAssessmentSubmitted)
	_, err = f.svc.Assessments.Answer(ctx, who, "es-101", 0, 0)
	assert.ErrorIs(t, err, ErrAssessmentSubmitted)

	view, err := f.svc.Assessments.Start(ctx, who, "es-101")
	require.NoError(t, err)
	assert.True(t, view.Submitted)
	assert.Len(t, view.Questions, 5)
	require.NotNil(t, view.Result)
	assert.Equal(t, 80, view.Result.Score)

	stored, err := f.svc.Assessments.Result(ctx, who, "es-101")
	require.NoError(t, err)
	assert.Equal(t, first.AttemptID, stored.AttemptID)
	_, err = f.svc.Assessments.Certificate(ctx, who, "es-101")
	require.NoError(t, err)

	_, err = f.svc.Assessments.Retake(ctx, who, "es-101")
	require.NoError(t, err)
	res, err := f.svc.Assessments.Submit(ctx, who, "es-101", map[int]int{0: 0, 1: 1, 2: 2, 3: 3, 4: 0})
	require.NoError(t, err)
	assert.Equal(t, 100, res.Score)
}

func TestAssessmentQuestionSetChangeDropsStaleAnswers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	who := f.enrolled(t, "maria", "es-101")

	_, err := f.svc.Assessments.Answer(ctx, who, "es-101", 0, 0)
	require.NoError(t, err)

	replaced := quiz(10)
	replaced[0].Question = "Which article goes with agua?"
	require.NoError(t, f.svc.Catalog.SetAssessment(ctx, f.admin, "es-101", replaced))

	view, err := f.svc.Assessments.Start(ctx, who, "es-101")
	require.NoError(t, err)
	assert.False(t, view.Submitted)
	assert.Empty(t, view.Answers)
	assert.Equal(t, "Which article goes with agua?", view.Questions[0].Question)

	res, err := f.svc.Assessments.Submit(ctx, who, "es-101", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Score)
	assert.Len(t, res.Unanswered, 10)
}
