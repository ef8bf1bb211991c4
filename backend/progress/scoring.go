package progress

import "linguaplatform/backend/models"

// PassThreshold is the minimum score that counts as passed.
const PassThreshold = 70

// Scored is the outcome of grading one answer map against a question set.
type Scored struct {
	Correct    int
	Score      int
	Unanswered []int
	Questions  []models.QuestionResult
}

// Score grades answers (canonical question index -> option index) against
// questions. Unanswered questions count as wrong. Correct and Score are
// always derived from answers, never carried over.
func Score(questions []models.Question, answers map[int]int) Scored {
	res := Scored{
		Unanswered: []int{},
		Questions:  make([]models.QuestionResult, 0, len(questions)),
	}
	for i, q := range questions {
		qr := models.QuestionResult{
			Index:         i,
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		}
		if sel, ok := answers[i]; ok {
			sel := sel
			qr.SelectedAnswer = &sel
			qr.IsCorrect = sel == q.CorrectAnswer
		} else {
			res.Unanswered = append(res.Unanswered, i)
		}
		if qr.IsCorrect {
			res.Correct++
		}
		res.Questions = append(res.Questions, qr)
	}
	res.Score = Percent(res.Correct, len(questions))
	return res
}

// Passed reports whether score clears PassThreshold.
func Passed(score int) bool {
	return score >= PassThreshold
}
