package controllers

import (
	courseModels "inspecteur/models/course"
)

// missingAnswer is the sentinel recorded when a question was left blank;
// it never matches a stored correct index.
const missingAnswer = -1

// QuestionResult details the scoring of one question
type QuestionResult struct {
	QuestionID    uint `json:"question_id"`
	SelectedIndex int  `json:"selected_index"`
	CorrectIndex  int  `json:"correct_index"`
	IsCorrect     bool `json:"is_correct"`
}

// QuizResult is the outcome of scoring one submission
type QuizResult struct {
	CorrectCount int              `json:"correct_count"`
	Total        int              `json:"total"`
	ScorePercent float64          `json:"score_percent"`
	Passed       bool             `json:"passed"`
	Details      []QuestionResult `json:"details"`
}

// ScoreQuiz compares submitted answers against the stored correct indexes.
// A quiz without questions scores 0 and fails; creation-time validation
// rejects empty quizzes, this guard covers legacy rows.
func ScoreQuiz(questions []courseModels.Question, answers map[uint]int, passingScore int) QuizResult {
	result := QuizResult{
		Total:   len(questions),
		Details: make([]QuestionResult, 0, len(questions)),
	}

	for _, q := range questions {
		selected, found := answers[q.ID]
		if !found {
			selected = missingAnswer
		}
		isCorrect := selected == q.CorrectIndex
		if isCorrect {
			result.CorrectCount++
		}
		result.Details = append(result.Details, QuestionResult{
			QuestionID:    q.ID,
			SelectedIndex: selected,
			CorrectIndex:  q.CorrectIndex,
			IsCorrect:     isCorrect,
		})
	}

	if result.Total > 0 {
		result.ScorePercent = 100 * float64(result.CorrectCount) / float64(result.Total)
		result.Passed = result.ScorePercent >= float64(passingScore)
	}

	return result
}
