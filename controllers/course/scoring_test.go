package controllers

import (
	"testing"

	courseModels "inspecteur/models/course"

	"github.com/stretchr/testify/assert"
)

func makeQuestions(n int) []courseModels.Question {
	questions := make([]courseModels.Question, n)
	for i := range questions {
		questions[i] = courseModels.Question{
			Text:         "q",
			Options:      []byte(`["a","b","c","d"]`),
			CorrectIndex: i % 4,
			OrderIndex:   i,
		}
		questions[i].ID = uint(i + 1)
	}
	return questions
}

func TestScoreQuizFourOutOfFiveAtThreshold(t *testing.T) {
	questions := makeQuestions(5)

	answers := map[uint]int{}
	for _, q := range questions {
		answers[q.ID] = q.CorrectIndex
	}
	// One wrong answer
	answers[questions[4].ID] = (questions[4].CorrectIndex + 1) % 4

	result := ScoreQuiz(questions, answers, 80)

	assert.Equal(t, 4, result.CorrectCount)
	assert.Equal(t, 5, result.Total)
	assert.InDelta(t, 80.0, result.ScorePercent, 0.001)
	assert.True(t, result.Passed)
}

func TestScoreQuizBelowThresholdFails(t *testing.T) {
	questions := makeQuestions(5)

	answers := map[uint]int{questions[0].ID: questions[0].CorrectIndex}

	result := ScoreQuiz(questions, answers, 80)

	assert.Equal(t, 1, result.CorrectCount)
	assert.InDelta(t, 20.0, result.ScorePercent, 0.001)
	assert.False(t, result.Passed)
}

func TestScoreQuizMissingAnswersAreIncorrect(t *testing.T) {
	questions := makeQuestions(3)

	result := ScoreQuiz(questions, map[uint]int{}, 50)

	assert.Equal(t, 0, result.CorrectCount)
	assert.False(t, result.Passed)
	for _, detail := range result.Details {
		assert.Equal(t, missingAnswer, detail.SelectedIndex)
		assert.False(t, detail.IsCorrect)
	}
}

func TestScoreQuizZeroQuestionsFailsWithoutPanic(t *testing.T) {
	result := ScoreQuiz(nil, map[uint]int{1: 0}, 80)

	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 0.0, result.ScorePercent)
	assert.False(t, result.Passed)
}

func TestScoreQuizScoreAlwaysInRange(t *testing.T) {
	questions := makeQuestions(7)

	for wrong := 0; wrong <= len(questions); wrong++ {
		answers := map[uint]int{}
		for i, q := range questions {
			if i < wrong {
				answers[q.ID] = (q.CorrectIndex + 1) % 4
			} else {
				answers[q.ID] = q.CorrectIndex
			}
		}

		result := ScoreQuiz(questions, answers, 60)

		assert.GreaterOrEqual(t, result.ScorePercent, 0.0)
		assert.LessOrEqual(t, result.ScorePercent, 100.0)
		assert.Equal(t, result.ScorePercent >= 60, result.Passed)
	}
}
