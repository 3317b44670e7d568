package app

import (
	"sort"

	"duk-quiz-service/internal/domain"
)

// scoreQuestion returns the per-team score changes for revealing q.
// ASK_AI is scored by judging and VISUAL carries no reveal scoring.
func scoreQuestion(q domain.Question, submissions []domain.Submission) map[string]int {
	deltas := make(map[string]int)
	switch q.RoundType {
	case domain.RoundBuzzer:
		scoreBuzzer(q, submissions, deltas)
	case domain.RoundStandard:
		scoreStandard(q, submissions, deltas)
	}
	return deltas
}

// scoreBuzzer credits only the earliest correct submission and penalises every
// wrong one, wherever it falls relative to the winner.
func scoreBuzzer(q domain.Question, submissions []domain.Submission, deltas map[string]int) {
	ordered := append([]domain.Submission(nil), submissions...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	winnerFound := false
	for _, sub := range ordered {
		switch {
		case sub.IsCorrect && !winnerFound:
			deltas[sub.TeamID] += q.Points
			winnerFound = true
		case !sub.IsCorrect:
			deltas[sub.TeamID] -= BuzzerPenalty
		}
	}
}

func scoreStandard(q domain.Question, submissions []domain.Submission, deltas map[string]int) {
	for _, sub := range submissions {
		if sub.Type == domain.SubmissionPass {
			continue
		}
		if sub.IsCorrect {
			deltas[sub.TeamID] += q.Points
		}
	}
}
