package app

import (
	"testing"
	"time"

	"duk-quiz-service/internal/domain"
)

func TestScoreBuzzerPenalisesEveryWrongAnswer(t *testing.T) {
	t0 := time.Date(2024, 11, 22, 10, 0, 0, 0, time.UTC)
	q := domain.Question{ID: "q1", RoundType: domain.RoundBuzzer, Points: 150, CorrectAnswer: 2}
	subs := []domain.Submission{
		// recorded out of order; scoring goes by timestamp
		{TeamID: "t3", IsCorrect: true, Timestamp: t0.Add(3 * time.Second)},
		{TeamID: "t1", IsCorrect: false, Timestamp: t0.Add(1 * time.Second)},
		{TeamID: "t2", IsCorrect: true, Timestamp: t0.Add(2 * time.Second)},
		{TeamID: "t4", IsCorrect: false, Timestamp: t0.Add(4 * time.Second)},
	}

	deltas := scoreQuestion(q, subs)
	want := map[string]int{"t1": -50, "t2": 150, "t4": -50}
	if len(deltas) != len(want) {
		t.Fatalf("unexpected deltas %v", deltas)
	}
	for id, d := range want {
		if deltas[id] != d {
			t.Fatalf("team %s: expected %d, got %d", id, d, deltas[id])
		}
	}
}

func TestScoreStandardSkipsPasses(t *testing.T) {
	q := domain.Question{ID: "q1", RoundType: domain.RoundStandard, Points: 100}
	subs := []domain.Submission{
		{TeamID: "t1", Type: domain.SubmissionPass, IsCorrect: true},
		{TeamID: "t2", Type: domain.SubmissionAnswer, IsCorrect: true},
		{TeamID: "t3", Type: domain.SubmissionAnswer, IsCorrect: false},
	}
	deltas := scoreQuestion(q, subs)
	if deltas["t1"] != 0 || deltas["t2"] != 100 || deltas["t3"] != 0 {
		t.Fatalf("unexpected deltas %v", deltas)
	}
}

func TestScoreOtherRoundsOnReveal(t *testing.T) {
	subs := []domain.Submission{{TeamID: "t1", IsCorrect: true}, {TeamID: "t2"}}
	for _, round := range []domain.RoundType{domain.RoundAskAI, domain.RoundVisual} {
		if deltas := scoreQuestion(domain.Question{RoundType: round, Points: 250}, subs); len(deltas) != 0 {
			t.Fatalf("%s: expected no reveal scoring, got %v", round, deltas)
		}
	}
}
