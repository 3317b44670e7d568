package app

import (
	"context"
	"fmt"
	"sync"

	"duk-quiz-service/internal/domain"
	"github.com/google/uuid"
)

// QuestionSetRepository loads question banks (from cache/backing store).
type QuestionSetRepository interface {
	GetQuestionSet(ctx context.Context, setID string) (domain.QuestionSet, error)
}

// BankGenerator serves pre-authored questions when no AI generator is used.
// It walks the set round-robin per round type.
type BankGenerator struct {
	sets  QuestionSetRepository
	setID string

	mu     sync.Mutex
	cursor map[domain.RoundType]int
}

func NewBankGenerator(sets QuestionSetRepository, setID string) *BankGenerator {
	return &BankGenerator{
		sets:   sets,
		setID:  setID,
		cursor: make(map[domain.RoundType]int),
	}
}

func (g *BankGenerator) Generate(ctx context.Context, round domain.RoundType) (domain.Question, error) {
	set, err := g.sets.GetQuestionSet(ctx, g.setID)
	if err != nil {
		return domain.Question{}, err
	}
	candidates := bankCandidates(set.Questions, round)
	if len(candidates) == 0 {
		return domain.Question{}, fmt.Errorf("question set %s has no questions for %s", g.setID, round)
	}

	g.mu.Lock()
	idx := g.cursor[round] % len(candidates)
	g.cursor[round] = idx + 1
	g.mu.Unlock()

	q := candidates[idx]
	q.ID = "bank_" + uuid.NewString()
	q.Options = append([]string{}, q.Options...)
	q.RoundType = round
	if q.Points <= 0 {
		q.Points = DefaultPoints(round)
	}
	if q.TimeLimit <= 0 {
		q.TimeLimit = int(DefaultAnswerWindow.Seconds())
	}
	return q, nil
}

// bankCandidates prefers questions authored for round and otherwise falls back
// to any multiple-choice question.
func bankCandidates(questions []domain.Question, round domain.RoundType) []domain.Question {
	var exact, shaped []domain.Question
	for _, q := range questions {
		if q.RoundType == domain.RoundAskAI || len(q.Options) != 4 {
			continue
		}
		shaped = append(shaped, q)
		if q.RoundType == round {
			exact = append(exact, q)
		}
	}
	if len(exact) > 0 {
		return exact
	}
	return shaped
}

// DefaultPoints is the reward for a round when a question does not carry one.
func DefaultPoints(round domain.RoundType) int {
	switch round {
	case domain.RoundBuzzer:
		return 150
	case domain.RoundVisual:
		return 250
	case domain.RoundAskAI:
		return AskAiReward
	default:
		return 100
	}
}
