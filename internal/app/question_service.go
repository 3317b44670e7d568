package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"duk-quiz-service/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AskAiFallbackResponse is shown when the AI answerer cannot be reached.
const AskAiFallbackResponse = "I am having trouble connecting. Please ask again."

// QuestionGenerator produces the next question for a round.
type QuestionGenerator interface {
	Generate(ctx context.Context, round domain.RoundType) (domain.Question, error)
}

// VisualGenerator is implemented by generators that can illustrate VISUAL rounds.
// When it fails, the round falls back to a plain text question.
type VisualGenerator interface {
	GenerateVisual(ctx context.Context) (domain.Question, error)
}

// AskAiAnswer is the AI's reply to a team's question.
type AskAiAnswer struct {
	Text    string
	Sources []domain.Source
}

// AskAiAnswerer answers the question a team poses during an ASK_AI round.
type AskAiAnswerer interface {
	Answer(ctx context.Context, question string) (AskAiAnswer, error)
}

var errNoAnswerer = errors.New("ask-ai answerer not configured")

// QuestionService drives the external generators and feeds their output into
// the session.
type QuestionService struct {
	sessions  *SessionService
	generator QuestionGenerator
	answerer  AskAiAnswerer
}

func NewQuestionService(sessions *SessionService, generator QuestionGenerator, answerer AskAiAnswerer) *QuestionService {
	return &QuestionService{sessions: sessions, generator: generator, answerer: answerer}
}

// GenerateQuestion produces a question for the session's next round and
// injects it. On failure nothing is written.
func (s *QuestionService) GenerateQuestion(ctx context.Context) (domain.QuizSession, error) {
	session, err := s.sessions.Session(ctx)
	if err != nil {
		return domain.QuizSession{}, err
	}
	round := session.NextRoundType
	if !round.Valid() {
		round = domain.RoundStandard
	}

	question, err := s.generate(ctx, round)
	if err != nil {
		log.Error().Err(err).Str("round", string(round)).Msg("question generation failed")
		return domain.QuizSession{}, fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	if err := question.Validate(); err != nil {
		return domain.QuizSession{}, fmt.Errorf("%w: generator returned %v", domain.ErrGeneration, err)
	}
	return s.sessions.InjectQuestion(ctx, question)
}

func (s *QuestionService) generate(ctx context.Context, round domain.RoundType) (domain.Question, error) {
	if round == domain.RoundAskAI {
		return askAiPlaceholder(), nil
	}
	if s.generator == nil {
		return domain.Question{}, errors.New("question generator not configured")
	}
	if round == domain.RoundVisual {
		if visual, ok := s.generator.(VisualGenerator); ok {
			q, err := visual.GenerateVisual(ctx)
			if err == nil {
				return q, nil
			}
			log.Warn().Err(err).Msg("visual question failed, falling back to text")
		}
	}
	return s.generator.Generate(ctx, round)
}

func askAiPlaceholder() domain.Question {
	return domain.Question{
		ID:            "ask_ai_" + uuid.NewString(),
		Text:          "Ask AI Round: Challenge the AI with a live search question.",
		Options:       []string{},
		CorrectAnswer: domain.NoCorrectAnswer,
		Points:        AskAiReward,
		TimeLimit:     60,
		RoundType:     domain.RoundAskAI,
		Difficulty:    domain.DifficultyHard,
	}
}

// SetRoundMode overrides the next round and immediately generates it.
func (s *QuestionService) SetRoundMode(ctx context.Context, round domain.RoundType) (domain.QuizSession, error) {
	if _, err := s.sessions.SetNextRoundType(ctx, round); err != nil {
		return domain.QuizSession{}, err
	}
	return s.GenerateQuestion(ctx)
}

// SubmitAskAiQuestion records the team's question, asks the AI and records its
// reply. If the AI fails, the fallback reply is recorded and the returned
// session is accompanied by an error wrapping domain.ErrGeneration.
func (s *QuestionService) SubmitAskAiQuestion(ctx context.Context, text string) (domain.QuizSession, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.QuizSession{}, fmt.Errorf("%w: empty question", domain.ErrInvalidArgument)
	}
	if _, err := s.sessions.SetAskAiState(ctx, domain.EnterProcessing{Question: text}); err != nil {
		return domain.QuizSession{}, err
	}

	answer, askErr := s.ask(ctx, text)
	if askErr != nil {
		log.Error().Err(askErr).Msg("ask-ai answer failed")
		answer = AskAiAnswer{Text: AskAiFallbackResponse}
	}
	if strings.TrimSpace(answer.Text) == "" {
		answer.Text = "I was unable to retrieve a valid response."
	}

	session, err := s.sessions.SetAskAiState(ctx, domain.EnterAnswering{Response: answer.Text, Sources: answer.Sources})
	if err != nil {
		return domain.QuizSession{}, err
	}
	if askErr != nil {
		return session, fmt.Errorf("%w: %v", domain.ErrGeneration, askErr)
	}
	return session, nil
}

func (s *QuestionService) ask(ctx context.Context, text string) (AskAiAnswer, error) {
	if s.answerer == nil {
		return AskAiAnswer{}, errNoAnswerer
	}
	return s.answerer.Answer(ctx, text)
}
