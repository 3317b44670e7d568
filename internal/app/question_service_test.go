package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"duk-quiz-service/internal/app"
	"duk-quiz-service/internal/domain"
)

type stubGenerator struct {
	calls     []domain.RoundType
	err       error
	visualErr error
}

func (g *stubGenerator) Generate(_ context.Context, round domain.RoundType) (domain.Question, error) {
	g.calls = append(g.calls, round)
	if g.err != nil {
		return domain.Question{}, g.err
	}
	return mcQuestion("gen_"+strings.ToLower(string(round)), round), nil
}

type visualStub struct {
	stubGenerator
}

func (g *visualStub) GenerateVisual(context.Context) (domain.Question, error) {
	if g.visualErr != nil {
		return domain.Question{}, g.visualErr
	}
	q := mcQuestion("visual_1", domain.RoundVisual)
	q.VisualURI = "data:image/png;base64,aGVsbG8="
	return q, nil
}

type stubAnswerer struct {
	answer app.AskAiAnswer
	err    error
}

func (a stubAnswerer) Answer(context.Context, string) (app.AskAiAnswer, error) {
	return a.answer, a.err
}

func TestGenerateQuestionFollowsRotation(t *testing.T) {
	sessions := newTestService(newClock())
	gen := &stubGenerator{}
	svc := app.NewQuestionService(sessions, gen, nil)
	ctx := context.Background()

	session, err := svc.GenerateQuestion(ctx)
	if err != nil {
		t.Fatalf("generate standard: %v", err)
	}
	if session.CurrentQuestion.RoundType != domain.RoundStandard || session.NextRoundType != domain.RoundBuzzer {
		t.Fatalf("unexpected first round %+v", session)
	}

	_, _ = svc.GenerateQuestion(ctx)
	session, err = svc.GenerateQuestion(ctx)
	if err != nil {
		t.Fatalf("generate ask-ai: %v", err)
	}
	q := session.CurrentQuestion
	if q.RoundType != domain.RoundAskAI || len(q.Options) != 0 || q.CorrectAnswer != domain.NoCorrectAnswer {
		t.Fatalf("unexpected ask-ai question %+v", q)
	}
	if !strings.HasPrefix(q.ID, "ask_ai_") || session.ActiveTeamID != "t1" {
		t.Fatalf("unexpected ask-ai placeholder %+v", session)
	}
	// ask-ai never reaches the generator
	if len(gen.calls) != 2 {
		t.Fatalf("expected 2 generator calls, got %v", gen.calls)
	}
}

func TestGenerateQuestionFailureWritesNothing(t *testing.T) {
	sessions := newTestService(newClock())
	svc := app.NewQuestionService(sessions, &stubGenerator{err: errors.New("quota exceeded")}, nil)
	ctx := context.Background()

	if _, err := svc.GenerateQuestion(ctx); !errors.Is(err, domain.ErrGeneration) {
		t.Fatalf("expected generation error, got %v", err)
	}
	session, _ := sessions.Session(ctx)
	if session.CurrentQuestion != nil || session.Version != 0 {
		t.Fatalf("failed generation must not write, got %+v", session)
	}
}

func TestSetRoundModeVisual(t *testing.T) {
	sessions := newTestService(newClock())
	gen := &visualStub{}
	svc := app.NewQuestionService(sessions, gen, nil)

	session, err := svc.SetRoundMode(context.Background(), domain.RoundVisual)
	if err != nil {
		t.Fatalf("set round mode: %v", err)
	}
	if session.CurrentQuestion.ID != "visual_1" || session.CurrentQuestion.VisualURI == "" {
		t.Fatalf("expected illustrated question, got %+v", session.CurrentQuestion)
	}
	if session.NextRoundType != domain.RoundStandard {
		t.Fatalf("expected STANDARD after VISUAL, got %s", session.NextRoundType)
	}

	gen.visualErr = errors.New("image model down")
	session, err = svc.SetRoundMode(context.Background(), domain.RoundVisual)
	if err != nil {
		t.Fatalf("set round mode fallback: %v", err)
	}
	if session.CurrentQuestion.RoundType != domain.RoundVisual || session.CurrentQuestion.VisualURI != "" {
		t.Fatalf("expected text fallback tagged VISUAL, got %+v", session.CurrentQuestion)
	}

	if _, err := svc.SetRoundMode(context.Background(), "LIGHTNING"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestSubmitAskAiQuestion(t *testing.T) {
	sessions := newTestService(newClock())
	ans := stubAnswerer{answer: app.AskAiAnswer{
		Text:    "Geoffrey Hinton.",
		Sources: []domain.Source{{Title: "Nobel", URI: "https://example.org/nobel"}},
	}}
	svc := app.NewQuestionService(sessions, &stubGenerator{}, ans)

	session, err := svc.SubmitAskAiQuestion(context.Background(), "  Who won the 2024 physics Nobel for neural nets? ")
	if err != nil {
		t.Fatalf("submit ask-ai: %v", err)
	}
	if session.AskAiState != domain.AskAiAnswering || session.CurrentAskAiResponse != "Geoffrey Hinton." {
		t.Fatalf("unexpected session %+v", session)
	}
	if session.CurrentAskAiQuestion != "Who won the 2024 physics Nobel for neural nets?" || len(session.GroundingSources) != 1 {
		t.Fatalf("unexpected exchange %+v", session)
	}

	if _, err := svc.SubmitAskAiQuestion(context.Background(), "   "); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for empty question, got %v", err)
	}
}

func TestSubmitAskAiQuestionFallback(t *testing.T) {
	sessions := newTestService(newClock())
	svc := app.NewQuestionService(sessions, &stubGenerator{}, stubAnswerer{err: errors.New("timeout")})

	session, err := svc.SubmitAskAiQuestion(context.Background(), "What is RLHF?")
	if !errors.Is(err, domain.ErrGeneration) {
		t.Fatalf("expected generation error, got %v", err)
	}
	if session.AskAiState != domain.AskAiAnswering || session.CurrentAskAiResponse != app.AskAiFallbackResponse {
		t.Fatalf("expected fallback reply recorded, got %+v", session)
	}
}
