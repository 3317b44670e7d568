package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	aiopenai "duk-quiz-service/internal/ai/openai"
	"duk-quiz-service/internal/app"
	"duk-quiz-service/internal/config"
	"duk-quiz-service/internal/domain"
)

func TestTeamsFromConfig(t *testing.T) {
	teams := teamsFromConfig([]config.TeamConfig{{ID: "red", Name: "Red"}, {ID: ""}, {ID: "blue"}})
	if len(teams) != 2 || teams[0].Name != "Red" || teams[1].Name != "blue" {
		t.Fatalf("unexpected teams %+v", teams)
	}
}

func TestQuestionSourcesBankByDefault(t *testing.T) {
	gen, answerer := questionSources(config.Config{}, nil, nil)
	bank, ok := gen.(*app.BankGenerator)
	if !ok {
		t.Fatalf("expected bank generator, got %T", gen)
	}
	if answerer != nil {
		t.Fatalf("expected no answerer without an api key")
	}
	q, err := bank.Generate(context.Background(), domain.RoundStandard)
	if err != nil || q.Validate() != nil {
		t.Fatalf("bank draw failed: %+v %v", q, err)
	}
}

func TestQuestionSourcesOpenAI(t *testing.T) {
	cfg := config.Config{}
	cfg.AI.APIKey = "sk-test"
	gen, answerer := questionSources(cfg, nil, nil)
	if _, ok := gen.(*aiopenai.Client); !ok {
		t.Fatalf("expected openai generator, got %T", gen)
	}
	if _, ok := gen.(app.VisualGenerator); !ok {
		t.Fatalf("openai generator should illustrate visual rounds")
	}
	if answerer == nil {
		t.Fatalf("expected openai answerer")
	}
}

func TestReadQuestionSet(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "list.json")
	data := `[{"id":"x1","text":"Q","options":["a","b","c","d"],"correctAnswer":2,"roundType":"STANDARD"}]`
	if err := os.WriteFile(list, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	set, err := readQuestionSet(list)
	if err != nil {
		t.Fatalf("read list: %v", err)
	}
	if set.ID != "" || len(set.Questions) != 1 || set.Questions[0].CorrectAnswer != 2 {
		t.Fatalf("unexpected set %+v", set)
	}

	named := filepath.Join(dir, "set.json")
	data = `{"id":"finals","questions":[{"id":"x1","text":"Q","options":["a","b","c","d"],"correctAnswer":0,"roundType":"BUZZER"}]}`
	if err := os.WriteFile(named, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	set, err = readQuestionSet(named)
	if err != nil || set.ID != "finals" {
		t.Fatalf("unexpected named set %+v %v", set, err)
	}
}
