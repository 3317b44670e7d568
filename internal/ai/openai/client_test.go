package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"duk-quiz-service/internal/domain"
)

func fakeAPI(t *testing.T, chatContent string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/chat/completions"):
			resp := map[string]any{
				"id":      "chatcmpl-1",
				"object":  "chat.completion",
				"created": 1,
				"model":   "test",
				"choices": []map[string]any{{
					"index":         0,
					"message":       map[string]string{"role": "assistant", "content": chatContent},
					"finish_reason": "stop",
				}},
			}
			_ = json.NewEncoder(w).Encode(resp)
		case strings.HasSuffix(r.URL.Path, "/images/generations"):
			_ = json.NewEncoder(w).Encode(map[string]any{
				"created": 1,
				"data":    []map[string]string{{"b64_json": "aGVsbG8="}},
			})
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestGenerateParsesQuestion(t *testing.T) {
	srv := fakeAPI(t, `{"question":"What does GPU stand for?","options":{"A":"Graphics Processing Unit","B":"General Purpose Unit","C":"Graph Parsing Utility","D":"Gated Pixel Unit"},"correct_answer":"a","explanation":"It is a graphics chip."}`)
	defer srv.Close()

	c := New(srv.URL+"/v1", "test-key", "test", "")
	q, err := c.Generate(context.Background(), domain.RoundBuzzer)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if q.CorrectAnswer != 0 || len(q.Options) != 4 || q.Points != 150 || q.RoundType != domain.RoundBuzzer {
		t.Fatalf("unexpected question %+v", q)
	}
	if q.Hint != "Analyze the context." {
		t.Fatalf("expected default hint, got %q", q.Hint)
	}
	if err := q.Validate(); err != nil {
		t.Fatalf("generated question invalid: %v", err)
	}
}

func TestGenerateRejectsUnknownAnswer(t *testing.T) {
	srv := fakeAPI(t, `{"question":"Q","options":{"A":"1","B":"2","C":"3","D":"4"},"correct_answer":"E"}`)
	defer srv.Close()

	c := New(srv.URL+"/v1", "test-key", "test", "")
	if _, err := c.Generate(context.Background(), domain.RoundStandard); err == nil {
		t.Fatalf("expected error for unknown correct answer")
	}
}

func TestGenerateVisualBuildsDataURI(t *testing.T) {
	srv := fakeAPI(t, `{"concept":"Quantum ALU","imagePrompt":"a quantum ALU","options":["Quantum ALU","Photon Router","Neural Cache","Ion Bus"],"correctIndex":0,"explanation":"It computes with qubits."}`)
	defer srv.Close()

	c := New(srv.URL+"/v1", "test-key", "test", "")
	q, err := c.GenerateVisual(context.Background())
	if err != nil {
		t.Fatalf("generate visual: %v", err)
	}
	if q.VisualURI != "data:image/png;base64,aGVsbG8=" {
		t.Fatalf("unexpected visual uri %q", q.VisualURI)
	}
	if q.Points != 250 || q.TimeLimit != 45 || q.RoundType != domain.RoundVisual {
		t.Fatalf("unexpected visual question %+v", q)
	}
}

func TestAnswerKeepsPlainText(t *testing.T) {
	srv := fakeAPI(t, "Paris is the capital of France.")
	defer srv.Close()

	c := New(srv.URL+"/v1", "test-key", "test", "")
	ans, err := c.Answer(context.Background(), "What is the capital of France?")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if ans.Text != "Paris is the capital of France." || len(ans.Sources) != 0 {
		t.Fatalf("unexpected answer %+v", ans)
	}
}

func TestAnswerParsesSources(t *testing.T) {
	srv := fakeAPI(t, `{"answer":"Alan Turing.","sources":[{"title":"Wiki","uri":"https://example.org/turing"},{"title":"blank"}]}`)
	defer srv.Close()

	c := New(srv.URL+"/v1", "test-key", "test", "")
	ans, err := c.Answer(context.Background(), "Who proposed the imitation game?")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if ans.Text != "Alan Turing." || len(ans.Sources) != 1 || ans.Sources[0].URI != "https://example.org/turing" {
		t.Fatalf("unexpected answer %+v", ans)
	}
}

func TestPromptsMentionFormat(t *testing.T) {
	p := buildQuestionPrompt(domain.RoundBuzzer)
	for _, want := range []string{"ROUND TYPE: BUZZER", "correct_answer", "few seconds"} {
		if !strings.Contains(p, want) {
			t.Fatalf("question prompt missing %q", want)
		}
	}
	if !strings.Contains(buildVisualConceptPrompt(), "correctIndex") {
		t.Fatalf("visual prompt missing correctIndex")
	}
	if !strings.Contains(buildImagePrompt("a chip"), "a chip") {
		t.Fatalf("image prompt missing subject")
	}
}
