package domain

import (
	"errors"
	"testing"
)

func TestTransitionFor(t *testing.T) {
	for _, state := range []AskAiState{AskAiIdle, AskAiListening, AskAiProcessing, AskAiAnswering} {
		tr, err := TransitionFor(state, "q", "r")
		if err != nil {
			t.Fatalf("%s: %v", state, err)
		}
		if tr.Target() != state {
			t.Fatalf("%s: target %s", state, tr.Target())
		}
	}
	for _, state := range []AskAiState{AskAiJudging, AskAiCompleted, "DANCING"} {
		if _, err := TransitionFor(state, "", ""); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("%s: expected invalid argument, got %v", state, err)
		}
	}
}

func TestAskAiTransitionsKeepPriorText(t *testing.T) {
	s := NewSession("s", nil)
	s.ApplyAskAi(EnterProcessing{Question: "Who?"})
	s.ApplyAskAi(EnterProcessing{})
	if s.CurrentAskAiQuestion != "Who?" {
		t.Fatalf("empty question should keep the previous one, got %q", s.CurrentAskAiQuestion)
	}
	s.ApplyAskAi(EnterAnswering{Response: "Turing."})
	s.ApplyAskAi(EnterAnswering{})
	if s.CurrentAskAiResponse != "Turing." || s.AskAiState != AskAiAnswering {
		t.Fatalf("unexpected answering state %+v", s)
	}
	s.AskAiVerdict = VerdictAICorrect
	s.ApplyAskAi(EnterListening{})
	if s.CurrentAskAiResponse != "" || s.AskAiVerdict != "" || s.CurrentAskAiQuestion != "Who?" {
		t.Fatalf("listening should clear the reply only, got %+v", s)
	}
	s.ResetAskAi()
	if s.AskAiState != AskAiIdle || s.CurrentAskAiQuestion != "" {
		t.Fatalf("reset should return to IDLE, got %+v", s)
	}
}
