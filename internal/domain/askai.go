package domain

// AskAiState tracks the nested Ask-AI round.
type AskAiState string

const (
	AskAiIdle       AskAiState = "IDLE"
	AskAiListening  AskAiState = "LISTENING"
	AskAiProcessing AskAiState = "PROCESSING"
	AskAiAnswering  AskAiState = "ANSWERING"
	// AskAiJudging is reserved; no transition enters it.
	AskAiJudging   AskAiState = "JUDGING"
	AskAiCompleted AskAiState = "COMPLETED"
)

// AskAiTransition is one of EnterIdle, EnterListening, EnterProcessing or EnterAnswering.
// COMPLETED is entered only by judging.
type AskAiTransition interface {
	Target() AskAiState
	apply(s *QuizSession)
}

type EnterIdle struct{}

func (EnterIdle) Target() AskAiState { return AskAiIdle }

func (EnterIdle) apply(s *QuizSession) { s.AskAiState = AskAiIdle }

// EnterListening starts a fresh exchange.
type EnterListening struct{}

func (EnterListening) Target() AskAiState { return AskAiListening }

func (EnterListening) apply(s *QuizSession) {
	s.AskAiState = AskAiListening
	s.CurrentAskAiResponse = ""
	s.AskAiVerdict = ""
	s.GroundingSources = nil
}

// EnterProcessing records the team's question, when given.
type EnterProcessing struct {
	Question string
}

func (EnterProcessing) Target() AskAiState { return AskAiProcessing }

func (t EnterProcessing) apply(s *QuizSession) {
	s.AskAiState = AskAiProcessing
	if t.Question != "" {
		s.CurrentAskAiQuestion = t.Question
	}
}

// EnterAnswering records the AI's response, when given.
type EnterAnswering struct {
	Response string
	Sources  []Source
}

func (EnterAnswering) Target() AskAiState { return AskAiAnswering }

func (t EnterAnswering) apply(s *QuizSession) {
	s.AskAiState = AskAiAnswering
	if t.Response != "" {
		s.CurrentAskAiResponse = t.Response
	}
	if len(t.Sources) > 0 {
		s.GroundingSources = append([]Source(nil), t.Sources...)
	}
}

// ApplyAskAi moves the session's Ask-AI sub-state.
func (s *QuizSession) ApplyAskAi(t AskAiTransition) {
	t.apply(s)
}

// TransitionFor builds the variant for a wire-level state name.
func TransitionFor(state AskAiState, question, response string) (AskAiTransition, error) {
	switch state {
	case AskAiIdle:
		return EnterIdle{}, nil
	case AskAiListening:
		return EnterListening{}, nil
	case AskAiProcessing:
		return EnterProcessing{Question: question}, nil
	case AskAiAnswering:
		return EnterAnswering{Response: response}, nil
	}
	return nil, ErrInvalidArgument
}
