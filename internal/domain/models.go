package domain

import "time"

// QuizStatus governs which session mutations are legal.
type QuizStatus string

const (
	StatusPreview  QuizStatus = "PREVIEW"
	StatusLive     QuizStatus = "LIVE"
	StatusLocked   QuizStatus = "LOCKED"
	StatusRevealed QuizStatus = "REVEALED"
)

// Valid reports whether s is a known status.
func (s QuizStatus) Valid() bool {
	switch s {
	case StatusPreview, StatusLive, StatusLocked, StatusRevealed:
		return true
	}
	return false
}

// RoundType selects the rule-set for a question.
type RoundType string

const (
	RoundStandard RoundType = "STANDARD"
	RoundBuzzer   RoundType = "BUZZER"
	RoundAskAI    RoundType = "ASK_AI"
	RoundVisual   RoundType = "VISUAL"
)

func (r RoundType) Valid() bool {
	switch r {
	case RoundStandard, RoundBuzzer, RoundAskAI, RoundVisual:
		return true
	}
	return false
}

// Next returns the round that follows r in the default rotation.
func (r RoundType) Next() RoundType {
	switch r {
	case RoundStandard:
		return RoundBuzzer
	case RoundBuzzer:
		return RoundAskAI
	default:
		return RoundStandard
	}
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

type SubmissionType string

const (
	SubmissionAnswer SubmissionType = "ANSWER"
	SubmissionPass   SubmissionType = "PASS"
)

func (t SubmissionType) Valid() bool {
	return t == SubmissionAnswer || t == SubmissionPass
}

// AskAiVerdict is the host's ruling on the AI's answer.
type AskAiVerdict string

const (
	VerdictAICorrect AskAiVerdict = "AI_CORRECT"
	VerdictAIWrong   AskAiVerdict = "AI_WRONG"
)

func (v AskAiVerdict) Valid() bool {
	return v == VerdictAICorrect || v == VerdictAIWrong
}

// NoCorrectAnswer marks questions without options (ASK_AI).
const NoCorrectAnswer = -1

// Team is a fixed contestant group; only its score changes at runtime.
type Team struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Question is immutable once injected.
type Question struct {
	ID            string     `json:"id"`
	Text          string     `json:"text"`
	Options       []string   `json:"options"`
	CorrectAnswer int        `json:"correctAnswer"`
	Explanation   string     `json:"explanation"`
	Points        int        `json:"points"`
	TimeLimit     int        `json:"timeLimit"` // seconds
	RoundType     RoundType  `json:"roundType"`
	Difficulty    Difficulty `json:"difficulty"`
	Hint          string     `json:"hint"`
	VisualURI     string     `json:"visualUri,omitempty"`
}

// Validate checks the option shape required by the question's round type.
func (q Question) Validate() error {
	if q.ID == "" || !q.RoundType.Valid() {
		return ErrInvalidQuestion
	}
	if q.RoundType == RoundAskAI {
		if len(q.Options) != 0 || q.CorrectAnswer != NoCorrectAnswer {
			return ErrInvalidQuestion
		}
		return nil
	}
	if len(q.Options) != 4 || q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return ErrInvalidQuestion
	}
	return nil
}

// Submission is a team's answer or pass on the current question.
type Submission struct {
	TeamID     string         `json:"teamId"`
	QuestionID string         `json:"questionId"`
	Answer     *int           `json:"answer,omitempty"`
	Type       SubmissionType `json:"type"`
	Timestamp  time.Time      `json:"timestamp"`
	IsCorrect  bool           `json:"isCorrect"`
}

// Source is a citation attached to an AI answer.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// QuizSession is the single shared record every screen renders from.
type QuizSession struct {
	ID                   string       `json:"id"`
	Version              int64        `json:"version"`
	CurrentQuestion      *Question    `json:"currentQuestion"`
	Status               QuizStatus   `json:"status"`
	StartTime            time.Time    `json:"startTime"`
	TurnStartTime        time.Time    `json:"turnStartTime"`
	ActiveTeamID         string       `json:"activeTeamId,omitempty"`
	PassedTeamIDs        []string     `json:"passedTeamIds"`
	RequestedHint        bool         `json:"requestedHint"`
	HintVisible          bool         `json:"hintVisible"`
	ExplanationVisible   bool         `json:"explanationVisible"`
	NextRoundType        RoundType    `json:"nextRoundType"`
	Teams                []Team       `json:"teams"`
	Submissions          []Submission `json:"submissions"`
	IsReading            bool         `json:"isReading"`
	AskAiState           AskAiState   `json:"askAiState"`
	CurrentAskAiQuestion string       `json:"currentAskAiQuestion,omitempty"`
	CurrentAskAiResponse string       `json:"currentAskAiResponse,omitempty"`
	AskAiVerdict         AskAiVerdict `json:"askAiVerdict,omitempty"`
	GroundingSources     []Source     `json:"groundingSources,omitempty"`
}

// NewSession builds the default record for the given roster.
func NewSession(id string, teams []Team) QuizSession {
	roster := make([]Team, len(teams))
	for i, t := range teams {
		roster[i] = Team{ID: t.ID, Name: t.Name}
	}
	return QuizSession{
		ID:            id,
		Status:        StatusPreview,
		Teams:         roster,
		PassedTeamIDs: []string{},
		Submissions:   []Submission{},
		NextRoundType: RoundStandard,
		AskAiState:    AskAiIdle,
	}
}

// Team returns a pointer into s.Teams, or nil.
func (s *QuizSession) Team(id string) *Team {
	for i := range s.Teams {
		if s.Teams[i].ID == id {
			return &s.Teams[i]
		}
	}
	return nil
}

// SubmissionFor returns the team's recorded submission on the current question.
func (s *QuizSession) SubmissionFor(teamID string) (Submission, bool) {
	for _, sub := range s.Submissions {
		if sub.TeamID == teamID {
			return sub, true
		}
	}
	return Submission{}, false
}

// HasPassed reports whether teamID passed on the current question.
func (s *QuizSession) HasPassed(teamID string) bool {
	for _, id := range s.PassedTeamIDs {
		if id == teamID {
			return true
		}
	}
	return false
}

// ResetAskAi returns the Ask-AI sub-state to IDLE and drops the exchange.
func (s *QuizSession) ResetAskAi() {
	s.AskAiState = AskAiIdle
	s.CurrentAskAiQuestion = ""
	s.CurrentAskAiResponse = ""
	s.AskAiVerdict = ""
	s.GroundingSources = nil
}

// QuestionSet is a named bank of pre-authored questions.
type QuestionSet struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
}
