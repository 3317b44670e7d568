package app

import (
	"fmt"
	"strings"

	"duk-quiz-service/internal/domain"
)

// Host lines read aloud by the presentation layer.
const (
	ScriptIntro     = "Digital University AI Quiz Platform online. Welcome teams. Let's start the quiz!"
	ScriptWarning10 = "Just 10 seconds remaining."
	ScriptTimeUp    = "Time is up. Let's move forward."
)

// Narration is what the host says for the current state of the session.
type Narration struct {
	Question    string `json:"question,omitempty"`
	Explanation string `json:"explanation,omitempty"`
	Intro       string `json:"intro"`
	Warning     string `json:"warning"`
	TimeUp      string `json:"timeUp"`
	AskAiIntro  string `json:"askAiIntro,omitempty"`
}

// NarrationFor builds the host lines for session.
func NarrationFor(session domain.QuizSession) Narration {
	n := Narration{Intro: ScriptIntro, Warning: ScriptWarning10, TimeUp: ScriptTimeUp}
	q := session.CurrentQuestion
	if q == nil {
		return n
	}
	teamName := ""
	if team := session.Team(session.ActiveTeamID); team != nil {
		teamName = team.Name
	}
	n.Question = QuestionScript(*q, teamName)
	n.Explanation = q.Explanation
	if q.RoundType == domain.RoundAskAI {
		n.AskAiIntro = AskAiIntroScript(teamName)
	}
	return n
}

// QuestionScript renders a question for speech.
func QuestionScript(q domain.Question, activeTeamName string) string {
	switch q.RoundType {
	case domain.RoundAskAI:
		return fmt.Sprintf("Ask AI Round. %s, challenge me with a question.", activeTeamName)
	case domain.RoundVisual:
		return "Visual Round. Look at the screen and identify the image."
	}

	var sb strings.Builder
	if q.RoundType == domain.RoundStandard && activeTeamName != "" {
		sb.WriteString("Question for " + activeTeamName + ". ")
	}
	sb.WriteString(q.Text)
	sb.WriteString(" Options are: ")
	opts := make([]string, len(q.Options))
	for i, opt := range q.Options {
		opts[i] = fmt.Sprintf("Option %c. %s", 'A'+i, opt)
	}
	sb.WriteString(strings.Join(opts, ". "))
	return sb.String()
}

func AskAiIntroScript(teamName string) string {
	return teamName + ", please ask your question now."
}
