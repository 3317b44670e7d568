package openai

import (
	"fmt"
	"strings"

	"duk-quiz-service/internal/domain"
)

const askAiSystemPrompt = "You are an AI Quiz Host. Answer the question accurately but keep it extremely concise (max 25 words). " +
	"One short sentence is best. Do not use complex formatting.\n" +
	`Respond ONLY with a JSON object: {"answer": "<your answer>", "sources": [{"title": "<title>", "uri": "<url>"}]}. ` +
	"Leave sources empty if you cannot cite any."

func buildQuestionPrompt(round domain.RoundType) string {
	var sb strings.Builder
	sb.WriteString("Generate a multiple-choice quiz question about Artificial Intelligence.\n")
	sb.WriteString(fmt.Sprintf("ROUND TYPE: %s\n", round))
	switch round {
	case domain.RoundBuzzer:
		sb.WriteString("Teams race to answer, so the question must be answerable within a few seconds.\n")
	case domain.RoundVisual:
		sb.WriteString("The question will be shown on a large display; keep the wording short.\n")
	}
	sb.WriteString("Ensure the explanation is very concise (max 30 words) and conversational.\n")
	sb.WriteString("\nRespond ONLY with a JSON object with these fields:\n")
	sb.WriteString(`{"question": "<text>", "options": {"A": "<text>", "B": "<text>", "C": "<text>", "D": "<text>"}, "correct_answer": "<A|B|C|D>", "explanation": "<text>", "hint": "<text>"}`)
	sb.WriteString("\n")
	return sb.String()
}

func buildVisualConceptPrompt() string {
	var sb strings.Builder
	sb.WriteString("Describe a futuristic piece of technology or a complex AI concept (like a neural processor or a quantum circuit). ")
	sb.WriteString("Provide the name, a multiple choice set of exactly 4 options, and a very short explanation (max 20 words).\n")
	sb.WriteString("\nRespond ONLY with a JSON object with these fields:\n")
	sb.WriteString(`{"concept": "<name>", "imagePrompt": "<what to draw>", "options": ["<a>", "<b>", "<c>", "<d>"], "correctIndex": <0-3>, "explanation": "<text>"}`)
	sb.WriteString("\n")
	return sb.String()
}

func buildImagePrompt(subject string) string {
	return fmt.Sprintf("A photorealistic, cinematic close-up of %s. High tech, blueprint style, neon accents, dark background.", subject)
}
