package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"duk-quiz-service/internal/app"
	"duk-quiz-service/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

// Client generates questions and answers Ask-AI challenges through an
// OpenAI-compatible API.
type Client struct {
	api        *openai.Client
	model      string
	imageModel string
}

// New creates a client. An empty baseURL targets api.openai.com.
func New(baseURL, apiKey, model, imageModel string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	if imageModel == "" {
		imageModel = openai.CreateImageModelDallE3
	}
	return &Client{
		api:        openai.NewClientWithConfig(config),
		model:      model,
		imageModel: imageModel,
	}
}

type generatedQuestion struct {
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correct_answer"`
	Explanation   string            `json:"explanation"`
	Hint          string            `json:"hint"`
}

var optionLetters = []string{"A", "B", "C", "D"}

// Generate produces a text multiple-choice question for round.
func (c *Client) Generate(ctx context.Context, round domain.RoundType) (domain.Question, error) {
	raw, err := c.completeJSON(ctx, "", buildQuestionPrompt(round), 0.8)
	if err != nil {
		return domain.Question{}, err
	}
	return parseQuestion(raw, round)
}

func parseQuestion(raw string, round domain.RoundType) (domain.Question, error) {
	var out generatedQuestion
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return domain.Question{}, fmt.Errorf("parse question: %w (raw: %s)", err, raw)
	}

	options := make([]string, 0, len(optionLetters))
	for _, letter := range optionLetters {
		opt, ok := out.Options[letter]
		if !ok || strings.TrimSpace(opt) == "" {
			return domain.Question{}, fmt.Errorf("question missing option %s", letter)
		}
		options = append(options, opt)
	}
	correct := -1
	answer := strings.ToUpper(strings.TrimSpace(out.CorrectAnswer))
	for i, letter := range optionLetters {
		if answer == letter {
			correct = i
		}
	}
	if correct < 0 {
		return domain.Question{}, fmt.Errorf("question has unknown correct answer %q", out.CorrectAnswer)
	}

	hint := out.Hint
	if hint == "" {
		hint = "Analyze the context."
	}
	points := 100
	if round == domain.RoundBuzzer {
		points = 150
	}
	return domain.Question{
		ID:            "gen_" + uuid.NewString(),
		Text:          out.Question,
		Options:       options,
		CorrectAnswer: correct,
		Explanation:   out.Explanation,
		Points:        points,
		TimeLimit:     30,
		RoundType:     round,
		Difficulty:    domain.DifficultyMedium,
		Hint:          hint,
	}, nil
}

type visualConcept struct {
	Concept      string   `json:"concept"`
	ImagePrompt  string   `json:"imagePrompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

// GenerateVisual invents a concept, illustrates it and asks teams to identify it.
func (c *Client) GenerateVisual(ctx context.Context) (domain.Question, error) {
	raw, err := c.completeJSON(ctx, "", buildVisualConceptPrompt(), 0.9)
	if err != nil {
		return domain.Question{}, err
	}
	var concept visualConcept
	if err := json.Unmarshal([]byte(raw), &concept); err != nil {
		return domain.Question{}, fmt.Errorf("parse visual concept: %w (raw: %s)", err, raw)
	}
	if len(concept.Options) != 4 || concept.CorrectIndex < 0 || concept.CorrectIndex > 3 {
		return domain.Question{}, fmt.Errorf("visual concept has malformed options")
	}
	subject := concept.ImagePrompt
	if subject == "" {
		subject = concept.Concept
	}

	img, err := c.api.CreateImage(ctx, openai.ImageRequest{
		Prompt:         buildImagePrompt(subject),
		Model:          c.imageModel,
		N:              1,
		Size:           openai.CreateImageSize1792x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return domain.Question{}, fmt.Errorf("image API call: %w", err)
	}
	if len(img.Data) == 0 || img.Data[0].B64JSON == "" {
		return domain.Question{}, fmt.Errorf("image API returned no data")
	}

	return domain.Question{
		ID:            "visual_" + uuid.NewString(),
		Text:          "Identify this component:",
		Options:       concept.Options,
		CorrectAnswer: concept.CorrectIndex,
		Explanation:   concept.Explanation,
		Points:        250,
		TimeLimit:     45,
		RoundType:     domain.RoundVisual,
		Difficulty:    domain.DifficultyHard,
		Hint:          "Look closely at the energy flow patterns.",
		VisualURI:     "data:image/png;base64," + img.Data[0].B64JSON,
	}, nil
}

type askAiReply struct {
	Answer  string          `json:"answer"`
	Sources []domain.Source `json:"sources"`
}

// Answer replies to a team's Ask-AI question.
func (c *Client) Answer(ctx context.Context, question string) (app.AskAiAnswer, error) {
	raw, err := c.completeJSON(ctx, askAiSystemPrompt, question, 0.3)
	if err != nil {
		return app.AskAiAnswer{}, err
	}
	var reply askAiReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		// Some models ignore the format instruction; keep the plain text.
		return app.AskAiAnswer{Text: strings.TrimSpace(raw)}, nil
	}
	sources := make([]domain.Source, 0, len(reply.Sources))
	for _, src := range reply.Sources {
		if src.URI != "" {
			sources = append(sources, src)
		}
	}
	return app.AskAiAnswer{Text: strings.TrimSpace(reply.Answer), Sources: sources}, nil
}

func (c *Client) completeJSON(ctx context.Context, system, prompt string, temperature float32) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, 2)
	if system != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: system})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt})

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: msgs,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("LLM API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("LLM returned no choices")
	}
	raw := resp.Choices[0].Message.Content
	log.Debug().Str("raw", raw).Msg("LLM response")
	return raw, nil
}
