package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"duk-quiz-service/internal/app"
	"duk-quiz-service/internal/domain"
	"github.com/go-chi/chi/v5"
)

// Handler exposes the quiz operations as JSON endpoints.
type Handler struct {
	sessions  *app.SessionService
	questions *app.QuestionService
}

func NewHandler(sessions *app.SessionService, questions *app.QuestionService) *Handler {
	return &Handler{sessions: sessions, questions: questions}
}

// PublicRoutes are used by team screens and the projector.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Get("/api/session", h.handleSession)
	r.Get("/api/narration", h.handleNarration)
	r.Post("/api/teams/{teamID}/answer", h.handleAnswer)
	r.Post("/api/teams/{teamID}/hint", h.handleRequestHint)
}

// AdminRoutes are the host controls.
func (h *Handler) AdminRoutes(r chi.Router) {
	r.Post("/api/session/status", h.handleSetStatus)
	r.Post("/api/session/next-round", h.handleNextRound)
	r.Post("/api/session/round-mode", h.handleRoundMode)
	r.Post("/api/session/active-team", h.handleActiveTeam)
	r.Post("/api/session/hint/visibility", h.handleHintVisibility)
	r.Post("/api/session/explanation", h.handleRevealExplanation)
	r.Post("/api/session/reveal", h.handleReveal)
	r.Post("/api/session/reset", h.handleReset)
	r.Post("/api/session/reading-complete", h.handleReadingComplete)
	r.Post("/api/questions/generate", h.handleGenerate)
	r.Post("/api/questions", h.handleInject)
	r.Post("/api/ask-ai/state", h.handleAskAiState)
	r.Post("/api/ask-ai/question", h.handleAskAiQuestion)
	r.Post("/api/ask-ai/judge", h.handleJudge)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", domain.ErrInvalidArgument)
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	return nil
}

func (h *Handler) respond(w http.ResponseWriter, session domain.QuizSession, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Session(r.Context())
	h.respond(w, session, err)
}

func (h *Handler) handleNarration(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Session(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app.NarrationFor(session))
}

type statusRequest struct {
	Status domain.QuizStatus `json:"status"`
}

func (h *Handler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	session, err := h.sessions.SetStatus(r.Context(), req.Status)
	h.respond(w, session, err)
}

type roundRequest struct {
	RoundType domain.RoundType `json:"roundType"`
}

func (h *Handler) handleNextRound(w http.ResponseWriter, r *http.Request) {
	var req roundRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	session, err := h.sessions.SetNextRoundType(r.Context(), req.RoundType)
	h.respond(w, session, err)
}

func (h *Handler) handleRoundMode(w http.ResponseWriter, r *http.Request) {
	var req roundRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	session, err := h.questions.SetRoundMode(r.Context(), req.RoundType)
	h.respond(w, session, err)
}

type teamRequest struct {
	TeamID string `json:"teamId"`
}

func (h *Handler) handleActiveTeam(w http.ResponseWriter, r *http.Request) {
	var req teamRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	session, err := h.sessions.SetActiveTeam(r.Context(), req.TeamID)
	h.respond(w, session, err)
}

type visibilityRequest struct {
	Visible bool `json:"visible"`
}

func (h *Handler) handleHintVisibility(w http.ResponseWriter, r *http.Request) {
	var req visibilityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	session, err := h.sessions.ToggleHintVisibility(r.Context(), req.Visible)
	h.respond(w, session, err)
}

func (h *Handler) handleRevealExplanation(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.RevealExplanation(r.Context())
	h.respond(w, session, err)
}

func (h *Handler) handleReveal(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.RevealAndScore(r.Context())
	h.respond(w, session, err)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.ResetSession(r.Context())
	h.respond(w, session, err)
}

func (h *Handler) handleReadingComplete(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.CompleteReading(r.Context())
	h.respond(w, session, err)
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	session, err := h.questions.GenerateQuestion(r.Context())
	h.respond(w, session, err)
}

func (h *Handler) handleInject(w http.ResponseWriter, r *http.Request) {
	var q domain.Question
	if err := decodeJSON(r, &q); err != nil {
		writeError(w, err)
		return
	}
	session, err := h.sessions.InjectQuestion(r.Context(), q)
	h.respond(w, session, err)
}

type answerRequest struct {
	QuestionID string                `json:"questionId"`
	Answer     *int                  `json:"answer"`
	Type       domain.SubmissionType `json:"type"`
}

func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	sub, err := h.sessions.SubmitAnswer(r.Context(), chi.URLParam(r, "teamID"), req.QuestionID, req.Answer, req.Type)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (h *Handler) handleRequestHint(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.RequestHint(r.Context(), chi.URLParam(r, "teamID"))
	h.respond(w, session, err)
}

type askAiStateRequest struct {
	State    domain.AskAiState `json:"state"`
	Question string            `json:"question"`
	Response string            `json:"response"`
}

func (h *Handler) handleAskAiState(w http.ResponseWriter, r *http.Request) {
	var req askAiStateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	t, err := domain.TransitionFor(req.State, req.Question, req.Response)
	if err != nil {
		writeError(w, fmt.Errorf("%w: ask-ai state %q", err, req.State))
		return
	}
	session, err := h.sessions.SetAskAiState(r.Context(), t)
	h.respond(w, session, err)
}

type askAiQuestionRequest struct {
	Question string `json:"question"`
}

func (h *Handler) handleAskAiQuestion(w http.ResponseWriter, r *http.Request) {
	var req askAiQuestionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	// on answerer failure the fallback reply is already on the session feed
	session, err := h.questions.SubmitAskAiQuestion(r.Context(), req.Question)
	h.respond(w, session, err)
}

type verdictRequest struct {
	Verdict domain.AskAiVerdict `json:"verdict"`
}

func (h *Handler) handleJudge(w http.ResponseWriter, r *http.Request) {
	var req verdictRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	session, err := h.sessions.JudgeAskAi(r.Context(), req.Verdict)
	h.respond(w, session, err)
}
