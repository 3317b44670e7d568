package http

import (
	"encoding/json"
	"net/http"

	"duk-quiz-service/internal/app"
	"duk-quiz-service/internal/domain"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type WSHandler struct {
	sessions *app.SessionService
	upgrader websocket.Upgrader
}

func NewWSHandler(sessions *app.SessionService) *WSHandler {
	return &WSHandler{
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type wsAnswerPayload struct {
	TeamID     string                `json:"teamId"`
	QuestionID string                `json:"questionId"`
	Answer     *int                  `json:"answer"`
	Type       domain.SubmissionType `json:"type"`
}

type wsHintPayload struct {
	TeamID string `json:"teamId"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

func wsError(err error) outboundMessage[any] {
	_, kind := errorKind(err)
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error(), Kind: kind}}
}

// ServeWS streams the session record to a screen and accepts team answers.
// Every write to the session, from any client, is pushed as a "session" message.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	updates, cancel, err := h.sessions.Subscribe(r.Context())
	if err != nil {
		_ = conn.WriteJSON(wsError(err))
		return
	}
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// single writer; gorilla connections do not allow concurrent writes
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Debug().Err(err).Msg("ws write error")
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "session", Payload: update}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		if msg, ok := h.dispatch(r, inbound); ok {
			send <- msg
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}

// dispatch runs one inbound command. The updated record reaches the client
// through the subscription, so only direct replies are returned here.
func (h *WSHandler) dispatch(r *http.Request, inbound inboundMessage) (outboundMessage[any], bool) {
	switch inbound.Type {
	case "answer":
		var payload wsAnswerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid answer payload", Kind: "invalid_argument"}}, true
		}
		sub, err := h.sessions.SubmitAnswer(r.Context(), payload.TeamID, payload.QuestionID, payload.Answer, payload.Type)
		if err != nil {
			return wsError(err), true
		}
		return outboundMessage[any]{Type: "submission", Payload: sub}, true
	case "hint":
		var payload wsHintPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid hint payload", Kind: "invalid_argument"}}, true
		}
		if _, err := h.sessions.RequestHint(r.Context(), payload.TeamID); err != nil {
			return wsError(err), true
		}
		return outboundMessage[any]{}, false
	default:
		return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type", Kind: "invalid_argument"}}, true
	}
}
