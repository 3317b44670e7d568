package memory

import (
	"context"
	"encoding/json"
	"sync"

	"duk-quiz-service/internal/domain"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
// The record is kept encoded so callers never share slices with the store.
type SessionStore struct {
	mu      sync.RWMutex
	data    []byte
	version int64
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Load(_ context.Context) (domain.QuizSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return domain.QuizSession{}, domain.ErrSessionNotFound
	}
	var session domain.QuizSession
	if err := json.Unmarshal(s.data, &session); err != nil {
		return domain.QuizSession{}, err
	}
	return session, nil
}

func (s *SessionStore) Save(_ context.Context, session domain.QuizSession, expectedVersion int64) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.version != expectedVersion {
		return domain.ErrVersionConflict
	}
	s.data = data
	s.version = session.Version
	return nil
}
