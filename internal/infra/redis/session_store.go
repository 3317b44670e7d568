package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"duk-quiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// SessionKey is the well-known key holding the session record.
const SessionKey = "duk:quiz:session:v2"

// SessionStore keeps the session record as JSON under a single Redis key so
// several service instances can share one game. Writes are guarded with
// WATCH on the key plus a version check.
type SessionStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewSessionStore stores under SessionKey. A zero ttl keeps the record forever.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, key: SessionKey, ttl: ttl}
}

func (s *SessionStore) Load(ctx context.Context) (domain.QuizSession, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.QuizSession{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.QuizSession{}, err
	}
	var session domain.QuizSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return domain.QuizSession{}, err
	}
	return session, nil
}

func (s *SessionStore) Save(ctx context.Context, session domain.QuizSession, expectedVersion int64) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := storedVersion(ctx, tx, s.key)
		if err != nil {
			return err
		}
		if current != expectedVersion {
			return domain.ErrVersionConflict
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key, data, s.ttl)
			return nil
		})
		return err
	}, s.key)
	if errors.Is(err, redis.TxFailedErr) {
		return domain.ErrVersionConflict
	}
	return err
}

func storedVersion(ctx context.Context, tx *redis.Tx, key string) (int64, error) {
	raw, err := tx.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var stored struct {
		Version int64 `json:"version"`
	}
	if err := json.Unmarshal(raw, &stored); err != nil {
		return 0, err
	}
	return stored.Version, nil
}
