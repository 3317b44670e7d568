package domain

import "errors"

var (
	// ErrSessionNotFound is returned by repositories when no record is stored yet.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrTeamNotFound is returned when a team id is not part of the roster.
	ErrTeamNotFound = errors.New("team not found")
	// ErrTimeLimitExceeded rejects a STANDARD answer outside the turn window.
	ErrTimeLimitExceeded = errors.New("time limit exceeded")
	// ErrInvalidArgument covers unknown enum values and malformed requests.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidQuestion indicates a question does not fit its round type.
	ErrInvalidQuestion = errors.New("invalid question")
	// ErrQuestionSetNotFound indicates the question bank could not be loaded.
	ErrQuestionSetNotFound = errors.New("question set not found")
	// ErrGeneration wraps failures of the question generator or the AI answerer.
	ErrGeneration = errors.New("generation failed")
	// ErrVersionConflict is returned when the stored record changed underneath a write.
	ErrVersionConflict = errors.New("session version conflict")
	// ErrPersistence wraps failures to load or save the session record.
	ErrPersistence = errors.New("session persistence failed")
)
