package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"duk-quiz-service/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultAnswerWindow bounds a STANDARD answer, measured from turnStartTime.
	DefaultAnswerWindow = 30 * time.Second
	// BuzzerPenalty is charged for every wrong BUZZER submission.
	BuzzerPenalty = 50
	// AskAiReward goes to the active team when the AI is judged wrong.
	AskAiReward = 200

	saveAttempts = 3
)

// SessionRepository persists the single session record.
// Load returns domain.ErrSessionNotFound when nothing is stored yet. Save must
// reject the write with domain.ErrVersionConflict when the stored version is not
// expectedVersion.
type SessionRepository interface {
	Load(ctx context.Context) (domain.QuizSession, error)
	Save(ctx context.Context, session domain.QuizSession, expectedVersion int64) error
}

// SessionConfig carries the fixed parameters of a running game.
type SessionConfig struct {
	SessionID    string
	Teams        []domain.Team
	AnswerWindow time.Duration
	Now          func() time.Time // defaults to time.Now
}

// DefaultTeams is the roster used when none is configured.
func DefaultTeams() []domain.Team {
	return []domain.Team{
		{ID: "t1", Name: "Team A"},
		{ID: "t2", Name: "Team B"},
		{ID: "t3", Name: "Team C"},
	}
}

// SessionService applies every quiz operation as one load-mutate-save cycle.
type SessionService struct {
	store        SessionRepository
	sessionID    string
	teams        []domain.Team
	answerWindow time.Duration
	now          func() time.Time

	mu          sync.Mutex
	subMu       sync.Mutex
	subscribers map[chan domain.QuizSession]struct{}
}

func NewSessionService(store SessionRepository, cfg SessionConfig) *SessionService {
	if cfg.SessionID == "" {
		cfg.SessionID = "session-1"
	}
	if len(cfg.Teams) == 0 {
		cfg.Teams = DefaultTeams()
	}
	if cfg.AnswerWindow <= 0 {
		cfg.AnswerWindow = DefaultAnswerWindow
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &SessionService{
		store:        store,
		sessionID:    cfg.SessionID,
		teams:        cfg.Teams,
		answerWindow: cfg.AnswerWindow,
		now:          cfg.Now,
		subscribers:  make(map[chan domain.QuizSession]struct{}),
	}
}

// errUnchanged lets a mutation finish without a write.
var errUnchanged = errors.New("unchanged")

// Session returns the current record.
func (s *SessionService) Session(ctx context.Context) (domain.QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *SessionService) load(ctx context.Context) (domain.QuizSession, error) {
	session, err := s.store.Load(ctx)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return domain.NewSession(s.sessionID, s.teams), nil
	}
	if err != nil {
		return domain.QuizSession{}, fmt.Errorf("%w: load: %v", domain.ErrPersistence, err)
	}
	return session, nil
}

// update runs fn against the latest record and persists the result. fn may be
// invoked more than once when a concurrent writer wins the version check, so it
// must derive everything from the session it is handed.
func (s *SessionService) update(ctx context.Context, fn func(*domain.QuizSession) error) (domain.QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for attempt := 0; attempt < saveAttempts; attempt++ {
		session, err := s.load(ctx)
		if err != nil {
			return domain.QuizSession{}, err
		}
		if err := fn(&session); err != nil {
			if errors.Is(err, errUnchanged) {
				return session, nil
			}
			return domain.QuizSession{}, err
		}

		expected := session.Version
		session.Version++
		err = s.store.Save(ctx, session, expected)
		if errors.Is(err, domain.ErrVersionConflict) {
			log.Debug().Int("attempt", attempt+1).Msg("session version conflict, retrying")
			continue
		}
		if err != nil {
			return domain.QuizSession{}, fmt.Errorf("%w: save: %v", domain.ErrPersistence, err)
		}
		s.broadcast(session)
		return session, nil
	}
	return domain.QuizSession{}, domain.ErrVersionConflict
}

// SetStatus moves the session to any status. Entering LIVE restarts the turn
// clock and starts the narration grace period.
func (s *SessionService) SetStatus(ctx context.Context, status domain.QuizStatus) (domain.QuizSession, error) {
	if !status.Valid() {
		return domain.QuizSession{}, fmt.Errorf("%w: status %q", domain.ErrInvalidArgument, status)
	}
	return s.update(ctx, func(session *domain.QuizSession) error {
		session.Status = status
		if status == domain.StatusLive {
			now := s.now()
			session.StartTime = now
			session.TurnStartTime = now
			session.IsReading = true
		} else {
			session.IsReading = false
		}
		return nil
	})
}

// SetNextRoundType overrides the round of the next generated question.
func (s *SessionService) SetNextRoundType(ctx context.Context, round domain.RoundType) (domain.QuizSession, error) {
	if !round.Valid() {
		return domain.QuizSession{}, fmt.Errorf("%w: round type %q", domain.ErrInvalidArgument, round)
	}
	return s.update(ctx, func(session *domain.QuizSession) error {
		session.NextRoundType = round
		return nil
	})
}

// InjectQuestion makes q the current question and resets all per-question state.
func (s *SessionService) InjectQuestion(ctx context.Context, q domain.Question) (domain.QuizSession, error) {
	if err := q.Validate(); err != nil {
		return domain.QuizSession{}, err
	}
	return s.update(ctx, func(session *domain.QuizSession) error {
		question := q
		question.Options = append([]string{}, q.Options...)
		session.CurrentQuestion = &question
		session.Status = domain.StatusPreview
		session.Submissions = []domain.Submission{}
		session.PassedTeamIDs = []string{}
		session.RequestedHint = false
		session.HintVisible = false
		session.ExplanationVisible = false
		session.IsReading = false
		session.ResetAskAi()
		session.NextRoundType = q.RoundType.Next()

		session.ActiveTeamID = ""
		if (q.RoundType == domain.RoundStandard || q.RoundType == domain.RoundAskAI) && len(session.Teams) > 0 {
			session.ActiveTeamID = session.Teams[0].ID
		}
		return nil
	})
}

// SetActiveTeam hands the turn to teamID, restarting the turn clock. A team that
// passed may be re-selected; selecting it clears the pass.
func (s *SessionService) SetActiveTeam(ctx context.Context, teamID string) (domain.QuizSession, error) {
	return s.update(ctx, func(session *domain.QuizSession) error {
		if session.Team(teamID) == nil {
			return fmt.Errorf("%w: %s", domain.ErrTeamNotFound, teamID)
		}
		session.ActiveTeamID = teamID
		session.TurnStartTime = s.now()
		passed := make([]string, 0, len(session.PassedTeamIDs))
		for _, id := range session.PassedTeamIDs {
			if id != teamID {
				passed = append(passed, id)
			}
		}
		session.PassedTeamIDs = passed
		return nil
	})
}

// SubmitAnswer records a team's answer or pass. A duplicate answer, an answer
// outside LIVE and a pass from a team that does not hold the turn are
// acknowledged but leave the session untouched.
func (s *SessionService) SubmitAnswer(ctx context.Context, teamID, questionID string, answer *int, kind domain.SubmissionType) (domain.Submission, error) {
	if kind == "" {
		kind = domain.SubmissionAnswer
	}
	if !kind.Valid() {
		return domain.Submission{}, fmt.Errorf("%w: submission type %q", domain.ErrInvalidArgument, kind)
	}

	var submission domain.Submission
	_, err := s.update(ctx, func(session *domain.QuizSession) error {
		if session.Team(teamID) == nil {
			return fmt.Errorf("%w: %s", domain.ErrTeamNotFound, teamID)
		}
		now := s.now()
		question := session.CurrentQuestion

		if kind == domain.SubmissionAnswer && question != nil && question.RoundType == domain.RoundStandard && !session.TurnStartTime.IsZero() {
			if now.Sub(session.TurnStartTime) > s.answerWindow {
				return domain.ErrTimeLimitExceeded
			}
		}

		if kind == domain.SubmissionPass {
			submission = domain.Submission{TeamID: teamID, QuestionID: questionID, Type: kind, Timestamp: now}
			if session.ActiveTeamID != teamID {
				return errUnchanged
			}
			if !session.HasPassed(teamID) {
				session.PassedTeamIDs = append(session.PassedTeamIDs, teamID)
			}
			session.ActiveTeamID = ""
			return nil
		}

		submission = domain.Submission{
			TeamID:     teamID,
			QuestionID: questionID,
			Answer:     copyAnswer(answer),
			Type:       kind,
			Timestamp:  now,
		}
		if question != nil && answer != nil {
			submission.IsCorrect = *answer == question.CorrectAnswer
		}

		if session.Status != domain.StatusLive || question == nil || question.ID != questionID {
			return errUnchanged
		}
		if _, exists := session.SubmissionFor(teamID); exists {
			return errUnchanged
		}
		session.Submissions = append(session.Submissions, submission)
		if question.RoundType == domain.RoundStandard && teamID == session.ActiveTeamID {
			session.Status = domain.StatusLocked
			session.IsReading = false
		}
		return nil
	})
	if err != nil {
		return domain.Submission{}, err
	}
	return submission, nil
}

func copyAnswer(answer *int) *int {
	if answer == nil {
		return nil
	}
	v := *answer
	return &v
}

// RequestHint flags that a team asked for the hint.
func (s *SessionService) RequestHint(ctx context.Context, teamID string) (domain.QuizSession, error) {
	return s.update(ctx, func(session *domain.QuizSession) error {
		if session.Team(teamID) == nil {
			return fmt.Errorf("%w: %s", domain.ErrTeamNotFound, teamID)
		}
		session.RequestedHint = true
		return nil
	})
}

// ToggleHintVisibility shows or hides the hint; showing it services any request.
func (s *SessionService) ToggleHintVisibility(ctx context.Context, visible bool) (domain.QuizSession, error) {
	return s.update(ctx, func(session *domain.QuizSession) error {
		session.HintVisible = visible
		if visible {
			session.RequestedHint = false
		}
		return nil
	})
}

func (s *SessionService) RevealExplanation(ctx context.Context) (domain.QuizSession, error) {
	return s.update(ctx, func(session *domain.QuizSession) error {
		session.ExplanationVisible = true
		return nil
	})
}

// RevealAndScore closes the question and credits scores by round type.
func (s *SessionService) RevealAndScore(ctx context.Context) (domain.QuizSession, error) {
	return s.update(ctx, func(session *domain.QuizSession) error {
		session.Status = domain.StatusRevealed
		session.IsReading = false
		session.ExplanationVisible = false
		if session.CurrentQuestion == nil {
			return nil
		}
		deltas := scoreQuestion(*session.CurrentQuestion, session.Submissions)
		for teamID, delta := range deltas {
			if team := session.Team(teamID); team != nil {
				team.Score += delta
			}
		}
		log.Info().
			Str("question", session.CurrentQuestion.ID).
			Str("round", string(session.CurrentQuestion.RoundType)).
			Interface("deltas", deltas).
			Msg("question scored")
		return nil
	})
}

// ResetSession restores the defaults, keeping team identities with zero scores.
func (s *SessionService) ResetSession(ctx context.Context) (domain.QuizSession, error) {
	return s.update(ctx, func(session *domain.QuizSession) error {
		fresh := domain.NewSession(session.ID, session.Teams)
		fresh.Version = session.Version
		*session = fresh
		return nil
	})
}

// CompleteReading ends the narration grace period and starts the turn clock.
func (s *SessionService) CompleteReading(ctx context.Context) (domain.QuizSession, error) {
	return s.update(ctx, func(session *domain.QuizSession) error {
		if session.Status != domain.StatusLive {
			return errUnchanged
		}
		session.IsReading = false
		session.TurnStartTime = s.now()
		return nil
	})
}

// SetAskAiState moves the Ask-AI sub-protocol.
func (s *SessionService) SetAskAiState(ctx context.Context, t domain.AskAiTransition) (domain.QuizSession, error) {
	if t == nil {
		return domain.QuizSession{}, fmt.Errorf("%w: missing ask-ai transition", domain.ErrInvalidArgument)
	}
	return s.update(ctx, func(session *domain.QuizSession) error {
		session.ApplyAskAi(t)
		return nil
	})
}

// JudgeAskAi completes the exchange. The active team earns AskAiReward only when
// the AI got it wrong.
func (s *SessionService) JudgeAskAi(ctx context.Context, verdict domain.AskAiVerdict) (domain.QuizSession, error) {
	if !verdict.Valid() {
		return domain.QuizSession{}, fmt.Errorf("%w: verdict %q", domain.ErrInvalidArgument, verdict)
	}
	return s.update(ctx, func(session *domain.QuizSession) error {
		session.AskAiState = domain.AskAiCompleted
		session.AskAiVerdict = verdict
		if verdict == domain.VerdictAIWrong && session.ActiveTeamID != "" {
			if team := session.Team(session.ActiveTeamID); team != nil {
				team.Score += AskAiReward
			}
		}
		log.Info().Str("verdict", string(verdict)).Str("team", session.ActiveTeamID).Msg("ask-ai judged")
		return nil
	})
}

// Subscribe returns a channel receiving the full record after every write.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *SessionService) Subscribe(ctx context.Context) (<-chan domain.QuizSession, func(), error) {
	s.mu.Lock()
	initial, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return nil, nil, err
	}
	ch := make(chan domain.QuizSession, 8)
	ch <- initial
	s.subMu.Lock()
	s.subscribers[ch] = struct{}{}
	s.subMu.Unlock()
	s.mu.Unlock()

	cancel := func() {
		s.subMu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.subMu.Unlock()
	}
	return ch, cancel, nil
}

func (s *SessionService) broadcast(session domain.QuizSession) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subscribers {
		select {
		case ch <- session:
		default:
			// drop the oldest snapshot so a slow reader never blocks writers
			select {
			case <-ch:
			default:
			}
			ch <- session
		}
	}
}
