package model

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MaxTurns is the number of questions asked in one interview.
const MaxTurns = 5

// NoAnswerPlaceholder is submitted by clients when the countdown runs out.
const NoAnswerPlaceholder = "(no answer)"

// InterviewStore defines persistence operations for interview sessions and turns.
type InterviewStore interface {
	// CreateSession inserts the session and its first turn in one transaction.
	CreateSession(ctx context.Context, session Session, firstTurn Turn) (Session, Turn, error)
	GetSession(ctx context.Context, id uuid.UUID) (Session, error)
	GetSessionsByUserID(ctx context.Context, userID uuid.UUID) ([]Session, error)
	// SetSessionFeedback writes the comprehensive feedback once.
	// It returns ErrStateConflict when feedback is already present.
	SetSessionFeedback(ctx context.Context, id uuid.UUID, feedback string) (Session, error)

	GetTurn(ctx context.Context, id uuid.UUID) (Turn, error)
	GetTurns(ctx context.Context, sessionID uuid.UUID) ([]Turn, error)
	CountTurns(ctx context.Context, sessionID uuid.UUID) (int, error)
	// CreateTurn returns ErrAlreadyExists when the turn number is taken.
	CreateTurn(ctx context.Context, turn Turn) (Turn, error)
	// AnswerTurn sets answer and feedback together.
	// It returns ErrStateConflict when the turn is already answered.
	AnswerTurn(ctx context.Context, id uuid.UUID, answer, feedback string) (Turn, error)
}

// InterviewType selects question templates and time limits.
type InterviewType string

const (
	// InterviewTypeBasic is a behavioural interview.
	InterviewTypeBasic InterviewType = "BASIC"
	// InterviewTypeTechnical is a technical deep-dive interview.
	InterviewTypeTechnical InterviewType = "TECHNICAL"
)

// ParseInterviewType validates a client-supplied type.
func ParseInterviewType(s string) (InterviewType, error) {
	switch t := InterviewType(s); t {
	case InterviewTypeBasic, InterviewTypeTechnical:
		return t, nil
	default:
		return "", fmt.Errorf("unknown interview type %q", s)
	}
}

// TimeLimit returns the answer countdown in seconds shown to the client.
func (t InterviewType) TimeLimit() int {
	if t == InterviewTypeTechnical {
		return 180
	}
	return 60
}

// Session represents one interview attempt.
type Session struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	CoverLetterID *uuid.UUID
	Type          InterviewType
	Feedback      *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Turn is one question/answer exchange.
type Turn struct {
	ID         uuid.UUID
	SessionID  uuid.UUID
	TurnNumber int
	Question   string
	Answer     *string
	Feedback   *string
	TimeLimit  int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Answered reports whether the turn carries an answer.
func (t Turn) Answered() bool {
	return t.Answer != nil
}

// SessionDetails is a session with its owner, turns and derived state.
type SessionDetails struct {
	Session Session
	User    User
	Turns   []Turn
	State   SessionState
}

// StartInterviewParams contains parameters to start an interview.
type StartInterviewParams struct {
	UserID        uuid.UUID
	CoverLetterID uuid.UUID
	Type          InterviewType
}

// AdvanceInterviewParams contains parameters to answer the current turn.
type AdvanceInterviewParams struct {
	SessionID uuid.UUID
	TurnID    uuid.UUID
	Answer    string
}

// AdvanceResult is the outcome of answering a turn.
type AdvanceResult struct {
	Completed bool
	NextTurn  *Turn
}

// EndInterviewParams contains parameters to finish an interview.
type EndInterviewParams struct {
	SessionID  uuid.UUID
	LastTurnID *uuid.UUID
	LastAnswer string
}

// EndResult is the outcome of finishing an interview.
type EndResult struct {
	Session Session
	// Evaluated is false when no turn was answered and no feedback was written.
	Evaluated bool
}

// SessionPhase names a state of the interview state machine.
type SessionPhase string

const (
	// PhaseAwaitingFirstQuestion means the session has no turns.
	PhaseAwaitingFirstQuestion SessionPhase = "AWAITING_FIRST_QUESTION"
	// PhaseAwaitingAnswer means turn SessionState.Turn waits for an answer.
	PhaseAwaitingAnswer SessionPhase = "AWAITING_ANSWER"
	// PhaseAwaitingNextQuestion means every turn is answered but turn
	// SessionState.Turn was never generated.
	PhaseAwaitingNextQuestion SessionPhase = "AWAITING_NEXT_QUESTION"
	// PhaseCompleted means no more turns will be created.
	PhaseCompleted SessionPhase = "COMPLETED"
)

// SessionState is the derived position of a session in the state machine.
type SessionState struct {
	Phase SessionPhase
	Turn  int
}

// DeriveState computes the session state from its turns.
// Turns must belong to the session; order does not matter.
func DeriveState(session Session, turns []Turn) SessionState {
	if session.Feedback != nil {
		return SessionState{Phase: PhaseCompleted}
	}
	if len(turns) == 0 {
		return SessionState{Phase: PhaseAwaitingFirstQuestion, Turn: 1}
	}

	pending := 0
	for _, t := range turns {
		if !t.Answered() && (pending == 0 || t.TurnNumber < pending) {
			pending = t.TurnNumber
		}
	}
	if pending > 0 {
		return SessionState{Phase: PhaseAwaitingAnswer, Turn: pending}
	}
	if len(turns) >= MaxTurns {
		return SessionState{Phase: PhaseCompleted}
	}
	return SessionState{Phase: PhaseAwaitingNextQuestion, Turn: len(turns) + 1}
}
