package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/interview-coach/internal/apierror"
	"github.com/dtroode/interview-coach/internal/logger"
	"github.com/dtroode/interview-coach/internal/model"
	"github.com/dtroode/interview-coach/internal/prompt"
	"github.com/dtroode/interview-coach/internal/report"
)

type Interview struct {
	interviewStore   model.InterviewStore
	userStore        model.UserStore
	coverLetterStore model.CoverLetterStore
	completer        model.Completer
	archive          model.Storage
	logger           *logger.Logger
}

// NewInterview creates the interview service. archive may be nil to disable report archiving.
func NewInterview(
	interviewStore model.InterviewStore,
	userStore model.UserStore,
	coverLetterStore model.CoverLetterStore,
	completer model.Completer,
	archive model.Storage,
	logger *logger.Logger,
) *Interview {
	return &Interview{
		interviewStore:   interviewStore,
		userStore:        userStore,
		coverLetterStore: coverLetterStore,
		completer:        completer,
		archive:          archive,
		logger:           logger,
	}
}

// Start generates the first question and stores the session with turn 1.
// Nothing is written when generation fails.
func (s *Interview) Start(ctx context.Context, params model.StartInterviewParams) (model.Session, model.Turn, error) {
	interviewType, err := model.ParseInterviewType(string(params.Type))
	if err != nil {
		return model.Session{}, model.Turn{}, apierror.NewErrValidation("type must be BASIC or TECHNICAL")
	}
	if params.UserID == uuid.Nil || params.CoverLetterID == uuid.Nil {
		return model.Session{}, model.Turn{}, apierror.NewErrValidation("userId and coverLetterId are required")
	}

	user, err := s.userStore.GetByID(ctx, params.UserID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Session{}, model.Turn{}, apierror.NewErrUserNotFound(params.UserID)
	}
	if err != nil {
		return model.Session{}, model.Turn{}, fmt.Errorf("failed to get user: %w", err)
	}

	coverLetter, err := s.coverLetterStore.GetByID(ctx, params.CoverLetterID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Session{}, model.Turn{}, apierror.NewErrCoverLetterNotFound(params.CoverLetterID)
	}
	if err != nil {
		return model.Session{}, model.Turn{}, fmt.Errorf("failed to get cover letter: %w", err)
	}

	question, err := s.completer.Generate(ctx,
		prompt.Question(interviewType, prompt.ProfileOf(user), coverLetter.Content, nil),
		questionOptions)
	if err != nil {
		s.logger.Error("Interview service: failed to generate first question",
			"user_id", user.ID,
			"error", err.Error())
		return model.Session{}, model.Turn{}, fmt.Errorf("failed to generate first question: %w", err)
	}

	sessionID := uuid.New()
	session, firstTurn, err := s.interviewStore.CreateSession(ctx,
		model.Session{
			ID:            sessionID,
			UserID:        user.ID,
			CoverLetterID: &coverLetter.ID,
			Type:          interviewType,
		},
		model.Turn{
			ID:         uuid.New(),
			SessionID:  sessionID,
			TurnNumber: 1,
			Question:   question,
			TimeLimit:  interviewType.TimeLimit(),
		})
	if err != nil {
		s.logger.Error("Interview service: failed to create session",
			"user_id", user.ID,
			"error", err.Error())
		return model.Session{}, model.Turn{}, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("Interview service: interview started",
		"session_id", session.ID,
		"type", session.Type)

	return session, firstTurn, nil
}

// Advance grades the answer to the current turn and creates the next one
// until MaxTurns turns exist.
func (s *Interview) Advance(ctx context.Context, params model.AdvanceInterviewParams) (model.AdvanceResult, error) {
	answer := strings.TrimSpace(params.Answer)
	if answer == "" {
		return model.AdvanceResult{}, apierror.NewErrValidation("answer is required")
	}

	session, err := s.openSession(ctx, params.SessionID)
	if err != nil {
		return model.AdvanceResult{}, err
	}

	turn, err := s.sessionTurn(ctx, session.ID, params.TurnID)
	if err != nil {
		return model.AdvanceResult{}, err
	}

	if turn.Answered() {
		// An answered latest turn means a previous call failed after grading; resume from there.
		count, err := s.interviewStore.CountTurns(ctx, session.ID)
		if err != nil {
			return model.AdvanceResult{}, fmt.Errorf("failed to count turns: %w", err)
		}
		if count >= model.MaxTurns {
			return model.AdvanceResult{Completed: true}, nil
		}
		if turn.TurnNumber != count {
			return model.AdvanceResult{}, apierror.NewErrTurnAlreadyAnswered(turn.ID)
		}
		s.logger.Info("Interview service: resuming after graded turn",
			"session_id", session.ID,
			"turn_number", turn.TurnNumber)
	} else if _, err := s.grade(ctx, session, turn, answer); err != nil {
		return model.AdvanceResult{}, err
	}

	count, err := s.interviewStore.CountTurns(ctx, session.ID)
	if err != nil {
		return model.AdvanceResult{}, fmt.Errorf("failed to count turns: %w", err)
	}
	if count >= model.MaxTurns {
		s.logger.Info("Interview service: all questions answered",
			"session_id", session.ID)
		return model.AdvanceResult{Completed: true}, nil
	}

	next, err := s.nextTurn(ctx, session, count+1)
	if err != nil {
		return model.AdvanceResult{}, err
	}

	return model.AdvanceResult{NextTurn: &next}, nil
}

// End optionally grades a last answer, then writes the comprehensive feedback once.
// EndResult.Evaluated is false when no turn was answered.
func (s *Interview) End(ctx context.Context, params model.EndInterviewParams) (model.EndResult, error) {
	session, err := s.openSession(ctx, params.SessionID)
	if err != nil {
		return model.EndResult{}, err
	}

	if params.LastTurnID != nil && strings.TrimSpace(params.LastAnswer) != "" {
		if err := s.gradeLast(ctx, session, *params.LastTurnID, strings.TrimSpace(params.LastAnswer)); err != nil {
			return model.EndResult{}, err
		}
	}

	turns, err := s.interviewStore.GetTurns(ctx, session.ID)
	if err != nil {
		return model.EndResult{}, fmt.Errorf("failed to get turns: %w", err)
	}

	qas := answered(turns)
	if len(qas) == 0 {
		s.logger.Info("Interview service: no answers to evaluate",
			"session_id", session.ID)
		return model.EndResult{Session: session}, nil
	}

	feedback, err := s.completer.Generate(ctx, prompt.Comprehensive(session.Type, qas), comprehensiveOptions)
	if err != nil {
		s.logger.Error("Interview service: failed to generate comprehensive feedback",
			"session_id", session.ID,
			"error", err.Error())
		return model.EndResult{}, fmt.Errorf("failed to generate comprehensive feedback: %w", err)
	}

	session, err = s.interviewStore.SetSessionFeedback(ctx, session.ID, feedback)
	if errors.Is(err, model.ErrStateConflict) {
		return model.EndResult{}, apierror.NewErrInterviewEnded(params.SessionID)
	}
	if err != nil {
		return model.EndResult{}, fmt.Errorf("failed to save comprehensive feedback: %w", err)
	}

	s.logger.Info("Interview service: interview ended",
		"session_id", session.ID,
		"answered_turns", len(qas))

	s.archiveReport(ctx, session, turns)

	return model.EndResult{Session: session, Evaluated: true}, nil
}

// GetSession returns the session with its user, ordered turns and derived state.
func (s *Interview) GetSession(ctx context.Context, id uuid.UUID) (model.SessionDetails, error) {
	session, err := s.interviewStore.GetSession(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.SessionDetails{}, apierror.NewErrSessionNotFound(id)
	}
	if err != nil {
		return model.SessionDetails{}, fmt.Errorf("failed to get session: %w", err)
	}

	turns, err := s.interviewStore.GetTurns(ctx, id)
	if err != nil {
		return model.SessionDetails{}, fmt.Errorf("failed to get turns: %w", err)
	}

	return s.details(ctx, session, turns)
}

// GetReport returns the XLSX report, preferring the archived copy.
func (s *Interview) GetReport(ctx context.Context, id uuid.UUID) ([]byte, error) {
	details, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.archive != nil && details.State.Phase == model.PhaseCompleted {
		data, err := s.readArchived(ctx, report.Key(id))
		if err == nil && data != nil {
			return data, nil
		}
		if err != nil {
			s.logger.Warn("Interview service: failed to read archived report, rendering",
				"session_id", id,
				"error", err.Error())
		}
	}

	data, err := report.Build(details)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}
	return data, nil
}

// openSession loads a session that can still change.
func (s *Interview) openSession(ctx context.Context, id uuid.UUID) (model.Session, error) {
	session, err := s.interviewStore.GetSession(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Session{}, apierror.NewErrSessionNotFound(id)
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get session: %w", err)
	}
	if session.Feedback != nil {
		return model.Session{}, apierror.NewErrInterviewEnded(id)
	}
	return session, nil
}

// sessionTurn loads a turn and checks it belongs to the session.
func (s *Interview) sessionTurn(ctx context.Context, sessionID, turnID uuid.UUID) (model.Turn, error) {
	turn, err := s.interviewStore.GetTurn(ctx, turnID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Turn{}, apierror.NewErrTurnNotFound(turnID)
	}
	if err != nil {
		return model.Turn{}, fmt.Errorf("failed to get turn: %w", err)
	}
	if turn.SessionID != sessionID {
		return model.Turn{}, apierror.NewErrTurnNotFound(turnID)
	}
	return turn, nil
}

// grade generates answer feedback and stores it together with the answer.
func (s *Interview) grade(ctx context.Context, session model.Session, turn model.Turn, answer string) (model.Turn, error) {
	feedback, err := s.completer.Generate(ctx, prompt.AnswerFeedback(turn.Question, answer, session.Type), answerFeedbackOptions)
	if err != nil {
		s.logger.Error("Interview service: failed to generate answer feedback",
			"session_id", session.ID,
			"turn_number", turn.TurnNumber,
			"error", err.Error())
		return model.Turn{}, fmt.Errorf("failed to generate answer feedback: %w", err)
	}

	graded, err := s.interviewStore.AnswerTurn(ctx, turn.ID, answer, feedback)
	if errors.Is(err, model.ErrStateConflict) {
		return model.Turn{}, apierror.NewErrTurnAlreadyAnswered(turn.ID)
	}
	if err != nil {
		return model.Turn{}, fmt.Errorf("failed to save answer: %w", err)
	}

	s.logger.Debug("Interview service: turn graded",
		"session_id", session.ID,
		"turn_number", turn.TurnNumber)

	return graded, nil
}

// gradeLast grades the final answer sent with End. Turns of other sessions
// and answered turns are ignored.
func (s *Interview) gradeLast(ctx context.Context, session model.Session, turnID uuid.UUID, answer string) error {
	turn, err := s.interviewStore.GetTurn(ctx, turnID)
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get turn: %w", err)
	}
	if turn.SessionID != session.ID || turn.Answered() {
		return nil
	}

	_, err = s.grade(ctx, session, turn, answer)
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		// answered concurrently
		return nil
	}
	return err
}

func (s *Interview) nextTurn(ctx context.Context, session model.Session, number int) (model.Turn, error) {
	turns, err := s.interviewStore.GetTurns(ctx, session.ID)
	if err != nil {
		return model.Turn{}, fmt.Errorf("failed to get turns: %w", err)
	}
	previous := make([]string, 0, len(turns))
	for _, t := range turns {
		previous = append(previous, t.Question)
	}

	user, err := s.userStore.GetByID(ctx, session.UserID)
	if err != nil {
		return model.Turn{}, fmt.Errorf("failed to get user: %w", err)
	}

	content := ""
	if session.CoverLetterID != nil {
		coverLetter, err := s.coverLetterStore.GetByID(ctx, *session.CoverLetterID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return model.Turn{}, fmt.Errorf("failed to get cover letter: %w", err)
		}
		content = coverLetter.Content
	}

	question, err := s.completer.Generate(ctx,
		prompt.Question(session.Type, prompt.ProfileOf(user), content, previous),
		questionOptions)
	if err != nil {
		s.logger.Error("Interview service: failed to generate next question",
			"session_id", session.ID,
			"turn_number", number,
			"error", err.Error())
		return model.Turn{}, fmt.Errorf("failed to generate next question: %w", err)
	}

	turn, err := s.interviewStore.CreateTurn(ctx, model.Turn{
		ID:         uuid.New(),
		SessionID:  session.ID,
		TurnNumber: number,
		Question:   question,
		TimeLimit:  session.Type.TimeLimit(),
	})
	if errors.Is(err, model.ErrAlreadyExists) {
		return model.Turn{}, apierror.NewErrTurnExists(session.ID, number)
	}
	if err != nil {
		return model.Turn{}, fmt.Errorf("failed to create turn: %w", err)
	}

	s.logger.Info("Interview service: next question created",
		"session_id", session.ID,
		"turn_number", turn.TurnNumber)

	return turn, nil
}

func (s *Interview) details(ctx context.Context, session model.Session, turns []model.Turn) (model.SessionDetails, error) {
	user, err := s.userStore.GetByID(ctx, session.UserID)
	if err != nil {
		return model.SessionDetails{}, fmt.Errorf("failed to get session user: %w", err)
	}

	return model.SessionDetails{
		Session: session,
		User:    user,
		Turns:   turns,
		State:   model.DeriveState(session, turns),
	}, nil
}

// archiveReport uploads the report of a finished session. Failures are only logged.
func (s *Interview) archiveReport(ctx context.Context, session model.Session, turns []model.Turn) {
	if s.archive == nil {
		return
	}

	details, err := s.details(ctx, session, turns)
	if err != nil {
		s.logger.Warn("Interview service: failed to load report data",
			"session_id", session.ID,
			"error", err.Error())
		return
	}

	data, err := report.Build(details)
	if err != nil {
		s.logger.Warn("Interview service: failed to build report",
			"session_id", session.ID,
			"error", err.Error())
		return
	}

	if err := s.archive.Upload(ctx, report.Key(session.ID), bytes.NewReader(data), int64(len(data)), report.ContentType); err != nil {
		s.logger.Warn("Interview service: failed to archive report",
			"session_id", session.ID,
			"error", err.Error())
		return
	}

	s.logger.Debug("Interview service: report archived",
		"session_id", session.ID)
}

// readArchived returns nil data when no archived copy exists.
func (s *Interview) readArchived(ctx context.Context, key string) ([]byte, error) {
	ok, err := s.archive.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to check archived report: %w", err)
	}
	if !ok {
		return nil, nil
	}

	rc, err := s.archive.Download(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to download archived report: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read archived report: %w", err)
	}
	return data, nil
}

func answered(turns []model.Turn) []prompt.QA {
	qas := make([]prompt.QA, 0, len(turns))
	for _, t := range turns {
		if !t.Answered() {
			continue
		}
		qa := prompt.QA{Question: t.Question, Answer: *t.Answer}
		if t.Feedback != nil {
			qa.Feedback = *t.Feedback
		}
		qas = append(qas, qa)
	}
	return qas
}
