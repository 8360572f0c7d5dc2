package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/interview-coach/internal/logger"
	"github.com/dtroode/interview-coach/internal/model"
	"github.com/dtroode/interview-coach/internal/report"
)

// InterviewService defines the interview turn state machine.
type InterviewService interface {
	Start(ctx context.Context, params model.StartInterviewParams) (model.Session, model.Turn, error)
	Advance(ctx context.Context, params model.AdvanceInterviewParams) (model.AdvanceResult, error)
	End(ctx context.Context, params model.EndInterviewParams) (model.EndResult, error)
	GetSession(ctx context.Context, id uuid.UUID) (model.SessionDetails, error)
	GetReport(ctx context.Context, id uuid.UUID) ([]byte, error)
}

// Interview handles mock interview endpoints.
type Interview struct {
	interviewService InterviewService
	logger           *logger.Logger
}

// NewInterview creates a new Interview handler.
func NewInterview(interviewService InterviewService, logger *logger.Logger) *Interview {
	return &Interview{
		interviewService: interviewService,
		logger:           logger,
	}
}

type startInterviewRequest struct {
	UserID        uuid.UUID `json:"userId"`
	CoverLetterID uuid.UUID `json:"coverLetterId"`
	Type          string    `json:"type"`
}

type advanceInterviewRequest struct {
	SessionID uuid.UUID `json:"sessionId"`
	TurnID    uuid.UUID `json:"turnId"`
	Answer    string    `json:"answer"`
}

type endInterviewRequest struct {
	SessionID  uuid.UUID  `json:"sessionId"`
	LastTurnID *uuid.UUID `json:"lastTurnId"`
	LastAnswer string     `json:"lastAnswer"`
}

// Start creates a session and its first question.
func (h *Interview) Start(c *gin.Context) {
	var req startInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	session, firstTurn, err := h.interviewService.Start(c.Request.Context(), model.StartInterviewParams{
		UserID:        req.UserID,
		CoverLetterID: req.CoverLetterID,
		Type:          model.InterviewType(req.Type),
	})
	if err != nil {
		h.logger.Error("Interview handler: start failed", "user_id", req.UserID, "error", err.Error())
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session":   toSessionResponse(session),
		"firstTurn": toTurnResponse(firstTurn),
	})
}

// Next grades the current answer and returns the following question.
func (h *Interview) Next(c *gin.Context) {
	var req advanceInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if req.SessionID == uuid.Nil || req.TurnID == uuid.Nil {
		badRequest(c, "sessionId and turnId are required")
		return
	}

	result, err := h.interviewService.Advance(c.Request.Context(), model.AdvanceInterviewParams{
		SessionID: req.SessionID,
		TurnID:    req.TurnID,
		Answer:    req.Answer,
	})
	if err != nil {
		h.logger.Error("Interview handler: advance failed",
			"session_id", req.SessionID,
			"turn_id", req.TurnID,
			"error", err.Error())
		handleError(c, err)
		return
	}

	if result.Completed {
		c.JSON(http.StatusOK, gin.H{
			"completed": true,
			"message":   "All questions answered. End the interview to get your feedback.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"completed": false,
		"nextTurn":  toTurnResponse(*result.NextTurn),
	})
}

// End finishes the interview and returns the comprehensive feedback.
func (h *Interview) End(c *gin.Context) {
	var req endInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if req.SessionID == uuid.Nil {
		badRequest(c, "sessionId is required")
		return
	}

	result, err := h.interviewService.End(c.Request.Context(), model.EndInterviewParams{
		SessionID:  req.SessionID,
		LastTurnID: req.LastTurnID,
		LastAnswer: req.LastAnswer,
	})
	if err != nil {
		h.logger.Error("Interview handler: end failed", "session_id", req.SessionID, "error", err.Error())
		handleError(c, err)
		return
	}

	message := "Interview completed."
	if !result.Evaluated {
		message = "No answers to evaluate."
	}

	c.JSON(http.StatusOK, gin.H{
		"session": toSessionResponse(result.Session),
		"message": message,
	})
}

// Get returns the session with its user, turns and state.
func (h *Interview) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		badRequest(c, "invalid session id")
		return
	}

	details, err := h.interviewService.GetSession(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Interview handler: get session failed", "session_id", id, "error", err.Error())
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": toSessionDetailsResponse(details)})
}

// Report serves the session as an XLSX download.
func (h *Interview) Report(c *gin.Context) {
	id, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		badRequest(c, "invalid session id")
		return
	}

	data, err := h.interviewService.GetReport(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Interview handler: report failed", "session_id", id, "error", err.Error())
		handleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName(id)))
	c.Data(http.StatusOK, report.ContentType, data)
}
