package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/interview-coach/internal/logger"
)

// FeedbackService defines synchronous cover letter feedback.
type FeedbackService interface {
	QuickFeedback(ctx context.Context, content string) (string, error)
	StreamQuickFeedback(ctx context.Context, content string, onChunk func(chunk string) error) error
}

// Feedback handles quick feedback endpoints.
type Feedback struct {
	feedbackService FeedbackService
	logger          *logger.Logger
}

// NewFeedback creates a new Feedback handler.
func NewFeedback(feedbackService FeedbackService, logger *logger.Logger) *Feedback {
	return &Feedback{
		feedbackService: feedbackService,
		logger:          logger,
	}
}

type feedbackRequest struct {
	CoverLetter string `json:"coverLetter"`
}

// Quick returns feedback for an unsaved cover letter.
func (h *Feedback) Quick(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	feedback, err := h.feedbackService.QuickFeedback(c.Request.Context(), req.CoverLetter)
	if err != nil {
		h.logger.Error("Feedback handler: quick feedback failed", "error", err.Error())
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"feedback": feedback})
}

// Stream sends feedback as server-sent "message" events followed by "done".
// Failures before the first chunk are ordinary JSON errors; later ones become an "error" event.
func (h *Feedback) Stream(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	started := false
	err := h.feedbackService.StreamQuickFeedback(c.Request.Context(), req.CoverLetter, func(chunk string) error {
		if !started {
			c.Header("Content-Type", "text/event-stream")
			c.Header("Cache-Control", "no-cache")
			c.Header("Connection", "keep-alive")
			c.Status(http.StatusOK)
			started = true
		}
		c.SSEvent("message", chunk)
		c.Writer.Flush()
		return c.Request.Context().Err()
	})
	if err != nil {
		h.logger.Error("Feedback handler: stream failed", "started", started, "error", err.Error())
		if !started {
			handleError(c, err)
			return
		}
		c.SSEvent("error", "feedback generation was interrupted")
		c.Writer.Flush()
		return
	}

	if !started {
		c.Header("Content-Type", "text/event-stream")
		c.Status(http.StatusOK)
	}
	c.SSEvent("done", "")
	c.Writer.Flush()
}
