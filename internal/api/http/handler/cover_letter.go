package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/interview-coach/internal/logger"
	"github.com/dtroode/interview-coach/internal/model"
)

// CoverLetterService defines business operations on cover letters.
type CoverLetterService interface {
	Submit(ctx context.Context, userID uuid.UUID, content string) (model.CoverLetter, error)
	GetCoverLetter(ctx context.Context, id uuid.UUID) (model.CoverLetter, error)
	ListCoverLetters(ctx context.Context, userID uuid.UUID) ([]model.CoverLetter, error)
}

// CoverLetter handles cover letter endpoints.
type CoverLetter struct {
	coverLetterService CoverLetterService
	logger             *logger.Logger
}

// NewCoverLetter creates a new CoverLetter handler.
func NewCoverLetter(coverLetterService CoverLetterService, logger *logger.Logger) *CoverLetter {
	return &CoverLetter{
		coverLetterService: coverLetterService,
		logger:             logger,
	}
}

type submitCoverLetterRequest struct {
	Content string    `json:"content"`
	UserID  uuid.UUID `json:"userId"`
}

// Submit stores a cover letter and queues feedback generation.
func (h *CoverLetter) Submit(c *gin.Context) {
	var req submitCoverLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if req.UserID == uuid.Nil {
		badRequest(c, "userId is required")
		return
	}

	coverLetter, err := h.coverLetterService.Submit(c.Request.Context(), req.UserID, req.Content)
	if err != nil {
		h.logger.Error("Cover letter handler: submit failed", "user_id", req.UserID, "error", err.Error())
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"coverLetter": toCoverLetterResponse(coverLetter),
		"message":     "Cover letter submitted. Feedback is being generated.",
	})
}

// Get returns one cover letter by ?id= or all of a user's by ?userId=.
func (h *CoverLetter) Get(c *gin.Context) {
	if raw := c.Query("id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			badRequest(c, "invalid cover letter id")
			return
		}
		coverLetter, err := h.coverLetterService.GetCoverLetter(c.Request.Context(), id)
		if err != nil {
			h.logger.Error("Cover letter handler: get failed", "cover_letter_id", id, "error", err.Error())
			handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"coverLetter": toCoverLetterResponse(coverLetter)})
		return
	}

	if raw := c.Query("userId"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			badRequest(c, "invalid user id")
			return
		}
		list, err := h.coverLetterService.ListCoverLetters(c.Request.Context(), userID)
		if err != nil {
			h.logger.Error("Cover letter handler: list failed", "user_id", userID, "error", err.Error())
			handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"coverLetters": toCoverLetterResponses(list)})
		return
	}

	badRequest(c, "id or userId query parameter is required")
}
