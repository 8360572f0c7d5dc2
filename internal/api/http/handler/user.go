package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/interview-coach/internal/logger"
	"github.com/dtroode/interview-coach/internal/model"
)

// UserService defines business operations on user profiles.
type UserService interface {
	CreateUser(ctx context.Context, params model.CreateUserParams) (model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (model.UserOverview, error)
}

// User handles user profile endpoints.
type User struct {
	userService UserService
	logger      *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, logger *logger.Logger) *User {
	return &User{
		userService: userService,
		logger:      logger,
	}
}

type createUserRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	JobCategory string  `json:"jobCategory"`
	Experience  string  `json:"experience"`
	Age         flexInt `json:"age"`
	Gender      string  `json:"gender"`
}

// CreateUser registers a user profile.
func (h *User) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), model.CreateUserParams{
		Name:        req.Name,
		Email:       req.Email,
		JobCategory: req.JobCategory,
		Experience:  req.Experience,
		Age:         int(req.Age),
		Gender:      req.Gender,
	})
	if err != nil {
		h.logger.Error("User handler: create user failed", "error", err.Error())
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": toUserResponse(user)})
}

// GetUser returns a profile with its cover letters and interview sessions.
func (h *User) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid user id")
		return
	}

	overview, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("User handler: get user failed", "user_id", id, "error", err.Error())
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":              toUserResponse(overview.User),
		"coverLetters":      toCoverLetterResponses(overview.CoverLetters),
		"interviewSessions": toSessionResponses(overview.Sessions),
	})
}
