package router

import (
	"github.com/gin-gonic/gin"

	"github.com/dtroode/interview-coach/internal/api/http/handler"
	"github.com/dtroode/interview-coach/internal/api/http/middleware"
	"github.com/dtroode/interview-coach/internal/logger"
	"github.com/dtroode/interview-coach/internal/model"
)

// Services groups the business services exposed over HTTP.
type Services struct {
	Users        handler.UserService
	CoverLetters handler.CoverLetterService
	Interviews   handler.InterviewService
	Feedback     handler.FeedbackService
	Database     handler.Pinger
}

// Router builds the HTTP routing tree for the interview coach API.
type Router struct {
	services       Services
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates new Router instance.
func New(services Services, contextManager model.ContextManager, logger *logger.Logger) *Router {
	return &Router{
		services:       services,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register wires middleware and every route into a gin engine.
func (r *Router) Register() *gin.Engine {
	requestID := middleware.NewRequestID(r.contextManager)
	logging := middleware.NewLogging(r.contextManager, r.logger)

	e := gin.New()
	e.Use(gin.Recovery(), requestID.Handle, logging.Handle)

	health := handler.NewHealth(r.services.Database, r.logger)
	e.GET("/health", health.Check)

	api := e.Group("/api")
	r.registerUserRoutes(api)
	r.registerCoverLetterRoutes(api)
	r.registerInterviewRoutes(api)
	r.registerFeedbackRoutes(api)

	return e
}

func (r *Router) registerUserRoutes(api *gin.RouterGroup) {
	h := handler.NewUser(r.services.Users, r.logger)
	api.POST("/users", h.CreateUser)
	api.GET("/users/:id", h.GetUser)
}

func (r *Router) registerCoverLetterRoutes(api *gin.RouterGroup) {
	h := handler.NewCoverLetter(r.services.CoverLetters, r.logger)
	api.POST("/cover-letters", h.Submit)
	api.GET("/cover-letters", h.Get)
}

func (r *Router) registerInterviewRoutes(api *gin.RouterGroup) {
	h := handler.NewInterview(r.services.Interviews, r.logger)
	g := api.Group("/interview")
	g.POST("/start", h.Start)
	g.POST("/next", h.Next)
	g.POST("/end", h.End)
	g.GET("/:sessionId", h.Get)
	g.GET("/:sessionId/report", h.Report)
}

func (r *Router) registerFeedbackRoutes(api *gin.RouterGroup) {
	h := handler.NewFeedback(r.services.Feedback, r.logger)
	api.POST("/feedback", h.Quick)
	api.POST("/feedback/stream", h.Stream)
}
