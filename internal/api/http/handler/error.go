package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/interview-coach/internal/apierror"
	"github.com/dtroode/interview-coach/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

func handleError(c *gin.Context, err error) {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.HTTPCode, errorResponse{Error: apiErr.Message})
		return
	}

	switch {
	case errors.Is(err, model.ErrGenerationFailed):
		apiErr = apierror.NewErrGenerationFailed()
		c.JSON(apiErr.HTTPCode, errorResponse{Error: apiErr.Message})
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "resource not found"})
	default:
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: message})
}
