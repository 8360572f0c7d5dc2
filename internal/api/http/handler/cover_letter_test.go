package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/interview-coach/internal/apierror"
	"github.com/dtroode/interview-coach/internal/mocks"
	"github.com/dtroode/interview-coach/internal/model"
	"github.com/dtroode/interview-coach/internal/testutil"
)

func TestCoverLetter_Submit(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	content := strings.Repeat("a", model.MinCoverLetterLength)

	svc := mocks.NewCoverLetterService(t)
	svc.On("Submit", mock.Anything, userID, content).Return(model.CoverLetter{
		ID:      uuid.New(),
		UserID:  userID,
		Content: content,
		Status:  model.CoverLetterStatusPending,
	}, nil)

	h := NewCoverLetter(svc, testutil.MakeNoopLogger())
	rec := serve(t, http.MethodPost, "/api/cover-letters", "/api/cover-letters", h.Submit,
		map[string]any{"content": content, "userId": userID})

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "PENDING", body["coverLetter"].(map[string]any)["status"])
	assert.NotEmpty(t, body["message"])
}

func TestCoverLetter_Submit_Errors(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name     string
		body     any
		setup    func(svc *mocks.CoverLetterService)
		wantCode int
	}{
		{
			name:     "missing user",
			body:     map[string]any{"content": "text"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "invalid user id",
			body:     `{"content":"text","userId":"nope"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "too short",
			body: map[string]any{"content": "short", "userId": userID},
			setup: func(svc *mocks.CoverLetterService) {
				svc.On("Submit", mock.Anything, userID, "short").
					Return(model.CoverLetter{}, apierror.NewErrValidation("cover letter must be at least 100 characters"))
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown user",
			body: map[string]any{"content": "text", "userId": userID},
			setup: func(svc *mocks.CoverLetterService) {
				svc.On("Submit", mock.Anything, userID, "text").
					Return(model.CoverLetter{}, apierror.NewErrUserNotFound(userID))
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := mocks.NewCoverLetterService(t)
			if tt.setup != nil {
				tt.setup(svc)
			}

			h := NewCoverLetter(svc, testutil.MakeNoopLogger())
			rec := serve(t, http.MethodPost, "/api/cover-letters", "/api/cover-letters", h.Submit, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestCoverLetter_Get(t *testing.T) {
	t.Parallel()

	id, userID := uuid.New(), uuid.New()
	feedback := "Strong opening."

	tests := []struct {
		name     string
		target   string
		setup    func(svc *mocks.CoverLetterService)
		wantCode int
		wantKey  string
	}{
		{
			name:   "by id",
			target: "/api/cover-letters?id=" + id.String(),
			setup: func(svc *mocks.CoverLetterService) {
				svc.On("GetCoverLetter", mock.Anything, id).Return(model.CoverLetter{
					ID: id, Status: model.CoverLetterStatusCompleted, Feedback: &feedback,
				}, nil)
			},
			wantCode: http.StatusOK,
			wantKey:  "coverLetter",
		},
		{
			name:   "by user",
			target: "/api/cover-letters?userId=" + userID.String(),
			setup: func(svc *mocks.CoverLetterService) {
				svc.On("ListCoverLetters", mock.Anything, userID).Return([]model.CoverLetter{{ID: id}}, nil)
			},
			wantCode: http.StatusOK,
			wantKey:  "coverLetters",
		},
		{
			name:   "not found",
			target: "/api/cover-letters?id=" + id.String(),
			setup: func(svc *mocks.CoverLetterService) {
				svc.On("GetCoverLetter", mock.Anything, id).Return(model.CoverLetter{}, apierror.NewErrCoverLetterNotFound(id))
			},
			wantCode: http.StatusNotFound,
			wantKey:  "error",
		},
		{
			name:     "no query",
			target:   "/api/cover-letters",
			wantCode: http.StatusBadRequest,
			wantKey:  "error",
		},
		{
			name:     "bad id",
			target:   "/api/cover-letters?id=123",
			wantCode: http.StatusBadRequest,
			wantKey:  "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := mocks.NewCoverLetterService(t)
			if tt.setup != nil {
				tt.setup(svc)
			}

			h := NewCoverLetter(svc, testutil.MakeNoopLogger())
			rec := serve(t, http.MethodGet, "/api/cover-letters", tt.target, h.Get, nil)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, decode(t, rec), tt.wantKey)
		})
	}
}
