package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/interview-coach/internal/apierror"
	"github.com/dtroode/interview-coach/internal/mocks"
	"github.com/dtroode/interview-coach/internal/model"
	"github.com/dtroode/interview-coach/internal/testutil"
)

func validUserParams() model.CreateUserParams {
	return model.CreateUserParams{
		Name:        " Kim ",
		Email:       " kim@example.com ",
		JobCategory: "Backend",
		Experience:  "3-5 years",
		Age:         30,
		Gender:      "female",
	}
}

func requireAPIError(t *testing.T, err error, code int) *apierror.APIError {
	t.Helper()
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, code, apiErr.HTTPCode)
	return apiErr
}

func TestUser_CreateUser_Validation(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		mutate func(p *model.CreateUserParams)
		valid  bool
	}{
		"age 17 rejected":    {mutate: func(p *model.CreateUserParams) { p.Age = 17 }},
		"age 18 accepted":    {mutate: func(p *model.CreateUserParams) { p.Age = 18 }, valid: true},
		"age 100 accepted":   {mutate: func(p *model.CreateUserParams) { p.Age = 100 }, valid: true},
		"age 101 rejected":   {mutate: func(p *model.CreateUserParams) { p.Age = 101 }},
		"missing name":       {mutate: func(p *model.CreateUserParams) { p.Name = "  " }},
		"missing category":   {mutate: func(p *model.CreateUserParams) { p.JobCategory = "" }},
		"missing experience": {mutate: func(p *model.CreateUserParams) { p.Experience = "" }},
		"missing gender":     {mutate: func(p *model.CreateUserParams) { p.Gender = "" }},
		"email is optional":  {mutate: func(p *model.CreateUserParams) { p.Email = "" }, valid: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			params := validUserParams()
			tt.mutate(&params)

			users := &mocks.UserStore{}
			users.On("Create", mock.Anything, mock.Anything).Return(model.User{ID: uuid.New()}, nil).Maybe()

			s := NewUser(users, &mocks.CoverLetterStore{}, &mocks.InterviewStore{}, testutil.MakeNoopLogger())
			_, err := s.CreateUser(context.Background(), params)

			if tt.valid {
				require.NoError(t, err)
				users.AssertNumberOfCalls(t, "Create", 1)
				return
			}
			requireAPIError(t, err, http.StatusBadRequest)
			users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUser_CreateUser_NormalisesFields(t *testing.T) {
	t.Parallel()

	users := &mocks.UserStore{}
	users.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.ID != uuid.Nil && u.Name == "Kim" && u.Email != nil && *u.Email == "kim@example.com"
	})).Return(model.User{ID: uuid.New(), Name: "Kim"}, nil)

	s := NewUser(users, &mocks.CoverLetterStore{}, &mocks.InterviewStore{}, testutil.MakeNoopLogger())
	_, err := s.CreateUser(context.Background(), validUserParams())
	require.NoError(t, err)
	users.AssertExpectations(t)

	blank := &mocks.UserStore{}
	blank.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.Email == nil
	})).Return(model.User{ID: uuid.New()}, nil)

	params := validUserParams()
	params.Email = "   "
	s = NewUser(blank, &mocks.CoverLetterStore{}, &mocks.InterviewStore{}, testutil.MakeNoopLogger())
	_, err = s.CreateUser(context.Background(), params)
	require.NoError(t, err)
	blank.AssertExpectations(t)
}

func TestUser_CreateUser_DuplicateEmail(t *testing.T) {
	t.Parallel()

	users := &mocks.UserStore{}
	users.On("Create", mock.Anything, mock.Anything).Return(model.User{}, model.ErrAlreadyExists)

	s := NewUser(users, &mocks.CoverLetterStore{}, &mocks.InterviewStore{}, testutil.MakeNoopLogger())
	_, err := s.CreateUser(context.Background(), validUserParams())

	apiErr := requireAPIError(t, err, http.StatusBadRequest)
	assert.Equal(t, "email is already in use", apiErr.Message)
}

func TestUser_CreateUser_StoreError(t *testing.T) {
	t.Parallel()

	users := &mocks.UserStore{}
	users.On("Create", mock.Anything, mock.Anything).Return(model.User{}, errors.New("db down"))

	s := NewUser(users, &mocks.CoverLetterStore{}, &mocks.InterviewStore{}, testutil.MakeNoopLogger())
	_, err := s.CreateUser(context.Background(), validUserParams())
	require.Error(t, err)

	var apiErr *apierror.APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestUser_GetUser(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	users := &mocks.UserStore{}
	coverLetters := &mocks.CoverLetterStore{}
	interviews := &mocks.InterviewStore{}

	users.On("GetByID", mock.Anything, id).Return(model.User{ID: id, Name: "Kim"}, nil)
	coverLetters.On("GetByUserID", mock.Anything, id).Return([]model.CoverLetter{{ID: uuid.New()}}, nil)
	interviews.On("GetSessionsByUserID", mock.Anything, id).Return([]model.Session{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	s := NewUser(users, coverLetters, interviews, testutil.MakeNoopLogger())
	got, err := s.GetUser(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, "Kim", got.User.Name)
	assert.Len(t, got.CoverLetters, 1)
	assert.Len(t, got.Sessions, 2)
}

func TestUser_GetUser_NotFound(t *testing.T) {
	t.Parallel()

	users := &mocks.UserStore{}
	users.On("GetByID", mock.Anything, mock.Anything).Return(model.User{}, model.ErrNotFound)

	s := NewUser(users, &mocks.CoverLetterStore{}, &mocks.InterviewStore{}, testutil.MakeNoopLogger())
	_, err := s.GetUser(context.Background(), uuid.New())
	requireAPIError(t, err, http.StatusNotFound)
}
