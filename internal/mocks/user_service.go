package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/interview-coach/internal/model"
)

// UserService is a mock of the user handler's service.
type UserService struct {
	mock.Mock
}

// NewUserService creates a UserService whose expectations are asserted on cleanup.
func NewUserService(t interface {
	mock.TestingT
	Cleanup(func())
}) *UserService {
	m := &UserService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *UserService) CreateUser(ctx context.Context, params model.CreateUserParams) (model.User, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserService) GetUser(ctx context.Context, id uuid.UUID) (model.UserOverview, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.UserOverview), args.Error(1)
}
