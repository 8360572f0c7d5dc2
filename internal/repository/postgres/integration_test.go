//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/interview-coach/database"
	"github.com/dtroode/interview-coach/internal/model"
	repo "github.com/dtroode/interview-coach/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "interview_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/interview_test?sslmode=disable", host, port.Port())

	if err := migrate(ctx); err != nil {
		_ = container.Terminate(ctx)
		panic(err)
	}

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

// migrate retries while postgres finishes starting behind the open port.
func migrate(ctx context.Context) error {
	var err error
	for range 20 {
		if err = database.Migrate(ctx, dsn); err == nil {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return err
}

func connect(t *testing.T) *repo.Connection {
	t.Helper()
	conn, err := repo.NewConection(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func createUser(t *testing.T, ur *repo.UserRepository, email *string) model.User {
	t.Helper()
	u, err := ur.Create(context.Background(), model.User{
		ID:          uuid.New(),
		Name:        "Kim",
		Email:       email,
		JobCategory: "Backend",
		Experience:  "1-3 years",
		Age:         29,
		Gender:      "female",
	})
	require.NoError(t, err)
	return u
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	ur := repo.NewUserRepository(connect(t))

	email := uuid.NewString() + "@example.com"
	u := createUser(t, ur, &email)

	got, err := ur.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kim", got.Name)
	require.NotNil(t, got.Email)
	assert.Equal(t, email, *got.Email)

	_, err = ur.Create(ctx, model.User{ID: uuid.New(), Name: "Lee", Email: &email, JobCategory: "x", Experience: "x", Age: 30, Gender: "x"})
	require.ErrorIs(t, err, model.ErrAlreadyExists)

	// users without email never collide
	createUser(t, ur, nil)
	createUser(t, ur, nil)

	_, err = ur.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestCoverLetterRepository_StatusTransitions(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)
	ur := repo.NewUserRepository(conn)
	cr := repo.NewCoverLetterRepository(conn)

	u := createUser(t, ur, nil)
	cl, err := cr.Create(ctx, model.CoverLetter{
		ID:      uuid.New(),
		UserID:  u.ID,
		Content: strings.Repeat("a", 120),
		Status:  model.CoverLetterStatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, model.CoverLetterStatusPending, cl.Status)
	assert.Nil(t, cl.Feedback)

	pending, err := cr.GetPending(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids(pending), cl.ID)

	resolved, err := cr.Resolve(ctx, cl.ID, model.CoverLetterStatusCompleted, "good")
	require.NoError(t, err)
	assert.Equal(t, model.CoverLetterStatusCompleted, resolved.Status)
	require.NotNil(t, resolved.Feedback)
	assert.Equal(t, "good", *resolved.Feedback)

	_, err = cr.Resolve(ctx, cl.ID, model.CoverLetterStatusError, "fallback")
	require.ErrorIs(t, err, model.ErrStateConflict)

	_, err = cr.Resolve(ctx, uuid.New(), model.CoverLetterStatusError, "fallback")
	require.ErrorIs(t, err, model.ErrNotFound)

	list, err := cr.GetByUserID(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.CoverLetterStatusCompleted, list[0].Status)
}

func TestInterviewRepository_TurnLifecycle(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)
	ur := repo.NewUserRepository(conn)
	cr := repo.NewCoverLetterRepository(conn)
	ir := repo.NewInterviewRepository(conn)

	u := createUser(t, ur, nil)
	cl, err := cr.Create(ctx, model.CoverLetter{ID: uuid.New(), UserID: u.ID, Content: strings.Repeat("b", 100), Status: model.CoverLetterStatusPending})
	require.NoError(t, err)

	session, first, err := ir.CreateSession(ctx,
		model.Session{ID: uuid.New(), UserID: u.ID, CoverLetterID: &cl.ID, Type: model.InterviewTypeTechnical},
		model.Turn{ID: uuid.New(), TurnNumber: 1, Question: "q1", TimeLimit: 180},
	)
	require.NoError(t, err)
	assert.Equal(t, session.ID, first.SessionID)
	assert.Equal(t, 180, first.TimeLimit)

	answered, err := ir.AnswerTurn(ctx, first.ID, "a1", "f1")
	require.NoError(t, err)
	require.NotNil(t, answered.Answer)
	require.NotNil(t, answered.Feedback)

	_, err = ir.AnswerTurn(ctx, first.ID, "again", "again")
	require.ErrorIs(t, err, model.ErrStateConflict)

	for n := 2; n <= model.MaxTurns; n++ {
		_, err := ir.CreateTurn(ctx, model.Turn{ID: uuid.New(), SessionID: session.ID, TurnNumber: n, Question: fmt.Sprintf("q%d", n), TimeLimit: 180})
		require.NoError(t, err)
	}

	_, err = ir.CreateTurn(ctx, model.Turn{ID: uuid.New(), SessionID: session.ID, TurnNumber: 2, Question: "dup", TimeLimit: 180})
	require.ErrorIs(t, err, model.ErrAlreadyExists)

	_, err = ir.CreateTurn(ctx, model.Turn{ID: uuid.New(), SessionID: session.ID, TurnNumber: 6, Question: "q6", TimeLimit: 180})
	require.Error(t, err)

	count, err := ir.CountTurns(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MaxTurns, count)

	turns, err := ir.GetTurns(ctx, session.ID)
	require.NoError(t, err)
	for i, turn := range turns {
		assert.Equal(t, i+1, turn.TurnNumber)
	}

	withFeedback, err := ir.SetSessionFeedback(ctx, session.ID, "summary")
	require.NoError(t, err)
	require.NotNil(t, withFeedback.Feedback)

	_, err = ir.SetSessionFeedback(ctx, session.ID, "second")
	require.ErrorIs(t, err, model.ErrStateConflict)

	sessions, err := ir.GetSessionsByUserID(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	_, err = ir.GetSession(ctx, uuid.New())
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestInterviewRepository_CreateSessionIsAtomic(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)
	ur := repo.NewUserRepository(conn)
	ir := repo.NewInterviewRepository(conn)

	u := createUser(t, ur, nil)
	sessionID := uuid.New()

	// turn number 0 violates the check constraint, so the session insert must roll back
	_, _, err := ir.CreateSession(ctx,
		model.Session{ID: sessionID, UserID: u.ID, Type: model.InterviewTypeBasic},
		model.Turn{ID: uuid.New(), TurnNumber: 0, Question: "q", TimeLimit: 60},
	)
	require.Error(t, err)

	_, err = ir.GetSession(ctx, sessionID)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func ids(cls []model.CoverLetter) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(cls))
	for _, cl := range cls {
		out = append(out, cl.ID)
	}
	return out
}
