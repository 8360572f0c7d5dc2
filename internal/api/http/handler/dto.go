package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/interview-coach/internal/model"
)

// flexInt accepts a JSON number or a string holding one.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("age must be a number, got %q", s)
		}
		*n = flexInt(v)
		return nil
	}

	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("age must be a whole number")
	}
	*n = flexInt(v)
	return nil
}

type userResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       *string   `json:"email"`
	JobCategory string    `json:"jobCategory"`
	Experience  string    `json:"experience"`
	Age         int       `json:"age"`
	Gender      string    `json:"gender"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		JobCategory: u.JobCategory,
		Experience:  u.Experience,
		Age:         u.Age,
		Gender:      u.Gender,
		CreatedAt:   u.CreatedAt,
	}
}

type coverLetterResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	Feedback  *string   `json:"feedback"`
	CreatedAt time.Time `json:"createdAt"`
}

func toCoverLetterResponse(cl model.CoverLetter) coverLetterResponse {
	return coverLetterResponse{
		ID:        cl.ID,
		UserID:    cl.UserID,
		Content:   cl.Content,
		Status:    string(cl.Status),
		Feedback:  cl.Feedback,
		CreatedAt: cl.CreatedAt,
	}
}

func toCoverLetterResponses(list []model.CoverLetter) []coverLetterResponse {
	out := make([]coverLetterResponse, 0, len(list))
	for _, cl := range list {
		out = append(out, toCoverLetterResponse(cl))
	}
	return out
}

type sessionResponse struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"userId"`
	CoverLetterID *uuid.UUID `json:"coverLetterId"`
	Type          string     `json:"type"`
	Feedback      *string    `json:"feedback"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func toSessionResponse(s model.Session) sessionResponse {
	return sessionResponse{
		ID:            s.ID,
		UserID:        s.UserID,
		CoverLetterID: s.CoverLetterID,
		Type:          string(s.Type),
		Feedback:      s.Feedback,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func toSessionResponses(list []model.Session) []sessionResponse {
	out := make([]sessionResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSessionResponse(s))
	}
	return out
}

type turnResponse struct {
	ID         uuid.UUID `json:"id"`
	SessionID  uuid.UUID `json:"sessionId"`
	TurnNumber int       `json:"turnNumber"`
	Question   string    `json:"question"`
	Answer     *string   `json:"answer"`
	Feedback   *string   `json:"feedback"`
	TimeLimit  int       `json:"timeLimit"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toTurnResponse(t model.Turn) turnResponse {
	return turnResponse{
		ID:         t.ID,
		SessionID:  t.SessionID,
		TurnNumber: t.TurnNumber,
		Question:   t.Question,
		Answer:     t.Answer,
		Feedback:   t.Feedback,
		TimeLimit:  t.TimeLimit,
		CreatedAt:  t.CreatedAt,
	}
}

type stateResponse struct {
	Phase string `json:"phase"`
	Turn  int    `json:"turn,omitempty"`
}

type sessionDetailsResponse struct {
	sessionResponse
	User  userResponse   `json:"user"`
	Turns []turnResponse `json:"turns"`
	State stateResponse  `json:"state"`
}

func toSessionDetailsResponse(d model.SessionDetails) sessionDetailsResponse {
	turns := make([]turnResponse, 0, len(d.Turns))
	for _, t := range d.Turns {
		turns = append(turns, toTurnResponse(t))
	}
	return sessionDetailsResponse{
		sessionResponse: toSessionResponse(d.Session),
		User:            toUserResponse(d.User),
		Turns:           turns,
		State:           stateResponse{Phase: string(d.State.Phase), Turn: d.State.Turn},
	}
}
