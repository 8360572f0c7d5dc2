package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/interview-coach/internal/model"
)

var profile = Profile{JobCategory: "Backend", Experience: "3-5 years", Age: 31, Gender: "male"}

func TestCoverLetterFeedback(t *testing.T) {
	t.Parallel()

	got := CoverLetterFeedback(profile, "my essay")

	assert.Contains(t, got, "Backend field")
	assert.Contains(t, got, "- Experience: 3-5 years")
	assert.Contains(t, got, "- Age: 31")
	assert.Contains(t, got, "- Gender: male")
	assert.Contains(t, got, "my essay")
	assert.Contains(t, got, "(X/5)")
}

func TestQuestion_SelectsTemplate(t *testing.T) {
	t.Parallel()

	basic := Question(model.InterviewTypeBasic, profile, "essay", nil)
	technical := Question(model.InterviewTypeTechnical, profile, "essay", nil)

	assert.Equal(t, BasicQuestion(profile, "essay", nil), basic)
	assert.Equal(t, TechnicalQuestion(profile, "essay", nil), technical)
	assert.Contains(t, basic, "behavioural event interview")
	assert.Contains(t, technical, "technical question")
	assert.NotEqual(t, basic, technical)
}

func TestQuestion_PreviousQuestionsBlock(t *testing.T) {
	t.Parallel()

	without := BasicQuestion(profile, "essay", nil)
	assert.NotContains(t, without, "Previous questions:")

	with := TechnicalQuestion(profile, "essay", []string{"Why Go?", "Why Postgres?"})
	assert.Contains(t, with, "Previous questions:\n1. Why Go?\n2. Why Postgres?\n")
	assert.Less(t, strings.Index(with, "Why Go?"), strings.Index(with, "Why Postgres?"))
}

func TestAnswerFeedback(t *testing.T) {
	t.Parallel()

	basic := AnswerFeedback("Q?", "A.", model.InterviewTypeBasic)
	assert.Contains(t, basic, "behavioural interview")
	assert.Contains(t, basic, "Question: Q?")
	assert.Contains(t, basic, "Answer: A.")
	assert.Contains(t, basic, "STAR")

	technical := AnswerFeedback("Q?", "A.", model.InterviewTypeTechnical)
	assert.Contains(t, technical, "technical interview")
	assert.Contains(t, technical, "technical depth")
	assert.NotContains(t, technical, "STAR")
}

func TestComprehensive_KeepsOrder(t *testing.T) {
	t.Parallel()

	got := Comprehensive(model.InterviewTypeBasic, []QA{
		{Question: "first q", Answer: "first a", Feedback: "first f"},
		{Question: "second q", Answer: "second a", Feedback: "second f"},
	})

	assert.Contains(t, got, "[Question 1]\nfirst q")
	assert.Contains(t, got, "[Answer 2]\nsecond a")
	assert.Contains(t, got, "[Feedback 2]\nsecond f")
	assert.Contains(t, got, "\n---\n")
	assert.Less(t, strings.Index(got, "first q"), strings.Index(got, "second q"))
}

func TestQuickFeedback(t *testing.T) {
	t.Parallel()

	got := QuickFeedback("hello essay")
	assert.Contains(t, got, "hello essay")
	assert.Contains(t, got, "out of 100")
}

func TestProfileOf(t *testing.T) {
	t.Parallel()

	u := model.User{Name: "Park", JobCategory: "Data", Experience: "new grad", Age: 24, Gender: "female"}
	assert.Equal(t, Profile{JobCategory: "Data", Experience: "new grad", Age: 24, Gender: "female"}, ProfileOf(u))
}
