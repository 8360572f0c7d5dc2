// Package prompt builds the text sent to the completion client.
//
// Every function is pure: the same input always yields the same prompt.
package prompt

import (
	"fmt"
	"strings"

	"github.com/dtroode/interview-coach/internal/model"
)

// Profile is the part of a user profile that personalises prompts.
type Profile struct {
	JobCategory string
	Experience  string
	Age         int
	Gender      string
}

// ProfileOf extracts the prompt profile from a user.
func ProfileOf(u model.User) Profile {
	return Profile{
		JobCategory: u.JobCategory,
		Experience:  u.Experience,
		Age:         u.Age,
		Gender:      u.Gender,
	}
}

// QA is one answered turn passed to the comprehensive prompt.
type QA struct {
	Question string
	Answer   string
	Feedback string
}

// CoverLetterFeedback asks for a scored review of an essay.
func CoverLetterFeedback(p Profile, content string) string {
	return fmt.Sprintf(`You are a hiring expert in the %[1]s field.

Analyse the applicant's self-introduction essay below and give professional, specific feedback.

Applicant:
- Job category: %[1]s
- Experience: %[2]s
- Age: %[3]d
- Gender: %[4]s

Essay:
%[5]s

Evaluate the following items:

1. **Structure and logic** (out of 5)
   - flow and organisation
   - logical development

2. **Job fit** (out of 5)
   - understanding of the role
   - relevant experience and skills

3. **Specificity and sincerity** (out of 5)
   - concrete examples
   - genuine voice

4. **Writing** (out of 5)
   - spelling and grammar
   - readability

For every item give:
- a score (X/5)
- two strengths
- two points to improve
- a concrete rewrite suggestion

Finish with an overall opinion and a total score.

Be kind but professional, and make every suggestion actionable.`,
		p.JobCategory, p.Experience, p.Age, p.Gender, content)
}

// BasicQuestion asks for one behavioural (BEI) question.
func BasicQuestion(p Profile, content string, previous []string) string {
	return fmt.Sprintf(`You are a veteran interviewer in the %[1]s field.

Applicant:
- Job category: %[1]s
- Experience: %[2]s

Essay:
%[3]s

%[4]sBased on the essay, write **exactly one** behavioural event interview (BEI) question that assesses:
- character and values
- collaboration and communication
- problem solving
- fit with the organisation

Guidelines:
1. Build on a concrete experience mentioned in the essay
2. Phrase it as "Tell me about a time when ..."
3. It must be answerable with the STAR method
4. It should reveal how the applicant actually behaves and thinks
5. Do not repeat the angle of any previous question

Output only the question, without any explanation.`,
		p.JobCategory, p.Experience, content, previousBlock(previous))
}

// TechnicalQuestion asks for one technical deep-dive question.
func TechnicalQuestion(p Profile, content string, previous []string) string {
	return fmt.Sprintf(`You are a senior technical interviewer in the %[1]s field.

Applicant:
- Job category: %[1]s
- Experience: %[2]s

Essay:
%[3]s

%[4]sBased on the projects and technologies in the essay, write **exactly one** in-depth technical question that assesses:
- deep understanding of the technology
- reasons behind technology choices and their trade-offs
- technical decisions made while solving problems
- hands-on implementation experience

Guidelines:
1. Build on a specific technology or project mentioned in the essay
2. Ask "why did you choose it" or "what went wrong and how did you fix it"
3. Test understanding and experience, not memorised facts
4. Match the difficulty to the applicant's experience
5. Cover a technical area no previous question touched

Output only the question, without any explanation.`,
		p.JobCategory, p.Experience, content, previousBlock(previous))
}

// Question selects the question template for the interview type.
func Question(t model.InterviewType, p Profile, content string, previous []string) string {
	if t == model.InterviewTypeTechnical {
		return TechnicalQuestion(p, content, previous)
	}
	return BasicQuestion(p, content, previous)
}

// AnswerFeedback asks for feedback on a single answer.
func AnswerFeedback(question, answer string, t model.InterviewType) string {
	criteria := "Evaluate against the STAR method (Situation, Task, Action, Result)."
	if t == model.InterviewTypeTechnical {
		criteria = "Evaluate technical depth and accuracy, and how concrete the hands-on experience is."
	}

	return fmt.Sprintf(`You are a professional interviewer. Evaluate the following %s interview question and answer.

Question: %s

Answer: %s

Give feedback on:

1. **What went well** (1-2 points)
   - which parts were good, specifically

2. **What to improve** (1-2 points)
   - how exactly to improve them

3. **Recommended answer structure**
   - a better way to answer this question

%s

Be kind but professional.`, typeLabel(t), question, answer, criteria)
}

// Comprehensive asks for an overall evaluation of the answered turns.
func Comprehensive(t model.InterviewType, qas []QA) string {
	parts := make([]string, 0, len(qas))
	for i, qa := range qas {
		parts = append(parts, fmt.Sprintf(`
[Question %[1]d]
%[2]s

[Answer %[1]d]
%[3]s

[Feedback %[1]d]
%[4]s
`, i+1, qa.Question, qa.Answer, qa.Feedback))
	}

	return fmt.Sprintf(`You are a professional interviewer. Below is the full transcript of a %s interview.

%s

Write a comprehensive evaluation of the whole interview that covers:

1. **Overall rating** (out of 5)
   - overall answer quality
   - consistency of attitude

2. **Strengths** (3 items)
   - skills or attitudes the applicant demonstrated well

3. **Areas to improve** (3 items)
   - with concrete ways to improve

4. **Preparation advice**
   - practical tips for the next interview

5. **Final opinion**
   - an overall assessment from a hiring perspective

Keep the tone professional and constructive.`, typeLabel(t), strings.Join(parts, "\n---\n"))
}

// QuickFeedback asks for a general review of an essay with no profile.
func QuickFeedback(content string) string {
	return fmt.Sprintf(`You are an experienced HR specialist and career consultant.
Analyse the following self-introduction essay and give specific, practical feedback.

Essay:
%s

Include:

1. **Overall impression** (under 100 characters)
2. **Strengths** (with concrete examples)
3. **Points to improve** (with concrete fixes)
4. **Recommended edits** (changes the applicant can apply right away)
5. **Score** (out of 100)

Keep the feedback constructive and encouraging.`, content)
}

func typeLabel(t model.InterviewType) string {
	if t == model.InterviewTypeTechnical {
		return "technical"
	}
	return "behavioural"
}

func previousBlock(previous []string) string {
	if len(previous) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Previous questions:\n")
	for i, q := range previous {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	b.WriteString("\n")
	return b.String()
}
