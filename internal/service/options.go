package service

import "github.com/dtroode/interview-coach/internal/model"

// Generation settings per use case.
var (
	questionOptions            = model.GenerateOptions{Temperature: 0.8, MaxTokens: 500}
	answerFeedbackOptions      = model.GenerateOptions{Temperature: 0.7, MaxTokens: 1000}
	comprehensiveOptions       = model.GenerateOptions{Temperature: 0.7, MaxTokens: 3000}
	coverLetterFeedbackOptions = model.GenerateOptions{Temperature: 0.7, MaxTokens: 2500}
	quickFeedbackOptions       = model.GenerateOptions{Temperature: 0.7, MaxTokens: 1500}
)
