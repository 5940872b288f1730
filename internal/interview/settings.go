// Package interview holds the conversational rules of a mock interview:
// parsing model completions, detecting when the candidate wants to stop and
// deriving turn counts from a transcript. Everything here is a pure function
// of its inputs.
package interview

import (
	"fmt"
	"time"
)

// Sampling is the generation configuration sent with every model call.
type Sampling struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
	Stop        []string
}

// Fallbacks is the bank of fixed text used whenever model output is missing
// or unusable.
type Fallbacks struct {
	// Parser defaults for absent fields.
	Score        string
	Feedback     string
	NextQuestion string

	// Used when the model returns nothing for a scoring prompt.
	UnavailableFeedback     string
	UnavailableNextQuestion string

	// Used when the evaluation flow itself fails.
	FailureFeedback     string
	FailureNextQuestion string

	Summary          string
	FailureClosing   string
	FailureSummary   string
	ConcludedMessage string
}

// Settings is the fixed configuration of the interview flow. It is passed by
// value and must be treated as read-only.
type Settings struct {
	ModelID  string
	Timeout  time.Duration
	Sampling Sampling

	DefaultJobRole string

	QuestionCount       int
	ResumeExcerptChars  int
	ContextMessages     int
	ContextMessageChars int

	Fallbacks Fallbacks
}

// DefaultSettings returns the production model, sampling and fallback values.
func DefaultSettings() Settings {
	return Settings{
		ModelID: "llama3",
		Timeout: 60 * time.Second,
		Sampling: Sampling{
			Temperature: 0.3,
			TopP:        0.8,
			MaxTokens:   500,
			Stop:        []string{"---", "**Next question:**", "Next question:", "STOP"},
		},
		DefaultJobRole:      "Software Developer",
		QuestionCount:       5,
		ResumeExcerptChars:  1500,
		ContextMessages:     10,
		ContextMessageChars: 200,
		Fallbacks: Fallbacks{
			Score:                   "7",
			Feedback:                "Thank you for your response. Let me ask you more about this topic.",
			NextQuestion:            "Can you tell me more about your experience with this technology?",
			UnavailableFeedback:     "Thank you for your response. I'd like to explore this topic further.",
			UnavailableNextQuestion: "Can you provide more specific details about the challenges you faced and how you overcame them?",
			FailureFeedback:         "Thank you for sharing your experience with me.",
			FailureNextQuestion:     "Let's move on to discuss another aspect of your background. What other projects are you proud of?",
			Summary: "Thank you for taking the time to interview with us today. " +
				"Based on our conversation, you've shown good technical knowledge and communication skills. " +
				"Our team will review your responses and be in touch regarding next steps. " +
				"Best of luck with your job search!",
			FailureClosing:   "Thank you for our interview today. Our team will be in touch regarding next steps. Have a great day!",
			FailureSummary:   "Interview completed successfully.",
			ConcludedMessage: "Interview concluded successfully.",
		},
	}
}

// FallbackQuestions returns the generic question set used when the model
// cannot produce a full list. The last question mentions the job role.
func (s Settings) FallbackQuestions(jobRole string) []string {
	return []string{
		"Tell me about your most challenging project and how you solved the main technical problems.",
		"Describe a specific technology from your resume and how you've applied it in a real project.",
		"Walk me through your approach when debugging a complex issue.",
		"Explain a technical concept from one of your projects in simple terms.",
		fmt.Sprintf("What aspects of this %s role align with your experience and interests?", jobRole),
	}
}
