package models

import (
	"encoding/json"
	"fmt"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn of the interview transcript.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// EvaluationRequest is the payload of POST /evaluate_answer. History carries
// the whole transcript so far; the server keeps nothing between calls.
type EvaluationRequest struct {
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	History  []Message `json:"history"`
}

// SummaryRequest is the payload of POST /generate_summary and
// POST /force_end_interview.
type SummaryRequest struct {
	History []Message `json:"history"`
	JobRole string    `json:"job_role"`
}

// ParsedEvaluation holds the fields recovered from a scoring completion.
// Score is already normalized to the "N/10" display form.
type ParsedEvaluation struct {
	Score        string `json:"score"`
	Feedback     string `json:"feedback"`
	NextQuestion string `json:"next_question"`
}

type QuestionsResponse struct {
	Questions string `json:"questions"`
}

type EvaluationResponse struct {
	Evaluation     string `json:"evaluation"`
	InterviewEnded bool   `json:"interview_ended"`
	QuestionsAsked *int   `json:"questions_asked,omitempty"`
}

type SummaryResponse struct {
	Evaluation     string `json:"evaluation"`
	InterviewEnded bool   `json:"interview_ended"`
	Summary        string `json:"summary"`
	TotalQuestions int    `json:"total_questions"`
	Message        string `json:"message"`
}

type OutcomeKind int

const (
	OutcomeEvaluation OutcomeKind = iota
	OutcomeSummary
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeEvaluation:
		return "evaluation"
	case OutcomeSummary:
		return "summary"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// EvaluationOutcome is the result of evaluating an answer. An answer that
// signals the candidate wants to stop produces a summary instead of a score,
// so exactly one of Evaluation or Summary is set, selected by Kind.
type EvaluationOutcome struct {
	Kind       OutcomeKind
	Evaluation *EvaluationResponse
	Summary    *SummaryResponse
}

func EvaluationResult(resp EvaluationResponse) EvaluationOutcome {
	return EvaluationOutcome{Kind: OutcomeEvaluation, Evaluation: &resp}
}

func SummaryResult(resp SummaryResponse) EvaluationOutcome {
	return EvaluationOutcome{Kind: OutcomeSummary, Summary: &resp}
}

// Ended reports whether the outcome concludes the interview.
func (o EvaluationOutcome) Ended() bool {
	return o.Kind == OutcomeSummary
}

// MarshalJSON writes the flat payload of the active variant.
func (o EvaluationOutcome) MarshalJSON() ([]byte, error) {
	switch o.Kind {
	case OutcomeEvaluation:
		if o.Evaluation == nil {
			return nil, fmt.Errorf("evaluation outcome without evaluation payload")
		}
		return json.Marshal(o.Evaluation)
	case OutcomeSummary:
		if o.Summary == nil {
			return nil, fmt.Errorf("summary outcome without summary payload")
		}
		return json.Marshal(o.Summary)
	default:
		return nil, fmt.Errorf("unknown outcome kind %s", o.Kind)
	}
}
