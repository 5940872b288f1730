package interview

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Kruthisver/AI-Interview-Coach/internal/models"
)

var (
	questionLinePattern = regexp.MustCompile(`(?m)^[ \t]*\d+[.)][ \t]*(.*)`)
	scorePattern        = regexp.MustCompile(`(?i)SCORE:\s*(\d+)`)
	feedbackPattern     = regexp.MustCompile(`(?is)FEEDBACK:\s*(.*?)NEXT_QUESTION:`)
	nextQuestionPattern = regexp.MustCompile(`(?is)NEXT_QUESTION:\s*(.*)`)
	newlineRunPattern   = regexp.MustCompile(`[\r\n]+`)
)

// ParseQuestions returns the text of every enumerated line ("1. ..." or
// "1) ...") in order, skipping items that are empty after trimming.
func ParseQuestions(text string) []string {
	var questions []string
	for _, m := range questionLinePattern.FindAllStringSubmatch(text, -1) {
		q := strings.TrimSpace(m[1])
		if q != "" {
			questions = append(questions, q)
		}
	}
	return questions
}

// NumberQuestions renders questions as "1. q" lines joined by newlines.
func NumberQuestions(questions []string) string {
	lines := make([]string, len(questions))
	for i, q := range questions {
		lines[i] = fmt.Sprintf("%d. %s", i+1, q)
	}
	return strings.Join(lines, "\n")
}

// CollapseNewlines replaces every run of line breaks with a single space.
func CollapseNewlines(s string) string {
	return strings.TrimSpace(newlineRunPattern.ReplaceAllString(s, " "))
}

// ParseEvaluation extracts SCORE, FEEDBACK and NEXT_QUESTION blocks from a
// scoring completion. Each field falls back to its default independently.
// Scores outside 1..10 are clamped.
func ParseEvaluation(text string, fb Fallbacks) models.ParsedEvaluation {
	score := fb.Score
	if m := scorePattern.FindStringSubmatch(text); m != nil {
		score = clampScore(m[1])
	}

	feedback := fb.Feedback
	if m := feedbackPattern.FindStringSubmatch(text); m != nil {
		if f := CollapseNewlines(m[1]); f != "" {
			feedback = f
		}
	}

	next := fb.NextQuestion
	if m := nextQuestionPattern.FindStringSubmatch(text); m != nil {
		if q := CollapseNewlines(m[1]); q != "" {
			next = q
		}
	}

	return models.ParsedEvaluation{
		Score:        NormalizeScore(score, fb.Score),
		Feedback:     feedback,
		NextQuestion: next,
	}
}

func clampScore(digits string) string {
	n, err := strconv.Atoi(digits)
	if err != nil {
		// Only digits reach here, so the value overflowed int.
		return "10"
	}
	switch {
	case n < 1:
		n = 1
	case n > 10:
		n = 10
	}
	return strconv.Itoa(n)
}

// NormalizeScore coerces a raw score token into "N/10" form. Anything that is
// neither already "/10"-suffixed nor purely numeric becomes fallback/10.
func NormalizeScore(raw, fallback string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasSuffix(raw, "/10") {
		return raw
	}
	if isDigits(raw) {
		return raw + "/10"
	}
	return strings.TrimSpace(fallback) + "/10"
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatEvaluation renders the display text shown to the candidate.
func FormatEvaluation(p models.ParsedEvaluation, fb Fallbacks) string {
	return fmt.Sprintf("**Score:** %s\n\n**Feedback:** %s\n\n**Next Question:** %s",
		NormalizeScore(p.Score, fb.Score),
		strings.TrimSpace(p.Feedback),
		strings.TrimSpace(p.NextQuestion),
	)
}
