package interview

import (
	"strings"

	"github.com/Kruthisver/AI-Interview-Coach/internal/models"
)

// CountQuestions approximates how many questions the interviewer has asked
// by counting '?' in assistant messages. Rhetorical question marks overcount.
func CountQuestions(history []models.Message) int {
	count := 0
	for _, msg := range history {
		if msg.Role == models.RoleAssistant {
			count += strings.Count(msg.Content, "?")
		}
	}
	return count
}

// RecentContext renders the last n messages as "Interviewer: ..." /
// "Candidate: ..." lines, truncating each message to limit runes.
func RecentContext(history []models.Message, n, limit int) string {
	if n > 0 && len(history) > n {
		history = history[len(history)-n:]
	}

	lines := make([]string, 0, len(history))
	for _, msg := range history {
		speaker := "Candidate"
		if msg.Role == models.RoleAssistant {
			speaker = "Interviewer"
		}
		lines = append(lines, speaker+": "+truncateRunes(msg.Content, limit))
	}
	return strings.Join(lines, "\n")
}

// Excerpt returns at most limit runes of s.
func Excerpt(s string, limit int) string {
	runes := []rune(s)
	if limit < 0 || len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if limit < 0 || len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
