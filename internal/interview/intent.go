package interview

import (
	"strings"
	"unicode"
)

var endPhrases = []string{
	"i'm done", "we're done", "that's it", "i think we're finished",
	"let's end", "let's finish", "let's conclude", "i'd like to end",
	"can we finish", "i want to stop", "no more questions", "let's wrap up",
	"i think that's enough", "that concludes", "i'm ready to finish",
}

var endWords = map[string]bool{
	"done":     true,
	"finished": true,
	"end":      true,
	"finish":   true,
	"thanks":   true,
}

// shortReplyTokens is the longest reply still checked against endWords.
const shortReplyTokens = 3

// IsEndIntent reports whether a candidate reply reads as a request to stop
// the interview. It is a heuristic: short technical answers that contain an
// end word ("end to end") are false positives.
func IsEndIntent(reply string) bool {
	lower := strings.ToLower(strings.TrimSpace(reply))
	lower = strings.ReplaceAll(lower, "’", "'")
	if lower == "" {
		return false
	}

	for _, phrase := range endPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}

	tokens := strings.Fields(lower)
	if len(tokens) > shortReplyTokens {
		return false
	}
	if strings.Contains(lower, "thank you") {
		return true
	}
	for _, tok := range tokens {
		if endWords[strings.TrimFunc(tok, isTrimmable)] {
			return true
		}
	}
	return false
}

func isTrimmable(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
