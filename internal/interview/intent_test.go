package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEndIntent(t *testing.T) {
	tests := []struct {
		reply string
		want  bool
	}{
		{"I'm done, thanks!", true},
		{"I’m done here", true},
		{"Honestly I think that's enough for today", true},
		{"Can we finish now? I have another meeting.", true},
		{"LET'S WRAP UP", true},
		{"done", true},
		{"Thanks!", true},
		{"thank you", true},
		{"ok, finished.", true},
		{"I worked with distributed caching systems", false},
		{"Mostly Go and Postgres", false},
		{"I prefer Go", false},
		{"the weekend shift", false},
		{"endpoints and handlers", false},
		{"", false},
		{"   ", false},
		{"I finished the migration in two weeks and then moved on", false},
	}
	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEndIntent(tt.reply))
		})
	}
}

func TestIsEndIntent_ShortReplyFalsePositive(t *testing.T) {
	// Known limitation of the short-reply heuristic.
	assert.True(t, IsEndIntent("end to end"))
}
