package interpreter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsMeetingTranscript(t *testing.T) {
	longFiller := strings.Repeat("We discussed the quarterly planning for the platform work. ", 10)

	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "short text is never a transcript",
			text: "create a project called Alpha",
			want: false,
		},
		{
			name: "short text with meeting keyword is still a command",
			text: "summarize the last meeting",
			want: false,
		},
		{
			name: "long text with agenda keyword",
			text: longFiller + " The agenda had three points.",
			want: true,
		},
		{
			name: "long text with time of day stamps",
			text: strings.Repeat("some discussion happened here without separators ", 10) + "at 10:30 we wrapped up",
			want: true,
		},
		{
			name: "long text with speaker markers",
			text: strings.Repeat("x", 301) + "\n[maria] we should ship this week",
			want: true,
		},
		{
			name: "long text with many lines",
			text: strings.Repeat("line without any separators\n", 15),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsMeetingTranscript(tt.text))
		})
	}
}

func TestIsMeetingTranscriptLengthBoundary(t *testing.T) {
	// Exactly at the threshold is still a command, one past it is not
	base := strings.Repeat("a", 292) + " agenda"
	require.Len(t, base, 299)
	require.False(t, IsMeetingTranscript(base))
	require.True(t, IsMeetingTranscript(base+"aa"))
}
