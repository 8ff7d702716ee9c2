// Package interpreter implements the command interpretation engine: it
// classifies free-form input, turns the language model's JSON replies into
// validated domain mutations, and keeps the derived project durations
// consistent while doing so.
package interpreter

import (
	"regexp"
	"strings"
)

// Classification thresholds for meeting transcripts
const (
	// transcriptMinLength is the minimum text length for the transcript path
	transcriptMinLength = 300
	// transcriptMinLines is the line count beyond which text reads like a transcript
	transcriptMinLines = 10
)

var (
	timeOfDayRe = regexp.MustCompile(`\d{1,2}:\d{2}\s*(?:AM|PM|am|pm)?`)
	speakerRe   = regexp.MustCompile(`\[[^\]]*\]|\w+\s*:`)

	transcriptKeywords = []string{"meeting", "reunión", "participante", "agenda"}
)

// IsMeetingTranscript reports whether the text reads like a meeting
// transcript rather than a single command: long enough, and carrying at
// least one transcript trait (time-of-day stamps, speaker markers, many
// lines, or meeting vocabulary). Pure function of the string.
func IsMeetingTranscript(text string) bool {
	if len(text) <= transcriptMinLength {
		return false
	}
	if timeOfDayRe.MatchString(text) || speakerRe.MatchString(text) {
		return true
	}
	if len(strings.Split(text, "\n")) > transcriptMinLines {
		return true
	}
	lower := strings.ToLower(text)
	for _, keyword := range transcriptKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
