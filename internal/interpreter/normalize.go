package interpreter

import (
	"regexp"
	"strings"
	"time"

	"github.com/logbookhq/logbook/internal/db/models"
)

// staleDateRe matches ISO-like timestamps carrying a training-era year.
// The extraction model tends to hallucinate dates from its training
// distribution; every match is rewritten to the processing instant before
// the JSON is parsed.
var staleDateRe = regexp.MustCompile(`202[0-3]-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`)

// NormalizeDates rewrites stale timestamps in raw model output to the given
// instant, textually, at seconds precision
func NormalizeDates(text string, now time.Time) string {
	return staleDateRe.ReplaceAllString(text, now.Truncate(time.Second).Format(models.Layout))
}

// StripFences removes markdown code-block markers the model may wrap its
// JSON reply in
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
