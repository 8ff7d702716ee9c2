package interpreter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderCommandPrompt(t *testing.T) {
	prompt, err := renderPrompt("command.tmpl", promptData{Now: "2026-08-31T10:00:00"})
	require.NoError(t, err)
	require.Contains(t, prompt, "2026-08-31T10:00:00")
	require.Contains(t, prompt, `"accion"`)
}

func TestRenderMeetingPrompt(t *testing.T) {
	prompt, err := renderPrompt("meeting.tmpl", promptData{
		Now:  "2026-08-31T10:00:00",
		Text: "the transcript body goes here",
	})
	require.NoError(t, err)
	require.Contains(t, prompt, "2026-08-31T10:00:00")
	require.Contains(t, prompt, "the transcript body goes here")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := renderPrompt("missing.tmpl", promptData{})
	require.Error(t, err)
}
