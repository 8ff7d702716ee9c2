package interpreter

import (
	"embed"
	"strings"
	"text/template"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

var promptTemplates = template.Must(template.ParseFS(promptFS, "prompts/*.tmpl"))

// System prompts sent alongside the rendered instruction templates
const (
	commandSystemPrompt = "Use this current date everywhere: %s. Reply only with JSON following the stated rules."
	meetingSystemPrompt = "You are an expert meeting analyst. Reply only with valid JSON."
)

type promptData struct {
	// Now is the processing instant in wire format, injected so the model
	// does not fall back to training-era dates
	Now string
	// Text is the user's message or transcript
	Text string
}

func renderPrompt(name string, data promptData) (string, error) {
	var sb strings.Builder
	if err := promptTemplates.ExecuteTemplate(&sb, name, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
