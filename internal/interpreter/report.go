package interpreter

import (
	"fmt"
	"strings"
)

// Report markers shared by both interpretation paths
const (
	okMark   = "✅"
	warnMark = "⚠️"
	infoMark = "ℹ️"
)

// Report accumulates the human-readable summary of the actions taken during
// one interpretation
type Report struct {
	sb strings.Builder
}

// NewReport creates an empty report
func NewReport() *Report {
	return &Report{}
}

// Linef appends one formatted line to the report
func (r *Report) Linef(format string, args ...interface{}) {
	fmt.Fprintf(&r.sb, format, args...)
	r.sb.WriteByte('\n')
}

// String returns the accumulated report text
func (r *Report) String() string {
	return strings.TrimRight(r.sb.String(), "\n")
}
