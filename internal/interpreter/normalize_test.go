package interpreter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDates(t *testing.T) {
	now := time.Date(2026, 8, 31, 14, 45, 30, 0, time.UTC)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "stale year is replaced with the current moment",
			in:   `{"fechaInicio":"2023-01-15T10:00:00"}`,
			want: `{"fechaInicio":"2026-08-31T14:45:30"}`,
		},
		{
			name: "all legacy years are rewritten",
			in:   `2020-05-01T08:00:00 and 2021-06-02T09:30:00 and 2022-07-03T10:15:00`,
			want: `2026-08-31T14:45:30 and 2026-08-31T14:45:30 and 2026-08-31T14:45:30`,
		},
		{
			name: "current dates are left alone",
			in:   `{"fechaFin":"2026-09-15T18:00:00"}`,
			want: `{"fechaFin":"2026-09-15T18:00:00"}`,
		},
		{
			name: "recent past dates are left alone",
			in:   `{"fechaInicio":"2024-12-01T09:00:00"}`,
			want: `{"fechaInicio":"2024-12-01T09:00:00"}`,
		},
		{
			name: "bare dates without a time component are untouched",
			in:   `started on 2023-01-15`,
			want: `started on 2023-01-15`,
		},
		{
			name: "no dates at all",
			in:   `{"accion":"eliminar","tipo":"proyecto","nombre":"Alpha"}`,
			want: `{"accion":"eliminar","tipo":"proyecto","nombre":"Alpha"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NormalizeDates(tt.in, now))
		})
	}
}

func TestStripFences(t *testing.T) {
	body := `{"accion":"crear","tipo":"proyecto","nombre":"Alpha"}`

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n" + body + "\n```", body},
		{"bare fence", "```\n" + body + "\n```", body},
		{"fence without trailing newline", "```json\n" + body + "```", body},
		{"no fence", body, body},
		{"surrounding whitespace", "  \n" + body + "\n  ", body},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, StripFences(tt.in))
		})
	}
}
