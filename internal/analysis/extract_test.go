package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "json fence",
			raw:  "Here you go:\n```json\n{\"verdict\": \"authentic\"}\n```\nHope that helps.",
			want: `{"verdict": "authentic"}`,
		},
		{
			name: "generic fence",
			raw:  "```\n{\"verdict\": \"authentic\"}\n```",
			want: `{"verdict": "authentic"}`,
		},
		{
			name: "json fence wins over generic",
			raw:  "```json\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "unterminated fence takes rest of text",
			raw:  "```json\n{\"a\": 1}",
			want: `{"a": 1}`,
		},
		{
			name: "no fence returns text verbatim",
			raw:  "  {\"verdict\": \"authentic\"}  ",
			want: `{"verdict": "authentic"}`,
		},
		{
			name: "plain prose untouched",
			raw:  "I could not analyze this file.",
			want: "I could not analyze this file.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFences(tt.raw))
		})
	}
}

func TestExtractVerdict(t *testing.T) {
	raw := "```json\n{\"verdict\": \"authentic\", \"confidence\": 92, \"summary\": \"Looks genuine.\"}\n```"

	doc, err := ExtractVerdict(raw)
	require.NoError(t, err)
	assert.Equal(t, "authentic", doc.Verdict)
	assert.Equal(t, float64(92), doc.Confidence)
	assert.Equal(t, "Looks genuine.", doc.Summary)
}

func TestExtractVerdictUnparsable(t *testing.T) {
	_, err := ExtractVerdict("This image appears to be a photograph of a person.")
	require.Error(t, err)

	var parseErr *UnparsableOutputError
	require.True(t, errors.As(err, &parseErr))
	assert.Contains(t, parseErr.Raw, "photograph")
}

func TestExtractObservation(t *testing.T) {
	raw := `{"observation": "A portrait.", "anomalies": ["six fingers"], "texture": "smooth", "geometry": "", "lighting": "", "detail": ""}`

	obs, err := ExtractObservation(raw)
	require.NoError(t, err)
	assert.Equal(t, "A portrait.", obs.Observation)
	assert.Equal(t, []string{"six fingers"}, obs.Anomalies)
	assert.Equal(t, "smooth", obs.Texture)
}

func TestExtractObservationUnparsable(t *testing.T) {
	_, err := ExtractObservation("```\nnot json at all\n```")

	var parseErr *UnparsableOutputError
	require.True(t, errors.As(err, &parseErr))
}
