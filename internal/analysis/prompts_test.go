package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildObservationPrompts(t *testing.T) {
	for _, fileType := range []string{"image", "video", "audio", "other"} {
		for _, language := range []string{LangEnglish, LangArabic, "fr", ""} {
			t.Run(fileType+"/"+language, func(t *testing.T) {
				sys, user := BuildObservationPrompts(fileType, "sample.bin", language)
				require.NotEmpty(t, sys)
				require.NotEmpty(t, user)
				assert.Contains(t, user, "sample.bin")
				// Observation pass must stay judgment-free.
				assert.Contains(t, user, "Do not judge authenticity")
			})
		}
	}
}

func TestBuildVerdictPromptsEmbedsObservations(t *testing.T) {
	observations := `{"observation": "portrait of a person", "anomalies": ["waxy skin"]}`

	sys, user := BuildVerdictPrompts("image", "portrait.png", LangEnglish, observations)
	assert.Contains(t, sys, observations, "serialized observations must appear verbatim")
	assert.Contains(t, sys, "Observations from Pass 1")
	assert.Contains(t, user, "portrait.png")
}

func TestBuildVerdictPromptsTruncatesObservations(t *testing.T) {
	long := strings.Repeat("x", 10000)

	sys, _ := BuildVerdictPrompts("image", "portrait.png", LangEnglish, long)
	assert.NotContains(t, sys, long)
	assert.Contains(t, sys, strings.Repeat("x", maxObservationChars))
}

func TestTruncateObservations(t *testing.T) {
	assert.Equal(t, "short", TruncateObservations("short"))

	long := strings.Repeat("a", maxObservationChars+500)
	got := TruncateObservations(long)
	assert.Len(t, got, maxObservationChars)
}

func TestLocaleInstruction(t *testing.T) {
	enSys, _ := BuildObservationPrompts("image", "a.png", LangEnglish)
	assert.Contains(t, enSys, "must be in English")

	arSys, arUser := BuildVerdictPrompts("image", "a.png", LangArabic, "{}")
	assert.Contains(t, arSys, "العربية")
	assert.Contains(t, arUser, "العربية", "verdict user prompt carries the RTL locale reminder")

	// Unsupported locales degrade to the default, not an error.
	frSys, _ := BuildObservationPrompts("image", "a.png", "fr")
	assert.Contains(t, frSys, "must be in English")
}
