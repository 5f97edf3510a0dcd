package analysis

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackVerdictShape(t *testing.T) {
	doc := FallbackVerdict(LangEnglish, nil)

	assert.Equal(t, "suspicious", doc.Verdict)
	assert.Equal(t, float64(50), doc.Confidence)
	assert.NotEmpty(t, doc.Summary)
	assert.NotEmpty(t, doc.Recommendation)

	require.Len(t, doc.AnalysisStages, 1)
	assert.Equal(t, "warning", doc.AnalysisStages[0].Status)

	require.Len(t, doc.Indicators, 1)
	assert.Equal(t, "Parse Error", doc.Indicators[0].Name)
	assert.Equal(t, "low", doc.Indicators[0].Severity)

	// Same normalized shape as a successful run.
	assert.NotNil(t, doc.Annotations)
	assert.NotNil(t, doc.TechnicalDetails.ArtifactsFound)
	assert.NotNil(t, doc.TechnicalDetails.RawObservations)
	require.NotNil(t, doc.TechnicalDetails.ConsistencyScore)
	assert.Equal(t, float64(50), *doc.TechnicalDetails.ConsistencyScore)
	assert.Equal(t, "N/A", doc.TechnicalDetails.MetadataAnalysis)
}

func TestFallbackVerdictDeterministic(t *testing.T) {
	assert.Equal(t, FallbackVerdict(LangEnglish, nil), FallbackVerdict(LangEnglish, nil))
}

func TestFallbackVerdictCarriesAnomalies(t *testing.T) {
	doc := FallbackVerdict(LangEnglish, []string{"metallic timbre"})
	assert.Equal(t, []string{"metallic timbre"}, doc.TechnicalDetails.RawObservations)
}

func TestFallbackVerdictLocalized(t *testing.T) {
	ar := FallbackVerdict(LangArabic, nil)
	assert.True(t, containsArabic(ar.Summary))
	assert.True(t, containsArabic(ar.Recommendation))

	en := FallbackVerdict(LangEnglish, nil)
	assert.False(t, containsArabic(en.Summary))

	// Unsupported locale falls back to the default strings.
	fr := FallbackVerdict("fr", nil)
	assert.Equal(t, en.Summary, fr.Summary)
}

func containsArabic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Arabic, r) {
			return true
		}
	}
	return false
}
