package analysis

import "github.com/verilens/verilens/internal/models"

// Pre-localized strings for the fallback verdict. These must not depend on
// the model: when we are here, the model's output was already unusable.
var fallbackStrings = map[string]struct {
	summary        string
	stageFinding   string
	indicatorDesc  string
	recommendation string
}{
	LangEnglish: {
		summary:        "Analysis completed but results could not be fully parsed. Manual review recommended.",
		stageFinding:   "The model response did not match the expected structure.",
		indicatorDesc:  "AI response format issue",
		recommendation: "Re-upload the file for another analysis attempt.",
	},
	LangArabic: {
		summary:        "اكتمل التحليل لكن تعذر تفسير النتائج بالكامل. يُنصح بمراجعة يدوية.",
		stageFinding:   "لم تتطابق استجابة النموذج مع البنية المتوقعة.",
		indicatorDesc:  "مشكلة في تنسيق استجابة الذكاء الاصطناعي",
		recommendation: "أعد رفع الملف لمحاولة تحليل أخرى.",
	},
}

// FallbackVerdict builds the deterministic document returned when the verdict
// pass output cannot be parsed. It is shape-identical to a normally
// normalized document so persistence, PDF rendering and stats treat it
// uniformly. anomalies is the observation-pass anomaly list, if any.
func FallbackVerdict(language string, anomalies []string) *models.VerdictDocument {
	strs := fallbackStrings[normalizeLanguage(language)]

	doc := &models.VerdictDocument{
		Verdict:    "suspicious",
		Confidence: 50,
		Summary:    strs.summary,
		AnalysisStages: []models.AnalysisStage{
			{Stage: "Response Parsing", Status: "warning", Finding: strs.stageFinding},
		},
		Indicators: []models.Indicator{
			{Name: "Parse Error", Description: strs.indicatorDesc, Severity: "low", Category: "system"},
		},
		Recommendation: strs.recommendation,
	}
	return Normalize(doc, anomalies)
}
