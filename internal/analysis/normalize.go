package analysis

import "github.com/verilens/verilens/internal/models"

const defaultConsistencyScore = 50

// Normalize fills in every optional VerdictDocument field that the model left
// out, so downstream consumers never have to guard against absence. It is
// pure default-filling: enum-like strings coming from the model are passed
// through verbatim. anomalies is the observation-pass anomaly list, copied
// into technical_details.raw_observations for traceability. Idempotent.
func Normalize(doc *models.VerdictDocument, anomalies []string) *models.VerdictDocument {
	if doc.AnalysisStages == nil {
		doc.AnalysisStages = []models.AnalysisStage{}
	}
	if doc.Indicators == nil {
		doc.Indicators = []models.Indicator{}
	}
	if doc.Annotations == nil {
		doc.Annotations = []models.Annotation{}
	}

	td := &doc.TechnicalDetails
	if td.ArtifactsFound == nil {
		td.ArtifactsFound = []string{}
	}
	if td.ConsistencyScore == nil {
		score := float64(defaultConsistencyScore)
		td.ConsistencyScore = &score
	}
	if td.MetadataAnalysis == "" {
		td.MetadataAnalysis = "N/A"
	}
	if td.FormatInfo == "" {
		td.FormatInfo = "N/A"
	}
	if td.QualityAssessment == "" {
		td.QualityAssessment = "N/A"
	}

	td.RawObservations = anomalies
	if td.RawObservations == nil {
		td.RawObservations = []string{}
	}

	return doc
}
