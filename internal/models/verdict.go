package models

// ObservationRecord is the intermediate output of the observation pass. It is
// never persisted on its own; a bounded serialization of it is embedded into
// the verdict pass prompt, and its anomaly list is copied into the final
// document for traceability.
type ObservationRecord struct {
	Observation string   `json:"observation"`
	Anomalies   []string `json:"anomalies"`
	Texture     string   `json:"texture"`
	Geometry    string   `json:"geometry"`
	Lighting    string   `json:"lighting"`
	Detail      string   `json:"detail"`
}

// AnalysisStage is one named step of the model's self-reported methodology.
type AnalysisStage struct {
	Stage   string `json:"stage" firestore:"stage"`
	Status  string `json:"status" firestore:"status"`
	Finding string `json:"finding" firestore:"finding"`
}

// Indicator is a single detection signal reported by the model.
type Indicator struct {
	Name        string `json:"name" firestore:"name"`
	Description string `json:"description" firestore:"description"`
	Severity    string `json:"severity" firestore:"severity"`
	Category    string `json:"category,omitempty" firestore:"category,omitempty"`
}

// Annotation localizes a finding to one cell of a 3x3 grid over the media.
type Annotation struct {
	Region      string `json:"region" firestore:"region"`
	Label       string `json:"label" firestore:"label"`
	Description string `json:"description" firestore:"description"`
	Severity    string `json:"severity" firestore:"severity"`
}

// TechnicalDetails carries the quantitative portion of a verdict.
// ConsistencyScore is a pointer so that an absent value can be distinguished
// from a model-supplied zero; normalization guarantees it is non-nil.
type TechnicalDetails struct {
	ArtifactsFound    []string `json:"artifacts_found" firestore:"artifactsFound"`
	ConsistencyScore  *float64 `json:"consistency_score" firestore:"consistencyScore"`
	MetadataAnalysis  string   `json:"metadata_analysis" firestore:"metadataAnalysis"`
	FormatInfo        string   `json:"format_info" firestore:"formatInfo"`
	QualityAssessment string   `json:"quality_assessment" firestore:"qualityAssessment"`
	RawObservations   []string `json:"raw_observations" firestore:"rawObservations"`
}

// VerdictDocument is the durable result of one analysis. After normalization
// every field is present with its declared shape: sequences are non-nil,
// ConsistencyScore is non-nil, strings are at worst "N/A" or empty. Downstream
// consumers (persistence, PDF rendering, stats, the share page) rely on that
// and only ever branch on "is this sequence empty".
//
// Verdict, severity, status, category and region values come from the model
// and are treated as open strings; the expected verdict domain is
// "authentic", "suspicious" and "likely_fake".
type VerdictDocument struct {
	Verdict          string           `json:"verdict" firestore:"verdict"`
	Confidence       float64          `json:"confidence" firestore:"confidence"`
	Summary          string           `json:"summary" firestore:"summary"`
	AnalysisStages   []AnalysisStage  `json:"analysis_stages" firestore:"analysisStages"`
	Indicators       []Indicator      `json:"indicators" firestore:"indicators"`
	Annotations      []Annotation     `json:"annotations" firestore:"annotations"`
	TechnicalDetails TechnicalDetails `json:"technical_details" firestore:"technicalDetails"`
	ForensicNotes    string           `json:"forensic_notes" firestore:"forensicNotes"`
	Recommendation   string           `json:"recommendation" firestore:"recommendation"`
}
