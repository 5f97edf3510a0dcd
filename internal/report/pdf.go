// Package report renders the persisted verdict of one analysis as a PDF.
//
// The renderer consumes a normalized VerdictDocument: every field it touches
// is guaranteed present, so it only ever branches on whether a sequence is
// empty, never on whether a key exists. Text values are rendered as-is;
// bidirectional shaping for RTL locales is left to the PDF viewer.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/verilens/verilens/internal/models"
)

const (
	marginX      = 50
	lineSpacing  = 4
	maxLineChars = 92
)

// textBox is one positioned text primitive of the pdfcpu create schema.
type textBox struct {
	Value    string    `json:"value"`
	Position []float64 `json:"position"`
	Font     fontSpec  `json:"font"`
}

type fontSpec struct {
	Name string  `json:"name"`
	Size float64 `json:"size"`
}

// layout accumulates text boxes top-down across pages.
type layout struct {
	pages   map[string]map[string]map[string][]textBox
	page    int
	y       float64
	perPage float64
}

func newLayout() *layout {
	return &layout{
		pages:   map[string]map[string]map[string][]textBox{},
		page:    1,
		y:       50,
		perPage: 780,
	}
}

func (l *layout) add(text string, size float64, bold bool) {
	if l.y+size > l.perPage {
		l.page++
		l.y = 50
	}
	name := "Helvetica"
	if bold {
		name = "Helvetica-Bold"
	}
	key := fmt.Sprintf("%d", l.page)
	if l.pages[key] == nil {
		l.pages[key] = map[string]map[string][]textBox{"content": {"text": nil}}
	}
	l.pages[key]["content"]["text"] = append(l.pages[key]["content"]["text"], textBox{
		Value:    text,
		Position: []float64{marginX, l.y},
		Font:     fontSpec{Name: name, Size: size},
	})
	l.y += size + lineSpacing
}

func (l *layout) heading(text string) {
	l.y += 8
	l.add(text, 14, true)
}

func (l *layout) paragraph(text string) {
	for _, line := range wrap(text, maxLineChars) {
		l.add(line, 11, false)
	}
}

func (l *layout) spacer() { l.y += 6 }

// wrap splits text into lines of at most width characters on word boundaries.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	return append(lines, current)
}

// Build renders the analysis record as a PDF and returns the document bytes.
func Build(record *models.AnalysisRecord) ([]byte, error) {
	l := newLayout()
	details := record.Details

	l.add("Media Authenticity Report", 22, true)
	l.spacer()

	l.paragraph(fmt.Sprintf("File Name: %s", record.FileName))
	l.paragraph(fmt.Sprintf("File Type: %s", record.FileType))
	l.paragraph(fmt.Sprintf("Analysis Date: %s", record.CreatedAt.Format("2006-01-02 15:04:05 UTC")))
	l.paragraph(fmt.Sprintf("Verdict: %s", strings.ToUpper(details.Verdict)))
	l.paragraph(fmt.Sprintf("Confidence: %.0f%%", details.Confidence))

	l.heading("Summary")
	l.paragraph(details.Summary)

	if len(details.AnalysisStages) > 0 {
		l.heading("Analysis Stages")
		for _, stage := range details.AnalysisStages {
			l.paragraph(fmt.Sprintf("%s [%s]: %s", stage.Stage, strings.ToUpper(stage.Status), stage.Finding))
		}
	}

	if len(details.Indicators) > 0 {
		l.heading("Detection Indicators")
		for _, ind := range details.Indicators {
			l.add(fmt.Sprintf("%s [%s]", ind.Name, strings.ToUpper(ind.Severity)), 11, true)
			l.paragraph(ind.Description)
		}
	}

	if len(details.Annotations) > 0 {
		l.heading("Region Annotations")
		for _, ann := range details.Annotations {
			l.paragraph(fmt.Sprintf("%s (%s, %s): %s", ann.Label, ann.Region, ann.Severity, ann.Description))
		}
	}

	l.heading("Technical Details")
	td := details.TechnicalDetails
	l.paragraph(fmt.Sprintf("Consistency Score: %.0f", *td.ConsistencyScore))
	l.paragraph(fmt.Sprintf("Metadata Analysis: %s", td.MetadataAnalysis))
	l.paragraph(fmt.Sprintf("Format Info: %s", td.FormatInfo))
	l.paragraph(fmt.Sprintf("Quality Assessment: %s", td.QualityAssessment))
	if len(td.ArtifactsFound) > 0 {
		l.paragraph(fmt.Sprintf("Artifacts: %s", strings.Join(td.ArtifactsFound, "; ")))
	}

	if details.ForensicNotes != "" {
		l.heading("Forensic Notes")
		l.paragraph(details.ForensicNotes)
	}

	l.heading("Recommendation")
	l.paragraph(details.Recommendation)

	desc := map[string]interface{}{
		"paper":  "A4",
		"origin": "upperLeft",
		"pages":  l.pages,
	}
	descJSON, err := json.Marshal(desc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report description: %w", err)
	}

	var out bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(descJSON), &out, nil); err != nil {
		return nil, fmt.Errorf("failed to render report PDF: %w", err)
	}
	return out.Bytes(), nil
}
