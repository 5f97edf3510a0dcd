package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/verilens/verilens/internal/models"
)

// UnparsableOutputError reports that the model's raw text could not be coerced
// into the expected JSON shape. It is deliberately distinct from invocation
// errors: callers absorb this one (degraded observation, fallback verdict)
// while letting service failures propagate.
type UnparsableOutputError struct {
	Raw string
	Err error
}

func (e *UnparsableOutputError) Error() string {
	return fmt.Sprintf("unparsable model output: %v", e.Err)
}

func (e *UnparsableOutputError) Unwrap() error { return e.Err }

// StripFences removes markdown code fence wrapping from raw model text.
// Models instructed to emit bare JSON still wrap it in fences often enough
// that this has to be handled, not treated as an error. Rules, in order:
// a ```json fence wins, then any generic fence pair, else the text verbatim.
func StripFences(raw string) string {
	if idx := strings.Index(raw, "```json"); idx >= 0 {
		rest := raw[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			rest = rest[:end]
		}
		return strings.TrimSpace(rest)
	}
	if idx := strings.Index(raw, "```"); idx >= 0 {
		rest := raw[idx+len("```"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			rest = rest[:end]
		}
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(raw)
}

// ExtractObservation parses raw model text into an ObservationRecord.
func ExtractObservation(raw string) (*models.ObservationRecord, error) {
	payload := StripFences(raw)
	var obs models.ObservationRecord
	if err := json.Unmarshal([]byte(payload), &obs); err != nil {
		return nil, &UnparsableOutputError{Raw: raw, Err: err}
	}
	return &obs, nil
}

// ExtractVerdict parses raw model text into a VerdictDocument. The result is
// not yet normalized; optional fields may be missing.
func ExtractVerdict(raw string) (*models.VerdictDocument, error) {
	payload := StripFences(raw)
	var doc models.VerdictDocument
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, &UnparsableOutputError{Raw: raw, Err: err}
	}
	return &doc, nil
}
