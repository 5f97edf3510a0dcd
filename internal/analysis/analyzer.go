package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/verilens/verilens/internal/media"
	"github.com/verilens/verilens/internal/models"
)

// Invoker is the opaque model adapter: one independent generation call per
// invocation, no session state shared between passes. An error from Invoke
// means the analysis did not run and is terminal for the request.
type Invoker interface {
	Invoke(ctx context.Context, systemPrompt, userPrompt string, data []byte, mimeType string) (string, error)
}

// Analyzer runs the two-pass observe-then-judge protocol against an Invoker.
//
// Pass 1 produces a neutral ObservationRecord; pass 2 receives a bounded
// serialization of it inside the verdict system prompt and returns the
// structured verdict. Pass 1 parse failures degrade silently (the raw text
// becomes the observation), pass 2 parse failures yield the deterministic
// fallback document, and invoker errors at either pass propagate unchanged.
type Analyzer struct {
	invoker Invoker
	log     *zap.Logger
}

// NewAnalyzer wires an Analyzer to its model adapter.
func NewAnalyzer(invoker Invoker, log *zap.Logger) *Analyzer {
	return &Analyzer{invoker: invoker, log: log}
}

// Analyze runs both passes for file and returns a fully-shaped
// VerdictDocument. Every field of the result is present per the normalized
// schema; the only error condition is an invoker failure, in which case no
// document is returned. Unsupported locale codes degrade to English.
func (a *Analyzer) Analyze(ctx context.Context, file *media.File, language string) (*models.VerdictDocument, error) {
	language = normalizeLanguage(language)
	log := a.log.With(
		zap.String("fileName", file.Name),
		zap.String("fileType", file.FileType),
		zap.String("language", language),
	)

	obs, err := a.observe(ctx, file, language, log)
	if err != nil {
		return nil, err
	}

	return a.judge(ctx, file, language, obs, log)
}

// observe runs pass 1. It only fails on an invoker error; unparsable output
// degrades to a record carrying the raw text, since the observation is
// advisory context for pass 2 rather than the persisted result.
func (a *Analyzer) observe(ctx context.Context, file *media.File, language string, log *zap.Logger) (*models.ObservationRecord, error) {
	systemPrompt, userPrompt := BuildObservationPrompts(file.FileType, file.Name, language)

	raw, err := a.invoker.Invoke(ctx, systemPrompt, userPrompt, file.Data, file.MimeType)
	if err != nil {
		log.Error("Observation pass invocation failed", zap.Error(err))
		return nil, fmt.Errorf("observation pass failed: %w", err)
	}

	obs, err := ExtractObservation(raw)
	if err != nil {
		var parseErr *UnparsableOutputError
		if !errors.As(err, &parseErr) {
			return nil, err
		}
		log.Warn("Observation pass output unparsable, continuing with degraded record",
			zap.Error(parseErr.Err))
		return &models.ObservationRecord{Observation: raw, Anomalies: []string{}}, nil
	}
	if obs.Anomalies == nil {
		obs.Anomalies = []string{}
	}

	log.Info("Observation pass complete", zap.Int("anomalies", len(obs.Anomalies)))
	return obs, nil
}

// judge runs pass 2 and applies the extract/normalize/fallback policy.
func (a *Analyzer) judge(ctx context.Context, file *media.File, language string, obs *models.ObservationRecord, log *zap.Logger) (*models.VerdictDocument, error) {
	systemPrompt, userPrompt := BuildVerdictPrompts(file.FileType, file.Name, language, serializeObservation(obs))

	raw, err := a.invoker.Invoke(ctx, systemPrompt, userPrompt, file.Data, file.MimeType)
	if err != nil {
		log.Error("Verdict pass invocation failed", zap.Error(err))
		return nil, fmt.Errorf("verdict pass failed: %w", err)
	}

	doc, err := ExtractVerdict(raw)
	if err != nil {
		var parseErr *UnparsableOutputError
		if !errors.As(err, &parseErr) {
			return nil, err
		}
		log.Warn("Verdict pass output unparsable, returning fallback verdict",
			zap.Error(parseErr.Err))
		return FallbackVerdict(language, obs.Anomalies), nil
	}

	log.Info("Verdict pass complete",
		zap.String("verdict", doc.Verdict),
		zap.Float64("confidence", doc.Confidence),
	)
	return Normalize(doc, obs.Anomalies), nil
}

// serializeObservation renders the observation record as the JSON blob
// embedded into the verdict system prompt. A marshal failure cannot happen
// for this shape, but degrade to the free-text observation if it ever does.
func serializeObservation(obs *models.ObservationRecord) string {
	b, err := json.Marshal(obs)
	if err != nil {
		return obs.Observation
	}
	return string(b)
}
