package notify

import (
	"context"
	"fmt"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"go.uber.org/zap"

	"github.com/verilens/verilens/internal/models"
)

const eventType = "com.verilens.analysis.completed"

// Notifier emits a CloudEvent to a configured HTTP sink whenever an analysis
// completes. Delivery is best-effort: a failed or absent sink never affects
// the request that produced the analysis.
type Notifier struct {
	client  cloudevents.Client
	sinkURL string
	log     *zap.Logger
}

// completedEvent is the event payload.
type completedEvent struct {
	AnalysisID string  `json:"analysis_id"`
	UserID     string  `json:"user_id"`
	FileType   string  `json:"file_type"`
	Verdict    string  `json:"verdict"`
	Confidence float64 `json:"confidence"`
	Language   string  `json:"language"`
}

// NewNotifier creates a Notifier targeting sinkURL. An empty sinkURL yields a
// disabled notifier whose AnalysisCompleted is a no-op.
func NewNotifier(sinkURL string, log *zap.Logger) (*Notifier, error) {
	n := &Notifier{sinkURL: sinkURL, log: log}
	if sinkURL == "" {
		return n, nil
	}

	client, err := cloudevents.NewClientHTTP()
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudevents client: %w", err)
	}
	n.client = client
	return n, nil
}

// AnalysisCompleted sends the completion event for record. Errors are logged,
// not returned; the analysis itself already succeeded.
func (n *Notifier) AnalysisCompleted(ctx context.Context, record *models.AnalysisRecord) {
	if n.client == nil {
		return
	}

	event := cloudevents.NewEvent()
	event.SetType(eventType)
	event.SetSource("/verilens/analysis")
	event.SetID(record.ID)
	event.SetTime(record.CreatedAt)
	if err := event.SetData(cloudevents.ApplicationJSON, completedEvent{
		AnalysisID: record.ID,
		UserID:     record.UserID,
		FileType:   record.FileType,
		Verdict:    record.Verdict,
		Confidence: record.Confidence,
		Language:   record.Language,
	}); err != nil {
		n.log.Warn("Failed to encode completion event", zap.Error(err))
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	sendCtx = cloudevents.ContextWithTarget(sendCtx, n.sinkURL)

	if result := n.client.Send(sendCtx, event); cloudevents.IsUndelivered(result) {
		n.log.Warn("Failed to deliver completion event",
			zap.String("analysisId", record.ID), zap.Error(result))
	}
}
