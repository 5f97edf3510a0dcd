package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/verilens/verilens/internal/media"
	"github.com/verilens/verilens/internal/models"
)

const analysesCollection = "analyses"

// AnalysisStore persists analysis records, keyed by record ID. Records are
// written once and only ever mutated to attach a share ID.
type AnalysisStore struct {
	client *firestore.Client
}

// NewAnalysisStore creates an AnalysisStore over an existing Firestore client.
func NewAnalysisStore(client *firestore.Client) *AnalysisStore {
	return &AnalysisStore{client: client}
}

// Create inserts a new analysis record.
func (s *AnalysisStore) Create(ctx context.Context, record *models.AnalysisRecord) error {
	if _, err := s.client.Collection(analysesCollection).Doc(record.ID).Create(ctx, record); err != nil {
		return fmt.Errorf("failed to create analysis %s: %w", record.ID, err)
	}
	return nil
}

// ByID fetches one record and verifies ownership. A record owned by another
// user is reported as ErrNotFound rather than leaked.
func (s *AnalysisStore) ByID(ctx context.Context, id, userID string) (*models.AnalysisRecord, error) {
	snap, err := s.client.Collection(analysesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch analysis %s: %w", id, err)
	}

	var record models.AnalysisRecord
	if err := snap.DataTo(&record); err != nil {
		return nil, fmt.Errorf("failed to decode analysis %s: %w", id, err)
	}
	if record.UserID != userID {
		return nil, ErrNotFound
	}
	return &record, nil
}

// ByShareID fetches a record by its public share ID, without ownership checks.
func (s *AnalysisStore) ByShareID(ctx context.Context, shareID string) (*models.AnalysisRecord, error) {
	iter := s.client.Collection(analysesCollection).
		Where("shareId", "==", shareID).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis by share ID: %w", err)
	}

	var record models.AnalysisRecord
	if err := snap.DataTo(&record); err != nil {
		return nil, fmt.Errorf("failed to decode shared analysis: %w", err)
	}
	return &record, nil
}

// List returns the user's records newest-first plus the total count.
func (s *AnalysisStore) List(ctx context.Context, userID string, limit, skip int) ([]models.AnalysisRecord, int64, error) {
	iter := s.client.Collection(analysesCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Offset(skip).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	records := []models.AnalysisRecord{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to list analyses: %w", err)
		}
		var record models.AnalysisRecord
		if err := snap.DataTo(&record); err != nil {
			return nil, 0, fmt.Errorf("failed to decode analysis: %w", err)
		}
		records = append(records, record)
	}

	total, err := s.count(ctx, s.client.Collection(analysesCollection).Where("userId", "==", userID))
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// Stats aggregates per-verdict and per-media-type counts for one user. The
// aggregation queries are independent, so they run in parallel.
func (s *AnalysisStore) Stats(ctx context.Context, userID string) (*models.StatsResponse, error) {
	base := s.client.Collection(analysesCollection).Where("userId", "==", userID)

	stats := &models.StatsResponse{ByType: map[string]int64{}}
	var byType [3]int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { stats.Total, err = s.count(gctx, base); return })
	g.Go(func() (err error) { stats.Authentic, err = s.count(gctx, base.Where("verdict", "==", "authentic")); return })
	g.Go(func() (err error) { stats.Suspicious, err = s.count(gctx, base.Where("verdict", "==", "suspicious")); return })
	g.Go(func() (err error) { stats.LikelyFake, err = s.count(gctx, base.Where("verdict", "==", "likely_fake")); return })
	for i, fileType := range []string{media.TypeImage, media.TypeVideo, media.TypeAudio} {
		g.Go(func() (err error) { byType[i], err = s.count(gctx, base.Where("fileType", "==", fileType)); return })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.ByType[media.TypeImage] = byType[0]
	stats.ByType[media.TypeVideo] = byType[1]
	stats.ByType[media.TypeAudio] = byType[2]
	return stats, nil
}

// Delete removes one owned record and returns it, so the caller can also
// release the archived media object.
func (s *AnalysisStore) Delete(ctx context.Context, id, userID string) (*models.AnalysisRecord, error) {
	record, err := s.ByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.client.Collection(analysesCollection).Doc(id).Delete(ctx); err != nil {
		return nil, fmt.Errorf("failed to delete analysis %s: %w", id, err)
	}
	return record, nil
}

// AttachShareID stores the share ID on an owned record.
func (s *AnalysisStore) AttachShareID(ctx context.Context, id, userID, shareID string) error {
	if _, err := s.ByID(ctx, id, userID); err != nil {
		return err
	}
	_, err := s.client.Collection(analysesCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "shareId", Value: shareID},
	})
	if err != nil {
		return fmt.Errorf("failed to attach share ID to analysis %s: %w", id, err)
	}
	return nil
}

// count runs a Firestore aggregation count over the given query.
func (s *AnalysisStore) count(ctx context.Context, q firestore.Query) (int64, error) {
	results, err := q.NewAggregationQuery().WithCount("total").Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to run count aggregation: %w", err)
	}
	value, ok := results["total"].(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("unexpected aggregation result type %T", results["total"])
	}
	return value.GetIntegerValue(), nil
}
