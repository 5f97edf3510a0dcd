package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/verilens/verilens/internal/analysis"
	"github.com/verilens/verilens/internal/media"
	"github.com/verilens/verilens/internal/models"
	"github.com/verilens/verilens/internal/report"
	"github.com/verilens/verilens/internal/store"
)

func (s *Server) handleUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Missing file"})
		return
	}
	if fileHeader.Size > s.cfg.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"detail": "File too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Unreadable file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Unreadable file"})
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"detail": "File too large"})
		return
	}

	language := c.DefaultPostForm("language", analysis.LangEnglish)
	s.analyzeAndRespond(c, fileHeader.Filename, data, language, "")
}

func (s *Server) handleAnalyzeURL(c *gin.Context) {
	var req models.URLAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	filename, data, err := s.fetchRemote(c.Request.Context(), req.URL)
	if err != nil {
		s.log.Warn("Failed to fetch remote media", zap.String("url", req.URL), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("Could not fetch URL: %v", err)})
		return
	}

	language := req.Language
	if language == "" {
		language = analysis.LangEnglish
	}
	s.analyzeAndRespond(c, filename, data, language, req.URL)
}

// analyzeAndRespond is the shared funnel behind the upload and URL endpoints:
// classify, run the two-pass pipeline, archive the media, persist the record
// and emit the completion event. The temp media file is released on every
// exit path.
func (s *Server) analyzeAndRespond(c *gin.Context, filename string, data []byte, language, sourceURL string) {
	file, err := media.NewFile(filename, data)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedType) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Unsupported file type"})
			return
		}
		s.log.Error("Failed to stage media file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not process file"})
		return
	}
	defer file.Cleanup()

	verdict, err := s.analyzer.Analyze(c.Request.Context(), file, language)
	if err != nil {
		s.log.Error("Analysis failed", zap.String("fileName", filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": fmt.Sprintf("Analysis failed: %v", err)})
		return
	}

	record := &models.AnalysisRecord{
		ID:         uuid.NewString(),
		UserID:     currentUserID(c),
		FileType:   file.FileType,
		FileName:   file.Name,
		FileSize:   file.Size(),
		MimeType:   file.MimeType,
		Verdict:    verdict.Verdict,
		Confidence: verdict.Confidence,
		Details:    *verdict,
		Language:   language,
		SourceURL:  sourceURL,
		CreatedAt:  time.Now().UTC(),
	}

	objectName := s.mediaStore.ObjectName(record.ID, file.Name)
	if err := s.mediaStore.Save(c.Request.Context(), objectName, file.MimeType, file.Data); err != nil {
		s.log.Error("Failed to archive media", zap.String("analysisId", record.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not archive media"})
		return
	}
	record.MediaPath = objectName

	if err := s.analyses.Create(c.Request.Context(), record); err != nil {
		s.log.Error("Failed to persist analysis", zap.String("analysisId", record.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not store analysis"})
		return
	}

	s.notifier.AnalysisCompleted(context.WithoutCancel(c.Request.Context()), record)

	c.JSON(http.StatusOK, record)
}

// fetchRemote downloads a remote media file, bounded by the upload size cap,
// and derives a filename from the URL path.
func (s *Server) fetchRemote(ctx context.Context, rawURL string) (string, []byte, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", nil, fmt.Errorf("invalid URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", nil, fmt.Errorf("invalid URL: %w", err)
	}

	resp, err := s.fetcher.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return "", nil, fmt.Errorf("fetch read failed: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return "", nil, fmt.Errorf("remote file exceeds size limit")
	}

	filename := path.Base(parsed.Path)
	if filename == "." || filename == "/" || filename == "" {
		filename = "download"
	}
	return filename, data, nil
}

func (s *Server) handleHistory(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 || limit > 200 {
		limit = 50
	}
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}

	records, total, err := s.analyses.List(c.Request.Context(), currentUserID(c), limit, skip)
	if err != nil {
		s.log.Error("Failed to list analyses", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Lookup failed"})
		return
	}

	c.JSON(http.StatusOK, models.HistoryResponse{Analyses: records, Total: total})
}

func (s *Server) handleStats(c *gin.Context) {
	stats, err := s.analyses.Stats(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.log.Error("Failed to aggregate stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Lookup failed"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleCompare(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	records := []models.AnalysisRecord{}
	for _, id := range req.AnalysisIDs {
		record, err := s.analyses.ByID(c.Request.Context(), id, currentUserID(c))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			s.log.Error("Failed to fetch analysis for compare", zap.String("analysisId", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Lookup failed"})
			return
		}
		records = append(records, *record)
	}

	if len(records) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Need at least 2 analyses to compare"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"analyses": records})
}

func (s *Server) handleGetAnalysis(c *gin.Context) {
	record, err := s.analyses.ByID(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		s.respondAnalysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) handleDeleteAnalysis(c *gin.Context) {
	record, err := s.analyses.Delete(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		s.respondAnalysisError(c, err)
		return
	}

	if record.MediaPath != "" {
		if err := s.mediaStore.Delete(c.Request.Context(), record.MediaPath); err != nil {
			// The record is gone; an orphaned object is a cleanup concern,
			// not a request failure.
			s.log.Warn("Failed to delete archived media", zap.String("object", record.MediaPath), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Analysis deleted"})
}

func (s *Server) handleReport(c *gin.Context) {
	record, err := s.analyses.ByID(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		s.respondAnalysisError(c, err)
		return
	}

	pdf, err := report.Build(record)
	if err != nil {
		s.log.Error("Failed to render report", zap.String("analysisId", record.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Report generation failed"})
		return
	}

	shortID := record.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=analysis-report-%s.pdf", shortID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (s *Server) handleCreateShare(c *gin.Context) {
	record, err := s.analyses.ByID(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		s.respondAnalysisError(c, err)
		return
	}

	if record.ShareID != "" {
		c.JSON(http.StatusOK, models.ShareResponse{ShareID: record.ShareID})
		return
	}

	shareID := newShareID()
	if err := s.analyses.AttachShareID(c.Request.Context(), record.ID, currentUserID(c), shareID); err != nil {
		s.log.Error("Failed to attach share ID", zap.String("analysisId", record.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Share failed"})
		return
	}

	c.JSON(http.StatusOK, models.ShareResponse{ShareID: shareID})
}

func (s *Server) handleGetShared(c *gin.Context) {
	record, err := s.analyses.ByShareID(c.Request.Context(), c.Param("shareID"))
	if err != nil {
		s.respondAnalysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, record.SharedView())
}

func (s *Server) respondAnalysisError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Analysis not found"})
		return
	}
	s.log.Error("Analysis lookup failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "Lookup failed"})
}

// newShareID returns a short, URL-safe public identifier.
func newShareID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
