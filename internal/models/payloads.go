package models

// These structs define the JSON payloads exchanged between clients and the
// HTTP handlers.

// RegisterRequest is the input for POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the input for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// LanguageRequest is the input for PUT /api/auth/language.
type LanguageRequest struct {
	Language string `json:"language" binding:"required"`
}

// URLAnalysisRequest is the input for POST /api/analysis/url.
type URLAnalysisRequest struct {
	URL      string `json:"url" binding:"required,url"`
	Language string `json:"language"`
}

// CompareRequest is the input for POST /api/analysis/compare.
type CompareRequest struct {
	AnalysisIDs []string `json:"analysis_ids" binding:"required"`
}

// HistoryResponse is the output of GET /api/analysis/history.
type HistoryResponse struct {
	Analyses []AnalysisRecord `json:"analyses"`
	Total    int64            `json:"total"`
}

// StatsResponse is the output of GET /api/analysis/stats.
type StatsResponse struct {
	Total      int64            `json:"total"`
	Authentic  int64            `json:"authentic"`
	Suspicious int64            `json:"suspicious"`
	LikelyFake int64            `json:"likely_fake"`
	ByType     map[string]int64 `json:"by_type"`
}

// ShareResponse is the output of POST /api/analysis/:id/share.
type ShareResponse struct {
	ShareID string `json:"share_id"`
}
