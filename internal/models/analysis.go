package models

import "time"

// User is the account record stored in Firestore. The document ID equals ID.
type User struct {
	ID           string    `json:"id" firestore:"id"`
	Name         string    `json:"name" firestore:"name"`
	Email        string    `json:"email" firestore:"email"`
	PasswordHash string    `json:"-" firestore:"passwordHash"`
	Language     string    `json:"language" firestore:"language"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
}

// AnalysisRecord wraps a VerdictDocument with identity, ownership and media
// metadata. It is written once per successful analysis; the only mutation
// afterwards is attaching a share ID. Deleting it also removes the archived
// media object.
type AnalysisRecord struct {
	ID         string          `json:"id" firestore:"id"`
	UserID     string          `json:"user_id,omitempty" firestore:"userId"`
	FileType   string          `json:"file_type" firestore:"fileType"`
	FileName   string          `json:"file_name" firestore:"fileName"`
	FileSize   int64           `json:"file_size" firestore:"fileSize"`
	MimeType   string          `json:"mime_type,omitempty" firestore:"mimeType"`
	Verdict    string          `json:"verdict" firestore:"verdict"`
	Confidence float64         `json:"confidence" firestore:"confidence"`
	Details    VerdictDocument `json:"details" firestore:"details"`
	Language   string          `json:"language" firestore:"language"`
	SourceURL  string          `json:"source_url,omitempty" firestore:"sourceUrl,omitempty"`
	MediaPath  string          `json:"-" firestore:"mediaPath,omitempty"`
	ShareID    string          `json:"share_id,omitempty" firestore:"shareId,omitempty"`
	CreatedAt  time.Time       `json:"created_at" firestore:"createdAt"`
}

// SharedView returns a copy of the record safe for unauthenticated access:
// the owner and the internal media path are stripped.
func (a AnalysisRecord) SharedView() AnalysisRecord {
	shared := a
	shared.UserID = ""
	shared.MediaPath = ""
	return shared
}
