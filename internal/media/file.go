package media

import (
	"fmt"
	"os"
)

// File is the ephemeral in-flight representation of an upload. The bytes stay
// in memory for the model call; Path is a temp file backing the same content
// for collaborators that need a filesystem handle (probing, archival). The
// temp file must be released on every exit path via Cleanup.
type File struct {
	Name     string
	FileType string
	MimeType string
	Data     []byte
	Path     string
}

// NewFile classifies filename, spools data to a temp file and returns the
// assembled File. The caller owns the result and must call Cleanup.
func NewFile(filename string, data []byte) (*File, error) {
	fileType, mimeType, err := Classify(filename)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp("", "verilens-*."+ext(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to create temp media file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to spool media to temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to close temp media file: %w", err)
	}

	return &File{
		Name:     filename,
		FileType: fileType,
		MimeType: mimeType,
		Data:     data,
		Path:     tmp.Name(),
	}, nil
}

// Size returns the content length in bytes.
func (f *File) Size() int64 {
	return int64(len(f.Data))
}

// Cleanup removes the backing temp file. Safe to call more than once.
func (f *File) Cleanup() {
	if f.Path != "" {
		os.Remove(f.Path)
		f.Path = ""
	}
}
