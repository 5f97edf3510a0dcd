package media

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectType(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"portrait.png", TypeImage},
		{"photo.JPG", TypeImage},
		{"scan.heic", TypeImage},
		{"clip.mkv", TypeVideo},
		{"movie.mp4", TypeVideo},
		{"voice.mp3", TypeAudio},
		{"song.FLAC", TypeAudio},
		{"notes.txt", TypeUnknown},
		{"archive.zip", TypeUnknown},
		{"noextension", TypeUnknown},
		{"trailing.", TypeUnknown},
		{"", TypeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectType(tt.filename))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		filename string
		fileType string
		mimeType string
	}{
		{"portrait.png", TypeImage, "image/png"},
		{"selfie.jpeg", TypeImage, "image/jpeg"},
		{"clip.mkv", TypeVideo, "video/x-matroska"},
		{"talk.mov", TypeVideo, "video/quicktime"},
		{"voice.m4a", TypeAudio, "audio/mp4"},
		// No MIME table entry: synthetic fallback.
		{"scan.heic", TypeImage, "image/heic"},
		{"clip.flv", TypeVideo, "video/flv"},
		{"voice.wma", TypeAudio, "audio/wma"},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			fileType, mimeType, err := Classify(tt.filename)
			require.NoError(t, err)
			assert.Equal(t, tt.fileType, fileType)
			assert.Equal(t, tt.mimeType, mimeType)
		})
	}
}

func TestClassifyUnsupported(t *testing.T) {
	_, _, err := Classify("notes.txt")
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestNewFileCleanup(t *testing.T) {
	file, err := NewFile("portrait.png", []byte("not really a png"))
	require.NoError(t, err)

	assert.Equal(t, TypeImage, file.FileType)
	assert.Equal(t, "image/png", file.MimeType)
	assert.Equal(t, int64(16), file.Size())

	_, err = os.Stat(file.Path)
	require.NoError(t, err, "temp file should exist before cleanup")

	path := file.Path
	file.Cleanup()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "temp file should be removed by cleanup")

	// Second cleanup is a no-op.
	file.Cleanup()
}

func TestNewFileRejectsUnknown(t *testing.T) {
	_, err := NewFile("notes.txt", []byte("plain text"))
	require.ErrorIs(t, err, ErrUnsupportedType)
}
