package media

import (
	"errors"
	"fmt"
	"strings"
)

// File type sentinels returned by DetectType.
const (
	TypeImage   = "image"
	TypeVideo   = "video"
	TypeAudio   = "audio"
	TypeUnknown = "unknown"
)

// ErrUnsupportedType is returned by Classify when the filename extension does
// not belong to any recognized media family. Callers must reject the request
// before the analysis pipeline runs.
var ErrUnsupportedType = errors.New("unsupported media type")

var typeByExt = map[string]string{
	"jpg": TypeImage, "jpeg": TypeImage, "png": TypeImage, "webp": TypeImage,
	"gif": TypeImage, "bmp": TypeImage, "heic": TypeImage,

	"mp4": TypeVideo, "mov": TypeVideo, "avi": TypeVideo, "webm": TypeVideo,
	"mkv": TypeVideo, "flv": TypeVideo,

	"mp3": TypeAudio, "wav": TypeAudio, "ogg": TypeAudio, "aac": TypeAudio,
	"flac": TypeAudio, "m4a": TypeAudio, "wma": TypeAudio,
}

var mimeByExt = map[string]map[string]string{
	TypeImage: {
		"jpg": "image/jpeg", "jpeg": "image/jpeg", "png": "image/png",
		"webp": "image/webp", "gif": "image/gif",
	},
	TypeVideo: {
		"mp4": "video/mp4", "mov": "video/quicktime", "avi": "video/x-msvideo",
		"webm": "video/webm", "mkv": "video/x-matroska",
	},
	TypeAudio: {
		"mp3": "audio/mpeg", "wav": "audio/wav", "ogg": "audio/ogg",
		"aac": "audio/aac", "flac": "audio/flac", "m4a": "audio/mp4",
	},
}

// ext returns the lower-cased extension of name without the dot, or "" when
// the name carries no extension.
func ext(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}

// DetectType maps a filename to one of the file type sentinels.
func DetectType(filename string) string {
	if t, ok := typeByExt[ext(filename)]; ok {
		return t
	}
	return TypeUnknown
}

// MimeType resolves the MIME type for a (fileType, filename) pair. An
// unmatched combination falls back to the synthetic "{fileType}/{ext}" form,
// which Gemini accepts for the long tail of container formats.
func MimeType(fileType, filename string) string {
	e := ext(filename)
	if m, ok := mimeByExt[fileType][e]; ok {
		return m
	}
	return fmt.Sprintf("%s/%s", fileType, e)
}

// Classify resolves both the media family and the MIME type of a filename.
// It returns ErrUnsupportedType for anything outside the recognized tables.
func Classify(filename string) (fileType, mimeType string, err error) {
	fileType = DetectType(filename)
	if fileType == TypeUnknown {
		return TypeUnknown, "", fmt.Errorf("%w: %q", ErrUnsupportedType, filename)
	}
	return fileType, MimeType(fileType, filename), nil
}
