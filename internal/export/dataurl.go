package export

import (
	"regexp"
	"strings"
)

var dataURLPattern = regexp.MustCompile(`(?s)^data:([^;,]+)?(;base64)?,(.*)$`)

// DataURL is a parsed data: URL.
type DataURL struct {
	MimeType string
	Base64   bool
	Data     string
}

// ParseDataURL splits a data: URL into its MIME type, encoding flag, and raw
// payload. The second return value is false when the string is not a data URL.
func ParseDataURL(s string) (DataURL, bool) {
	m := dataURLPattern.FindStringSubmatch(s)
	if m == nil {
		return DataURL{}, false
	}
	mimeType := m[1]
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return DataURL{
		MimeType: mimeType,
		Base64:   m[2] != "",
		Data:     m[3],
	}, true
}

// ExtForMime derives a file extension from a MIME type. Unknown types map
// to "bin".
func ExtForMime(mimeType string) string {
	normalized := strings.ToLower(mimeType)
	switch {
	case strings.Contains(normalized, "pdf"):
		return "pdf"
	case strings.Contains(normalized, "msword"):
		return "doc"
	case strings.Contains(normalized, "wordprocessingml"):
		return "docx"
	case strings.Contains(normalized, "png"):
		return "png"
	case strings.Contains(normalized, "jpeg"), strings.Contains(normalized, "jpg"):
		return "jpg"
	case strings.Contains(normalized, "webp"):
		return "webp"
	case strings.Contains(normalized, "gif"):
		return "gif"
	case strings.Contains(normalized, "svg"):
		return "svg"
	default:
		return "bin"
	}
}

var (
	unsafeNamePattern = regexp.MustCompile(`[/\\?%*:|"<>]`)
	spaceRunPattern   = regexp.MustCompile(`\s+`)
)

// SanitizeFileName makes a filename hint safe for the bundle's files/
// directory: path separators and shell-hostile characters become
// underscores, whitespace runs collapse to a single underscore, and the
// result is capped at 120 characters.
func SanitizeFileName(name string) string {
	if name == "" {
		name = "file"
	}
	name = unsafeNamePattern.ReplaceAllString(name, "_")
	name = spaceRunPattern.ReplaceAllString(name, "_")
	runes := []rune(name)
	if len(runes) > 120 {
		runes = runes[:120]
	}
	return string(runes)
}
