// Package cvfile inspects uploaded CV documents. Only PDF inspection is
// supported; other document types report size and MIME type only.
package cvfile

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/kalambet/folio/internal/export"
	"github.com/kalambet/folio/internal/profile"
)

// Info describes an inspected CV payload.
type Info struct {
	FileName string `json:"file_name"`
	MimeType string `json:"mime_type"`
	ByteSize int    `json:"byte_size"`
	// Pages is zero when the document is not a PDF.
	Pages int `json:"pages,omitempty"`
}

// Inspect reads a raw document payload and reports what it can about it.
func Inspect(data []byte, fileName, mimeType string) (Info, error) {
	info := Info{
		FileName: fileName,
		MimeType: mimeType,
		ByteSize: len(data),
	}
	if !strings.Contains(strings.ToLower(mimeType), "pdf") {
		return info, nil
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Info{}, fmt.Errorf("reading PDF: %w", err)
	}
	info.Pages = reader.NumPage()
	return info, nil
}

// InspectAsset decodes a profile's inline CV asset and inspects it. Assets
// that carry a URL instead of a data URL cannot be inspected locally.
func InspectAsset(asset *profile.FileAsset) (Info, error) {
	if asset == nil {
		return Info{}, fmt.Errorf("profile has no cv asset")
	}
	if asset.DataURL == "" {
		return Info{}, fmt.Errorf("cv asset is not inline (already exported?)")
	}
	parsed, ok := export.ParseDataURL(asset.DataURL)
	if !ok || !parsed.Base64 {
		return Info{}, fmt.Errorf("cv asset is not a base64 data URL")
	}
	data, err := base64.StdEncoding.DecodeString(parsed.Data)
	if err != nil {
		return Info{}, fmt.Errorf("decoding cv payload: %w", err)
	}
	mimeType := asset.MimeType
	if mimeType == "" {
		mimeType = parsed.MimeType
	}
	return Inspect(data, asset.FileName, mimeType)
}
