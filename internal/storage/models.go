package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ExportRecord is one completed website export.
type ExportRecord struct {
	ID        string        `json:"id"`
	Slug      string        `json:"slug"`
	Mode      string        `json:"mode"` // "server" or "client"
	FileCount int           `json:"file_count"`
	ByteSize  int64         `json:"byte_size"`
	Duration  time.Duration `json:"-"`
	// DurationMS mirrors Duration for JSON responses.
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}
