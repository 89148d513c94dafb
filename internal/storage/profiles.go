package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/kalambet/folio/internal/profile"
)

const (
	profileKeyPrefix = "portfolio_profile_"
	indexKey         = "portfolio_profile_index"
)

var (
	slugStripPattern  = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpacePattern  = regexp.MustCompile(`\s+`)
	slugHyphenPattern = regexp.MustCompile(`-+`)
)

func profileKey(slug string) string {
	return profileKeyPrefix + slug
}

// CreateSlug derives a URL-safe slug from a display name: lowercase, trim,
// strip everything outside [a-z0-9\s-], collapse whitespace runs to single
// hyphens, collapse repeated hyphens. An empty result falls back to a
// time-seeded placeholder so a slug is never empty. Idempotent:
// CreateSlug(CreateSlug(x)) == CreateSlug(x).
func CreateSlug(name string) string {
	normalized := strings.TrimSpace(strings.ToLower(name))
	normalized = slugStripPattern.ReplaceAllString(normalized, "")
	normalized = slugSpacePattern.ReplaceAllString(normalized, "-")
	normalized = slugHyphenPattern.ReplaceAllString(normalized, "-")
	if normalized == "" {
		return fmt.Sprintf("portfolio-%d", time.Now().UnixMilli())
	}
	return normalized
}

// uniqueSlug returns the base slug unchanged when it is absent from the
// index, otherwise the first unused -2, -3, ... candidate.
func uniqueSlug(requested string, index []string) string {
	base := CreateSlug(requested)
	taken := make(map[string]bool, len(index))
	for _, s := range index {
		taken[s] = true
	}
	if !taken[base] {
		return base
	}
	for counter := 2; ; counter++ {
		candidate := fmt.Sprintf("%s-%d", base, counter)
		if !taken[candidate] {
			return candidate
		}
	}
}

// readIndexTx reads the slug index inside a transaction. A missing or
// corrupt index degrades to empty; non-string entries are dropped.
func readIndexTx(tx *sql.Tx) []string {
	var value string
	err := tx.QueryRow("SELECT value FROM records WHERE key = ?", indexKey).Scan(&value)
	if err != nil {
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(value), &raw); err != nil {
		return nil
	}
	slugs := make([]string, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			slugs = append(slugs, s)
		}
	}
	return slugs
}

// writeIndexTx persists the slug index as a de-duplicated array, preserving
// first-seen order.
func writeIndexTx(tx *sql.Tx, slugs []string) error {
	seen := make(map[string]bool, len(slugs))
	deduped := make([]string, 0, len(slugs))
	for _, s := range slugs {
		if seen[s] {
			continue
		}
		seen[s] = true
		deduped = append(deduped, s)
	}
	data, err := json.Marshal(deduped)
	if err != nil {
		return fmt.Errorf("marshalling index: %w", err)
	}
	return setRecordTx(tx, indexKey, string(data))
}

// SaveProfile assigns a unique slug (from the profile's own slug, falling
// back to its name), normalizes the profile, and writes both the record and
// the index entry in a single transaction. The stamped profile is returned
// so the caller can navigate to it immediately.
func (s *Store) SaveProfile(p profile.Profile) (profile.Profile, error) {
	requested := p.Slug
	if requested == "" {
		requested = p.Name
	}

	tx, err := s.db.Begin()
	if err != nil {
		return profile.Profile{}, fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback()

	index := readIndexTx(tx)
	p.Slug = uniqueSlug(requested, index)
	p.Normalize()

	data, err := json.Marshal(p)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("marshalling profile: %w", err)
	}
	if err := setRecordTx(tx, profileKey(p.Slug), string(data)); err != nil {
		return profile.Profile{}, fmt.Errorf("writing profile record: %w", err)
	}
	if err := writeIndexTx(tx, append(index, p.Slug)); err != nil {
		return profile.Profile{}, fmt.Errorf("writing index: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return profile.Profile{}, fmt.Errorf("committing save: %w", err)
	}
	return p, nil
}

// LoadProfile returns the stored profile for slug, or nil when the record is
// missing or holds JSON that no longer parses. Corrupt data is within the
// application's trust boundary but can be hand-edited, so it degrades to
// absence instead of an error.
func (s *Store) LoadProfile(slug string) (*profile.Profile, error) {
	value, err := s.getRecord(profileKey(slug))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading profile record: %w", err)
	}
	var p profile.Profile
	if err := json.Unmarshal([]byte(value), &p); err != nil {
		return nil, nil
	}
	return &p, nil
}

// DeleteProfile removes the record and prunes the slug from the index.
// Deleting a slug that is already gone is a no-op.
func (s *Store) DeleteProfile(slug string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning delete transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteRecordTx(tx, profileKey(slug)); err != nil {
		return fmt.Errorf("deleting profile record: %w", err)
	}

	index := readIndexTx(tx)
	pruned := make([]string, 0, len(index))
	for _, s := range index {
		if s != slug {
			pruned = append(pruned, s)
		}
	}
	if err := writeIndexTx(tx, pruned); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	return tx.Commit()
}

// ListProfiles returns the slug index as-is. Entries are not validated
// against backing records, so a caller can observe a stale slug if a record
// was removed through another path.
func (s *Store) ListProfiles() ([]string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning list transaction: %w", err)
	}
	defer tx.Rollback()
	slugs := readIndexTx(tx)
	if slugs == nil {
		slugs = []string{}
	}
	return slugs, tx.Commit()
}
