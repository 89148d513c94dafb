package storage

import (
	"fmt"
	"strings"
	"testing"

	"github.com/kalambet/folio/internal/profile"
)

func TestCreateSlug(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Alex Rivera", "alex-rivera"},
		{"  Alex   Rivera  ", "alex-rivera"},
		{"Alex Rivera!!", "alex-rivera"},
		{"ALEX---rivera", "alex-rivera"},
		{"déjà vu", "dj-vu"},
		{"already-a-slug", "already-a-slug"},
	}
	for _, tc := range cases {
		if got := CreateSlug(tc.name); got != tc.want {
			t.Errorf("CreateSlug(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestCreateSlugIdempotent(t *testing.T) {
	inputs := []string{"Alex Rivera", "a b c", "x--y!!z", "plain"}
	for _, in := range inputs {
		once := CreateSlug(in)
		twice := CreateSlug(once)
		if once != twice {
			t.Errorf("CreateSlug not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestCreateSlugNeverEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "!!!", "日本語"} {
		got := CreateSlug(in)
		if got == "" {
			t.Errorf("CreateSlug(%q) returned empty slug", in)
		}
		if !strings.HasPrefix(got, "portfolio-") {
			t.Errorf("CreateSlug(%q) = %q, want portfolio-<ts> fallback", in, got)
		}
	}
}

func TestUniqueSlugSequence(t *testing.T) {
	s := openTestStore(t)

	var got []string
	for i := 0; i < 3; i++ {
		saved, err := s.SaveProfile(profile.Profile{Name: "Alex Rivera"})
		if err != nil {
			t.Fatalf("SaveProfile #%d: %v", i+1, err)
		}
		got = append(got, saved.Slug)
	}

	want := []string{"alex-rivera", "alex-rivera-2", "alex-rivera-3"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("save #%d slug = %q, want %q", i+1, got[i], want[i])
		}
	}
}

func TestUniqueSlugFillsGap(t *testing.T) {
	s := openTestStore(t)

	for i := 0; i < 3; i++ {
		if _, err := s.SaveProfile(profile.Profile{Name: "Alex"}); err != nil {
			t.Fatalf("SaveProfile: %v", err)
		}
	}
	if err := s.DeleteProfile("alex-2"); err != nil {
		t.Fatalf("DeleteProfile: %v", err)
	}

	saved, err := s.SaveProfile(profile.Profile{Name: "Alex"})
	if err != nil {
		t.Fatalf("SaveProfile after delete: %v", err)
	}
	if saved.Slug != "alex-2" {
		t.Errorf("slug after gap = %q, want alex-2", saved.Slug)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	s := openTestStore(t)

	in := profile.Profile{
		Name:    "Alex Rivera",
		Tagline: "Product designer who ships",
		Skills: []profile.Skill{
			{Name: "Figma", Level: 90, Description: "Design systems"},
		},
	}
	saved, err := s.SaveProfile(in)
	if err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	loaded, err := s.LoadProfile(saved.Slug)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if loaded == nil {
		t.Fatal("LoadProfile returned nil for a saved profile")
	}
	if loaded.Name != in.Name || loaded.Tagline != in.Tagline {
		t.Errorf("loaded profile = %q/%q, want %q/%q", loaded.Name, loaded.Tagline, in.Name, in.Tagline)
	}
	if len(loaded.Skills) != 1 || loaded.Skills[0].Name != "Figma" {
		t.Errorf("skills did not survive roundtrip: %+v", loaded.Skills)
	}
}

func TestSaveProfileNormalizes(t *testing.T) {
	s := openTestStore(t)

	saved, err := s.SaveProfile(profile.Profile{
		Name:   "Alex",
		Skills: []profile.Skill{{Name: "Go", Level: 150}, {Name: "Rust", Level: -5}},
	})
	if err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	loaded, err := s.LoadProfile(saved.Slug)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if loaded.Skills[0].Level != 100 {
		t.Errorf("level 150 stored as %d, want 100", loaded.Skills[0].Level)
	}
	if loaded.Skills[1].Level != 0 {
		t.Errorf("level -5 stored as %d, want 0", loaded.Skills[1].Level)
	}
	if loaded.Theme == "" || loaded.Template == "" {
		t.Errorf("theme/template defaults not applied: %q/%q", loaded.Theme, loaded.Template)
	}
}

func TestLoadProfileMissing(t *testing.T) {
	s := openTestStore(t)

	p, err := s.LoadProfile("nobody")
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil for missing profile, got %+v", p)
	}
}

func TestLoadProfileCorruptJSON(t *testing.T) {
	s := openTestStore(t)

	_, err := s.db.Exec(
		"INSERT INTO records (key, value, updated_at) VALUES (?, ?, datetime('now'))",
		profileKey("broken"), "{not json",
	)
	if err != nil {
		t.Fatalf("inserting corrupt record: %v", err)
	}

	p, err := s.LoadProfile("broken")
	if err != nil {
		t.Fatalf("LoadProfile should not error on corrupt JSON: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil for corrupt profile, got %+v", p)
	}
}

func TestCorruptIndexDegradesToEmpty(t *testing.T) {
	s := openTestStore(t)

	_, err := s.db.Exec(
		"INSERT INTO records (key, value, updated_at) VALUES (?, ?, datetime('now'))",
		indexKey, `{"not":"an array"}`,
	)
	if err != nil {
		t.Fatalf("inserting corrupt index: %v", err)
	}

	slugs, err := s.ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles: %v", err)
	}
	if len(slugs) != 0 {
		t.Errorf("corrupt index should read as empty, got %v", slugs)
	}

	// A save through the corrupt index must still succeed and repair it.
	saved, err := s.SaveProfile(profile.Profile{Name: "Alex"})
	if err != nil {
		t.Fatalf("SaveProfile over corrupt index: %v", err)
	}
	slugs, err = s.ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles after repair: %v", err)
	}
	if len(slugs) != 1 || slugs[0] != saved.Slug {
		t.Errorf("index after repair = %v, want [%s]", slugs, saved.Slug)
	}
}

func TestIndexDropsNonStringEntries(t *testing.T) {
	s := openTestStore(t)

	_, err := s.db.Exec(
		"INSERT INTO records (key, value, updated_at) VALUES (?, ?, datetime('now'))",
		indexKey, `["alex", 42, null, "rivera"]`,
	)
	if err != nil {
		t.Fatalf("inserting mixed index: %v", err)
	}

	slugs, err := s.ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles: %v", err)
	}
	want := []string{"alex", "rivera"}
	if len(slugs) != len(want) {
		t.Fatalf("slugs = %v, want %v", slugs, want)
	}
	for i := range want {
		if slugs[i] != want[i] {
			t.Errorf("slugs[%d] = %q, want %q", i, slugs[i], want[i])
		}
	}
}

func TestDeleteProfile(t *testing.T) {
	s := openTestStore(t)

	saved, err := s.SaveProfile(profile.Profile{Name: "Alex"})
	if err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	if err := s.DeleteProfile(saved.Slug); err != nil {
		t.Fatalf("DeleteProfile: %v", err)
	}

	p, err := s.LoadProfile(saved.Slug)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if p != nil {
		t.Error("profile still loadable after delete")
	}
	slugs, err := s.ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles: %v", err)
	}
	if len(slugs) != 0 {
		t.Errorf("index still contains %v after delete", slugs)
	}

	// Double delete is a no-op.
	if err := s.DeleteProfile(saved.Slug); err != nil {
		t.Errorf("second DeleteProfile errored: %v", err)
	}
}

func TestListProfilesOrder(t *testing.T) {
	s := openTestStore(t)

	names := []string{"Charlie", "Alpha", "Bravo"}
	for _, n := range names {
		if _, err := s.SaveProfile(profile.Profile{Name: n}); err != nil {
			t.Fatalf("SaveProfile(%s): %v", n, err)
		}
	}

	slugs, err := s.ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles: %v", err)
	}
	want := []string{"charlie", "alpha", "bravo"}
	if fmt.Sprint(slugs) != fmt.Sprint(want) {
		t.Errorf("slugs = %v, want insertion order %v", slugs, want)
	}
}
