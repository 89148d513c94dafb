package profile

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Normalize applies the defaulting and clamping rules a profile goes through
// at save time: skill levels are clamped to 0-100, blank project categories
// become "General", and theme/template fall back to their defaults.
func (p *Profile) Normalize() {
	for i := range p.Skills {
		p.Skills[i].Level = clampLevel(p.Skills[i].Level)
	}
	for i := range p.Projects {
		if strings.TrimSpace(p.Projects[i].Category) == "" {
			p.Projects[i].Category = "General"
		}
	}
	if p.Theme == "" {
		p.Theme = ThemeDark
	}
	if p.Template == "" {
		p.Template = TemplateNeo
	}
	if p.Background.Type == "" {
		p.Background.Type = BackgroundSolid
	}
}

func clampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > 100 {
		return 100
	}
	return level
}

// Decode parses a JSON payload into a typed Profile and validates it.
// Payloads without a non-empty name are rejected; none of the caller's state
// should change when an error is returned.
func Decode(data []byte) (Profile, error) {
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parsing profile JSON: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	p.Normalize()
	return p, nil
}

// Validate checks the structural invariants of a decoded profile.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("profile is missing a name")
	}
	switch p.Background.Type {
	case "", BackgroundSolid, BackgroundGradient, BackgroundImage:
	default:
		return fmt.Errorf("unknown background type %q", p.Background.Type)
	}
	switch p.Theme {
	case "", ThemeLight, ThemeDark, ThemeSystem:
	default:
		return fmt.Errorf("unknown theme %q", p.Theme)
	}
	switch p.Template {
	case "", TemplateNeo, TemplateMinimal:
	default:
		return fmt.Errorf("unknown template %q", p.Template)
	}
	if p.CV != nil && p.CV.DataURL != "" && p.CV.URL != "" {
		return fmt.Errorf("cv asset carries both dataUrl and url")
	}
	return nil
}

// Encode serializes a profile the way exported bundles and JSON downloads
// expect it: two-space indented.
func Encode(p Profile) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling profile: %w", err)
	}
	return data, nil
}
