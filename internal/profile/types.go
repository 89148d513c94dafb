package profile

// Theme selects the color scheme the rendered site uses.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Template selects the page layout of the rendered site.
type Template string

const (
	TemplateNeo     Template = "neo"
	TemplateMinimal Template = "minimal"
)

// Background kinds. Exactly one variant's fields are meaningful at a time.
const (
	BackgroundSolid    = "solid"
	BackgroundGradient = "gradient"
	BackgroundImage    = "image"
)

// Background is a tagged variant describing the page background.
type Background struct {
	Type string `json:"type"`

	// solid
	Color string `json:"color,omitempty"`

	// gradient
	From  string `json:"from,omitempty"`
	To    string `json:"to,omitempty"`
	Angle int    `json:"angle,omitempty"`

	// image
	ImageURL       string  `json:"imageUrl,omitempty"`
	OverlayOpacity float64 `json:"overlayOpacity,omitempty"`
}

// FileAsset is a named, MIME-typed binary payload. A profile held in the
// store carries it inline as a data URL; an exported bundle's profile.json
// carries a URL path into the bundle instead. The export step is the only
// place that transition happens.
type FileAsset struct {
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	DataURL  string `json:"dataUrl,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Skill is a single named skill with a 0-100 proficiency level.
type Skill struct {
	Name        string `json:"name"`
	Level       int    `json:"level"`
	Description string `json:"description"`
}

// Project is one portfolio project entry.
type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
	Category    string   `json:"category"`
	Featured    bool     `json:"featured"`
	ImageLabel  string   `json:"imageLabel,omitempty"`
	DemoURL     string   `json:"demoUrl,omitempty"`
	RepoURL     string   `json:"repoUrl,omitempty"`
}

// Links holds the optional outbound links of a profile.
type Links struct {
	Github   string `json:"github,omitempty"`
	Linkedin string `json:"linkedin,omitempty"`
	Email    string `json:"email,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Profile is the complete content and styling record for one portfolio site.
type Profile struct {
	Slug              string     `json:"slug"`
	Name              string     `json:"name"`
	Tagline           string     `json:"tagline"`
	Roles             []string   `json:"roles"`
	Bio               string     `json:"bio"`
	Location          string     `json:"location"`
	YearsOfExperience int        `json:"yearsOfExperience"`
	AvatarURL         string     `json:"avatarUrl"`
	MainBgColor       string     `json:"mainBgColor,omitempty"`
	Theme             Theme      `json:"theme,omitempty"`
	Template          Template   `json:"template,omitempty"`
	Background        Background `json:"background"`
	Tools             []string   `json:"tools"`
	Skills            []Skill    `json:"skills"`
	Projects          []Project  `json:"projects"`
	Links             Links      `json:"links"`
	CV                *FileAsset `json:"cv,omitempty"`
}
