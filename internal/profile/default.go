package profile

// Default returns the seed profile used when no profile has been saved yet.
// It doubles as a complete example of every field the site template renders.
func Default() Profile {
	return Profile{
		Slug:              "alex-rivera",
		Name:              "Alex Rivera",
		Tagline:           "I design and ship practical web products that solve real problems.",
		Roles:             []string{"Frontend Developer", "UI Engineer", "Product Builder"},
		Bio:               "Product-focused developer with experience building polished interfaces, clean APIs, and maintainable application architecture for small teams and startups.",
		Location:          "Austin, Texas",
		YearsOfExperience: 4,
		AvatarURL:         "",
		MainBgColor:       "#1e1b4b",
		Theme:             ThemeDark,
		Template:          TemplateNeo,
		Background: Background{
			Type:  BackgroundSolid,
			Color: "#1e1b4b",
		},
		Tools: []string{
			"React", "TypeScript", "Node.js", "Next.js", "PostgreSQL",
			"Tailwind CSS", "Figma", "GitHub Actions", "Docker", "REST APIs", "Vercel",
		},
		Skills: []Skill{
			{Name: "React", Level: 90, Description: "Accessible, component-driven UI development for production apps."},
			{Name: "TypeScript", Level: 87, Description: "Type-safe front-end and back-end codebases."},
			{Name: "Node.js", Level: 82, Description: "API design, validation, and service integration."},
			{Name: "PostgreSQL", Level: 78, Description: "Schema design and query tuning for product analytics."},
			{Name: "Tailwind CSS", Level: 89, Description: "Fast UI implementation with scalable design tokens."},
			{Name: "CI/CD", Level: 80, Description: "Automated test, build, and deployment workflows."},
		},
		Projects: []Project{
			{
				Title:       "TeamFlow Dashboard",
				Description: "Project operations dashboard with task tracking, sprint views, and reporting for distributed teams.",
				Tech:        []string{"React", "TypeScript", "Node.js", "PostgreSQL", "Chart.js"},
				Category:    "Web",
				Featured:    true,
				ImageLabel:  "FLOW",
				DemoURL:     "https://example.com/teamflow",
				RepoURL:     "https://github.com/example/teamflow-dashboard",
			},
			{
				Title:       "Creator Landing Kit",
				Description: "Reusable landing page template for creators with CMS-friendly sections and analytics hooks.",
				Tech:        []string{"Next.js", "TypeScript", "Tailwind CSS"},
				Category:    "Web",
				Featured:    false,
				ImageLabel:  "KIT",
				DemoURL:     "https://example.com/creator-kit",
				RepoURL:     "https://github.com/example/creator-landing-kit",
			},
		},
		Links: Links{
			Github:   "https://github.com/example",
			Linkedin: "https://www.linkedin.com/in/example",
			Email:    "alex@example.com",
			Website:  "https://example.com",
		},
	}
}
