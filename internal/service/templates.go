package service

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/yourusername/foliogen-api/internal/model"
)

// ColorScheme is the palette a template injects into the generated styles
type ColorScheme struct {
	Primary    string `json:"primary"`
	Background string `json:"background"`
	Surface    string `json:"surface"`
	Text       string `json:"text"`
	Accent     string `json:"accent"`
}

// Template describes one portfolio look: a layout plus a palette
type Template struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Layout      string      `json:"layout"` // single-column, split, grid
	Colors      ColorScheme `json:"colors"`
}

// TemplateRegistry holds the built-in templates
type TemplateRegistry struct {
	templates []Template
	byID      map[string]*Template
}

func NewTemplateRegistry() *TemplateRegistry {
	templates := []Template{
		{
			ID:          "minimal",
			Name:        "Minimal",
			Description: "Clean single column with lots of whitespace",
			Layout:      "single-column",
			Colors:      ColorScheme{Primary: "#111827", Background: "#ffffff", Surface: "#f9fafb", Text: "#1f2937", Accent: "#2563eb"},
		},
		{
			ID:          "midnight",
			Name:        "Midnight",
			Description: "Dark theme with high-contrast accents",
			Layout:      "single-column",
			Colors:      ColorScheme{Primary: "#f9fafb", Background: "#0f172a", Surface: "#1e293b", Text: "#e2e8f0", Accent: "#38bdf8"},
		},
		{
			ID:          "split",
			Name:        "Split",
			Description: "Fixed sidebar with contact info, scrolling content",
			Layout:      "split",
			Colors:      ColorScheme{Primary: "#0f766e", Background: "#ffffff", Surface: "#f0fdfa", Text: "#134e4a", Accent: "#0d9488"},
		},
		{
			ID:          "gallery",
			Name:        "Gallery",
			Description: "Project-first grid layout for visual work",
			Layout:      "grid",
			Colors:      ColorScheme{Primary: "#7c3aed", Background: "#faf5ff", Surface: "#ffffff", Text: "#3b0764", Accent: "#a855f7"},
		},
		{
			ID:          "terminal",
			Name:        "Terminal",
			Description: "Monospace developer aesthetic",
			Layout:      "single-column",
			Colors:      ColorScheme{Primary: "#22c55e", Background: "#09090b", Surface: "#18181b", Text: "#d4d4d8", Accent: "#4ade80"},
		},
		{
			ID:          "editorial",
			Name:        "Editorial",
			Description: "Serif headlines and magazine spacing",
			Layout:      "split",
			Colors:      ColorScheme{Primary: "#9f1239", Background: "#fffbf5", Surface: "#fff1f2", Text: "#1c1917", Accent: "#e11d48"},
		},
	}

	byID := make(map[string]*Template, len(templates))
	for i := range templates {
		byID[templates[i].ID] = &templates[i]
	}
	return &TemplateRegistry{templates: templates, byID: byID}
}

// List returns a page of templates plus the total count
func (tr *TemplateRegistry) List(limit, offset int) ([]Template, int) {
	total := len(tr.templates)
	if offset >= total {
		return []Template{}, total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return tr.templates[offset:end], total
}

// Get looks up a template by ID
func (tr *TemplateRegistry) Get(id string) (*Template, error) {
	t, ok := tr.byID[id]
	if !ok {
		return nil, fmt.Errorf("unknown template %q", id)
	}
	return t, nil
}

// Random picks any template
func (tr *TemplateRegistry) Random() *Template {
	return &tr.templates[rand.Intn(len(tr.templates))]
}

// Suggest picks a template from the resume content. Visual portfolios get
// the grid, long histories get the sidebar, infra folks get the terminal.
func (tr *TemplateRegistry) Suggest(data model.ResumeData) *Template {
	joined := strings.ToLower(data.Title + " " + data.Summary + " " + strings.Join(data.Skills, " "))

	switch {
	case strings.Contains(joined, "design") || strings.Contains(joined, "creative") || strings.Contains(joined, "ux"):
		return tr.byID["gallery"]
	case strings.Contains(joined, "devops") || strings.Contains(joined, "infrastructure") || strings.Contains(joined, "backend"):
		return tr.byID["terminal"]
	case strings.Contains(joined, "writer") || strings.Contains(joined, "content") || strings.Contains(joined, "marketing"):
		return tr.byID["editorial"]
	case len(data.Experience) >= 4:
		return tr.byID["split"]
	case len(data.Projects) >= 3:
		return tr.byID["gallery"]
	default:
		return tr.byID["minimal"]
	}
}
