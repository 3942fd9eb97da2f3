package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/foliogen-api/internal/model"
	"github.com/yourusername/foliogen-api/internal/preview"
)

func sampleResume() model.ResumeData {
	return model.ResumeData{
		Name:    "Ada Lovelace",
		Title:   "Software Engineer",
		Email:   "ada@example.com",
		Summary: "Writes programs for machines that don't exist yet.",
		Skills:  []string{"Go", "Postgres", "Analysis"},
		Projects: []model.ResumeProject{
			{Name: "Analytical Engine Notes", Description: "First published algorithm", Technologies: []string{"Math"}},
		},
		Experience: []model.ResumeExperience{
			{Title: "Engineer", Company: "Babbage & Co", StartDate: "1842", EndDate: "1843", Description: "Annotated translations"},
		},
		Education: []model.ResumeEducation{
			{School: "Home tutoring", Degree: "N/A", Field: "Mathematics", StartDate: "1820", EndDate: "1835"},
		},
		Links: map[string]string{},
	}
}

func TestGenerateEmitsPreviewableProjects(t *testing.T) {
	engine := NewEngine()
	registry := NewTemplateRegistry()
	tpl, err := registry.Get("minimal")
	require.NoError(t, err)

	for _, stack := range SupportedStacks {
		t.Run(stack, func(t *testing.T) {
			files, err := engine.Generate(stack, sampleResume(), tpl)
			require.NoError(t, err)
			assert.Contains(t, files, "package.json")

			// Every generated project must preview without missing fragments
			fw, err := preview.ParseFramework(stack)
			require.NoError(t, err)
			result, err := preview.Render(files, fw)
			require.NoError(t, err)
			assert.Empty(t, result.Missing, "preview could not locate entry or stylesheet")
		})
	}
}

func TestGenerateUnsupportedStack(t *testing.T) {
	engine := NewEngine()
	registry := NewTemplateRegistry()
	tpl, err := registry.Get("minimal")
	require.NoError(t, err)

	_, err = engine.Generate("angular", sampleResume(), tpl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported stack")
}

func TestGenerateEmbedsResumeContent(t *testing.T) {
	engine := NewEngine()
	registry := NewTemplateRegistry()
	tpl, err := registry.Get("midnight")
	require.NoError(t, err)

	files, err := engine.Generate("react", sampleResume(), tpl)
	require.NoError(t, err)

	app := files["src/App.jsx"]
	assert.Contains(t, app, "Ada Lovelace")
	assert.Contains(t, app, "Analytical Engine Notes")
	assert.Contains(t, app, "export default function App()")
}

func TestGenerateStylesheetUsesPalette(t *testing.T) {
	engine := NewEngine()
	registry := NewTemplateRegistry()
	tpl, err := registry.Get("midnight")
	require.NoError(t, err)

	files, err := engine.Generate("vue", sampleResume(), tpl)
	require.NoError(t, err)

	css := files["src/style.css"]
	assert.Contains(t, css, tpl.Colors.Background)
	assert.Contains(t, css, tpl.Colors.Accent)
}

func TestGenerateGridLayoutCSS(t *testing.T) {
	engine := NewEngine()
	registry := NewTemplateRegistry()
	tpl, err := registry.Get("gallery")
	require.NoError(t, err)

	files, err := engine.Generate("svelte", sampleResume(), tpl)
	require.NoError(t, err)
	assert.Contains(t, files["src/app.css"], "grid-template-columns")
}

func TestGenerateDeterministic(t *testing.T) {
	engine := NewEngine()
	registry := NewTemplateRegistry()
	tpl, err := registry.Get("minimal")
	require.NoError(t, err)

	first, err := engine.Generate("nextjs", sampleResume(), tpl)
	require.NoError(t, err)
	second, err := engine.Generate("nextjs", sampleResume(), tpl)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
