package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/gallery"
)

func TestLoad_Default(t *testing.T) {
	site, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"frontend", "backend", "fullstack"}, site.Catalog.Categories())

	var got []string
	for _, p := range site.Catalog.Projects() {
		got = append(got, p.Title+"/"+p.Category)
	}
	assert.Equal(t, []string{
		"E-commerce Platform/fullstack",
		"Dashboard UI/frontend",
		"API Service/backend",
	}, got)

	assert.Len(t, site.Education, 2)
	assert.Len(t, site.Experience, 2)
	assert.Equal(t, "2023", site.Education[1].Year)
	assert.Contains(t, string(site.About), "<strong>Next.js</strong>")
	assert.Contains(t, string(site.Summary(site.Catalog.Projects()[0])), "<strong>TypeScript</strong>")
}

func TestParse_SharedTitlesKeepTheirSummaries(t *testing.T) {
	site, err := Parse([]byte(`
name: Test
categories: [frontend, backend]
projects:
  - title: Dashboard
    category: frontend
    summary: Built with **React**.
  - title: Dashboard
    category: backend
    summary: Built with **Go**.
`))
	require.NoError(t, err)

	projects := site.Catalog.Projects()
	require.Len(t, projects, 2)
	assert.Contains(t, string(site.Summary(projects[0])), "<strong>React</strong>")
	assert.NotContains(t, string(site.Summary(projects[0])), "Go")
	assert.Contains(t, string(site.Summary(projects[1])), "<strong>Go</strong>")
}

func TestParse_MissingSummary(t *testing.T) {
	site, err := Parse([]byte(`
name: Test
categories: [backend]
projects:
  - title: API Service
    category: backend
    image: /images/api.jpg
`))
	require.NoError(t, err)
	assert.Empty(t, site.Summary(site.Catalog.Projects()[0]))
	assert.Equal(t, 1, site.Catalog.Len())

	vm := gallery.NewViewModel(site.Catalog)
	vm.SetFilter("frontend")
	assert.Empty(t, vm.VisibleProjects())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "bad yaml", input: "name: [", wantErr: "parse content"},
		{name: "missing name", input: "categories: [a]", wantErr: "name is required"},
		{
			name: "unknown category",
			input: `
name: Test
categories: [backend]
projects:
  - title: App
    category: mobile
`,
			wantErr: "build catalog",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
