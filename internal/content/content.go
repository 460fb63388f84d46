// Package content loads the site copy and the project catalog.
package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"

	"github.com/Zachkp/portfolio/internal/gallery"
)

//go:embed content.yaml
var defaultContent []byte

// Link is a labelled outbound link.
type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// Education is one entry of the education section.
type Education struct {
	Title string `yaml:"title"`
	Place string `yaml:"place"`
	Year  string `yaml:"year"`
}

// Experience is one entry of the experience section.
type Experience struct {
	Role    string `yaml:"role"`
	Company string `yaml:"company"`
	Period  string `yaml:"period"`
}

type document struct {
	Name       string            `yaml:"name"`
	Headline   string            `yaml:"headline"`
	Tagline    string            `yaml:"tagline"`
	About      string            `yaml:"about"`
	Email      string            `yaml:"email"`
	Links      []Link            `yaml:"links"`
	Education  []Education       `yaml:"education"`
	Experience []Experience      `yaml:"experience"`
	Categories []string          `yaml:"categories"`
	Projects   []gallery.Project `yaml:"projects"`
}

// Site is everything the page renders apart from the filter state.
type Site struct {
	Name       string
	Headline   string
	Tagline    string
	About      template.HTML
	Email      string
	Links      []Link
	Education  []Education
	Experience []Experience
	Catalog    *gallery.Catalog

	// summaries maps markdown source to rendered HTML, so projects that
	// share a title still render their own text.
	summaries map[string]template.HTML
}

// Summary returns the rendered summary of p.
func (s *Site) Summary(p gallery.Project) template.HTML {
	return s.summaries[p.Summary]
}

// Load parses the embedded content file.
func Load() (*Site, error) {
	return Parse(defaultContent)
}

// Parse builds a Site from YAML.
func Parse(data []byte) (*Site, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("parse content: name is required")
	}

	catalog, err := gallery.NewCatalog(doc.Categories, doc.Projects)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	about, err := renderMarkdown(doc.About)
	if err != nil {
		return nil, fmt.Errorf("render about: %w", err)
	}

	summaries := make(map[string]template.HTML, len(doc.Projects))
	for _, p := range doc.Projects {
		if _, done := summaries[p.Summary]; done || p.Summary == "" {
			continue
		}
		html, err := renderMarkdown(p.Summary)
		if err != nil {
			return nil, fmt.Errorf("render summary for %q: %w", p.Title, err)
		}
		summaries[p.Summary] = html
	}

	return &Site{
		Name:       doc.Name,
		Headline:   doc.Headline,
		Tagline:    doc.Tagline,
		About:      about,
		Email:      doc.Email,
		Links:      doc.Links,
		Education:  doc.Education,
		Experience: doc.Experience,
		Catalog:    catalog,
		summaries:  summaries,
	}, nil
}

// renderMarkdown converts trusted content markdown to HTML. Raw HTML in the
// source is dropped by goldmark's default renderer.
func renderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
