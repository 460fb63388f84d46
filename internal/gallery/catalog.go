// Package gallery holds the project catalog and the per-session filter
// view-model that decides which projects the gallery shows.
package gallery

import (
	"fmt"
	"strings"
)

// All is the filter tag that places no restriction on the catalog.
const All = "all"

// Project is one entry in the portfolio gallery.
type Project struct {
	Title    string `json:"title" yaml:"title"`
	Category string `json:"category" yaml:"category"`
	Image    string `json:"image" yaml:"image"`
	Summary  string `json:"summary,omitempty" yaml:"summary"`
	Link     string `json:"link,omitempty" yaml:"link"`
}

// Catalog is the fixed, ordered list of projects plus the category tags
// they may use. It is never mutated after NewCatalog returns.
type Catalog struct {
	categories []string
	projects   []Project
}

// NewCatalog validates and copies the given categories and projects.
func NewCatalog(categories []string, projects []Project) (*Catalog, error) {
	declared := make(map[string]struct{}, len(categories))
	for _, tag := range categories {
		if strings.TrimSpace(tag) == "" {
			return nil, fmt.Errorf("category tag is required")
		}
		if tag == All {
			return nil, fmt.Errorf("category tag %q is reserved", All)
		}
		if _, dup := declared[tag]; dup {
			return nil, fmt.Errorf("duplicate category tag %q", tag)
		}
		declared[tag] = struct{}{}
	}

	for i, p := range projects {
		if strings.TrimSpace(p.Title) == "" {
			return nil, fmt.Errorf("project %d: title is required", i)
		}
		if _, ok := declared[p.Category]; !ok {
			return nil, fmt.Errorf("project %q: unknown category %q", p.Title, p.Category)
		}
	}

	return &Catalog{
		categories: append([]string(nil), categories...),
		projects:   append([]Project(nil), projects...),
	}, nil
}

// MustCatalog is NewCatalog for catalogs declared in code.
func MustCatalog(categories []string, projects []Project) *Catalog {
	c, err := NewCatalog(categories, projects)
	if err != nil {
		panic(err)
	}
	return c
}

// Categories returns the declared category tags in declaration order.
func (c *Catalog) Categories() []string {
	return append([]string(nil), c.categories...)
}

// Projects returns every project in declaration order.
func (c *Catalog) Projects() []Project {
	return append([]Project(nil), c.projects...)
}

// Has reports whether tag is All or a declared category.
func (c *Catalog) Has(tag string) bool {
	if tag == All {
		return true
	}
	for _, declared := range c.categories {
		if declared == tag {
			return true
		}
	}
	return false
}

// Len returns the number of projects.
func (c *Catalog) Len() int {
	return len(c.projects)
}

// Filter returns the projects matching tag in declaration order. All
// matches everything; a tag nothing uses yields an empty, non-nil slice.
func (c *Catalog) Filter(tag string) []Project {
	visible := make([]Project, 0, len(c.projects))
	for _, p := range c.projects {
		if tag == All || p.Category == tag {
			visible = append(visible, p)
		}
	}
	return visible
}
