package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCategories = []string{"frontend", "backend", "fullstack"}

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(testCategories, []Project{
		{Title: "E-commerce Platform", Category: "fullstack", Image: "/project1.jpg"},
		{Title: "Dashboard UI", Category: "frontend", Image: "/project2.jpg"},
		{Title: "API Service", Category: "backend", Image: "/project3.jpg"},
		{Title: "Design System", Category: "frontend", Image: "/project4.jpg"},
	})
	require.NoError(t, err)
	return c
}

func titles(projects []Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.Title)
	}
	return out
}

func TestNewCatalog_Validation(t *testing.T) {
	tests := []struct {
		name       string
		categories []string
		projects   []Project
		wantErr    string
	}{
		{
			name:       "empty title",
			categories: testCategories,
			projects:   []Project{{Title: "  ", Category: "frontend"}},
			wantErr:    "title is required",
		},
		{
			name:       "undeclared category",
			categories: testCategories,
			projects:   []Project{{Title: "App", Category: "mobile"}},
			wantErr:    `unknown category "mobile"`,
		},
		{
			name:       "reserved tag",
			categories: []string{"frontend", All},
			wantErr:    "reserved",
		},
		{
			name:       "duplicate tag",
			categories: []string{"frontend", "frontend"},
			wantErr:    "duplicate",
		},
		{
			name:       "blank tag",
			categories: []string{""},
			wantErr:    "category tag is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.categories, tt.projects)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewCatalog_CopiesInput(t *testing.T) {
	projects := []Project{{Title: "Dashboard UI", Category: "frontend"}}
	c, err := NewCatalog(testCategories, projects)
	require.NoError(t, err)

	projects[0].Title = "changed"
	got := c.Projects()
	assert.Equal(t, "Dashboard UI", got[0].Title)

	got[0].Title = "changed again"
	assert.Equal(t, "Dashboard UI", c.Projects()[0].Title)
}

func TestViewModel_StartsWithAll(t *testing.T) {
	c := testCatalog(t)
	vm := NewViewModel(c)

	assert.Equal(t, All, vm.Filter())
	assert.Equal(t, titles(c.Projects()), titles(vm.VisibleProjects()))
}

func TestViewModel_KnownTagPreservesOrder(t *testing.T) {
	vm := NewViewModel(testCatalog(t))

	vm.SetFilter("frontend")

	assert.Equal(t, "frontend", vm.Filter())
	assert.Equal(t, []string{"Dashboard UI", "Design System"}, titles(vm.VisibleProjects()))
}

func TestViewModel_UnknownTagIsEmpty(t *testing.T) {
	vm := NewViewModel(testCatalog(t))

	for _, tag := range []string{"mobile", "", "FRONTEND", "all "} {
		vm.SetFilter(tag)
		got := vm.VisibleProjects()
		assert.NotNil(t, got, "tag %q", tag)
		assert.Empty(t, got, "tag %q", tag)
		assert.Equal(t, tag, vm.Filter())
	}
}

func TestViewModel_SetFilterIdempotent(t *testing.T) {
	once := NewViewModel(testCatalog(t))
	once.SetFilter("backend")

	twice := NewViewModel(testCatalog(t))
	twice.SetFilter("backend")
	twice.SetFilter("backend")

	assert.Equal(t, once.VisibleProjects(), twice.VisibleProjects())
}

func TestViewModel_NoStaleResults(t *testing.T) {
	vm := NewViewModel(testCatalog(t))

	first := vm.VisibleProjects()
	vm.SetFilter("backend")
	assert.Len(t, first, 4)
	assert.Equal(t, []string{"API Service"}, titles(vm.VisibleProjects()))

	vm.SetFilter(All)
	assert.Len(t, vm.VisibleProjects(), 4)
}

func TestViewModel_Scenario(t *testing.T) {
	c, err := NewCatalog(testCategories, []Project{
		{Title: "E-commerce Platform", Category: "fullstack"},
		{Title: "Dashboard UI", Category: "frontend"},
		{Title: "API Service", Category: "backend"},
	})
	require.NoError(t, err)
	vm := NewViewModel(c)

	vm.SetFilter("all")
	assert.Equal(t, []string{"E-commerce Platform", "Dashboard UI", "API Service"}, titles(vm.VisibleProjects()))

	vm.SetFilter("frontend")
	assert.Equal(t, []Project{{Title: "Dashboard UI", Category: "frontend"}}, vm.VisibleProjects())

	vm.SetFilter("mobile")
	assert.Empty(t, vm.VisibleProjects())
}

func TestViewModel_EveryTagIsOrderedSubsequence(t *testing.T) {
	c := testCatalog(t)
	vm := NewViewModel(c)
	all := c.Projects()

	for _, tag := range c.Categories() {
		vm.SetFilter(tag)
		var want []string
		for _, p := range all {
			if p.Category == tag {
				want = append(want, p.Title)
			}
		}
		assert.Equal(t, want, titles(vm.VisibleProjects()), "tag %q", tag)
	}
}

func TestViewModel_SessionsAreIndependent(t *testing.T) {
	c := testCatalog(t)
	a := NewViewModel(c)
	b := NewViewModel(c)

	a.SetFilter("backend")

	assert.Equal(t, "backend", a.Filter())
	assert.Equal(t, All, b.Filter())
	assert.Len(t, b.VisibleProjects(), 4)
}

func TestViewModel_Subscribe(t *testing.T) {
	vm := NewViewModel(testCatalog(t))

	var seen []string
	cancel := vm.Subscribe(func(filter string) {
		seen = append(seen, filter)
	})

	vm.SetFilter("frontend")
	vm.SetFilter("frontend")
	vm.SetFilter("mobile")
	cancel()
	vm.SetFilter(All)

	assert.Equal(t, []string{"frontend", "mobile"}, seen)
}

func TestViewModel_ListenerSeesNewState(t *testing.T) {
	vm := NewViewModel(testCatalog(t))

	var visible []string
	vm.Subscribe(func(string) {
		visible = titles(vm.VisibleProjects())
	})

	vm.SetFilter("backend")
	assert.Equal(t, []string{"API Service"}, visible)
}

func TestViewModel_Options(t *testing.T) {
	vm := NewViewModel(testCatalog(t))
	vm.SetFilter("backend")

	assert.Equal(t, []Option{
		{Tag: "all", Label: "All"},
		{Tag: "frontend", Label: "Frontend"},
		{Tag: "backend", Label: "Backend", Active: true},
		{Tag: "fullstack", Label: "Fullstack"},
	}, vm.Options())
}

func TestCatalog_EmptyCatalog(t *testing.T) {
	c, err := NewCatalog(nil, nil)
	require.NoError(t, err)

	vm := NewViewModel(c)
	assert.Empty(t, vm.VisibleProjects())
	assert.Equal(t, []Option{{Tag: All, Label: "All", Active: true}}, vm.Options())
}

func TestCatalog_Has(t *testing.T) {
	c := testCatalog(t)

	assert.True(t, c.Has(All))
	for _, tag := range testCategories {
		assert.True(t, c.Has(tag), tag)
	}
	assert.False(t, c.Has("mobile"))
	assert.False(t, c.Has(""))
	assert.False(t, c.Has("Frontend"))
}
