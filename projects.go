package main

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/gallery"
	"github.com/Zachkp/portfolio/internal/session"
)

const sessionKey = "session_id"

// galleryView is what the gallery fragment and the JSON API render.
type galleryView struct {
	Filter   string           `json:"filter"`
	Options  []gallery.Option `json:"options"`
	Projects []projectView    `json:"projects"`
	Empty    string           `json:"-"`
}

type projectView struct {
	gallery.Project
	SummaryHTML template.HTML `json:"-"`
}

// sessionMiddleware assigns each browser its own session cookie.
func (s *server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(session.CookieName)
		if err != nil || !session.Valid(id) {
			id = session.NewID()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(session.CookieName, id, 0, "/", "", false, true)
		}
		c.Set(sessionKey, id)
		c.Next()
	}
}

// maxFilterBodyBytes bounds request bodies on the filter routes.
const maxFilterBodyBytes = 4 << 10

// limitBody caps the request body so oversized filter values are rejected
// while parsing.
func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}

// viewGallery renders the caller's gallery without changing it.
func (s *server) viewGallery(c *gin.Context) galleryView {
	var view galleryView
	s.sessions.View(c.GetString(sessionKey), func(vm *gallery.ViewModel) {
		view = s.render(vm)
	})
	return view
}

// updateGallery runs fn on the caller's view-model and returns the view
// rendered from it afterwards.
func (s *server) updateGallery(c *gin.Context, fn func(vm *gallery.ViewModel)) galleryView {
	var view galleryView
	s.sessions.Update(c.GetString(sessionKey), func(vm *gallery.ViewModel) {
		fn(vm)
		view = s.render(vm)
	})
	return view
}

func (s *server) render(vm *gallery.ViewModel) galleryView {
	visible := vm.VisibleProjects()
	projects := make([]projectView, 0, len(visible))
	for _, p := range visible {
		projects = append(projects, projectView{Project: p, SummaryHTML: s.site.Summary(p)})
	}
	return galleryView{
		Filter:   vm.Filter(),
		Options:  vm.Options(),
		Projects: projects,
		Empty:    EmptyGallery,
	}
}

// Home page route. ?filter= selects a filter before rendering.
func (s *server) index(c *gin.Context) {
	var view galleryView
	if tag, ok := c.GetQuery("filter"); ok {
		view = s.updateGallery(c, func(vm *gallery.ViewModel) { vm.SetFilter(tag) })
	} else {
		view = s.viewGallery(c)
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"site":    s.site,
		"nav":     NavItems,
		"gallery": view,
		"year":    s.now().Year(),
	})
}

func (s *server) projectsFragment(c *gin.Context) {
	c.HTML(http.StatusOK, "projects.html", s.viewGallery(c))
}

func (s *server) setFilterFragment(c *gin.Context) {
	tag, ok := c.GetPostForm("filter")
	if !ok {
		c.String(http.StatusBadRequest, "missing filter")
		return
	}
	view := s.updateGallery(c, func(vm *gallery.ViewModel) { vm.SetFilter(tag) })
	c.HTML(http.StatusOK, "projects.html", view)
}

func (s *server) listProjects(c *gin.Context) {
	c.JSON(http.StatusOK, s.viewGallery(c))
}

type setFilterRequest struct {
	Filter *string `json:"filter" binding:"required"`
}

func (s *server) setFilterJSON(c *gin.Context) {
	var req setFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be a JSON object with a filter field"})
		return
	}
	view := s.updateGallery(c, func(vm *gallery.ViewModel) { vm.SetFilter(*req.Filter) })
	c.JSON(http.StatusOK, view)
}
