package main

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/gallery"
	"github.com/Zachkp/portfolio/internal/session"
	"github.com/Zachkp/portfolio/internal/store"
	"github.com/Zachkp/portfolio/internal/telemetry"
)

//go:embed templates/*.html
var templateFS embed.FS

type server struct {
	cfg      config.Config
	site     *content.Site
	sessions *session.Store
	db       *store.Store
	mailer   contact.Sender
	admin    *adminAuth
	now      func() time.Time

	// background runs fire-and-forget work such as analytics writes.
	background func(func())
	wg         sync.WaitGroup
}

func newServer(cfg config.Config, site *content.Site, db *store.Store, mailer contact.Sender) *server {
	s := &server{
		cfg:      cfg,
		site:     site,
		sessions: session.NewStore(site.Catalog, cfg.SessionTTL, cfg.SessionMax),
		db:       db,
		mailer:   mailer,
		admin:    newAdminAuth(cfg.Admin),
		now:      time.Now,
	}
	s.background = s.goTracked
	s.sessions.OnCreate = func(id string, vm *gallery.ViewModel) {
		hashed := s.admin.hash(id)
		vm.Subscribe(func(filter string) {
			s.background(func() { s.recordFilterChange(hashed, filter) })
		})
	}
	return s
}

// goTracked runs fn on its own goroutine; wait blocks until it returns.
func (s *server) goTracked(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn()
	}()
}

// wait blocks until all background work has finished.
func (s *server) wait() {
	s.wg.Wait()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	site, err := content.Load()
	if err != nil {
		log.Fatalf("Failed to load content: %v", err)
	}

	db, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	s := newServer(cfg, site, db, contact.NewSMTPSender(cfg.SMTP))
	// Runs before db.Close so pending analytics writes land.
	defer s.wait()
	s.goTracked(func() { s.runRetention(ctx) })

	var handler http.Handler = s.routes()
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(ctx, cfg.Telemetry.ServiceName)
		if err != nil {
			log.Fatalf("Failed to set up telemetry: %v", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
		handler = telemetry.Handler(handler, "portfolio")
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}()

	log.Printf("Portfolio listening on %s", cfg.Addr())
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}
	// ListenAndServe returns as soon as Shutdown starts; in-flight
	// handlers may still queue background work until it completes.
	<-drained
}

func (s *server) routes() *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(template.Must(
		template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html"),
	))

	r.Static("/images", "./images")
	r.Static("/static", "./static")

	r.Use(s.visitorTrackingMiddleware())

	r.GET("/healthz", s.health)

	pages := r.Group("/")
	pages.Use(s.sessionMiddleware())
	pages.GET("/", s.index)
	pages.GET("/projects", s.projectsFragment)
	pages.POST("/projects/filter", limitBody(maxFilterBodyBytes), s.setFilterFragment)
	pages.GET("/api/projects", s.listProjects)
	pages.PUT("/api/filter", limitBody(maxFilterBodyBytes), s.setFilterJSON)

	r.GET("/education-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "education-content.html", gin.H{"site": s.site})
	})
	r.GET("/work-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "work-content.html", gin.H{"site": s.site})
	})

	// HTMX contact form endpoint - returns just the form HTML
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title": "Contact Me",
		})
	})
	r.POST("/contact", s.submitContact)

	s.setupAdminRoutes(r)
	return r
}

var templateFuncs = template.FuncMap{
	"ago":   humanize.Time,
	"comma": humanize.Comma,
	"lower": strings.ToLower,
}

func (s *server) health(c *gin.Context) {
	if err := s.db.Ping(c.Request.Context()); err != nil {
		log.Printf("Health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Handle contact form submission with HTMX
func (s *server) submitContact(c *gin.Context) {
	msg := contact.Message{
		Name:  c.PostForm("fullName"),
		Email: c.PostForm("email"),
		Body:  c.PostForm("message"),
	}

	if err := msg.Validate(); err != nil {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{"error": err.Error()})
		return
	}
	if err := s.mailer.Send(c.Request.Context(), msg); err != nil {
		log.Printf("Error sending email: %v", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{"error": ContactFailure})
		return
	}

	log.Printf("Contact message sent from %s", s.admin.hash(msg.Email))
	c.HTML(http.StatusOK, "contact-success.html", gin.H{"success": ContactSuccess})
}

// otherFilter groups every selection that is not a catalog tag, so
// arbitrary client input cannot grow the filter statistics.
const otherFilter = "(other)"

func (s *server) recordFilterChange(hashedSession, filter string) {
	if !s.site.Catalog.Has(filter) {
		filter = otherFilter
	}
	err := s.db.RecordFilterChange(context.Background(), store.FilterChange{
		HashedSession: hashedSession,
		Filter:        filter,
		Timestamp:     s.now(),
	})
	if err != nil {
		log.Printf("Error recording filter change: %v", err)
	}
}
