package ui

import (
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/temurag74-ship-it/CA-AirBoard-Dashboard/internal/config"
	"github.com/temurag74-ship-it/CA-AirBoard-Dashboard/internal/dataset"
	"github.com/temurag74-ship-it/CA-AirBoard-Dashboard/internal/session"
)

const sessionCookie = "abps_session"

// Server is the web server for the dashboard. It owns no data of its own:
// the store holds the shared read-only table, the session manager holds
// each browser's FilterState, and every interaction runs one synchronous
// filter-then-aggregate pass.
type Server struct {
	router    *gin.Engine
	cfg       *config.Config
	store     *dataset.Store
	sessions  *session.Manager
	templates *template.Template
}

// NewServer creates the dashboard server and wires its routes.
func NewServer(cfg *config.Config, store *dataset.Store, sessions *session.Manager) (*Server, error) {
	gin.SetMode(cfg.Server.GinMode)

	s := &Server{
		router:   gin.Default(),
		cfg:      cfg,
		store:    store,
		sessions: sessions,
	}

	templatesFS, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to create templates filesystem: %w", err)
	}
	s.templates, err = template.New("").ParseFS(templatesFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s.router.Use(s.sessionMiddleware())
	s.setupRoutes()
	return s, nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)

	s.router.GET("/api/health", s.handleHealth)
	s.router.GET("/api/options", s.handleOptions)
	s.router.GET("/api/summary", s.handleSummary)
	s.router.GET("/api/records", s.handleRecords)

	s.router.GET("/export/csv", s.handleExportCSV)
	s.router.GET("/export/xlsx", s.handleExportXLSX)
}

// sessionMiddleware binds each request to a session id carried in a
// cookie, minting one for new browsers.
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		current, _ := c.Cookie(sessionCookie)
		id := s.sessions.Ensure(current)
		if id != current {
			c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
		}
		c.Set("session_id", id)
		c.Next()
	}
}

func (s *Server) sessionID(c *gin.Context) string {
	if id, ok := c.Get("session_id"); ok {
		return id.(string)
	}
	return ""
}

// Run starts the web server.
func (s *Server) Run(addr string) error {
	log.Printf("Starting Air Board dashboard on http://%s", addr)
	return s.router.Run(addr)
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// renderTemplate writes a template response, aborting on render errors.
func (s *Server) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	c.Header("Content-Type", "text/html")
	if err := s.templates.ExecuteTemplate(c.Writer, templateName, data); err != nil {
		log.Printf("Template error: %v", err)
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}
