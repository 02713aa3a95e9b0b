// Package api wires the router, sessions and handlers into the HTTP server.
package api

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/notemark/notemark/internal/api/auth"
	"github.com/notemark/notemark/internal/api/handler"
	"github.com/notemark/notemark/internal/config"
	"github.com/notemark/notemark/internal/database"
	"github.com/notemark/notemark/web/templates"
)

// Server is the notemark HTTP server.
type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
	db        database.DB
}

// New creates a new server with all routes registered.
func New(cfg *config.Config, db database.DB, debug bool) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:       cfg,
		ginEngine: gin.New(),
		db:        db,
	}

	s.ginEngine.Use(gin.Recovery())
	if debug {
		s.ginEngine.Use(gin.Logger())
	}
	s.ginEngine.Use(gzip.Gzip(gzip.DefaultCompression))

	tmpl, err := template.ParseFS(templates.FS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	s.ginEngine.SetHTMLTemplate(tmpl)

	s.setupSession()
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupSession() {
	store := cookie.NewStore([]byte(s.cfg.SessionKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
	})
	s.ginEngine.Use(sessions.Sessions("notemark_session", store))
}

func (s *Server) setupRoutes() {
	a := auth.New(s.db)
	h := handler.New(s.db)

	s.ginEngine.GET("/", h.Home)

	ag := s.ginEngine.Group("/auth")
	ag.GET("/login", a.LoginPage)
	ag.POST("/login", a.Login)
	ag.GET("/logout", a.Logout)
	ag.POST("/logout", a.Logout)
	ag.GET("/signup", a.SignupPage)
	ag.POST("/signup", a.Signup)

	notes := s.ginEngine.Group("/notes")
	notes.Use(a.RequireAuth())
	notes.GET("/", h.List)
	notes.GET("/add", h.AddPage)
	notes.POST("/add", h.Add)
	notes.GET("/success", h.Success)
	notes.GET("/:slug", h.Detail)
	notes.GET("/:slug/edit", h.EditPage)
	notes.POST("/:slug/edit", h.Edit)
	notes.POST("/:slug/delete", h.Delete)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.ginEngine
}

// Run starts the HTTP server on the configured listen address.
func (s *Server) Run() error {
	return s.ginEngine.Run(s.cfg.Listen)
}
