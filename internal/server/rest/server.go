// Package rest exposes the study services over HTTP/JSON using gin.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/studymate/internal/logging"
	"github.com/dmitrijs2005/studymate/internal/server/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type HTTPServer struct {
	address         string
	staticDir       string
	shutdownTimeout time.Duration
	accounts        *services.AccountService
	study           *services.StudyService
	logger          logging.Logger
	engine          *gin.Engine
}

func NewHTTPServer(a, staticDir string, shutdownTimeout time.Duration, l logging.Logger,
	acc *services.AccountService, study *services.StudyService) *HTTPServer {
	s := &HTTPServer{
		address:         a,
		staticDir:       staticDir,
		shutdownTimeout: shutdownTimeout,
		accounts:        acc,
		study:           study,
		logger:          l.With("module", "http_server"),
	}
	s.engine = s.routes()
	return s
}

// Handler returns the router, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

func (s *HTTPServer) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID(), s.accessLog(), cors.Default())

	if s.staticDir != "" {
		if fi, err := os.Stat(s.staticDir); err == nil && fi.IsDir() {
			index := filepath.Join(s.staticDir, "index.html")
			if _, err := os.Stat(index); err == nil {
				r.StaticFile("/", index)
			}
			r.Static("/static", s.staticDir)
		}
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/login", s.login)
	api.POST("/signup", s.signup)
	api.POST("/explain", s.explain)
	api.POST("/summarize", s.summarize)
	api.POST("/quiz", s.quiz)
	api.POST("/flashcards", s.flashcards)
	api.POST("/history", s.history)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: s.engine, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
