package server

import (
	"context"
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"commas/internal/completion"
	"commas/internal/settings"
	"commas/internal/system"
	webembed "commas/internal/webui/embed"
)

// Server serves the browser terminal and the completion/quick-fix API.
type Server struct {
	Addr string
	// Settings supplies shell and completion settings. Nil means defaults.
	Settings *settings.Store
	// Provider answers /api/completions and browser terminal rounds.
	Provider completion.Provider
	// IntegrationDir holds the installed shell scripts. Empty disables
	// injection.
	IntegrationDir string
	// OnPromptEnd runs whenever a browser terminal reaches a new prompt.
	OnPromptEnd func()

	defaultsOnce sync.Once
	defaults     *settings.Store
}

func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.Addr, Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	system.Logger.Info("webui server listening", "addr", s.Addr)
	return srv.ListenAndServe()
}

// Handler builds the gin engine with API and embedded UI routes.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	s.mountAPIGin(r)
	mountEmbeddedUIGin(r)
	return r
}

// store is the live settings source; each read sees the latest reload.
func (s *Server) store() *settings.Store {
	if s.Settings != nil {
		return s.Settings
	}
	s.defaultsOnce.Do(func() { s.defaults = settings.NewStore(settings.Default()) })
	return s.defaults
}

func (s *Server) settings() settings.Settings { return s.store().Get() }

// OpenBrowser tries to open a URL in the system browser.
func OpenBrowser(url string) error {
	var cmd string
	var args []string
	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "windows":
		cmd = "rundll32"
		args = []string{"url.dll,FileProtocolHandler", url}
	default:
		cmd = "xdg-open"
		args = []string{url}
	}
	return exec.Command(cmd, args...).Start()
}

// mountEmbeddedUIGin serves embedded SPA at all non-/api GET routes with index fallback.
func mountEmbeddedUIGin(r *gin.Engine) {
	dist, err := fs.Sub(webembed.DistFS, "dist")
	if err != nil {
		r.NoRoute(func(c *gin.Context) {
			c.String(http.StatusNotFound, "webui assets not found")
		})
		return
	}
	httpFS := http.FS(dist)
	// SPA fallback through NoRoute to avoid wildcard conflicts with /api
	r.NoRoute(func(c *gin.Context) {
		// Do not hijack API routes
		if strings.HasPrefix(c.Request.URL.Path, "/api/") || c.Request.URL.Path == "/api" {
			c.Status(http.StatusNotFound)
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Status(http.StatusNotFound)
			return
		}
		p := strings.TrimPrefix(c.Request.URL.Path, "/")
		if p == "" {
			p = "index.html"
		}
		if f, err := httpFS.Open(p); err == nil {
			_ = f.Close()
			if ct := mime.TypeByExtension(filepath.Ext(p)); ct != "" {
				c.Header("Content-Type", ct)
			}
			c.FileFromFS(p, httpFS)
			return
		}
		if _, err := httpFS.Open("index.html"); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				c.String(http.StatusNotFound, "index.html not found in embedded dist.")
				return
			}
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.FileFromFS("index.html", httpFS)
	})
}
