package server

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// mountStatic serves the built dashboard. Unknown non-API paths fall back to
// index.html so client-side routes resolve.
func (s *Server) mountStatic() bool {
	if s.staticDir == "" {
		s.logger.Warn("static directory not configured; API only mode")
		return false
	}

	indexPath := filepath.Join(s.staticDir, "index.html")
	if !isFile(indexPath) {
		s.logger.Warn("dashboard bundle missing; API only mode", slog.String("path", indexPath))
		return false
	}

	s.engine.GET("/", func(c *gin.Context) {
		c.File(indexPath)
	})
	s.engine.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") || c.Request.Method != http.MethodGet {
			c.JSON(http.StatusNotFound, gin.H{"error": "endpoint not found"})
			return
		}
		c.File(indexPath)
	})

	if assets := filepath.Join(s.staticDir, "assets"); isDir(assets) {
		s.engine.StaticFS("/assets", gin.Dir(assets, false))
	}
	if favicon := filepath.Join(s.staticDir, "favicon.ico"); isFile(favicon) {
		s.engine.StaticFile("/favicon.ico", favicon)
	}
	return true
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
