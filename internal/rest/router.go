package rest

import (
	"embed"
	"html/template"

	"github.com/dfryer1193/onewheel-blog/internal/middleware"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// NewEngine builds the gin engine with the shared middleware stack and page templates.
func NewEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(gin.CustomRecovery(middleware.HandlePanics()))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	engine.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))
	return engine
}
