package httpserver

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"queencare-storefront/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

type visitors interface {
	Visitor(presented string) (app *view.App, issued bool)
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Deps carries what the router needs.
type Deps struct {
	Visitors         visitors
	Storage          pinger
	CORSAllowOrigins []string
}

var navLabels = map[string]string{
	string(view.SectionHome):         "الرئيسية",
	string(view.SectionProducts):     "المنتجات",
	string(view.SectionAnalysis):     "تحليل البشرة",
	string(view.SectionAppointments): "حجز موعد",
	string(view.SectionArticles):     "المقالات",
	string(view.SectionCart):         "السلة",
}

var templateFuncs = template.FuncMap{
	"navLabel": func(id string) string {
		if l, ok := navLabels[id]; ok {
			return l
		}
		return id
	},
	"issues": func() []issueOption { return quizIssues },
}

func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// buildRouter wires routes for the storefront.
func buildRouter(logger *log.Logger, deps Deps) (*gin.Engine, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if deps.Visitors == nil {
		return nil, fmt.Errorf("build router: visitors not configured")
	}
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	origins := deps.CORSAllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(corsConfig(origins)))
	router.SetHTMLTemplate(tmpl)

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Storage))

	store := router.Group("/", visitorMiddleware(deps.Visitors))
	store.GET("/", pageHandler)
	store.GET("/api/view", viewHandler)
	store.GET("/sections/:id", navigateHandler)
	store.GET("/products/filter/:category", filterHandler)
	store.POST("/cart/items", addToCartHandler)
	store.POST("/cart/items/:id/quantity", updateQuantityHandler)
	store.POST("/cart/items/:id/remove", removeFromCartHandler)
	store.POST("/checkout", checkoutHandler)
	store.POST("/analysis", analysisHandler)
	store.POST("/doctors/select", selectDoctorHandler)
	store.POST("/appointments", appointmentHandler)
	store.POST("/login", loginHandler)
	store.POST("/signup", signupHandler)
	store.POST("/logout", logoutHandler)
	store.GET("/modals/:id", openModalHandler)
	store.POST("/modals/close", closeModalHandler)

	return router, nil
}
