package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/porsenia/sportreg/internal/config"
	"github.com/porsenia/sportreg/internal/http/handlers"
	"github.com/porsenia/sportreg/internal/http/middlewares"
	"github.com/porsenia/sportreg/internal/ledger"
	"github.com/porsenia/sportreg/internal/observability"
)

// Deps carries everything the router wires together.
type Deps struct {
	Ledger *ledger.Ledger
	Prom   *observability.Prom
	// PromRegistry backs the /metrics endpoint; nil disables it.
	PromRegistry *prometheus.Registry
	// StorePing is the readiness probe of the chosen backend; nil for memory.
	StorePing func(context.Context) error
}

func NewRouter(log *slog.Logger, cfg config.Config, deps Deps) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(otelgin.Middleware("sportreg"))
	r.Use(RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middlewares.RequireJSON())
	r.Use(middlewares.MaxBodyBytes(1 << 20))

	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}

	// health + metrics
	h := handlers.NewHealthHandler(deps.StorePing)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if deps.PromRegistry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.PromRegistry, promhttp.HandlerOpts{})))
	}

	// catalog: immutable reference data, cached + ETagged
	catalogHandler := handlers.NewCatalogHandler()
	r.GET("/catalog/sports", catalogHandler.ListSports)
	r.GET("/catalog/sports/:id", catalogHandler.GetSport)
	r.GET("/catalog/sports/:id/categories/:categoryId/parameters", catalogHandler.GetParameters)
	r.GET("/catalog/categories/:id", catalogHandler.GetCategory)
	r.GET("/catalog/education-levels", catalogHandler.ListEducationLevels)

	// pricing quotes are pure; no gate
	pricingHandler := handlers.NewPricingHandler()
	r.POST("/pricing/quote", pricingHandler.Quote)

	// registration flow
	regHandler := handlers.NewRegistrationsHandler(deps.Ledger)

	// one writer per registration per window is plenty for a form-driven flow
	writeLimiter := middlewares.NewRateLimiter(60, time.Minute)
	limitByRegistration := writeLimiter.RateLimiterMiddleware(func(c *gin.Context) string {
		return c.Param("id")
	})

	gate2 := middlewares.StepGate(deps.Ledger.Get, 2)
	gate3 := middlewares.StepGate(deps.Ledger.Get, 3)

	r.POST("/registrations", regHandler.Create)

	reg := r.Group("/registrations/:id")
	reg.Use(limitByRegistration)

	reg.GET("", regHandler.Get)
	reg.DELETE("", regHandler.Reset)

	// step 1: cart building, always accessible
	reg.POST("/selections", regHandler.AddSelection)
	reg.DELETE("/selections", regHandler.RemoveSelection)
	reg.POST("/step1", regHandler.CompleteStep1)

	// step 2: entry taking, locked until step 1 is complete
	reg.POST("/categories/:categoryId/entries", gate2, regHandler.AddEntry)
	reg.DELETE("/categories/:categoryId/entries/:entryNumber", gate2, regHandler.RemoveEntry)
	reg.POST("/step2", gate2, regHandler.CompleteStep2)

	// step 3: payment summary + documents, locked until step 2 is complete
	reg.GET("/summary", gate3, regHandler.Summary)
	reg.POST("/step3", gate3, regHandler.CompleteStep3)
	reg.PATCH("/documents", gate3, regHandler.UpdateDocuments)

	return r
}
