package v1

import (
	"net/http"

	"github.com/ait-dev/patientcare/internal/handler/middleware"
	"github.com/ait-dev/patientcare/pkg/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter assembles the gin engine: middleware chain, operational
// endpoints, and the patient API. The metrics collector may be nil
// (tests run without one).
func NewRouter(h *PatientHandler, log *zap.Logger, mc *metrics.Collector) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.Recovery(log))
	if mc != nil {
		r.Use(middleware.Metrics(mc))
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Paths are registered without trailing slashes; the engine's
	// RedirectTrailingSlash (on by default) answers the slashed
	// spellings with a 301/307 to the canonical path.
	api := r.Group("/api/patients")
	{
		api.GET("", h.List)
		api.POST("", h.Create)
		api.GET("/search", h.Search)
		api.GET("/statistics", h.Statistics)
		api.GET("/info", h.Info)
		api.GET("/:id", h.GetByID)
		api.PUT("/:id", h.Update)
		api.DELETE("/:id", h.Delete)
	}

	return r
}
