package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pm-platform/patient-service/internal/config"
	"github.com/pm-platform/patient-service/pkg/metrics"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker func() error

// NewRouter wires middleware, the patient routes, and the operational
// endpoints into a gin engine.
func NewRouter(cfg *config.Config, h *PatientHandler, m *metrics.Collector, log *zap.Logger, healthy HealthChecker) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(Instrument(m))
	r.Use(CORS(cfg.CORS))

	r.GET("/healthz", func(c *gin.Context) {
		if err := healthy(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "up"})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	api := r.Group("/api/v1")
	h.Register(api)

	return r
}
