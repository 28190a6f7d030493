package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/richlegrande-dot/care2connect-intake/internal/intelligence/extraction"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	engine  *extraction.Engine
	version string
}

// NewHealthHandler wires the probes to the engine whose readiness they
// report.
func NewHealthHandler(engine *extraction.Engine, version string) *HealthHandler {
	return &HealthHandler{engine: engine, version: version}
}

// Live handles GET /healthz.  The process is alive; nothing else is implied.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.version})
}

// Ready handles GET /readyz.  The service is ready once an engine with a
// validated rule snapshot is installed.
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.engine == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"rules_version": h.engine.RulesVersion(),
	})
}
