package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthResponse is the body served on /healthz
type HealthResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// HealthCheckWithDeps returns a handler that runs every dependency check and
// reports 503 when any of them fails.
func HealthCheckWithDeps(serviceName, version string, checks map[string]func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		results := make(map[string]string, len(checks))
		healthy := true

		for name, check := range checks {
			if err := check(); err != nil {
				results[name] = "unhealthy: " + err.Error()
				healthy = false
				continue
			}
			results[name] = "healthy"
		}

		resp := HealthResponse{
			Status:  "healthy",
			Service: serviceName,
			Version: version,
			Checks:  results,
		}
		if !healthy {
			resp.Status = "unhealthy"
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
