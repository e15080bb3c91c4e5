// internal/interfaces/http/handlers/common.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/config"
)

// terminalID resolves the calling terminal. Multi-terminal deployments send
// X-Terminal-ID; a bare terminal falls back to the configured one.
func terminalID(c *gin.Context, cfg *config.Config) string {
	if id := c.GetHeader("X-Terminal-ID"); id != "" {
		return id
	}
	return cfg.Store.TerminalID
}

// parseIDParam parses a numeric path parameter
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
