// internal/interfaces/http/handlers/settings.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/settings"
	"gorm.io/gorm"
)

// SettingsHandler handles store settings endpoints
type SettingsHandler struct {
	settingsService *settings.Service
	config          *config.Config
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(db *gorm.DB, cfg *config.Config) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settings.NewService(db, cfg),
		config:          cfg,
	}
}

// GetSettings handles GET /settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	st, err := h.settingsService.Get()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load store settings",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": st,
	})
}

// UpdateSettings handles PUT /admin/settings. Changes apply to the next
// ticket; finalized sales keep the amounts they were computed with.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req settings.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	st, err := h.settingsService.Update(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Settings updated successfully",
		"data":    st,
	})
}
