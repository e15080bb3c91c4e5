// internal/interfaces/http/handlers/sync.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/sale"
	domainsync "github.com/your-org/pos-backend/internal/domain/sync"
	"gorm.io/gorm"
)

// SyncHandler handles connectivity and reconciliation endpoints
type SyncHandler struct {
	db       *gorm.DB
	notifier *domainsync.Notifier
	queue    *domainsync.Queue
	config   *config.Config
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(db *gorm.DB, notifier *domainsync.Notifier, queue *domainsync.Queue, cfg *config.Config) *SyncHandler {
	return &SyncHandler{
		db:       db,
		notifier: notifier,
		queue:    queue,
		config:   cfg,
	}
}

// ConnectivityRequest represents an externally reported connectivity state
type ConnectivityRequest struct {
	Online *bool `json:"online" binding:"required"`
}

// GetStatus handles GET /sync/status
func (h *SyncHandler) GetStatus(c *gin.Context) {
	var pending int64
	if err := h.db.Model(&sale.Sale{}).Where("is_synced = ?", false).Count(&pending).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to count pending sales",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"online":        h.notifier.IsOnline(),
			"syncing":       h.queue.Syncing(),
			"pending_sales": pending,
		},
	})
}

// SetConnectivity handles PUT /sync/connectivity. Reporting a transition to
// online kicks off a background replay of pending sales.
func (h *SyncHandler) SetConnectivity(c *gin.Context) {
	var req ConnectivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	h.notifier.SetOnline(*req.Online)

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"online": h.notifier.IsOnline(),
		},
	})
}

// TriggerSync handles POST /sync. Manual replay for the back-office button;
// the automatic path goes through connectivity transitions.
func (h *SyncHandler) TriggerSync(c *gin.Context) {
	if !h.notifier.IsOnline() {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Terminal is offline",
		})
		return
	}

	synced, err := h.queue.SyncPending(c.Request.Context())
	if err != nil {
		if errors.Is(err, domainsync.ErrSyncInProgress) {
			c.JSON(http.StatusConflict, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sync completed",
		"data": gin.H{
			"synced_sales": synced,
		},
	})
}
