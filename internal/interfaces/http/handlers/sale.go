// internal/interfaces/http/handlers/sale.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/sale"
	"github.com/your-org/pos-backend/internal/domain/settings"
	"github.com/your-org/pos-backend/internal/interfaces/http/middleware"
	"github.com/your-org/pos-backend/internal/pkg/export"
	"github.com/your-org/pos-backend/internal/pkg/receipt"
	"gorm.io/gorm"
)

// SaleHandler handles finalized ticket endpoints
type SaleHandler struct {
	saleService     *sale.Service
	settingsService *settings.Service
	receiptService  *receipt.Service
	config          *config.Config
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, connectivity sale.ConnectivityProbe) *SaleHandler {
	return &SaleHandler{
		saleService:     sale.NewService(db, redisClient, cfg, connectivity),
		settingsService: settings.NewService(db, cfg),
		receiptService:  receipt.NewService(cfg),
		config:          cfg,
	}
}

// Finalize handles POST /sales. The cashier comes from the shift token, not
// the request body.
func (h *SaleHandler) Finalize(c *gin.Context) {
	var req sale.FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if cashierID, ok := middleware.GetUserIDFromContext(c); ok {
		req.CashierID = cashierID
	}

	newSale, err := h.saleService.Finalize(c.Request.Context(), terminalID(c, h.config), &req)
	if err != nil {
		if errors.Is(err, sale.ErrEmptyCart) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Sale finalized successfully",
		"data":    newSale,
	})
}

// GetSale handles GET /sales/:id
func (h *SaleHandler) GetSale(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid sale ID",
		})
		return
	}

	sl, err := h.saleService.GetSale(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": sl,
	})
}

// ListSales handles GET /sales
func (h *SaleHandler) ListSales(c *gin.Context) {
	var req sale.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	response, err := h.saleService.ListSales(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve sales",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": response,
	})
}

// GetReceipt handles GET /sales/:id/receipt, returning the ticket as PDF
func (h *SaleHandler) GetReceipt(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid sale ID",
		})
		return
	}

	sl, err := h.saleService.GetSale(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	st, err := h.settingsService.Get()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load store settings",
		})
		return
	}

	pdf, err := h.receiptService.GenerateTicket(st, sl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate receipt",
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=ticket-%s.pdf", sl.SaleNumber))
	c.Data(http.StatusOK, "application/pdf", pdf.Bytes())
}

// GetLastReceipt handles GET /sales/last-receipt, for reprinting the most
// recent ticket on this terminal
func (h *SaleHandler) GetLastReceipt(c *gin.Context) {
	sl, err := h.saleService.LastReceipt(c.Request.Context(), terminalID(c, h.config))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No recent receipt for this terminal",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": sl,
	})
}

// ExportSales handles GET /sales/export, returning matching sales as CSV
func (h *SaleHandler) ExportSales(c *gin.Context) {
	var req sale.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	sales, err := h.saleService.ExportSales(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to export sales",
		})
		return
	}

	csv, err := export.SalesCSV(sales)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to encode sales CSV",
		})
		return
	}

	filename := fmt.Sprintf("sales-%s.csv", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv", csv.Bytes())
}
