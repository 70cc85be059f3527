package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jkorir-dev/duka-pos/internal/application/service"
	"github.com/jkorir-dev/duka-pos/internal/presentation/http/dto/response"
)

// LedgerHandler handles bill history HTTP requests
type LedgerHandler struct {
	ledgerService *service.LedgerService
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerService *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// List handles GET /bills
func (h *LedgerHandler) List(c *gin.Context) {
	response.OK(c, "Bill history retrieved successfully", h.ledgerService.All())
}

// Total handles GET /bills/total
func (h *LedgerHandler) Total(c *gin.Context) {
	response.OK(c, "Total sales retrieved successfully", gin.H{
		"total_sales": h.ledgerService.TotalSales(),
	})
}

// Save handles POST /bills/save
func (h *LedgerHandler) Save(c *gin.Context) {
	if err := h.ledgerService.Save(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Bills saved successfully", nil)
}

// Reload handles POST /bills/reload
func (h *LedgerHandler) Reload(c *gin.Context) {
	if err := h.ledgerService.Reload(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Bills reloaded", h.ledgerService.All())
}
