package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jkorir-dev/duka-pos/internal/application/service"
	"github.com/jkorir-dev/duka-pos/internal/presentation/http/dto/request"
	"github.com/jkorir-dev/duka-pos/internal/presentation/http/dto/response"
)

// BillingHandler handles the active bill session HTTP requests
type BillingHandler struct {
	billingService *service.BillingService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// Get handles GET /bill
func (h *BillingHandler) Get(c *gin.Context) {
	response.OK(c, "Active bill retrieved successfully", h.billingService.Snapshot())
}

// AddLine handles POST /bill/lines
func (h *BillingHandler) AddLine(c *gin.Context) {
	var req request.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Item and a positive quantity are required")
		return
	}

	if err := h.billingService.AddLine(req.Item, req.Quantity); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item added to bill", h.billingService.Snapshot())
}

// Scan handles POST /bill/scan
func (h *BillingHandler) Scan(c *gin.Context) {
	var req request.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Barcode is required")
		return
	}

	if err := h.billingService.AddByBarcode(req.Barcode); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item added to bill", h.billingService.Snapshot())
}

// RemoveLine handles DELETE /bill/lines/:index
func (h *BillingHandler) RemoveLine(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "Line index must be an integer")
		return
	}

	if err := h.billingService.RemoveLine(index); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item removed from bill", h.billingService.Snapshot())
}

// Checkout handles POST /bill/checkout
func (h *BillingHandler) Checkout(c *gin.Context) {
	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid discount or tax values")
		return
	}

	receipt, err := h.billingService.Checkout(c.Request.Context(), &service.CheckoutInput{
		Customer:    req.Customer,
		DiscountPct: req.DiscountPct,
		TaxPct:      req.TaxPct,
		Cashier:     GetUsername(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Bill finalized", receipt)
}

// NewBill handles POST /bill/new
func (h *BillingHandler) NewBill(c *gin.Context) {
	h.billingService.NewBill()
	response.OK(c, "Started a new bill", h.billingService.Snapshot())
}
