package request

// AddLineRequest represents adding an item to the active bill
type AddLineRequest struct {
	Item     string `json:"item" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// ScanRequest represents a barcode scan, which adds one unit of the item
type ScanRequest struct {
	Barcode string `json:"barcode" binding:"required"`
}

// CheckoutRequest represents finalizing the active bill
type CheckoutRequest struct {
	Customer    string  `json:"customer"`
	DiscountPct float64 `json:"discount_pct" binding:"min=0,max=100"`
	TaxPct      float64 `json:"tax_pct" binding:"min=0"`
}
