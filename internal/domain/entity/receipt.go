package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ReceiptLine is a single line item frozen onto a receipt, display-ready
// with decimal amounts.
type ReceiptLine struct {
	Item      string  `json:"item"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// Receipt is the immutable record of a finalized bill. It is created once
// at checkout, appended to the ledger and never mutated.
type Receipt struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BillNo        string         `gorm:"size:20;not null" json:"bill_no"`
	Customer      string         `gorm:"size:255;not null;default:'Guest'" json:"customer"`
	Cashier       string         `gorm:"size:255;not null" json:"cashier"`
	IssuedAt      time.Time      `gorm:"not null" json:"issued_at"`
	Lines         datatypes.JSON `gorm:"not null" json:"-"`
	SubTotalCents int64          `gorm:"not null" json:"-"` // Stored in cents
	DiscountPct   float64        `gorm:"not null;default:0" json:"discount_pct"`
	TaxPct        float64        `gorm:"not null;default:0" json:"tax_pct"`
	TotalCents    int64          `gorm:"not null" json:"-"` // Stored in cents
	CreatedAt     time.Time      `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// SetLines serializes the line items into the JSON column
func (r *Receipt) SetLines(lines []ReceiptLine) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	r.Lines = datatypes.JSON(raw)
	return nil
}

// GetLines deserializes the line items from the JSON column
func (r *Receipt) GetLines() ([]ReceiptLine, error) {
	var lines []ReceiptLine
	if len(r.Lines) == 0 {
		return lines, nil
	}
	err := json.Unmarshal(r.Lines, &lines)
	return lines, err
}

// GetTotalDecimal returns the final total as a decimal
func (r *Receipt) GetTotalDecimal() float64 {
	return float64(r.TotalCents) / 100
}

// GetSubTotalDecimal returns the subtotal as a decimal
func (r *Receipt) GetSubTotalDecimal() float64 {
	return float64(r.SubTotalCents) / 100
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (r Receipt) MarshalJSON() ([]byte, error) {
	type Alias Receipt
	lines, _ := r.GetLines()
	return json.Marshal(&struct {
		Alias
		Items    []ReceiptLine `json:"items"`
		SubTotal float64       `json:"sub_total"`
		Total    float64       `json:"total"`
	}{
		Alias:    Alias(r),
		Items:    lines,
		SubTotal: r.GetSubTotalDecimal(),
		Total:    r.GetTotalDecimal(),
	})
}
