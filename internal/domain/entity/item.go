package entity

import "encoding/json"

// CatalogItem represents one stocked item. The auto-increment ID doubles as
// the display position: list order is the order items were first created in.
type CatalogItem struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	Name       string `gorm:"size:255;uniqueIndex;not null" json:"name"`
	PriceCents int64  `gorm:"not null;default:0" json:"-"` // Stored in cents
	Stock      int    `gorm:"not null;default:0" json:"stock"`
}

// TableName returns the table name for the CatalogItem model
func (CatalogItem) TableName() string {
	return "catalog_items"
}

// GetPriceDecimal returns the unit price as a decimal (for display)
func (i *CatalogItem) GetPriceDecimal() float64 {
	return float64(i.PriceCents) / 100
}

// SetPriceFromDecimal sets the unit price from a decimal value
func (i *CatalogItem) SetPriceFromDecimal(price float64) {
	i.PriceCents = int64(price*100 + 0.5)
}

// MarshalJSON converts CatalogItem to JSON with a decimal price
func (i CatalogItem) MarshalJSON() ([]byte, error) {
	type Alias CatalogItem
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(i),
		Price: i.GetPriceDecimal(),
	})
}

// Barcode maps a scanned code to an item name. The mapping is a weak
// reference: it is never cascade-deleted, and a stale code simply resolves
// to an unknown item at scan time.
type Barcode struct {
	Code     string `gorm:"size:64;primaryKey" json:"code"`
	ItemName string `gorm:"size:255;not null" json:"item_name"`
}

// TableName returns the table name for the Barcode model
func (Barcode) TableName() string {
	return "barcodes"
}
