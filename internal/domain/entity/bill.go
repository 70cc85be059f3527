package entity

import "encoding/json"

// BillLine is a line item on the in-progress bill. The unit price is a
// snapshot taken when the line was added; later catalog edits do not
// retroactively change it.
type BillLine struct {
	Item           string `json:"item"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"-"`
	TotalCents     int64  `json:"-"`
}

// MarshalJSON converts BillLine to JSON with decimal amounts
func (l BillLine) MarshalJSON() ([]byte, error) {
	type Alias BillLine
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(l),
		UnitPrice: float64(l.UnitPriceCents) / 100,
		Total:     float64(l.TotalCents) / 100,
	})
}

// BillSnapshot is a read-only view of the active bill session, rendered by
// the GET /bill endpoint.
type BillSnapshot struct {
	BillNo   string     `json:"bill_no"`
	Lines    []BillLine `json:"lines"`
	SubTotal float64    `json:"sub_total"`
}
