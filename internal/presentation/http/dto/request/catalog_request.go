package request

// UpsertItemRequest represents an item create/replace request
type UpsertItemRequest struct {
	Name             string  `json:"name" binding:"required,max=255"`
	Price            float64 `json:"price" binding:"min=0"`
	Stock            int     `json:"stock" binding:"min=0"`
	Barcode          string  `json:"barcode" binding:"omitempty,max=64"`
	ConfirmOverwrite bool    `json:"confirm_overwrite"`
}
