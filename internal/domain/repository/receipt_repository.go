package repository

import (
	"context"

	"github.com/jkorir-dev/duka-pos/internal/domain/entity"
)

// ReceiptRepository is the persistence gateway for the bill history
// aggregate. Receipts are returned in creation order.
type ReceiptRepository interface {
	Load(ctx context.Context) ([]entity.Receipt, error)
	Replace(ctx context.Context, receipts []entity.Receipt) error
}
