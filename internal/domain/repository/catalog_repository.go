package repository

import (
	"context"

	"github.com/jkorir-dev/duka-pos/internal/domain/entity"
)

// CatalogSnapshot is the persisted form of the catalog aggregate: the item
// rows in display order plus the barcode mappings, saved and loaded as one
// unit.
type CatalogSnapshot struct {
	Items    []entity.CatalogItem
	Barcodes []entity.Barcode
}

// CatalogRepository is the persistence gateway for the catalog aggregate.
// Load returns an empty snapshot when nothing has been persisted yet;
// Replace atomically rewrites the whole aggregate.
type CatalogRepository interface {
	Load(ctx context.Context) (*CatalogSnapshot, error)
	Replace(ctx context.Context, snapshot *CatalogSnapshot) error
}
