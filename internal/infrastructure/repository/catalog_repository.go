package repository

import (
	"context"

	"github.com/jkorir-dev/duka-pos/internal/domain/entity"
	domainRepo "github.com/jkorir-dev/duka-pos/internal/domain/repository"
	"gorm.io/gorm"
)

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog persistence gateway
func NewCatalogRepository(db *gorm.DB) domainRepo.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) Load(ctx context.Context) (*domainRepo.CatalogSnapshot, error) {
	var snapshot domainRepo.CatalogSnapshot

	if err := r.db.WithContext(ctx).Order("id ASC").Find(&snapshot.Items).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&snapshot.Barcodes).Error; err != nil {
		return nil, err
	}

	return &snapshot, nil
}

func (r *catalogRepository) Replace(ctx context.Context, snapshot *domainRepo.CatalogSnapshot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.CatalogItem{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.Barcode{}).Error; err != nil {
			return err
		}

		if len(snapshot.Items) > 0 {
			// Fresh IDs so row order matches the in-memory display order.
			items := make([]entity.CatalogItem, len(snapshot.Items))
			copy(items, snapshot.Items)
			for i := range items {
				items[i].ID = 0
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		if len(snapshot.Barcodes) > 0 {
			if err := tx.Create(&snapshot.Barcodes).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
