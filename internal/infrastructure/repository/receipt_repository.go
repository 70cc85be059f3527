package repository

import (
	"context"

	"github.com/jkorir-dev/duka-pos/internal/domain/entity"
	domainRepo "github.com/jkorir-dev/duka-pos/internal/domain/repository"
	"gorm.io/gorm"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new bill history persistence gateway
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Load(ctx context.Context) ([]entity.Receipt, error) {
	// Replace batch-inserts the whole history in one statement, so every row
	// shares one created_at stamp; rowid is the only key that still carries
	// the insertion order.
	var receipts []entity.Receipt
	err := r.db.WithContext(ctx).Order("rowid ASC").Find(&receipts).Error
	return receipts, err
}

func (r *receiptRepository) Replace(ctx context.Context, receipts []entity.Receipt) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.Receipt{}).Error; err != nil {
			return err
		}
		if len(receipts) > 0 {
			if err := tx.Create(&receipts).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
