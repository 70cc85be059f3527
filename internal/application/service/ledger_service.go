package service

import (
	"context"
	"sync"

	"github.com/jkorir-dev/duka-pos/internal/domain/entity"
	"github.com/jkorir-dev/duka-pos/internal/domain/repository"
	"github.com/jkorir-dev/duka-pos/pkg/apperror"
	"go.uber.org/zap"
)

// LedgerService is the append-only history of finalized receipts plus the
// running sales total across the process lifetime.
type LedgerService struct {
	repo repository.ReceiptRepository
	log  *zap.Logger

	mu         sync.Mutex
	receipts   []entity.Receipt
	totalCents int64
}

// NewLedgerService creates a new ledger service
func NewLedgerService(repo repository.ReceiptRepository, log *zap.Logger) *LedgerService {
	return &LedgerService{repo: repo, log: log}
}

// Append records a finalized receipt and adds its total to the running sum
func (s *LedgerService) Append(receipt *entity.Receipt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receipts = append(s.receipts, *receipt)
	s.totalCents += receipt.TotalCents
}

// All returns the receipts in creation order
func (s *LedgerService) All() []entity.Receipt {
	s.mu.Lock()
	defer s.mu.Unlock()
	receipts := make([]entity.Receipt, len(s.receipts))
	copy(receipts, s.receipts)
	return receipts
}

// TotalSales returns the aggregate of all finalized bill totals as a decimal
func (s *LedgerService) TotalSales() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return float64(s.totalCents) / 100
}

// Save flushes the bill history through the persistence gateway
func (s *LedgerService) Save(ctx context.Context) error {
	s.mu.Lock()
	receipts := make([]entity.Receipt, len(s.receipts))
	copy(receipts, s.receipts)
	s.mu.Unlock()

	if err := s.repo.Replace(ctx, receipts); err != nil {
		s.log.Warn("failed to save bill history", zap.Error(err))
		return apperror.NewIOError("Failed to save bill history")
	}
	return nil
}

// Reload replaces the in-memory history with the persisted aggregate and
// recomputes the running total. A read failure is logged and leaves the
// history empty.
func (s *LedgerService) Reload(ctx context.Context) error {
	receipts, err := s.repo.Load(ctx)
	if err != nil {
		s.log.Warn("failed to load bill history, starting empty", zap.Error(err))
		receipts = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.receipts = receipts
	s.totalCents = 0
	for i := range receipts {
		s.totalCents += receipts[i].TotalCents
	}
	return nil
}
