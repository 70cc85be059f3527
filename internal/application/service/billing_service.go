package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/jkorir-dev/duka-pos/internal/domain/entity"
	"github.com/jkorir-dev/duka-pos/pkg/apperror"
	"go.uber.org/zap"
)

// BillingService owns the single active bill session. Lines accumulate
// against the catalog, stock is committed at add time, and checkout freezes
// the session into a receipt and resets it with the bill counter bumped.
type BillingService struct {
	catalog *CatalogService
	ledger  *LedgerService
	log     *zap.Logger

	mu          sync.Mutex
	billCounter int
	lines       []entity.BillLine
	subTotal    int64 // cents
}

// NewBillingService creates a new billing service with the counter at bill 1
func NewBillingService(catalog *CatalogService, ledger *LedgerService, log *zap.Logger) *BillingService {
	return &BillingService{
		catalog:     catalog,
		ledger:      ledger,
		log:         log,
		billCounter: 1,
	}
}

// CheckoutInput represents the finalize request for the active bill
type CheckoutInput struct {
	Customer    string
	DiscountPct float64
	TaxPct      float64
	Cashier     string
}

// BillNumber returns the current bill number, e.g. BILL-0001
func (s *BillingService) BillNumber() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.billNumber()
}

func (s *BillingService) billNumber() string {
	return fmt.Sprintf("BILL-%04d", s.billCounter)
}

// AddLine validates the item and quantity against the catalog, decrements
// stock immediately and appends a line with the current price snapshot.
func (s *BillingService) AddLine(itemName string, qty int) error {
	itemName = strings.TrimSpace(itemName)
	if itemName == "" {
		return apperror.NewValidationError("Item name is required")
	}
	if qty <= 0 {
		return apperror.NewValidationError("Quantity must be a positive integer")
	}

	item := s.catalog.FindByName(itemName)
	if item == nil {
		return apperror.NewNotFoundError("Item")
	}

	if err := s.catalog.DecrementStock(itemName, qty); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	total := item.PriceCents * int64(qty)
	s.lines = append(s.lines, entity.BillLine{
		Item:           item.Name,
		Quantity:       qty,
		UnitPriceCents: item.PriceCents,
		TotalCents:     total,
	})
	s.subTotal += total
	return nil
}

// AddByBarcode resolves a scanned code and adds one unit of the item
func (s *BillingService) AddByBarcode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return apperror.NewValidationError("Barcode is required")
	}
	itemName, ok := s.catalog.FindByBarcode(code)
	if !ok {
		return apperror.NewNotFoundError("Barcode")
	}
	return s.AddLine(itemName, 1)
}

// RemoveLine deletes the line at index, restoring its quantity to catalog
// stock. Stock is restored first; if the item has meanwhile left the catalog
// the line stays on the bill and the error is returned. Lines above the
// removed index shift down.
func (s *BillingService) RemoveLine(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.lines) {
		return apperror.NewBadRequestError("No bill line at that position")
	}
	line := s.lines[index]
	if err := s.catalog.IncrementStock(line.Item, line.Quantity); err != nil {
		return err
	}

	s.lines = append(s.lines[:index], s.lines[index+1:]...)
	s.subTotal -= line.TotalCents
	if s.subTotal < 0 {
		s.subTotal = 0
	}
	return nil
}

// Checkout finalizes the active bill: computes the discounted, taxed total,
// appends the receipt to the ledger, flushes the ledger through the
// persistence gateway and resets the session. A failed ledger save is
// reported in the log but the receipt stays in memory; retry the save, not
// the sale.
func (s *BillingService) Checkout(ctx context.Context, input *CheckoutInput) (*entity.Receipt, error) {
	if input.DiscountPct < 0 || input.DiscountPct > 100 {
		return nil, apperror.NewValidationError("Discount must be between 0 and 100")
	}
	if input.TaxPct < 0 {
		return nil, apperror.NewValidationError("Tax must be a non-negative percentage")
	}

	s.mu.Lock()
	if len(s.lines) == 0 {
		s.mu.Unlock()
		return nil, apperror.NewStateError("No items in bill")
	}

	customer := strings.TrimSpace(input.Customer)
	if customer == "" {
		customer = "Guest"
	}

	discounted := s.subTotal - int64(math.Round(float64(s.subTotal)*input.DiscountPct/100))
	finalTotal := discounted + int64(math.Round(float64(discounted)*input.TaxPct/100))

	receiptLines := make([]entity.ReceiptLine, len(s.lines))
	for i, line := range s.lines {
		receiptLines[i] = entity.ReceiptLine{
			Item:      line.Item,
			Quantity:  line.Quantity,
			UnitPrice: float64(line.UnitPriceCents) / 100,
			Total:     float64(line.TotalCents) / 100,
		}
	}

	receipt := &entity.Receipt{
		BillNo:        s.billNumber(),
		Customer:      customer,
		Cashier:       input.Cashier,
		IssuedAt:      time.Now(),
		SubTotalCents: s.subTotal,
		DiscountPct:   input.DiscountPct,
		TaxPct:        input.TaxPct,
		TotalCents:    finalTotal,
	}
	if err := receipt.SetLines(receiptLines); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	s.reset()
	s.mu.Unlock()

	s.ledger.Append(receipt)
	if err := s.ledger.Save(ctx); err != nil {
		s.log.Warn("receipt recorded but ledger save failed", zap.String("bill_no", receipt.BillNo), zap.Error(err))
	}

	s.log.Info("bill finalized",
		zap.String("bill_no", receipt.BillNo),
		zap.String("cashier", receipt.Cashier),
		zap.Float64("total", receipt.GetTotalDecimal()),
	)
	return receipt, nil
}

// NewBill abandons the active bill and starts a fresh one. Stock consumed
// by the abandoned lines is not restored; it was committed when each line
// was added. Remove lines first to put stock back.
func (s *BillingService) NewBill() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// reset clears the session and bumps the bill counter. Caller must hold mu.
func (s *BillingService) reset() {
	s.lines = nil
	s.subTotal = 0
	s.billCounter++
}

// Snapshot returns a read-only view of the active bill
func (s *BillingService) Snapshot() *entity.BillSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]entity.BillLine, len(s.lines))
	copy(lines, s.lines)

	return &entity.BillSnapshot{
		BillNo:   s.billNumber(),
		Lines:    lines,
		SubTotal: float64(s.subTotal) / 100,
	}
}
