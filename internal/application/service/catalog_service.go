package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jkorir-dev/duka-pos/internal/domain/entity"
	"github.com/jkorir-dev/duka-pos/internal/domain/repository"
	"github.com/jkorir-dev/duka-pos/pkg/apperror"
	"go.uber.org/zap"
)

// CatalogService is the in-process source of truth for items, prices, stock
// and barcode mappings. All mutations happen in memory; the persistence
// gateway is invoked explicitly via Save and Reload.
type CatalogService struct {
	repo repository.CatalogRepository
	log  *zap.Logger

	mu       sync.Mutex
	items    map[string]*entity.CatalogItem
	order    []string          // item names in first-creation order
	barcodes map[string]string // barcode -> item name
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo repository.CatalogRepository, log *zap.Logger) *CatalogService {
	return &CatalogService{
		repo:     repo,
		log:      log,
		items:    make(map[string]*entity.CatalogItem),
		barcodes: make(map[string]string),
	}
}

// CatalogEntry is one row of the stock listing
type CatalogEntry struct {
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Stock   int     `json:"stock"`
	Barcode string  `json:"barcode,omitempty"`
}

// UpsertItemInput represents an item create/replace request
type UpsertItemInput struct {
	Name             string
	Price            float64
	Stock            int
	Barcode          string
	ConfirmOverwrite bool
}

// UpsertItem creates an item or fully replaces its price and stock. A
// barcode already bound to a different item is only reassigned when the
// caller confirms the overwrite.
func (s *CatalogService) UpsertItem(input *UpsertItemInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return apperror.NewValidationError("Item name is required")
	}
	if input.Price < 0 {
		return apperror.NewValidationError("Price must be a non-negative number")
	}
	if input.Stock < 0 {
		return apperror.NewValidationError("Stock must be a non-negative number")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	barcode := strings.TrimSpace(input.Barcode)
	if barcode != "" {
		if existing, ok := s.barcodes[barcode]; ok && existing != name {
			if !input.ConfirmOverwrite {
				return apperror.NewStateError(fmt.Sprintf("Barcode already assigned to '%s'; confirm to overwrite", existing))
			}
		}
		s.barcodes[barcode] = name
	}

	item, exists := s.items[name]
	if !exists {
		item = &entity.CatalogItem{Name: name}
		s.items[name] = item
		s.order = append(s.order, name)
	}
	item.SetPriceFromDecimal(input.Price)
	item.Stock = input.Stock

	return nil
}

// FindByName returns a copy of the named item, or nil when absent
func (s *CatalogService) FindByName(name string) *entity.CatalogItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[name]
	if !ok {
		return nil
	}
	copied := *item
	return &copied
}

// FindByBarcode resolves a scanned code to an item name. Stale codes whose
// item no longer exists resolve to not-found.
func (s *CatalogService) FindByBarcode(code string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, ok := s.barcodes[code]
	if !ok {
		return "", false
	}
	if _, exists := s.items[name]; !exists {
		return "", false
	}
	return name, true
}

// DecrementStock reduces an item's stock by qty. It fails without mutating
// anything when the item is unknown or qty exceeds the available stock, so
// stock never goes negative.
func (s *CatalogService) DecrementStock(name string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[name]
	if !ok {
		return apperror.NewNotFoundError("Item")
	}
	if qty > item.Stock {
		return apperror.NewStateError(fmt.Sprintf("Insufficient stock for %s: only %d left", name, item.Stock))
	}
	item.Stock -= qty
	return nil
}

// IncrementStock restores qty units of an item, used when a bill line is
// removed.
func (s *CatalogService) IncrementStock(name string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[name]
	if !ok {
		return apperror.NewNotFoundError("Item")
	}
	item.Stock += qty
	return nil
}

// ListAll returns every item in first-creation order with its barcode, if any
func (s *CatalogService) ListAll() []CatalogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]CatalogEntry, 0, len(s.order))
	for _, name := range s.order {
		item := s.items[name]
		entries = append(entries, CatalogEntry{
			Name:    item.Name,
			Price:   item.GetPriceDecimal(),
			Stock:   item.Stock,
			Barcode: s.barcodeForItem(name),
		})
	}
	return entries
}

// Search looks up a single item by exact name for the search dialog
func (s *CatalogService) Search(name string) (*CatalogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[name]
	if !ok {
		return nil, apperror.NewNotFoundError("Item")
	}
	return &CatalogEntry{
		Name:    item.Name,
		Price:   item.GetPriceDecimal(),
		Stock:   item.Stock,
		Barcode: s.barcodeForItem(name),
	}, nil
}

// barcodeForItem returns the lowest code bound to the item. Caller must hold mu.
func (s *CatalogService) barcodeForItem(name string) string {
	var codes []string
	for code, item := range s.barcodes {
		if item == name {
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		return ""
	}
	sort.Strings(codes)
	return codes[0]
}

// Save flushes the catalog aggregate through the persistence gateway. The
// in-memory state is kept regardless of the outcome; a failed save should be
// retried, not rolled back.
func (s *CatalogService) Save(ctx context.Context) error {
	s.mu.Lock()
	snapshot := s.snapshot()
	s.mu.Unlock()

	if err := s.repo.Replace(ctx, snapshot); err != nil {
		s.log.Warn("failed to save catalog", zap.Error(err))
		return apperror.NewIOError("Failed to save catalog")
	}
	return nil
}

// Reload replaces the in-memory catalog with the persisted aggregate. A
// missing or unreadable store falls back to the built-in starter catalog.
func (s *CatalogService) Reload(ctx context.Context) error {
	snapshot, err := s.repo.Load(ctx)
	if err != nil {
		s.log.Warn("failed to load catalog, using built-in defaults", zap.Error(err))
		snapshot = &repository.CatalogSnapshot{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]*entity.CatalogItem, len(snapshot.Items))
	s.order = s.order[:0]
	s.barcodes = make(map[string]string, len(snapshot.Barcodes))

	for i := range snapshot.Items {
		item := snapshot.Items[i]
		if _, exists := s.items[item.Name]; exists {
			continue
		}
		s.items[item.Name] = &item
		s.order = append(s.order, item.Name)
	}
	for _, bc := range snapshot.Barcodes {
		s.barcodes[bc.Code] = bc.ItemName
	}

	if len(s.items) == 0 {
		s.installDefaults()
	}
	return nil
}

// snapshot builds the persisted form of the aggregate. Caller must hold mu.
func (s *CatalogService) snapshot() *repository.CatalogSnapshot {
	snapshot := &repository.CatalogSnapshot{
		Items:    make([]entity.CatalogItem, 0, len(s.order)),
		Barcodes: make([]entity.Barcode, 0, len(s.barcodes)),
	}
	for _, name := range s.order {
		snapshot.Items = append(snapshot.Items, *s.items[name])
	}
	codes := make([]string, 0, len(s.barcodes))
	for code := range s.barcodes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		snapshot.Barcodes = append(snapshot.Barcodes, entity.Barcode{Code: code, ItemName: s.barcodes[code]})
	}
	return snapshot
}

// installDefaults seeds the starter catalog used on a fresh register.
// Caller must hold mu.
func (s *CatalogService) installDefaults() {
	defaults := []struct {
		name  string
		price float64
		stock int
	}{
		{"Apple", 50.0, 20},
		{"Banana", 20.0, 50},
		{"Milk", 30.0, 30},
		{"Bread", 25.0, 25},
		{"Soap", 40.0, 40},
	}
	for _, d := range defaults {
		item := &entity.CatalogItem{Name: d.name, Stock: d.stock}
		item.SetPriceFromDecimal(d.price)
		s.items[d.name] = item
		s.order = append(s.order, d.name)
	}

	s.barcodes["111000111"] = "Apple"
	s.barcodes["111000112"] = "Banana"
	s.barcodes["111000113"] = "Milk"

	s.log.Info("catalog store empty, installed starter catalog", zap.Int("items", len(defaults)))
}
