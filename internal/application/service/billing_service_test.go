package service

import (
	"context"
	"testing"

	"github.com/jkorir-dev/duka-pos/internal/domain/entity"
	"github.com/jkorir-dev/duka-pos/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRegister(t *testing.T) (*BillingService, *CatalogService, *LedgerService, *stubReceiptRepo) {
	t.Helper()
	catalog, _ := newTestCatalog(t)
	receiptRepo := &stubReceiptRepo{}
	ledger := NewLedgerService(receiptRepo, zap.NewNop())
	billing := NewBillingService(catalog, ledger, zap.NewNop())
	return billing, catalog, ledger, receiptRepo
}

func TestAddLineSnapshotsPriceAndCommitsStock(t *testing.T) {
	billing, catalog, _, _ := newTestRegister(t)

	require.NoError(t, billing.AddLine("Apple", 5))
	assert.Equal(t, 15, catalog.FindByName("Apple").Stock)

	// A later price edit does not change lines already added
	require.NoError(t, catalog.UpsertItem(&UpsertItemInput{Name: "Apple", Price: 99, Stock: 15}))

	snap := billing.Snapshot()
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, 50.0, float64(snap.Lines[0].UnitPriceCents)/100)
	assert.Equal(t, 250.0, snap.SubTotal)
}

func TestAddLineValidation(t *testing.T) {
	billing, catalog, _, _ := newTestRegister(t)

	assert.Error(t, billing.AddLine("", 1), "empty item")
	assert.Error(t, billing.AddLine("Apple", 0), "zero quantity")
	assert.Error(t, billing.AddLine("Apple", -3), "negative quantity")
	assert.Error(t, billing.AddLine("Caviar", 1), "item not in catalog")
	assert.Error(t, billing.AddLine("Apple", 21), "insufficient stock")

	// Nothing was committed
	assert.Equal(t, 20, catalog.FindByName("Apple").Stock)
	assert.Empty(t, billing.Snapshot().Lines)
	assert.Equal(t, 0.0, billing.Snapshot().SubTotal)
}

func TestSubtotalIsOrderIndependent(t *testing.T) {
	run := func(first, second string, qty1, qty2 int) float64 {
		billing, _, _, _ := newTestRegister(t)
		require.NoError(t, billing.AddLine(first, qty1))
		require.NoError(t, billing.AddLine(second, qty2))
		return billing.Snapshot().SubTotal
	}

	assert.Equal(t, run("Apple", "Milk", 3, 2), run("Milk", "Apple", 2, 3))
	assert.Equal(t, 3*50.0+2*30.0, run("Apple", "Milk", 3, 2))
}

func TestRemoveLineIsInverseOfAddLine(t *testing.T) {
	billing, catalog, _, _ := newTestRegister(t)

	require.NoError(t, billing.AddLine("Apple", 5))
	require.NoError(t, billing.RemoveLine(0))

	assert.Equal(t, 20, catalog.FindByName("Apple").Stock)
	assert.Equal(t, 0.0, billing.Snapshot().SubTotal)
	assert.Empty(t, billing.Snapshot().Lines)
}

func TestRemoveLineShiftsIndices(t *testing.T) {
	billing, _, _, _ := newTestRegister(t)

	require.NoError(t, billing.AddLine("Apple", 1))
	require.NoError(t, billing.AddLine("Milk", 1))
	require.NoError(t, billing.AddLine("Bread", 1))

	require.NoError(t, billing.RemoveLine(1))

	snap := billing.Snapshot()
	require.Len(t, snap.Lines, 2)
	assert.Equal(t, "Apple", snap.Lines[0].Item)
	assert.Equal(t, "Bread", snap.Lines[1].Item)

	assert.Error(t, billing.RemoveLine(2), "index out of range")
	assert.Error(t, billing.RemoveLine(-1), "negative index")
}

func TestRemoveLineKeepsBillWhenItemVanished(t *testing.T) {
	catalog, catalogRepo := newTestCatalog(t)
	ledger := NewLedgerService(&stubReceiptRepo{}, zap.NewNop())
	billing := NewBillingService(catalog, ledger, zap.NewNop())

	require.NoError(t, billing.AddLine("Apple", 2))

	// An admin reload drops Apple from the catalog before the removal
	catalogRepo.snapshot = repository.CatalogSnapshot{
		Items: []entity.CatalogItem{{Name: "Soap", PriceCents: 4000, Stock: 40}},
	}
	require.NoError(t, catalog.Reload(context.Background()))

	require.Error(t, billing.RemoveLine(0))

	// The failed stock restore leaves the session untouched
	snap := billing.Snapshot()
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, "Apple", snap.Lines[0].Item)
	assert.Equal(t, 100.0, snap.SubTotal)
}

func TestAddByBarcode(t *testing.T) {
	billing, catalog, _, _ := newTestRegister(t)

	require.NoError(t, billing.AddByBarcode("111000111"))

	snap := billing.Snapshot()
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, "Apple", snap.Lines[0].Item)
	assert.Equal(t, 1, snap.Lines[0].Quantity)
	assert.Equal(t, 19, catalog.FindByName("Apple").Stock)

	assert.Error(t, billing.AddByBarcode("999999999"), "unknown barcode")
}

func TestCheckoutDiscountAndTaxFormula(t *testing.T) {
	billing, catalog, _, _ := newTestRegister(t)
	require.NoError(t, catalog.UpsertItem(&UpsertItemInput{Name: "Hamper", Price: 100, Stock: 5}))
	require.NoError(t, billing.AddLine("Hamper", 1))

	receipt, err := billing.Checkout(context.Background(), &CheckoutInput{
		Customer:    "Atieno",
		DiscountPct: 10,
		TaxPct:      5,
		Cashier:     "admin",
	})
	require.NoError(t, err)

	// 100 -> 90 after 10% discount -> 94.5 after 5% tax
	assert.Equal(t, 100.0, receipt.GetSubTotalDecimal())
	assert.Equal(t, 94.5, receipt.GetTotalDecimal())
	assert.Equal(t, "Atieno", receipt.Customer)
	assert.Equal(t, "admin", receipt.Cashier)
	assert.Equal(t, "BILL-0001", receipt.BillNo)
	assert.False(t, receipt.IssuedAt.IsZero())
}

func TestCheckoutAppendsToLedgerAndResets(t *testing.T) {
	billing, _, ledger, receiptRepo := newTestRegister(t)

	require.NoError(t, billing.AddLine("Apple", 3))
	require.NoError(t, billing.AddLine("Milk", 2))

	receipt, err := billing.Checkout(context.Background(), &CheckoutInput{Cashier: "admin"})
	require.NoError(t, err)

	// 3*50 + 2*30 with no discount or tax
	assert.Equal(t, 210.0, receipt.GetTotalDecimal())
	assert.Equal(t, "Guest", receipt.Customer, "blank customer defaults to Guest")
	assert.Equal(t, 210.0, ledger.TotalSales())
	require.Len(t, ledger.All(), 1)

	lines, err := ledger.All()[0].GetLines()
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Apple", lines[0].Item)
	assert.Equal(t, 150.0, lines[0].Total)

	// Finalize triggers a bill history save
	assert.Equal(t, 1, receiptRepo.saves)

	// Session reset with the counter bumped
	snap := billing.Snapshot()
	assert.Equal(t, "BILL-0002", snap.BillNo)
	assert.Empty(t, snap.Lines)
	assert.Equal(t, 0.0, snap.SubTotal)
}

func TestCheckoutValidation(t *testing.T) {
	billing, _, _, _ := newTestRegister(t)
	ctx := context.Background()

	_, err := billing.Checkout(ctx, &CheckoutInput{Cashier: "admin"})
	assert.Error(t, err, "empty bill")

	require.NoError(t, billing.AddLine("Apple", 1))
	_, err = billing.Checkout(ctx, &CheckoutInput{DiscountPct: 120, Cashier: "admin"})
	assert.Error(t, err, "discount over 100")
	_, err = billing.Checkout(ctx, &CheckoutInput{DiscountPct: -1, Cashier: "admin"})
	assert.Error(t, err, "negative discount")
	_, err = billing.Checkout(ctx, &CheckoutInput{TaxPct: -1, Cashier: "admin"})
	assert.Error(t, err, "negative tax")

	// Bill untouched by rejected checkouts
	assert.Len(t, billing.Snapshot().Lines, 1)
	assert.Equal(t, "BILL-0001", billing.Snapshot().BillNo)
}

func TestCheckoutSaveFailureKeepsReceiptInMemory(t *testing.T) {
	billing, _, ledger, receiptRepo := newTestRegister(t)
	receiptRepo.failSave = true

	require.NoError(t, billing.AddLine("Apple", 1))
	receipt, err := billing.Checkout(context.Background(), &CheckoutInput{Cashier: "admin"})

	// The sale stands; only the flush needs retrying
	require.NoError(t, err)
	assert.NotNil(t, receipt)
	assert.Equal(t, 50.0, ledger.TotalSales())
	require.Len(t, ledger.All(), 1)
}

func TestNewBillAbandonsWithoutRestoringStock(t *testing.T) {
	billing, catalog, ledger, _ := newTestRegister(t)

	require.NoError(t, billing.AddLine("Apple", 5))
	billing.NewBill()

	snap := billing.Snapshot()
	assert.Empty(t, snap.Lines)
	assert.Equal(t, 0.0, snap.SubTotal)
	assert.Equal(t, "BILL-0002", snap.BillNo)

	// Stock was committed at add time and stays committed on abandon
	assert.Equal(t, 15, catalog.FindByName("Apple").Stock)
	assert.Empty(t, ledger.All())
}

func TestBillNumberStrictlyIncreases(t *testing.T) {
	billing, _, _, _ := newTestRegister(t)

	assert.Equal(t, "BILL-0001", billing.BillNumber())
	billing.NewBill()
	assert.Equal(t, "BILL-0002", billing.BillNumber())

	require.NoError(t, billing.AddLine("Apple", 1))
	_, err := billing.Checkout(context.Background(), &CheckoutInput{Cashier: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "BILL-0003", billing.BillNumber())
}
