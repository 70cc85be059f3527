package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jkorir-dev/duka-pos/internal/config"
	"github.com/jkorir-dev/duka-pos/internal/domain/entity"
	domainRepo "github.com/jkorir-dev/duka-pos/internal/domain/repository"
	"github.com/jkorir-dev/duka-pos/internal/infrastructure/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteDB(&config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "duka.db"),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func TestCatalogRoundTrip(t *testing.T) {
	repo := NewCatalogRepository(newTestDB(t))
	ctx := context.Background()

	// Fresh store loads as empty, the signal for built-in defaults
	snapshot, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Items)
	assert.Empty(t, snapshot.Barcodes)

	saved := &domainRepo.CatalogSnapshot{
		Items: []entity.CatalogItem{
			{Name: "Apple", PriceCents: 5000, Stock: 20},
			{Name: "Banana", PriceCents: 2000, Stock: 50},
			{Name: "Milk", PriceCents: 3000, Stock: 30},
		},
		Barcodes: []entity.Barcode{
			{Code: "111000111", ItemName: "Apple"},
			{Code: "111000113", ItemName: "Milk"},
		},
	}
	require.NoError(t, repo.Replace(ctx, saved))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 3)

	// Same (name, price, stock) tuples in the same display order
	for i, item := range saved.Items {
		assert.Equal(t, item.Name, loaded.Items[i].Name)
		assert.Equal(t, item.PriceCents, loaded.Items[i].PriceCents)
		assert.Equal(t, item.Stock, loaded.Items[i].Stock)
	}
	assert.Equal(t, saved.Barcodes, loaded.Barcodes)

	// Replace rewrites the whole aggregate, not a merge
	require.NoError(t, repo.Replace(ctx, &domainRepo.CatalogSnapshot{
		Items: []entity.CatalogItem{{Name: "Soap", PriceCents: 4000, Stock: 40}},
	}))
	loaded, err = repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "Soap", loaded.Items[0].Name)
	assert.Empty(t, loaded.Barcodes)
}

func TestUserDirectoryRoundTrip(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	users, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	require.NoError(t, repo.Replace(ctx, []entity.User{
		{Username: "admin", Password: "$2a$10$hash", Role: entity.RoleAdmin},
		{Username: "wanjiku", Password: "$2a$10$hash2", Role: entity.RoleCashier},
	}))

	users, err = repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "admin", users[0].Username)
	assert.Equal(t, entity.RoleAdmin, users[0].Role)
	assert.Equal(t, "$2a$10$hash", users[0].Password)
	assert.Equal(t, "wanjiku", users[1].Username)
}

func TestReceiptHistoryRoundTrip(t *testing.T) {
	repo := NewReceiptRepository(newTestDB(t))
	ctx := context.Background()

	// No CreatedAt set, mirroring receipts built at checkout: the batch
	// insert stamps every row with the same timestamp.
	first := entity.Receipt{
		BillNo:        "BILL-0001",
		Customer:      "Guest",
		Cashier:       "admin",
		IssuedAt:      time.Now().Truncate(time.Second),
		SubTotalCents: 21000,
		TotalCents:    21000,
	}
	require.NoError(t, first.SetLines([]entity.ReceiptLine{
		{Item: "Apple", Quantity: 3, UnitPrice: 50, Total: 150},
		{Item: "Milk", Quantity: 2, UnitPrice: 30, Total: 60},
	}))
	second := entity.Receipt{
		BillNo:        "BILL-0002",
		Customer:      "Atieno",
		Cashier:       "wanjiku",
		IssuedAt:      time.Now().Truncate(time.Second),
		SubTotalCents: 10000,
		DiscountPct:   10,
		TaxPct:        5,
		TotalCents:    9450,
	}
	require.NoError(t, second.SetLines([]entity.ReceiptLine{
		{Item: "Hamper", Quantity: 1, UnitPrice: 100, Total: 100},
	}))
	third := entity.Receipt{
		BillNo:        "BILL-0003",
		Customer:      "Guest",
		Cashier:       "admin",
		IssuedAt:      time.Now().Truncate(time.Second),
		SubTotalCents: 2000,
		TotalCents:    2000,
	}
	require.NoError(t, third.SetLines([]entity.ReceiptLine{
		{Item: "Banana", Quantity: 1, UnitPrice: 20, Total: 20},
	}))

	require.NoError(t, repo.Replace(ctx, []entity.Receipt{first, second, third}))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)

	// Creation order survives even though the created_at stamps are tied
	assert.True(t, loaded[0].CreatedAt.Equal(loaded[1].CreatedAt))
	assert.Equal(t, "BILL-0001", loaded[0].BillNo)
	assert.Equal(t, "BILL-0002", loaded[1].BillNo)
	assert.Equal(t, "BILL-0003", loaded[2].BillNo)

	// All receipt fields round-trip
	assert.Equal(t, "admin", loaded[0].Cashier)
	assert.Equal(t, int64(21000), loaded[0].TotalCents)
	lines, err := loaded[0].GetLines()
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Apple", lines[0].Item)

	assert.Equal(t, "Atieno", loaded[1].Customer)
	assert.Equal(t, 10.0, loaded[1].DiscountPct)
	assert.Equal(t, 5.0, loaded[1].TaxPct)
	assert.Equal(t, 94.5, loaded[1].GetTotalDecimal())

	// A second save re-stamps the whole history; order still holds
	require.NoError(t, repo.Replace(ctx, loaded))
	loaded, err = repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, "BILL-0001", loaded[0].BillNo)
	assert.Equal(t, "BILL-0003", loaded[2].BillNo)
}
