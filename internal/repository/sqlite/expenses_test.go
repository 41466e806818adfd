package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/BozorlikBot/internal/config"
	"github.com/Kerhoff/BozorlikBot/internal/models"
)

func newTestRepo(t *testing.T) *expenseRepository {
	t.Helper()
	db, err := config.NewDatabase(config.StorageSQLite, filepath.Join(t.TempDir(), "expenses.db"), logrus.New())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())
	return NewExpenseRepository(db.DB).(*expenseRepository)
}

func TestAppendAndList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := &models.PurchaseRecord{
		ID:        "a",
		Date:      "2024-05-01 10:00:00",
		TotalCost: 27000,
		Items: []models.RecordItem{
			{Product: "Молоко", Quantity: "1 л", Category: "🥛 Молочные продукты", Price: 12000},
			{Product: "Сыр", Category: "🥛 Молочные продукты", Price: 15000},
		},
	}
	second := &models.PurchaseRecord{ID: "b", Date: "2024-05-02 11:00:00", TotalCost: 500}

	require.NoError(t, repo.Append(ctx, "7", first))
	require.NoError(t, repo.Append(ctx, "7", second))
	require.NoError(t, repo.Append(ctx, "8", &models.PurchaseRecord{ID: "c", Date: "2024-05-03 12:00:00", TotalCost: 1}))

	records, err := repo.ListByUser(ctx, "7")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, first, records[0])
	assert.Equal(t, "b", records[1].ID)
	assert.Empty(t, records[1].Items)

	none, err := repo.ListByUser(ctx, "9")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDuplicateIDRejected(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	rec := &models.PurchaseRecord{ID: "same", Date: "2024-05-01 10:00:00"}

	require.NoError(t, repo.Append(ctx, "1", rec))
	assert.Error(t, repo.Append(ctx, "1", rec))
}

func TestConcurrentAppends(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := &models.PurchaseRecord{ID: string(rune('a' + i)), Date: "2024-05-01 10:00:00", TotalCost: int64(i)}
			assert.NoError(t, repo.Append(ctx, "1", rec))
		}(i)
	}
	wg.Wait()

	records, err := repo.ListByUser(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, records, 20)
}
