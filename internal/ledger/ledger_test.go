package ledger

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/BozorlikBot/internal/metrics"
	"github.com/Kerhoff/BozorlikBot/internal/models"
)

type memoryRepo struct {
	records   map[string][]*models.PurchaseRecord
	appendErr error
	listErr   error
}

func (m *memoryRepo) Append(_ context.Context, userID string, r *models.PurchaseRecord) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	if m.records == nil {
		m.records = map[string][]*models.PurchaseRecord{}
	}
	m.records[userID] = append(m.records[userID], r)
	return nil
}

func (m *memoryRepo) ListByUser(_ context.Context, userID string) ([]*models.PurchaseRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.records[userID], nil
}

type recordingPublisher struct {
	published []string
	err       error
}

func (p *recordingPublisher) PublishListCompleted(_ context.Context, userID string, r *models.PurchaseRecord) error {
	p.published = append(p.published, userID+":"+r.ID)
	return p.err
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newLedger(repo *memoryRepo, pub Publisher) (*Ledger, *metrics.Metrics) {
	m := metrics.New(prometheus.NewRegistry())
	return New(repo, pub, m, quietLogger()), m
}

func TestNewRecord(t *testing.T) {
	list := models.ShoppingList{Sections: []models.Section{
		{Category: models.CategoryVegetables, Items: []models.Item{
			models.NewPurchasedItem("Лук", "1 кг", 15000),
			models.NewPurchasedItem("Укроп", "", 0),
		}},
		{Category: models.CategoryDairy, Items: []models.Item{
			models.NewItem("Молоко", "1 л"),
			models.NewPurchasedItem("Сыр", "200 г", 25000),
		}},
	}}
	at := time.Date(2024, 5, 1, 18, 30, 5, 0, time.Local)

	rec := NewRecord(list, 40000, at)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "2024-05-01 18:30:05", rec.Date)
	assert.Equal(t, int64(40000), rec.TotalCost)
	assert.Equal(t, []models.RecordItem{
		{Product: "Лук", Quantity: "1 кг", Category: "🥕 Овощи", Price: 15000},
		{Product: "Сыр", Quantity: "200 г", Category: "🥛 Молочные продукты", Price: 25000},
	}, rec.Items)

	parsed, err := rec.Time()
	require.NoError(t, err)
	assert.True(t, parsed.Equal(at))
}

func TestAppendAndTotals(t *testing.T) {
	repo := &memoryRepo{}
	pub := &recordingPublisher{}
	l, _ := newLedger(repo, pub)
	ctx := context.Background()

	assert.Equal(t, int64(0), l.TotalForUser(ctx, 5))
	assert.Empty(t, l.History(ctx, 5, 5))

	for i, cost := range []int64{1000, 2000, 3000} {
		l.AppendRecord(ctx, 5, &models.PurchaseRecord{ID: string(rune('a' + i)), TotalCost: cost})
	}
	l.AppendRecord(ctx, 6, &models.PurchaseRecord{ID: "z", TotalCost: 99})

	assert.Equal(t, int64(6000), l.TotalForUser(ctx, 5))
	assert.Equal(t, int64(99), l.TotalForUser(ctx, 6))

	last := l.History(ctx, 5, 2)
	require.Len(t, last, 2)
	assert.Equal(t, "b", last[0].ID)
	assert.Equal(t, "c", last[1].ID)
	assert.Len(t, l.History(ctx, 5, 0), 3)

	assert.Equal(t, []string{"5:a", "5:b", "5:c", "6:z"}, pub.published)
}

func TestStorageFailuresAreSwallowed(t *testing.T) {
	repo := &memoryRepo{appendErr: errors.New("disk full"), listErr: errors.New("permission denied")}
	pub := &recordingPublisher{}
	l, m := newLedger(repo, pub)
	ctx := context.Background()

	l.AppendRecord(ctx, 1, &models.PurchaseRecord{ID: "a", TotalCost: 10})

	assert.Empty(t, pub.published)
	assert.Equal(t, int64(0), l.TotalForUser(ctx, 1))
	assert.Nil(t, l.History(ctx, 1, 5))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LedgerErrors.WithLabelValues("append")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LedgerErrors.WithLabelValues("read")))
}

func TestPublishFailureKeepsRecord(t *testing.T) {
	repo := &memoryRepo{}
	l, m := newLedger(repo, &recordingPublisher{err: errors.New("broker down")})

	l.AppendRecord(context.Background(), 1, &models.PurchaseRecord{ID: "a", TotalCost: 10})

	assert.Equal(t, int64(10), l.TotalForUser(context.Background(), 1))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LedgerErrors.WithLabelValues("publish")))
}

func TestNilPublisher(t *testing.T) {
	l, _ := newLedger(&memoryRepo{}, nil)
	l.AppendRecord(context.Background(), 1, &models.PurchaseRecord{ID: "a", TotalCost: 10})
	assert.Equal(t, int64(10), l.TotalForUser(context.Background(), 1))
}
