package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/BozorlikBot/internal/ledger"
	"github.com/Kerhoff/BozorlikBot/internal/metrics"
	"github.com/Kerhoff/BozorlikBot/internal/models"
	"github.com/Kerhoff/BozorlikBot/internal/repository/jsonfile"
	"github.com/Kerhoff/BozorlikBot/internal/service"
	"github.com/Kerhoff/BozorlikBot/internal/session"
)

type listOracle struct{}

func (listOracle) Classify(context.Context, string) (string, error) {
	return "🥕 Овощи:\n• Лук — 1 кг\n• Морковь — 2 кг", nil
}

func (listOracle) ExtractPurchases(context.Context, string, []string) ([]models.PurchaseMatch, error) {
	return []models.PurchaseMatch{{Name: "лук", Price: 15000}}, nil
}

func (listOracle) ExtractEdits(context.Context, string) ([]models.Change, error) {
	return nil, nil
}

func (listOracle) Transcribe(context.Context, string, io.Reader) (string, error) {
	return "", nil
}

func newTestServer(t *testing.T) (*Server, *service.Service, *ledger.Ledger) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	m := metrics.New(prometheus.NewRegistry())
	repo := jsonfile.NewExpenseRepository(filepath.Join(t.TempDir(), "expenses.json"), logger)
	l := ledger.New(repo, nil, m, logger)
	svc := service.New(session.NewStore(), listOracle{}, l, m, logger)
	return NewServer(svc, logger), svc, l
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := get(t, s, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGetList(t *testing.T) {
	s, svc, _ := newTestServer(t)

	rec := get(t, s, "/api/users/7/list")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	_, err := svc.ProcessText(context.Background(), 7, "лук, морковь")
	require.NoError(t, err)
	_, err = svc.ProcessText(context.Background(), 7, "купил лук")
	require.NoError(t, err)

	rec = get(t, s, "/api/users/7/list")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(7), body.UserID)
	require.Len(t, body.Sections, 1)
	assert.Equal(t, models.CategoryVegetables, body.Sections[0].Category)
	assert.True(t, body.Sections[0].Items[0].Purchased)
	assert.Equal(t, "🥕 Овощи:\n✅ Лук — 1 кг - 15.000 сум\n• Морковь — 2 кг", body.Text)
	assert.Equal(t, 50, body.Progress.Percentage)
	assert.Equal(t, int64(15000), body.Progress.TotalCost)
}

func TestGetExpenses(t *testing.T) {
	s, _, l := newTestServer(t)
	ctx := context.Background()

	rec := get(t, s, "/api/users/7/expenses")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	for i, cost := range []int64{100, 200, 300} {
		l.AppendRecord(ctx, 7, &models.PurchaseRecord{ID: string(rune('a' + i)), Date: "2024-05-01 10:00:00", TotalCost: cost})
	}

	rec = get(t, s, "/api/users/7/expenses?limit=2")
	require.Equal(t, http.StatusOK, rec.Code)
	var records []models.PurchaseRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "b", records[0].ID)
	assert.Equal(t, "c", records[1].ID)

	rec = get(t, s, "/api/users/7/expenses/total")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":7,"total_cost":600}`, rec.Body.String())
}

func TestBadRequests(t *testing.T) {
	s, _, _ := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/users/abc/list").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/users/7/expenses?limit=-1").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/users/7/expenses?limit=x").Code)
}
