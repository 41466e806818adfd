// Package ledger archives completed shopping lists and answers expense queries.
//
// Storage failures never reach the caller: a failed append loses that record
// and a failed read is reported as an empty history.
package ledger

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/BozorlikBot/internal/metrics"
	"github.com/Kerhoff/BozorlikBot/internal/models"
	"github.com/Kerhoff/BozorlikBot/internal/repository"
)

// Publisher announces archived records to other systems.
type Publisher interface {
	PublishListCompleted(ctx context.Context, userID string, record *models.PurchaseRecord) error
}

// Ledger is the per-user expense history.
type Ledger struct {
	repo      repository.ExpenseRepository
	publisher Publisher
	metrics   *metrics.Metrics
	logger    *logrus.Logger
}

// New creates a Ledger. publisher may be nil.
func New(repo repository.ExpenseRepository, publisher Publisher, m *metrics.Metrics, logger *logrus.Logger) *Ledger {
	return &Ledger{repo: repo, publisher: publisher, metrics: m, logger: logger}
}

// NewRecord builds the archive entry for a completed list. Only items bought
// for a positive price are kept.
func NewRecord(list models.ShoppingList, totalCost int64, at time.Time) *models.PurchaseRecord {
	record := &models.PurchaseRecord{
		ID:        uuid.NewString(),
		Date:      at.Format(models.RecordDateLayout),
		TotalCost: totalCost,
		Items:     []models.RecordItem{},
	}
	for _, s := range list.Sections {
		for _, item := range s.Items {
			if !item.Purchased || item.Price <= 0 {
				continue
			}
			record.Items = append(record.Items, models.RecordItem{
				Product:  item.Name,
				Quantity: item.Quantity,
				Category: s.Category.Label(),
				Price:    item.Price,
			})
		}
	}
	return record
}

// AppendRecord stores record at the end of the user's history.
func (l *Ledger) AppendRecord(ctx context.Context, userID int64, record *models.PurchaseRecord) {
	key := userKey(userID)
	log := l.logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"record_id":  record.ID,
		"total_cost": record.TotalCost,
	})

	if err := l.repo.Append(ctx, key, record); err != nil {
		l.metrics.LedgerErrors.WithLabelValues("append").Inc()
		log.WithError(err).Error("Failed to save purchase record")
		return
	}
	log.Info("Purchase record saved")

	if l.publisher == nil {
		return
	}
	if err := l.publisher.PublishListCompleted(ctx, key, record); err != nil {
		l.metrics.LedgerErrors.WithLabelValues("publish").Inc()
		log.WithError(err).Warn("Failed to publish purchase record")
	}
}

// History returns the user's most recent records, oldest first. limit <= 0
// returns everything.
func (l *Ledger) History(ctx context.Context, userID int64, limit int) []*models.PurchaseRecord {
	records := l.records(ctx, userID)
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}
	return records
}

// TotalForUser sums the total cost of every record of the user.
func (l *Ledger) TotalForUser(ctx context.Context, userID int64) int64 {
	var total int64
	for _, r := range l.records(ctx, userID) {
		total += r.TotalCost
	}
	return total
}

func (l *Ledger) records(ctx context.Context, userID int64) []*models.PurchaseRecord {
	records, err := l.repo.ListByUser(ctx, userKey(userID))
	if err != nil {
		l.metrics.LedgerErrors.WithLabelValues("read").Inc()
		l.logger.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err,
		}).Error("Failed to read purchase records")
		return nil
	}
	return records
}

func userKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
