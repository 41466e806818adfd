// Package sqlite stores purchase records in an SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/Kerhoff/BozorlikBot/internal/models"
	"github.com/Kerhoff/BozorlikBot/internal/repository"
)

type expenseRepository struct {
	db *sql.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *sql.DB) repository.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Append(ctx context.Context, userID string, record *models.PurchaseRecord) error {
	query := `
		INSERT INTO expense_records (id, user_id, recorded_at, total_cost, items)
		VALUES (?, ?, ?, ?, ?)`

	items, err := json.Marshal(record.Items)
	if err != nil {
		return fmt.Errorf("failed to encode record items: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, record.ID, userID, record.Date, record.TotalCost, string(items)); err != nil {
		return fmt.Errorf("failed to insert expense record: %w", err)
	}
	return nil
}

func (r *expenseRepository) ListByUser(ctx context.Context, userID string) ([]*models.PurchaseRecord, error) {
	query := `
		SELECT id, recorded_at, total_cost, items
		FROM expense_records
		WHERE user_id = ?
		ORDER BY seq ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense records: %w", err)
	}
	defer rows.Close()

	records := []*models.PurchaseRecord{}
	for rows.Next() {
		var (
			record models.PurchaseRecord
			items  string
		)
		if err := rows.Scan(&record.ID, &record.Date, &record.TotalCost, &items); err != nil {
			return nil, fmt.Errorf("failed to scan expense record: %w", err)
		}
		if err := json.Unmarshal([]byte(items), &record.Items); err != nil {
			return nil, fmt.Errorf("failed to decode items of record %s: %w", record.ID, err)
		}
		records = append(records, &record)
	}

	return records, rows.Err()
}
