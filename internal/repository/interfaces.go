package repository

import (
	"context"

	"github.com/Kerhoff/BozorlikBot/internal/models"
)

// ExpenseRepository is the durable store of archived purchase records, keyed
// by user id. Implementations must be safe for concurrent use and must
// serialize writes so appends for different users never clobber each other.
type ExpenseRepository interface {
	// Append adds record at the end of the user's history.
	Append(ctx context.Context, userID string, record *models.PurchaseRecord) error
	// ListByUser returns the user's records oldest first. A user without
	// records yields an empty slice and no error.
	ListByUser(ctx context.Context, userID string) ([]*models.PurchaseRecord, error)
}
