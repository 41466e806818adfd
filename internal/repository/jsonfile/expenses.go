// Package jsonfile stores purchase records in a single JSON document that is
// read and rewritten as a whole on every append.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/BozorlikBot/internal/models"
	"github.com/Kerhoff/BozorlikBot/internal/repository"
)

// document is the on-disk layout: user id -> records, oldest first.
type document map[string][]*models.PurchaseRecord

type expenseRepository struct {
	path   string
	logger *logrus.Logger

	mu  sync.Mutex
	now func() time.Time
}

// NewExpenseRepository creates a repository backed by the file at path. The
// file is created on the first append.
func NewExpenseRepository(path string, logger *logrus.Logger) repository.ExpenseRepository {
	return &expenseRepository{path: path, logger: logger, now: time.Now}
}

func (r *expenseRepository) Append(ctx context.Context, userID string, record *models.PurchaseRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		moved, qerr := r.quarantine()
		if qerr != nil {
			return fmt.Errorf("failed to move unreadable expense file aside: %w", qerr)
		}
		r.logger.WithFields(logrus.Fields{
			"path":     r.path,
			"moved_to": moved,
			"error":    err,
		}).Warn("Expense file unreadable, starting a new one")
		doc = document{}
	}

	doc[userID] = append(doc[userID], record)

	if err := r.save(doc); err != nil {
		return fmt.Errorf("failed to save expense file: %w", err)
	}
	return nil
}

func (r *expenseRepository) ListByUser(ctx context.Context, userID string) ([]*models.PurchaseRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	records := doc[userID]
	if records == nil {
		return []*models.PurchaseRecord{}, nil
	}
	return records, nil
}

func (r *expenseRepository) load() (document, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read expense file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return document{}, nil
	}

	doc := document{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse expense file: %w", err)
	}
	return doc, nil
}

// save writes doc to a temporary file next to the target and renames it into place.
func (r *expenseRepository) save(doc document) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	return os.Rename(tmp.Name(), r.path)
}

func (r *expenseRepository) quarantine() (string, error) {
	target := fmt.Sprintf("%s.corrupt-%d", r.path, r.now().Unix())
	if err := os.Rename(r.path, target); err != nil {
		return "", err
	}
	return target, nil
}
