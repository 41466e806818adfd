package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Kerhoff/BozorlikBot/internal/config"
	"github.com/Kerhoff/BozorlikBot/internal/ledger"
	"github.com/Kerhoff/BozorlikBot/internal/metrics"
	"github.com/Kerhoff/BozorlikBot/internal/models"
	"github.com/Kerhoff/BozorlikBot/internal/shoplist"
	"github.com/Kerhoff/BozorlikBot/pkg/logger"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
	formatCSV  = "csv"
)

// expenseRow is one purchased item of an archived list, flattened for CSV.
type expenseRow struct {
	RecordID  string `csv:"record_id"`
	Date      string `csv:"date"`
	TotalCost int64  `csv:"total_cost"`
	Product   string `csv:"product"`
	Quantity  string `csv:"quantity"`
	Category  string `csv:"category"`
	Price     int64  `csv:"price"`
}

func newExpensesCmd() *cobra.Command {
	var (
		userID int64
		limit  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Print the archived shopping lists of a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch format {
			case formatText, formatJSON, formatYAML, formatCSV:
			default:
				return fmt.Errorf("unknown format %q (must be text, json, yaml or csv)", format)
			}

			return withLedger(cmd.Context(), func(ctx context.Context, l *ledger.Ledger) error {
				return writeRecords(cmd.OutOrStdout(), format, l.History(ctx, userID, limit))
			})
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "Telegram user id")
	cmd.Flags().IntVar(&limit, "limit", 0, "Only print the last N records (0 prints all)")
	cmd.Flags().StringVar(&format, "format", formatText, "Output format: text, json, yaml or csv")
	cmd.MarkFlagRequired("user")

	return cmd
}

func newTotalCmd() *cobra.Command {
	var userID int64

	cmd := &cobra.Command{
		Use:   "total",
		Short: "Print the lifetime spend of a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withLedger(cmd.Context(), func(ctx context.Context, l *ledger.Ledger) error {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s сум\n", shoplist.FormatSum(l.TotalForUser(ctx, userID)))
				return err
			})
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "Telegram user id")
	cmd.MarkFlagRequired("user")

	return cmd
}

// withLedger opens the configured store for a one-off query. Logs go to
// stderr so that stdout carries only the report.
func withLedger(ctx context.Context, fn func(context.Context, *ledger.Ledger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l := logger.New(cfg.LogLevel, cfg.LogFormat)
	l.SetOutput(os.Stderr)

	repo, closeRepo, err := openExpenseRepository(cfg, l)
	if err != nil {
		return err
	}
	defer closeRepo()

	m := metrics.New(prometheus.NewRegistry())
	return fn(ctx, ledger.New(repo, nil, m, l))
}

func writeRecords(w io.Writer, format string, records []*models.PurchaseRecord) error {
	if records == nil {
		records = []*models.PurchaseRecord{}
	}

	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(records)

	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()

	case formatCSV:
		rows := []*expenseRow{}
		for _, r := range records {
			for _, item := range r.Items {
				rows = append(rows, &expenseRow{
					RecordID:  r.ID,
					Date:      r.Date,
					TotalCost: r.TotalCost,
					Product:   item.Product,
					Quantity:  item.Quantity,
					Category:  item.Category,
					Price:     item.Price,
				})
			}
		}
		return gocsv.Marshal(rows, w)

	default:
		_, err := io.WriteString(w, recordsText(records))
		return err
	}
}

func recordsText(records []*models.PurchaseRecord) string {
	if len(records) == 0 {
		return "No expenses recorded.\n"
	}

	var b strings.Builder
	for i, r := range records {
		fmt.Fprintf(&b, "%d. %s  %s сум\n", i+1, r.Date, shoplist.FormatSum(r.TotalCost))
		for _, item := range r.Items {
			name := item.Product
			if item.Quantity != "" {
				name += " (" + item.Quantity + ")"
			}
			fmt.Fprintf(&b, "   %s  %s  %s сум\n", item.Category, name, shoplist.FormatSum(item.Price))
		}
	}
	return b.String()
}
