// Package services orchestrates ledger and interchange operations for the
// HTTP layer.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"budgetapp/internal/interchange"
)

// Store is the ledger surface the interchange flows run against.
type Store interface {
	interchange.ImportStore
	interchange.SnapshotReader
}

// Remote reaches the external spreadsheet endpoints.
type Remote interface {
	FetchCSV(ctx context.Context, url string) ([]interchange.Row, error)
	PostRows(ctx context.Context, url string, rows []interchange.Row) error
}

// InterchangeService wires remote fetch/post to the row codec and the ledger.
type InterchangeService struct {
	store  Store
	remote Remote
	now    func() time.Time
}

func NewInterchangeService(store Store, remote Remote) *InterchangeService {
	return &InterchangeService{
		store:  store,
		remote: remote,
		now:    time.Now,
	}
}

// ImportFromURL fetches CSV text from url and replays it into the ledger.
func (s *InterchangeService) ImportFromURL(ctx context.Context, url string) (interchange.Stats, error) {
	rows, err := s.remote.FetchCSV(ctx, url)
	if err != nil {
		return interchange.Stats{}, err
	}

	stats, err := interchange.ImportRows(ctx, s.store, rows, s.today())
	if err != nil {
		return stats, err
	}

	slog.InfoContext(ctx, "Import completed",
		"url", url,
		"projects_added", stats.Projects,
		"expenses_added", stats.Expenses)

	return stats, nil
}

// ExportToURL posts the full ledger export to an Apps Script endpoint and
// returns how many rows were sent.
func (s *InterchangeService) ExportToURL(ctx context.Context, url string) (int, error) {
	rows, err := interchange.ExportRows(ctx, s.store)
	if err != nil {
		return 0, fmt.Errorf("export rows: %w", err)
	}
	if err := s.remote.PostRows(ctx, url, rows); err != nil {
		return 0, err
	}

	slog.InfoContext(ctx, "Export completed", "url", url, "rows", len(rows))
	return len(rows), nil
}

// WriteCSV streams the full ledger export as CSV text.
func (s *InterchangeService) WriteCSV(ctx context.Context, w io.Writer) error {
	rows, err := interchange.ExportRows(ctx, s.store)
	if err != nil {
		return fmt.Errorf("export rows: %w", err)
	}
	return interchange.WriteCSV(w, rows)
}

func (s *InterchangeService) today() string {
	return s.now().Format("2006-01-02")
}
