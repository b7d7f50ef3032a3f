// Package sheets talks to remote spreadsheet endpoints: published CSV links
// for import and Apps Script web apps for export. Both operations are plain
// HTTP round-trips bounded by the client timeout; any failure surfaces as a
// core.ErrInterchange, never a crash.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"budgetapp/internal/core"
	"budgetapp/internal/interchange"
)

type Client struct {
	hc *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{hc: &http.Client{Timeout: timeout}}
}

// FetchCSV downloads the published CSV at url and decodes it into
// interchange rows.
func (c *Client) FetchCSV(ctx context.Context, url string) ([]interchange.Row, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build csv request: %v", core.ErrInterchange, err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch csv: %v", core.ErrInterchange, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: csv source returned status %d", core.ErrInterchange, resp.StatusCode)
	}

	rows, err := interchange.ReadCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInterchange, err)
	}

	slog.InfoContext(ctx, "CSV fetched", "url", url, "rows", len(rows))
	return rows, nil
}

// PostRows sends rows as a {"rows": [...]} JSON body to an Apps Script web
// app. Any non-2xx response is a failure.
func (c *Client) PostRows(ctx context.Context, url string, rows []interchange.Row) error {
	body, err := json.Marshal(interchange.Payload{Rows: rows})
	if err != nil {
		return fmt.Errorf("%w: encode payload: %v", core.ErrInterchange, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build export request: %v", core.ErrInterchange, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: post rows: %v", core.ErrInterchange, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: script returned status %d", core.ErrInterchange, resp.StatusCode)
	}

	slog.InfoContext(ctx, "Rows posted", "url", url, "rows", len(rows))
	return nil
}
