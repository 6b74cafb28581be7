package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/groblegark/journal/internal/form"
	"github.com/groblegark/journal/internal/model"
)

func entriesPath(journalID int64) string {
	return fmt.Sprintf("/journals/%d/entries", journalID)
}

func entryPath(journalID, entryID int64) string {
	return fmt.Sprintf("/journals/%d/entries/%d", journalID, entryID)
}

func (c *HTTPClient) ListEntries(ctx context.Context, journalID int64, req *ListEntriesRequest) ([]*model.Entry, error) {
	path := entriesPath(journalID)
	if req != nil {
		q := url.Values{}
		if req.From != nil {
			q.Set("from", req.From.Format(model.DateFormat))
		}
		if req.To != nil {
			q.Set("to", req.To.Format(model.DateFormat))
		}
		if req.Tag != "" {
			q.Set("tag", req.Tag)
		}
		if len(q) > 0 {
			path += "?" + q.Encode()
		}
	}

	var resp struct {
		Entries []*model.Entry `json:"entries"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

func (c *HTTPClient) GetEntry(ctx context.Context, journalID, entryID int64) (*model.Entry, error) {
	var entry model.Entry
	if err := c.doJSON(ctx, http.MethodGet, entryPath(journalID, entryID), nil, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *HTTPClient) CreateEntry(ctx context.Context, journalID int64, payload *form.EntryPayload) (*model.Entry, error) {
	var entry model.Entry
	if err := c.doJSON(ctx, http.MethodPost, entriesPath(journalID), payload, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *HTTPClient) UpdateEntry(ctx context.Context, journalID, entryID int64, payload *form.EntryPayload) (*model.Entry, error) {
	var entry model.Entry
	if err := c.doJSON(ctx, http.MethodPatch, entryPath(journalID, entryID), payload, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *HTTPClient) DeleteEntry(ctx context.Context, journalID, entryID int64) error {
	return c.doJSON(ctx, http.MethodDelete, entryPath(journalID, entryID), nil, nil)
}

// UploadData PUTs a file's binary to its upload slot. The declared media
// type rides in Content-Type (application/octet-stream when empty) and the
// size is sent as an explicit Content-Length. Any non-200 status is
// reported as ok == false, not an error, so callers own retry policy.
func (c *HTTPClient) UploadData(ctx context.Context, journalID, entryID, fileID int64, data io.Reader, size int64, contentType string) (bool, error) {
	path := fmt.Sprintf("%s/%d", entryPath(journalID, entryID), fileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, data)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = size
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: c.session})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK, nil
}
