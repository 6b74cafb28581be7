package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/groblegark/journal/internal/form"
	"github.com/groblegark/journal/internal/model"
)

func journalPath(id int64) string {
	return fmt.Sprintf("/journals/%d", id)
}

func (c *HTTPClient) ListJournals(ctx context.Context) ([]*model.Journal, error) {
	var resp struct {
		Journals []*model.Journal `json:"journals"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/journals", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Journals, nil
}

func (c *HTTPClient) GetJournal(ctx context.Context, id int64) (*model.Journal, error) {
	var journal model.Journal
	if err := c.doJSON(ctx, http.MethodGet, journalPath(id), nil, &journal); err != nil {
		return nil, err
	}
	return &journal, nil
}

func (c *HTTPClient) CreateJournal(ctx context.Context, payload *form.JournalPayload) (*model.Journal, error) {
	var journal model.Journal
	if err := c.doJSON(ctx, http.MethodPost, "/journals", payload, &journal); err != nil {
		return nil, err
	}
	return &journal, nil
}

func (c *HTTPClient) UpdateJournal(ctx context.Context, id int64, payload *form.JournalPayload) (*model.Journal, error) {
	var journal model.Journal
	if err := c.doJSON(ctx, http.MethodPatch, journalPath(id), payload, &journal); err != nil {
		return nil, err
	}
	return &journal, nil
}

func (c *HTTPClient) DeleteJournal(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, journalPath(id), nil, nil)
}

func (c *HTTPClient) SyncJournal(ctx context.Context, id int64) (*model.SyncResult, error) {
	var result model.SyncResult
	if err := c.doJSON(ctx, http.MethodPost, journalPath(id)+"/sync", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
