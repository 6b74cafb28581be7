package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/groblegark/journal/internal/model"
)

func (c *HTTPClient) GetAuthSettings(ctx context.Context) (*model.AuthSettings, error) {
	var settings model.AuthSettings
	if err := c.doJSON(ctx, http.MethodGet, "/settings/auth", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, current, updated string) error {
	body := map[string]string{
		"current_password": current,
		"updated_password": updated,
	}
	return c.doJSON(ctx, http.MethodPatch, "/settings/auth", body, nil)
}

func (c *HTTPClient) EnableTotp(ctx context.Context) (*model.TotpEnrollment, error) {
	var enrollment model.TotpEnrollment
	if err := c.doJSON(ctx, http.MethodPost, "/settings/auth/totp", nil, &enrollment); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (c *HTTPClient) VerifyTotp(ctx context.Context, code string) (*model.RecoveryCodes, error) {
	body := map[string]string{"code": code}
	var codes model.RecoveryCodes
	if err := c.doJSON(ctx, http.MethodPost, "/settings/auth/totp/verify", body, &codes); err != nil {
		return nil, err
	}
	return &codes, nil
}

func (c *HTTPClient) DisableTotp(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodDelete, "/settings/auth/totp", nil, nil)
}

func (c *HTTPClient) ListClientKeys(ctx context.Context) ([]*model.ClientKey, error) {
	var resp struct {
		Keys []*model.ClientKey `json:"keys"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/settings/peer_client", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Keys, nil
}

func (c *HTTPClient) CreateClientKey(ctx context.Context, name, publicKey string) (*model.ClientKey, error) {
	body := map[string]string{"name": name, "public_key": publicKey}
	var key model.ClientKey
	if err := c.doJSON(ctx, http.MethodPost, "/settings/peer_client", body, &key); err != nil {
		return nil, err
	}
	return &key, nil
}

func (c *HTTPClient) DeleteClientKey(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/settings/peer_client/%d", id), nil, nil)
}
