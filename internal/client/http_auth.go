package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/groblegark/journal/internal/model"
)

// loginResultWire is the discriminated login response:
// {"type":"Success","user":{...}} or {"type":"Verify"}.
type loginResultWire struct {
	Type string      `json:"type"`
	User *model.User `json:"user,omitempty"`
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]string{"username": username, "password": password}
	var wire loginResultWire
	if err := c.doJSON(ctx, http.MethodPost, "/login", body, &wire); err != nil {
		return nil, err
	}
	switch wire.Type {
	case "Success":
		return &LoginResult{User: wire.User}, nil
	case "Verify":
		return &LoginResult{Verify: true}, nil
	}
	return nil, fmt.Errorf("unknown login result type %q", wire.Type)
}

func (c *HTTPClient) Verify(ctx context.Context, method MFAMethod, code string) (*model.User, error) {
	switch method {
	case MFATotp, MFARecovery:
	default:
		return nil, fmt.Errorf("unknown MFA method %q", method)
	}
	body := map[string]string{"type": string(method), "code": code}
	var user model.User
	if err := c.doJSON(ctx, http.MethodPost, "/verify", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) Register(ctx context.Context, req *RegisterRequest) (*model.User, error) {
	var user model.User
	if err := c.doJSON(ctx, http.MethodPost, "/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	if err := c.doJSON(ctx, http.MethodPost, "/logout", nil, nil); err != nil {
		return err
	}
	c.session = ""
	return nil
}

func (c *HTTPClient) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.doJSON(ctx, http.MethodGet, "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
