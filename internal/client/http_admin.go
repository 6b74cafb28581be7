package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/groblegark/journal/internal/model"
)

// --- Users ---

func (c *HTTPClient) ListUsers(ctx context.Context) ([]*model.AdminUser, error) {
	var resp struct {
		Users []*model.AdminUser `json:"users"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/admin/users", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, id int64) (*model.AdminUser, error) {
	var user model.AdminUser
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/admin/users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) CreateUser(ctx context.Context, req *CreateUserRequest) (*model.AdminUser, error) {
	var user model.AdminUser
	if err := c.doJSON(ctx, http.MethodPost, "/admin/users", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/admin/users/%d", id), nil, nil)
}

// --- Groups ---

func (c *HTTPClient) ListGroups(ctx context.Context) ([]*model.Group, error) {
	var resp struct {
		Groups []*model.Group `json:"groups"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/admin/groups", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Groups, nil
}

func (c *HTTPClient) CreateGroup(ctx context.Context, name string) (*model.Group, error) {
	body := map[string]string{"name": name}
	var group model.Group
	if err := c.doJSON(ctx, http.MethodPost, "/admin/groups", body, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

func (c *HTTPClient) DeleteGroup(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/admin/groups/%d", id), nil, nil)
}

// --- Roles ---

func (c *HTTPClient) ListRoles(ctx context.Context) ([]*model.Role, error) {
	var resp struct {
		Roles []*model.Role `json:"roles"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/admin/roles", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Roles, nil
}

func (c *HTTPClient) CreateRole(ctx context.Context, req *CreateRoleRequest) (*model.Role, error) {
	var role model.Role
	if err := c.doJSON(ctx, http.MethodPost, "/admin/roles", req, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

func (c *HTTPClient) DeleteRole(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/admin/roles/%d", id), nil, nil)
}

// --- Invites ---

func (c *HTTPClient) ListInvites(ctx context.Context) ([]*model.Invite, error) {
	var resp struct {
		Invites []*model.Invite `json:"invites"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/admin/invites", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Invites, nil
}

func (c *HTTPClient) CreateInvites(ctx context.Context, req *CreateInvitesRequest) ([]*model.Invite, error) {
	var resp struct {
		Invites []*model.Invite `json:"invites"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/admin/invites", req, &resp); err != nil {
		return nil, err
	}
	return resp.Invites, nil
}

func (c *HTTPClient) DeleteInvite(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodDelete, "/admin/invites/"+url.PathEscape(token), nil, nil)
}
