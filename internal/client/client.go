// Package client provides a transport-agnostic interface for the journal
// service and an HTTP/JSON implementation that talks to its REST API.
package client

import (
	"context"
	"io"
	"time"

	"github.com/groblegark/journal/internal/form"
	"github.com/groblegark/journal/internal/model"
)

// Client is the interface all CLI commands use to communicate with the
// journal server. It is implemented by HTTPClient; the backend speaks only
// HTTP/JSON, but commands never depend on that directly.
type Client interface {
	// Session
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Verify(ctx context.Context, method MFAMethod, code string) (*model.User, error)
	Register(ctx context.Context, req *RegisterRequest) (*model.User, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*model.User, error)

	// Journals
	ListJournals(ctx context.Context) ([]*model.Journal, error)
	GetJournal(ctx context.Context, id int64) (*model.Journal, error)
	CreateJournal(ctx context.Context, payload *form.JournalPayload) (*model.Journal, error)
	UpdateJournal(ctx context.Context, id int64, payload *form.JournalPayload) (*model.Journal, error)
	DeleteJournal(ctx context.Context, id int64) error
	SyncJournal(ctx context.Context, id int64) (*model.SyncResult, error)

	// Entries
	ListEntries(ctx context.Context, journalID int64, req *ListEntriesRequest) ([]*model.Entry, error)
	GetEntry(ctx context.Context, journalID, entryID int64) (*model.Entry, error)
	CreateEntry(ctx context.Context, journalID int64, payload *form.EntryPayload) (*model.Entry, error)
	UpdateEntry(ctx context.Context, journalID, entryID int64, payload *form.EntryPayload) (*model.Entry, error)
	DeleteEntry(ctx context.Context, journalID, entryID int64) error

	// UploadData sends a file's binary after the owning entry was saved.
	// Transport failures are errors; any non-200 status is ok == false so
	// the caller decides whether to retry or abort.
	UploadData(ctx context.Context, journalID, entryID, fileID int64, data io.Reader, size int64, contentType string) (ok bool, err error)

	// Admin
	ListUsers(ctx context.Context) ([]*model.AdminUser, error)
	GetUser(ctx context.Context, id int64) (*model.AdminUser, error)
	CreateUser(ctx context.Context, req *CreateUserRequest) (*model.AdminUser, error)
	DeleteUser(ctx context.Context, id int64) error
	ListGroups(ctx context.Context) ([]*model.Group, error)
	CreateGroup(ctx context.Context, name string) (*model.Group, error)
	DeleteGroup(ctx context.Context, id int64) error
	ListRoles(ctx context.Context) ([]*model.Role, error)
	CreateRole(ctx context.Context, req *CreateRoleRequest) (*model.Role, error)
	DeleteRole(ctx context.Context, id int64) error
	ListInvites(ctx context.Context) ([]*model.Invite, error)
	CreateInvites(ctx context.Context, req *CreateInvitesRequest) ([]*model.Invite, error)
	DeleteInvite(ctx context.Context, token string) error

	// Settings
	GetAuthSettings(ctx context.Context) (*model.AuthSettings, error)
	ChangePassword(ctx context.Context, current, updated string) error
	EnableTotp(ctx context.Context) (*model.TotpEnrollment, error)
	VerifyTotp(ctx context.Context, code string) (*model.RecoveryCodes, error)
	DisableTotp(ctx context.Context) error
	ListClientKeys(ctx context.Context) ([]*model.ClientKey, error)
	CreateClientKey(ctx context.Context, name, publicKey string) (*model.ClientKey, error)
	DeleteClientKey(ctx context.Context, id int64) error

	// Lifecycle
	Close() error
}

// MFAMethod selects how a pending login is verified.
type MFAMethod string

const (
	MFATotp     MFAMethod = "Totp"
	MFARecovery MFAMethod = "Recovery"
)

// LoginResult is the discriminated response of a login request: either the
// session is established ({"type":"Success"}) or an MFA verification is
// still required ({"type":"Verify"}).
type LoginResult struct {
	// Verify reports that the server expects a follow-up Verify call.
	Verify bool
	// User is set on immediate success.
	User *model.User
}

// RegisterRequest holds parameters for redeeming an invite token.
type RegisterRequest struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

// ListEntriesRequest holds the optional entry listing filters.
type ListEntriesRequest struct {
	From *time.Time
	To   *time.Time
	Tag  string
}

// CreateUserRequest holds parameters for creating a user as an admin.
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	RoleID   *int64 `json:"role_id,omitempty"`
	GroupsID *int64 `json:"groups_id,omitempty"`
}

// CreateRoleRequest holds parameters for creating a role.
type CreateRoleRequest struct {
	Name        string             `json:"name"`
	Permissions []model.Permission `json:"permissions,omitempty"`
}

// CreateInvitesRequest holds parameters for batch invite creation.
type CreateInvitesRequest struct {
	Amount    int        `json:"amount"`
	ExpiresOn *time.Time `json:"expires_on,omitempty"`
	RoleID    *int64     `json:"role_id,omitempty"`
	GroupsID  *int64     `json:"groups_id,omitempty"`
}
