package model

import "time"

// User is the account shape returned by GET /me and the admin user listing.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// AdminUser extends User with the administrative attachments.
type AdminUser struct {
	User
	Groups []AttachedGroup `json:"groups,omitempty"`
	Roles  []AttachedRole  `json:"roles,omitempty"`
}

// AttachedGroup is a group reference embedded in a user record.
type AttachedGroup struct {
	GroupsID int64  `json:"groups_id"`
	Name     string `json:"name"`
}

// AttachedRole is a role reference embedded in a user or group record.
type AttachedRole struct {
	RolesID int64  `json:"roles_id"`
	Name    string `json:"name"`
}

// Group collects users for shared role assignment.
type Group struct {
	ID    int64          `json:"id"`
	Name  string         `json:"name"`
	Users []int64        `json:"users,omitempty"`
	Roles []AttachedRole `json:"roles,omitempty"`
}

// Permission grants a role an ability over a scope.
type Permission struct {
	Scope   string `json:"scope"`
	Ability string `json:"ability"`
}

// Role names a set of permissions assignable to users and groups.
type Role struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions,omitempty"`
	Users       []int64      `json:"users,omitempty"`
	Groups      []int64      `json:"groups,omitempty"`
}

// InviteStatus is the lifecycle state of an invite token.
type InviteStatus string

const (
	InvitePending InviteStatus = "Pending"
	InviteUsed    InviteStatus = "Used"
	InviteExpired InviteStatus = "Expired"
)

// IsValid checks whether the status is a known value.
func (s InviteStatus) IsValid() bool {
	switch s {
	case InvitePending, InviteUsed, InviteExpired:
		return true
	}
	return false
}

// Invite is a registration token, optionally pre-assigning a role or group
// and optionally time-bounded.
type Invite struct {
	Token     string       `json:"token"`
	UsersID   *int64       `json:"users_id,omitempty"`
	RoleID    *int64       `json:"role_id,omitempty"`
	GroupsID  *int64       `json:"groups_id,omitempty"`
	ExpiresOn *time.Time   `json:"expires_on,omitempty"`
	Status    InviteStatus `json:"status"`
	IssuedOn  time.Time    `json:"issued_on"`
}

// AuthSettings reports the authentication methods enabled on the account.
type AuthSettings struct {
	HasTotp bool `json:"has_totp"`
}

// TotpEnrollment is returned when TOTP is first enabled; the secret must be
// verified with a code before MFA becomes active.
type TotpEnrollment struct {
	Algo   string `json:"algo"`
	Secret string `json:"secret"`
	Digits int    `json:"digits"`
	Step   int    `json:"step"`
	URL    string `json:"url,omitempty"`
}

// RecoveryCodes is the one-time recovery code set issued after TOTP verify.
type RecoveryCodes struct {
	Codes []string `json:"codes"`
}

// ClientKey is a peer client public key registered under settings.
type ClientKey struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	PublicKey string    `json:"public_key"`
	CreatedAt time.Time `json:"created"`
}

// Peer is a remote server account this account can synchronize with.
type Peer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Addr string `json:"addr"`
}
