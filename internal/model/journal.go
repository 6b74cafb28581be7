// Package model defines the wire shapes exchanged with the journal server
// and the typed custom-field system layered on top of them.
package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Journal is a collection of dated entries with user-defined custom fields
// and an optional list of sync peers.
type Journal struct {
	ID           int64         `json:"id"`
	UID          string        `json:"uid"`
	UsersID      int64         `json:"users_id"`
	Name         string        `json:"name"`
	Description  *string       `json:"description,omitempty"`
	CustomFields []CustomField `json:"custom_fields,omitempty"`
	Peers        []JournalPeer `json:"peers,omitempty"`
	CreatedAt    time.Time     `json:"created"`
	UpdatedAt    *time.Time    `json:"updated,omitempty"`
}

// CustomField is a user-defined, typed attribute attachable to entries of a
// journal. Order sets display priority; ties break by name.
type CustomField struct {
	ID          int64   `json:"id"`
	UID         string  `json:"uid"`
	Name        string  `json:"name"`
	Order       int32   `json:"order"`
	Config      Config  `json:"config"`
	Description *string `json:"description,omitempty"`
}

// JournalPeer is a remote server account the journal synchronizes with.
type JournalPeer struct {
	PeersID int64      `json:"peers_id"`
	Name    string     `json:"name"`
	Synced  *time.Time `json:"synced,omitempty"`
}

// SortCustomFields orders fields by ascending order, then by name.
func SortCustomFields(fields []CustomField) {
	sort.SliceStable(fields, func(i, j int) bool {
		if fields[i].Order != fields[j].Order {
			return fields[i].Order < fields[j].Order
		}
		return fields[i].Name < fields[j].Name
	})
}

// SyncResult is the discriminated response of a journal sync request:
// {"type":"Noop"} or {"type":"Queued","successful":[...]}.
type SyncResult struct {
	// Queued reports whether work was scheduled; false means Noop.
	Queued bool
	// Successful lists the peers the server already confirmed, when queued.
	Successful []string
}

// UnmarshalJSON implements json.Unmarshaler, rejecting unknown variants.
func (r *SyncResult) UnmarshalJSON(data []byte) error {
	var wire struct {
		Type       string   `json:"type"`
		Successful []string `json:"successful"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	switch wire.Type {
	case "Noop":
		*r = SyncResult{}
	case "Queued":
		*r = SyncResult{Queued: true, Successful: wire.Successful}
	default:
		return fmt.Errorf("unknown sync result type %q", wire.Type)
	}
	return nil
}
