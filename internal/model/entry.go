package model

import "time"

// DateFormat is the naive calendar-date layout used for entry dates on the
// wire. It carries no timezone; interpretation is always the local day.
const DateFormat = "2006-01-02"

// Entry is a single journal record for a date.
type Entry struct {
	ID           int64              `json:"id"`
	UID          string             `json:"uid"`
	JournalsID   int64              `json:"journals_id"`
	Date         string             `json:"date"`
	Title        *string            `json:"title,omitempty"`
	Contents     *string            `json:"contents,omitempty"`
	Tags         []EntryTag         `json:"tags,omitempty"`
	Files        []EntryFile        `json:"files,omitempty"`
	CustomFields []EntryCustomField `json:"custom_fields,omitempty"`
	CreatedAt    time.Time          `json:"created"`
	UpdatedAt    *time.Time         `json:"updated,omitempty"`
}

// EntryTag is a key with an optional free-text value. Keys are not required
// to be unique; the server stores them as given.
type EntryTag struct {
	Key   string  `json:"key"`
	Value *string `json:"value,omitempty"`
}

// EntryFile is a persisted file attachment. The mime type is stored split
// into its type, subtype, and raw parameter string.
type EntryFile struct {
	ID          int64  `json:"id"`
	UID         string `json:"uid"`
	Name        string `json:"name"`
	MimeType    string `json:"mime_type"`
	MimeSubtype string `json:"mime_subtype"`
	MimeParam   *string `json:"mime_param,omitempty"`
	Size        int64  `json:"size"`
}

// Mime reassembles the full media type string, without parameters.
func (f EntryFile) Mime() string {
	if f.MimeType == "" {
		return ""
	}
	return f.MimeType + "/" + f.MimeSubtype
}

// EntryCustomField is a stored custom field value keyed by its definition.
type EntryCustomField struct {
	CustomFieldsID int64 `json:"custom_fields_id"`
	Value          Value `json:"value"`
}
