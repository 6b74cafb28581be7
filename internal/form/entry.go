// Package form converts between the server wire shapes and the editable
// form shapes the CLI works with. All conversions are pure: the output
// never shares mutable state with the input.
package form

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/groblegark/journal/internal/model"
)

// TagForm is an editable tag. A wire tag with a null value becomes an
// empty string here; the payload direction reverses that.
type TagForm struct {
	Key   string
	Value string
}

// CustomFieldForm is one custom field slot on an entry. Enabled gates
// whether the value is included in outgoing payloads.
type CustomFieldForm struct {
	CustomFieldsID int64
	Enabled        bool
	Value          model.FieldValue
}

// EntryForm is the editable projection of an Entry.
type EntryForm struct {
	Date         time.Time
	Title        string
	Contents     string
	Tags         []TagForm
	Files        []FileForm
	CustomFields []CustomFieldForm
}

// ParseEntryDate interprets a naive YYYY-MM-DD string as local midnight of
// that calendar day. Parsing through time.Parse would pin the date to UTC
// and shift it by a day in western timezones once localized.
func ParseEntryDate(s string) (time.Time, error) {
	parts := strings.SplitN(s, "-", 3)
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid entry date %q", s)
	}
	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	day, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, fmt.Errorf("invalid entry date %q", s)
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	// time.Date normalizes out-of-range components (Feb 30 becomes Mar 1);
	// reject inputs that do not survive the round trip.
	if d.Format(model.DateFormat) != s {
		return time.Time{}, fmt.Errorf("invalid entry date %q", s)
	}
	return d, nil
}

// FormatEntryDate renders a form date back into the wire layout.
func FormatEntryDate(t time.Time) string {
	return t.Format(model.DateFormat)
}

// EntryToForm projects a wire entry into editable form state. Persisted
// custom field values arrive enabled; files become server-variant forms.
func EntryToForm(e *model.Entry) (EntryForm, error) {
	date, err := ParseEntryDate(e.Date)
	if err != nil {
		return EntryForm{}, err
	}

	f := EntryForm{Date: date}
	if e.Title != nil {
		f.Title = *e.Title
	}
	if e.Contents != nil {
		f.Contents = *e.Contents
	}

	f.Tags = make([]TagForm, 0, len(e.Tags))
	for _, tag := range e.Tags {
		value := ""
		if tag.Value != nil {
			value = *tag.Value
		}
		f.Tags = append(f.Tags, TagForm{Key: tag.Key, Value: value})
	}

	f.Files = make([]FileForm, 0, len(e.Files))
	for _, file := range e.Files {
		f.Files = append(f.Files, ServerFileForm(file))
	}

	f.CustomFields = make([]CustomFieldForm, 0, len(e.CustomFields))
	for _, cf := range e.CustomFields {
		f.CustomFields = append(f.CustomFields, CustomFieldForm{
			CustomFieldsID: cf.CustomFieldsID,
			Enabled:        true,
			Value:          cf.Value.FieldValue,
		})
	}

	return f, nil
}

// BlankEntryForm returns the initial state for a new entry: today's local
// date and nothing else.
func BlankEntryForm() EntryForm {
	now := time.Now()
	return EntryForm{
		Date:         time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local),
		Tags:         []TagForm{},
		Files:        []FileForm{},
		CustomFields: []CustomFieldForm{},
	}
}

// AttachJournalFields appends a disabled slot with a default value for
// every journal field the form does not carry yet. Existing slots are left
// untouched.
func AttachJournalFields(f *EntryForm, fields []model.CustomField) error {
	present := make(map[int64]bool, len(f.CustomFields))
	for _, cf := range f.CustomFields {
		present[cf.CustomFieldsID] = true
	}
	for _, def := range fields {
		if present[def.ID] {
			continue
		}
		value, err := model.DefaultValue(def.Config.FieldConfig)
		if err != nil {
			return fmt.Errorf("field %q: %w", def.Name, err)
		}
		f.CustomFields = append(f.CustomFields, CustomFieldForm{
			CustomFieldsID: def.ID,
			Value:          value,
		})
	}
	return nil
}

// TagPayload is the outgoing tag shape. Empty form values go back to null.
type TagPayload struct {
	Key   string  `json:"key"`
	Value *string `json:"value"`
}

// FilePayload is the outgoing file shape: {id, name} for server files,
// {key, name} for pending ones. The server assigns an id to each keyed
// file; the binary follows in a separate upload request.
type FilePayload struct {
	ID   *int64  `json:"id,omitempty"`
	Key  *string `json:"key,omitempty"`
	Name string  `json:"name"`
}

// CustomFieldPayload is the outgoing custom field shape.
type CustomFieldPayload struct {
	CustomFieldsID int64       `json:"custom_fields_id"`
	Value          model.Value `json:"value"`
}

// EntryPayload is the create/update body for an entry.
type EntryPayload struct {
	Date         string               `json:"date"`
	Title        *string              `json:"title,omitempty"`
	Contents     *string              `json:"contents,omitempty"`
	Tags         []TagPayload         `json:"tags"`
	Files        []FilePayload        `json:"files"`
	CustomFields []CustomFieldPayload `json:"custom_fields"`
}

// NewEntryPayload reduces a form to its wire shape. Custom field slots with
// Enabled == false are dropped entirely.
func NewEntryPayload(f EntryForm) EntryPayload {
	p := EntryPayload{
		Date:         FormatEntryDate(f.Date),
		Tags:         make([]TagPayload, 0, len(f.Tags)),
		Files:        make([]FilePayload, 0, len(f.Files)),
		CustomFields: make([]CustomFieldPayload, 0, len(f.CustomFields)),
	}
	if f.Title != "" {
		title := f.Title
		p.Title = &title
	}
	if f.Contents != "" {
		contents := f.Contents
		p.Contents = &contents
	}

	for _, tag := range f.Tags {
		tp := TagPayload{Key: tag.Key}
		if tag.Value != "" {
			value := tag.Value
			tp.Value = &value
		}
		p.Tags = append(p.Tags, tp)
	}

	for _, file := range f.Files {
		fp := FilePayload{Name: file.Name}
		if file.Variant == FileServer {
			id := file.ID
			fp.ID = &id
		} else {
			key := file.Key
			fp.Key = &key
		}
		p.Files = append(p.Files, fp)
	}

	for _, cf := range f.CustomFields {
		if !cf.Enabled {
			continue
		}
		p.CustomFields = append(p.CustomFields, CustomFieldPayload{
			CustomFieldsID: cf.CustomFieldsID,
			Value:          model.NewValue(cf.Value),
		})
	}

	return p
}

// ValidateEntryForm checks every enabled custom field value against its
// journal definition before the payload goes out.
func ValidateEntryForm(f EntryForm, fields []model.CustomField) error {
	defs := make(map[int64]model.FieldConfig, len(fields))
	for _, def := range fields {
		defs[def.ID] = def.Config.FieldConfig
	}
	var ve model.ValidationError
	for _, cf := range f.CustomFields {
		if !cf.Enabled {
			continue
		}
		cfg, ok := defs[cf.CustomFieldsID]
		if !ok {
			ve.Errors = append(ve.Errors, model.FieldError{
				Field:   fmt.Sprintf("custom_fields[%d]", cf.CustomFieldsID),
				Message: "is not defined on this journal",
			})
			continue
		}
		if err := model.ValidateValue(cfg, cf.Value); err != nil {
			inner, ok := err.(*model.ValidationError)
			if !ok {
				return err
			}
			for _, fe := range inner.Errors {
				ve.Errors = append(ve.Errors, model.FieldError{
					Field:   fmt.Sprintf("custom_fields[%d].%s", cf.CustomFieldsID, fe.Field),
					Message: fe.Message,
				})
			}
		}
	}
	if ve.HasErrors() {
		return &ve
	}
	return nil
}
