package form

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/groblegark/journal/internal/model"
)

// JournalFieldForm is an editable custom field definition. A nil ID marks a
// definition the server has not seen yet.
type JournalFieldForm struct {
	ID          *int64
	UID         string
	Name        string
	Order       int32
	Config      model.FieldConfig
	Description string
}

// PeerForm is an editable peer reference.
type PeerForm struct {
	PeersID int64
	Name    string
}

// JournalForm is the editable projection of a Journal.
type JournalForm struct {
	Name         string
	Description  string
	CustomFields []JournalFieldForm
	Peers        []PeerForm
}

// JournalToForm projects a wire journal into editable form state. Field
// definitions are copied verbatim; missing descriptions become empty
// strings.
func JournalToForm(j *model.Journal) JournalForm {
	f := JournalForm{Name: j.Name}
	if j.Description != nil {
		f.Description = *j.Description
	}

	f.CustomFields = make([]JournalFieldForm, 0, len(j.CustomFields))
	for _, def := range j.CustomFields {
		id := def.ID
		field := JournalFieldForm{
			ID:     &id,
			UID:    def.UID,
			Name:   def.Name,
			Order:  def.Order,
			Config: def.Config.FieldConfig,
		}
		if def.Description != nil {
			field.Description = *def.Description
		}
		f.CustomFields = append(f.CustomFields, field)
	}

	f.Peers = make([]PeerForm, 0, len(j.Peers))
	for _, peer := range j.Peers {
		f.Peers = append(f.Peers, PeerForm{PeersID: peer.PeersID, Name: peer.Name})
	}

	return f
}

// BlankJournalForm returns the initial state for a new journal.
func BlankJournalForm() JournalForm {
	return JournalForm{
		CustomFields: []JournalFieldForm{},
		Peers:        []PeerForm{},
	}
}

// AddField appends a new field definition with a default config for kind,
// a client-generated uid, and the next display order.
func (f *JournalForm) AddField(name string, kind model.FieldKind) error {
	cfg, err := model.MakeType(kind)
	if err != nil {
		return err
	}
	var order int32
	for _, existing := range f.CustomFields {
		if existing.Order >= order {
			order = existing.Order + 1
		}
	}
	f.CustomFields = append(f.CustomFields, JournalFieldForm{
		UID:    uuid.NewString(),
		Name:   name,
		Order:  order,
		Config: cfg,
	})
	return nil
}

// FieldByName finds a field definition in the form, by exact name.
func (f *JournalForm) FieldByName(name string) (*JournalFieldForm, bool) {
	for i := range f.CustomFields {
		if f.CustomFields[i].Name == name {
			return &f.CustomFields[i], true
		}
	}
	return nil, false
}

// RemoveField drops a field definition by name.
func (f *JournalForm) RemoveField(name string) error {
	for i := range f.CustomFields {
		if f.CustomFields[i].Name == name {
			f.CustomFields = append(f.CustomFields[:i], f.CustomFields[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no custom field named %q", name)
}

// JournalFieldPayload is the outgoing field definition shape.
type JournalFieldPayload struct {
	ID          *int64       `json:"id,omitempty"`
	UID         string       `json:"uid"`
	Name        string       `json:"name"`
	Order       int32        `json:"order"`
	Config      model.Config `json:"config"`
	Description *string      `json:"description,omitempty"`
}

// PeerPayload is the outgoing peer reference shape.
type PeerPayload struct {
	PeersID int64 `json:"peers_id"`
}

// JournalPayload is the create/update body for a journal.
type JournalPayload struct {
	Name         string                `json:"name"`
	Description  *string               `json:"description,omitempty"`
	CustomFields []JournalFieldPayload `json:"custom_fields"`
	Peers        []PeerPayload         `json:"peers"`
}

// NewJournalPayload reduces a journal form to its wire shape.
func NewJournalPayload(f JournalForm) JournalPayload {
	p := JournalPayload{
		Name:         f.Name,
		CustomFields: make([]JournalFieldPayload, 0, len(f.CustomFields)),
		Peers:        make([]PeerPayload, 0, len(f.Peers)),
	}
	if f.Description != "" {
		desc := f.Description
		p.Description = &desc
	}

	for _, field := range f.CustomFields {
		fp := JournalFieldPayload{
			UID:    field.UID,
			Name:   field.Name,
			Order:  field.Order,
			Config: model.NewConfig(field.Config),
		}
		if field.ID != nil {
			id := *field.ID
			fp.ID = &id
		}
		if field.Description != "" {
			desc := field.Description
			fp.Description = &desc
		}
		p.CustomFields = append(p.CustomFields, fp)
	}

	for _, peer := range f.Peers {
		p.Peers = append(p.Peers, PeerPayload{PeersID: peer.PeersID})
	}

	return p
}
