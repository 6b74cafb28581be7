package form

import (
	"fmt"
	"mime"
	"path/filepath"

	"github.com/groblegark/journal/internal/idgen"
	"github.com/groblegark/journal/internal/model"
)

// FileVariant discriminates the three mutually exclusive file form states.
type FileVariant string

const (
	// FileInMemory is data produced client-side (recorder, stdin) that has
	// never touched disk or server.
	FileInMemory FileVariant = "in-memory"
	// FileLocal is a file picked from the local filesystem.
	FileLocal FileVariant = "local"
	// FileServer is an attachment already persisted by the server.
	FileServer FileVariant = "server"
)

// IsValid checks whether the variant is a known value.
func (v FileVariant) IsValid() bool {
	switch v {
	case FileInMemory, FileLocal, FileServer:
		return true
	}
	return false
}

// MimeParts is a media type split into type, subtype, and the raw parameter
// string, mirroring how the server stores it.
type MimeParts struct {
	Type    string
	Subtype string
	Param   string
}

// String reassembles the media type, without parameters.
func (m MimeParts) String() string {
	if m.Type == "" {
		return ""
	}
	return m.Type + "/" + m.Subtype
}

// SplitMime parses a media type string into its parts. An empty input
// yields zero parts, not an error.
func SplitMime(mediaType string) (MimeParts, error) {
	if mediaType == "" {
		return MimeParts{}, nil
	}
	mt, params, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return MimeParts{}, fmt.Errorf("parse media type %q: %w", mediaType, err)
	}
	parts := MimeParts{Type: mt, Subtype: ""}
	for i := 0; i < len(mt); i++ {
		if mt[i] == '/' {
			parts.Type = mt[:i]
			parts.Subtype = mt[i+1:]
			break
		}
	}
	for k, v := range params {
		if parts.Param != "" {
			parts.Param += "; "
		}
		parts.Param += k + "=" + v
	}
	return parts, nil
}

// FileForm is the editable projection of an entry attachment. Exactly one
// variant's identity is populated: server files carry ID/UID, pending files
// carry a correlation Key plus their data source.
type FileForm struct {
	Variant FileVariant
	Name    string
	Mime    MimeParts

	// server identity
	ID   int64
	UID  string
	Size int64

	// pending upload identity and data source
	Key  string
	Data []byte // in-memory
	Path string // local
}

// ServerFileForm projects a persisted attachment into form state.
func ServerFileForm(f model.EntryFile) FileForm {
	param := ""
	if f.MimeParam != nil {
		param = *f.MimeParam
	}
	return FileForm{
		Variant: FileServer,
		Name:    f.Name,
		Mime:    MimeParts{Type: f.MimeType, Subtype: f.MimeSubtype, Param: param},
		ID:      f.ID,
		UID:     f.UID,
		Size:    f.Size,
	}
}

// InMemoryFileForm wraps client-produced bytes with a fresh correlation key.
func InMemoryFileForm(name string, data []byte, mediaType string) (FileForm, error) {
	key, err := idgen.FileKey()
	if err != nil {
		return FileForm{}, err
	}
	parts, err := SplitMime(mediaType)
	if err != nil {
		return FileForm{}, err
	}
	return FileForm{
		Variant: FileInMemory,
		Name:    name,
		Mime:    parts,
		Key:     key,
		Data:    data,
	}, nil
}

// LocalFileForm references a file on the local filesystem with a fresh
// correlation key. The file is read only at upload time.
func LocalFileForm(path, mediaType string) (FileForm, error) {
	key, err := idgen.FileKey()
	if err != nil {
		return FileForm{}, err
	}
	parts, err := SplitMime(mediaType)
	if err != nil {
		return FileForm{}, err
	}
	return FileForm{
		Variant: FileLocal,
		Name:    filepath.Base(path),
		Mime:    parts,
		Key:     key,
		Path:    path,
	}, nil
}

// Promote converts a pending file to its server identity after the owning
// entry was saved and the binary uploaded. Server files pass through.
func (f FileForm) Promote(id int64, uid string) FileForm {
	if f.Variant == FileServer {
		return f
	}
	f.Variant = FileServer
	f.ID = id
	f.UID = uid
	f.Key = ""
	f.Data = nil
	f.Path = ""
	return f
}

// ContentType returns the media type to declare when uploading this file's
// binary, falling back to application/octet-stream.
func (f FileForm) ContentType() string {
	if s := f.Mime.String(); s != "" {
		return s
	}
	return "application/octet-stream"
}
