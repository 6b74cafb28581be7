package form

import (
	"strings"
	"testing"
)

func TestSplitMime(t *testing.T) {
	parts, err := SplitMime("audio/webm; codecs=opus")
	if err != nil {
		t.Fatalf("SplitMime() error = %v", err)
	}
	if parts.Type != "audio" || parts.Subtype != "webm" {
		t.Errorf("type/subtype = %q/%q", parts.Type, parts.Subtype)
	}
	if !strings.Contains(parts.Param, "codecs=opus") {
		t.Errorf("param = %q, want codecs=opus", parts.Param)
	}
	if parts.String() != "audio/webm" {
		t.Errorf("String() = %q", parts.String())
	}
}

func TestSplitMime_Empty(t *testing.T) {
	parts, err := SplitMime("")
	if err != nil {
		t.Fatalf("SplitMime(\"\") error = %v", err)
	}
	if parts != (MimeParts{}) {
		t.Errorf("expected zero parts, got %+v", parts)
	}
}

func TestInMemoryFileForm(t *testing.T) {
	f, err := InMemoryFileForm("clip.webm", []byte("data"), "audio/webm")
	if err != nil {
		t.Fatalf("InMemoryFileForm() error = %v", err)
	}
	if f.Variant != FileInMemory {
		t.Errorf("Variant = %q", f.Variant)
	}
	if f.Key == "" {
		t.Error("expected a correlation key")
	}
	if f.ID != 0 || f.UID != "" {
		t.Error("pending file must not carry a server identity")
	}
	if f.ContentType() != "audio/webm" {
		t.Errorf("ContentType() = %q", f.ContentType())
	}
}

func TestLocalFileForm(t *testing.T) {
	f, err := LocalFileForm("/tmp/photos/cat.jpg", "image/jpeg")
	if err != nil {
		t.Fatalf("LocalFileForm() error = %v", err)
	}
	if f.Variant != FileLocal {
		t.Errorf("Variant = %q", f.Variant)
	}
	if f.Name != "cat.jpg" {
		t.Errorf("Name = %q, want base name", f.Name)
	}
	if f.Path != "/tmp/photos/cat.jpg" || f.Key == "" {
		t.Errorf("local identity incomplete: %+v", f)
	}
}

func TestFileForm_ContentTypeFallback(t *testing.T) {
	f, err := InMemoryFileForm("blob", []byte("x"), "")
	if err != nil {
		t.Fatalf("InMemoryFileForm() error = %v", err)
	}
	if f.ContentType() != "application/octet-stream" {
		t.Errorf("ContentType() = %q, want octet-stream fallback", f.ContentType())
	}
}

func TestFileForm_Promote(t *testing.T) {
	pending, err := LocalFileForm("/tmp/a.txt", "text/plain")
	if err != nil {
		t.Fatalf("LocalFileForm() error = %v", err)
	}
	got := pending.Promote(42, "f-42")
	if got.Variant != FileServer || got.ID != 42 || got.UID != "f-42" {
		t.Errorf("promotion incomplete: %+v", got)
	}
	if got.Key != "" || got.Path != "" || got.Data != nil {
		t.Errorf("client-side identity should be cleared: %+v", got)
	}

	// Promoting a server file is a no-op on identity.
	again := got.Promote(99, "f-99")
	if again.ID != 42 {
		t.Errorf("server file re-promoted: %+v", again)
	}
}
