package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRemotesMissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadRemotes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Active != "" {
		t.Errorf("Active = %q, want empty", cfg.Active)
	}
	if cfg.Remotes == nil || len(cfg.Remotes) != 0 {
		t.Errorf("Remotes = %v, want empty map", cfg.Remotes)
	}
}

func TestSaveLoadRemotesRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	in := RemotesConfig{
		Active: "home",
		Remotes: map[string]Remote{
			"home": {URL: "https://journal.example.com", Session: "sess-1", Theme: "dark"},
			"work": {URL: "https://j.work.example", Description: "office server"},
		},
	}
	if err := SaveRemotes(in); err != nil {
		t.Fatalf("SaveRemotes() error = %v", err)
	}

	out, err := LoadRemotes()
	if err != nil {
		t.Fatalf("LoadRemotes() error = %v", err)
	}
	if out.Active != "home" {
		t.Errorf("Active = %q", out.Active)
	}
	if r := out.Remotes["home"]; r.URL != "https://journal.example.com" || r.Session != "sess-1" || r.Theme != "dark" {
		t.Errorf("home = %+v", r)
	}
	if r := out.Remotes["work"]; r.Description != "office server" {
		t.Errorf("work = %+v", r)
	}
}

func TestSaveRemotesFileMode(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if err := SaveRemotes(RemotesConfig{Remotes: map[string]Remote{}}); err != nil {
		t.Fatalf("SaveRemotes() error = %v", err)
	}

	info, err := os.Stat(filepath.Join(home, ".local", "state", "journal", "remotes.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("mode = %o, want 600", perm)
	}
}

func TestUpdateActiveSession(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := RemotesConfig{
		Active:  "home",
		Remotes: map[string]Remote{"home": {URL: "https://j.example", Session: "old"}},
	}
	if err := SaveRemotes(cfg); err != nil {
		t.Fatal(err)
	}

	if err := UpdateActiveSession("rotated"); err != nil {
		t.Fatalf("UpdateActiveSession() error = %v", err)
	}

	out, err := LoadRemotes()
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Remotes["home"].Session; got != "rotated" {
		t.Errorf("session = %q, want rotated", got)
	}
}

func TestUpdateActiveSessionNoActive(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := UpdateActiveSession("anything"); err != nil {
		t.Fatalf("UpdateActiveSession() error = %v, want no-op", err)
	}
}

func TestLoadBackup(t *testing.T) {
	for _, key := range []string{
		"JOURNAL_BACKUP_S3_BUCKET", "JOURNAL_BACKUP_S3_ENDPOINT",
		"JOURNAL_BACKUP_S3_REGION", "JOURNAL_BACKUP_S3_KEY",
	} {
		t.Setenv(key, "")
	}

	if _, err := LoadBackup(); err == nil {
		t.Fatal("expected error without bucket")
	}

	t.Setenv("JOURNAL_BACKUP_S3_BUCKET", "my-bucket")
	cfg, err := LoadBackup()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.S3Region != "us-east-1" {
		t.Errorf("S3Region = %q, want us-east-1", cfg.S3Region)
	}
	if cfg.S3Key != "journal/backup.jsonl" {
		t.Errorf("S3Key = %q", cfg.S3Key)
	}

	t.Setenv("JOURNAL_BACKUP_S3_ENDPOINT", "http://minio:9000")
	t.Setenv("JOURNAL_BACKUP_S3_REGION", "eu-west-1")
	t.Setenv("JOURNAL_BACKUP_S3_KEY", "custom/key.jsonl")
	cfg, err = LoadBackup()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.S3Endpoint != "http://minio:9000" || cfg.S3Region != "eu-west-1" || cfg.S3Key != "custom/key.jsonl" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestEnvOrDefault(t *testing.T) {
	for _, tc := range []struct {
		name     string
		key      string
		envVal   string
		fallback string
		want     string
	}{
		{"EmptyUsesDefault", "TEST_ENVDEFAULT_EMPTY", "", "default-val", "default-val"},
		{"SetUsesEnv", "TEST_ENVDEFAULT_SET", "custom", "default-val", "custom"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.envVal)
			got := envOrDefault(tc.key, tc.fallback)
			if got != tc.want {
				t.Errorf("envOrDefault(%q, %q) = %q, want %q", tc.key, tc.fallback, got, tc.want)
			}
		})
	}
}
