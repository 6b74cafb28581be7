package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// RemotesConfig holds all named server profiles and tracks which one is
// active. It lives at ~/.local/state/journal/remotes.toml.
type RemotesConfig struct {
	Active  string            `toml:"active"`
	Remotes map[string]Remote `toml:"remotes"`
}

// Remote is a named server profile. Session is the last session cookie the
// server issued for this profile; Theme selects the palette used when
// rendering to a terminal.
type Remote struct {
	URL         string `toml:"url"`
	Session     string `toml:"session,omitempty"`
	Theme       string `toml:"theme,omitempty"`
	Description string `toml:"description,omitempty"`
}

func remotesPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".local", "state", "journal")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "remotes.toml"), nil
}

// LoadRemotes reads the remotes file, returning an empty config when the
// file does not exist yet.
func LoadRemotes() (RemotesConfig, error) {
	path, err := remotesPath()
	if err != nil {
		return RemotesConfig{}, err
	}
	var cfg RemotesConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return RemotesConfig{Remotes: map[string]Remote{}}, nil
		}
		return RemotesConfig{}, err
	}
	if cfg.Remotes == nil {
		cfg.Remotes = map[string]Remote{}
	}
	return cfg, nil
}

// SaveRemotes writes the remotes file. Sessions live in here, so the file
// is kept owner-only.
func SaveRemotes(cfg RemotesConfig) error {
	path, err := remotesPath()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// Cached active remote values, loaded once per process.
var (
	remoteOnce    sync.Once
	cachedName    string
	cachedRemote  Remote
	cachedLoadErr error
)

func loadActiveRemoteOnce() {
	remoteOnce.Do(func() {
		cfg, err := LoadRemotes()
		if err != nil {
			cachedLoadErr = err
			return
		}
		if cfg.Active != "" {
			if r, ok := cfg.Remotes[cfg.Active]; ok {
				cachedName = cfg.Active
				cachedRemote = r
			}
		}
		// Environment overrides beat the file, for scripting and CI.
		if url := os.Getenv("JOURNAL_URL"); url != "" {
			cachedRemote.URL = url
		}
		if session := os.Getenv("JOURNAL_SESSION"); session != "" {
			cachedRemote.Session = session
		}
		if theme := os.Getenv("JOURNAL_THEME"); theme != "" {
			cachedRemote.Theme = theme
		}
	})
}

// ActiveRemote resolves the profile the process should talk to: the active
// entry of the remotes file with JOURNAL_URL / JOURNAL_SESSION /
// JOURNAL_THEME environment overrides applied on top.
func ActiveRemote() (name string, r Remote, err error) {
	loadActiveRemoteOnce()
	return cachedName, cachedRemote, cachedLoadErr
}

// UpdateActiveSession rewrites the stored session for the active profile,
// for example after login rotates the cookie. A missing active profile is
// not an error; there is simply nothing to persist.
func UpdateActiveSession(session string) error {
	cfg, err := LoadRemotes()
	if err != nil {
		return err
	}
	if cfg.Active == "" {
		return nil
	}
	r, ok := cfg.Remotes[cfg.Active]
	if !ok {
		return nil
	}
	r.Session = session
	cfg.Remotes[cfg.Active] = r
	return SaveRemotes(cfg)
}

// BackupConfig holds the S3 destination for journal backups, taken from
// the environment.
type BackupConfig struct {
	S3Bucket   string // JOURNAL_BACKUP_S3_BUCKET (required)
	S3Endpoint string // JOURNAL_BACKUP_S3_ENDPOINT (custom endpoint for MinIO)
	S3Region   string // JOURNAL_BACKUP_S3_REGION (default "us-east-1")
	S3Key      string // JOURNAL_BACKUP_S3_KEY (default "journal/backup.jsonl")
}

// LoadBackup reads the backup destination from the environment.
func LoadBackup() (*BackupConfig, error) {
	c := &BackupConfig{
		S3Bucket:   os.Getenv("JOURNAL_BACKUP_S3_BUCKET"),
		S3Endpoint: os.Getenv("JOURNAL_BACKUP_S3_ENDPOINT"),
		S3Region:   envOrDefault("JOURNAL_BACKUP_S3_REGION", "us-east-1"),
		S3Key:      envOrDefault("JOURNAL_BACKUP_S3_KEY", "journal/backup.jsonl"),
	}
	if c.S3Bucket == "" {
		return nil, fmt.Errorf("JOURNAL_BACKUP_S3_BUCKET is required")
	}
	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
