package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		APIBaseURL:         "https://skills.example.com",
		BaseDir:            "/home/user/.local/share/skillsync",
		LogDir:             "/home/user/.local/share/skillsync/log",
		TokenPath:          "/home/user/.local/share/skillsync/token",
		CacheTTLSeconds:    120,
		HTTPTimeoutSeconds: 15,
		Encryption: EncryptionConfig{
			PublicKeyPath:  "/home/user/.local/share/skillsync/keys/skillsync.pub",
			PrivateKeyPath: "/home/user/.local/share/skillsync/keys/skillsync.key",
		},
		Database: DatabaseConfig{Type: "sqlite", DataDir: "/home/user/.local/share/skillsync"},
		Archive:  ArchiveConfig{Type: "filesystem", Name: "exports", FSArchiveRoot: "/backup/exports"},
		Workspace: WorkspaceConfig{
			Ignore: []string{"*.log", "drafts/**"},
		},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.APIBaseURL != original.APIBaseURL {
		t.Errorf("APIBaseURL = %q, want %q", got.APIBaseURL, original.APIBaseURL)
	}
	if got.BaseDir != original.BaseDir {
		t.Errorf("BaseDir = %q, want %q", got.BaseDir, original.BaseDir)
	}
	if got.LogDir != original.LogDir {
		t.Errorf("LogDir = %q, want %q", got.LogDir, original.LogDir)
	}
	if got.TokenPath != original.TokenPath {
		t.Errorf("TokenPath = %q, want %q", got.TokenPath, original.TokenPath)
	}
	if got.CacheTTLSeconds != 120 {
		t.Errorf("CacheTTLSeconds = %d, want %d", got.CacheTTLSeconds, 120)
	}
	if got.HTTPTimeoutSeconds != 15 {
		t.Errorf("HTTPTimeoutSeconds = %d, want %d", got.HTTPTimeoutSeconds, 15)
	}
	if got.Archive.Type != "filesystem" {
		t.Errorf("Archive.Type = %q, want %q", got.Archive.Type, "filesystem")
	}
	if got.Archive.FSArchiveRoot != "/backup/exports" {
		t.Errorf("Archive.FSArchiveRoot = %q, want %q", got.Archive.FSArchiveRoot, "/backup/exports")
	}
	if got.Encryption.PublicKeyPath != original.Encryption.PublicKeyPath {
		t.Errorf("Encryption.PublicKeyPath = %q, want %q", got.Encryption.PublicKeyPath, original.Encryption.PublicKeyPath)
	}
	if got.Encryption.PrivateKeyPath != original.Encryption.PrivateKeyPath {
		t.Errorf("Encryption.PrivateKeyPath = %q, want %q", got.Encryption.PrivateKeyPath, original.Encryption.PrivateKeyPath)
	}
	if got.Database.Type != "sqlite" {
		t.Errorf("Database.Type = %q, want %q", got.Database.Type, "sqlite")
	}
	if len(got.Workspace.Ignore) != 2 {
		t.Fatalf("len(Workspace.Ignore) = %d, want 2", len(got.Workspace.Ignore))
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/data/skillsync")

	if cfg.BaseDir != "/data/skillsync" {
		t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, "/data/skillsync")
	}
	if cfg.LogDir != "/data/skillsync/log" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/data/skillsync/log")
	}
	if cfg.TokenPath != "/data/skillsync/token" {
		t.Errorf("TokenPath = %q, want %q", cfg.TokenPath, "/data/skillsync/token")
	}
	if cfg.CacheTTLSeconds != 300 {
		t.Errorf("CacheTTLSeconds = %d, want %d", cfg.CacheTTLSeconds, 300)
	}
	if cfg.Database.Type != "sqlite" {
		t.Errorf("Database.Type = %q, want %q", cfg.Database.Type, "sqlite")
	}
	if cfg.Archive.Type != "filesystem" {
		t.Errorf("Archive.Type = %q, want %q", cfg.Archive.Type, "filesystem")
	}
	if cfg.Archive.FSArchiveRoot != "/data/skillsync/archives" {
		t.Errorf("Archive.FSArchiveRoot = %q, want %q", cfg.Archive.FSArchiveRoot, "/data/skillsync/archives")
	}
	if cfg.Encryption.PublicKeyPath != "/data/skillsync/keys/skillsync.pub" {
		t.Errorf("Encryption.PublicKeyPath = %q, want %q", cfg.Encryption.PublicKeyPath, "/data/skillsync/keys/skillsync.pub")
	}
	if cfg.Encryption.PrivateKeyPath != "/data/skillsync/keys/skillsync.key" {
		t.Errorf("Encryption.PrivateKeyPath = %q, want %q", cfg.Encryption.PrivateKeyPath, "/data/skillsync/keys/skillsync.key")
	}
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "skillsync.toml")
		cfg := NewConfig(dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		if _, err := os.Stat(path); err != nil {
			t.Fatalf("config file not created: %v", err)
		}
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "skillsync.toml")
		cfg := NewConfig(dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}

		err := Init(path, cfg)
		if err == nil {
			t.Fatal("second Init() expected error")
		}
	})
}

func TestReadFromFile(t *testing.T) {
	t.Run("reads valid config", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "skillsync.toml")
		cfg := NewConfig(dir)
		cfg.APIBaseURL = "https://skills.example.com"
		cfg.Database = DatabaseConfig{Type: "memory"}

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.APIBaseURL != "https://skills.example.com" {
			t.Errorf("APIBaseURL = %q, want %q", got.APIBaseURL, "https://skills.example.com")
		}
		if got.Database.Type != "memory" {
			t.Errorf("Database.Type = %q, want %q", got.Database.Type, "memory")
		}
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		_, err := ReadFromFile("/nonexistent/path/skillsync.toml")
		if err == nil {
			t.Fatal("ReadFromFile() expected error for missing file")
		}
	})
}
