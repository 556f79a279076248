package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"skillsync/internal/fingerprint"
)

// writeTree lays out files under root; keys are slash-separated relative
// paths.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("mkdir for %s: %v", rel, err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", rel, err)
		}
	}
}

func TestManager_Scan(t *testing.T) {
	t.Run("collects files with hashes sorted by path", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		writeTree(t, root, map[string]string{
			"scripts/run.sh": "echo hi\n",
			"SKILL.md":       "# Skill\n",
		})

		files, err := NewManager(nil).Scan(root)
		if err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		if len(files) != 2 {
			t.Fatalf("got %d files, want 2", len(files))
		}
		if files[0].Filepath != "SKILL.md" || files[1].Filepath != "scripts/run.sh" {
			t.Errorf("paths = [%s %s], want sorted [SKILL.md scripts/run.sh]",
				files[0].Filepath, files[1].Filepath)
		}
		if files[0].Content != "# Skill\n" {
			t.Errorf("content = %q, want %q", files[0].Content, "# Skill\n")
		}
		if want := fingerprint.Sum([]byte("# Skill\n")); files[0].ContentHash != want {
			t.Errorf("hash = %s, want %s", files[0].ContentHash, want)
		}
		if files[0].Size != int64(len("# Skill\n")) {
			t.Errorf("size = %d, want %d", files[0].Size, len("# Skill\n"))
		}
	})

	t.Run("skip list entries are not collected", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		writeTree(t, root, map[string]string{
			"SKILL.md":         "# Skill\n",
			".DS_Store":        "junk",
			".gitignore":       "*.log\n",
			".skillhub.json":   "{}",
			".skillsyncignore": "",
			"Thumbs.db":        "junk",
			".git/HEAD":        "ref: refs/heads/main\n",
		})

		files, err := NewManager(nil).Scan(root)
		if err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		if len(files) != 1 || files[0].Filepath != "SKILL.md" {
			t.Errorf("files = %+v, want only SKILL.md", files)
		}
	})

	t.Run("honors global and workspace ignore patterns", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		writeTree(t, root, map[string]string{
			"SKILL.md":         "# Skill\n",
			"debug.log":        "noise",
			"drafts/idea.md":   "wip",
			".skillsyncignore": "drafts/**\n",
			"notes/on-logs.md": "keep me",
		})

		files, err := NewManager([]string{"*.log"}).Scan(root)
		if err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		got := make([]string, len(files))
		for i, f := range files {
			got[i] = f.Filepath
		}
		want := []string{"SKILL.md", "notes/on-logs.md"}
		if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("paths = %v, want %v", got, want)
		}
	})

	t.Run("binary files carry a hash but no content", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		binary := []byte{0xff, 0xfe, 0x00, 0x42}
		if err := os.WriteFile(filepath.Join(root, "logo.png"), binary, 0644); err != nil {
			t.Fatalf("writing binary file: %v", err)
		}

		files, err := NewManager(nil).Scan(root)
		if err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		if len(files) != 1 {
			t.Fatalf("got %d files, want 1", len(files))
		}
		f := files[0]
		if !f.IsBinary {
			t.Error("IsBinary = false, want true")
		}
		if f.Content != "" {
			t.Errorf("Content = %q, want empty for binary file", f.Content)
		}
		if want := fingerprint.Sum(binary); f.ContentHash != want {
			t.Errorf("hash = %s, want %s", f.ContentHash, want)
		}
		if f.Size != int64(len(binary)) {
			t.Errorf("size = %d, want %d", f.Size, len(binary))
		}
	})

	t.Run("missing root fails", func(t *testing.T) {
		t.Parallel()
		_, err := NewManager(nil).Scan(filepath.Join(t.TempDir(), "absent"))
		if err == nil {
			t.Fatal("Scan() succeeded on missing root")
		}
	})

	t.Run("file root fails", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		path := filepath.Join(root, "file.txt")
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("writing file: %v", err)
		}
		if _, err := NewManager(nil).Scan(path); err == nil {
			t.Fatal("Scan() succeeded on a file root")
		}
	})
}
