package archive

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestMemoryArchive_PutAndGet(t *testing.T) {
	archive := NewMemoryArchive("test-archive")
	ctx := context.Background()

	tests := []struct {
		name    string
		key     string
		content string
		wantErr bool
	}{
		{
			name:    "store and retrieve archive",
			key:     "writing-helper-v3.zip",
			content: "zip bytes",
			wantErr: false,
		},
		{
			name:    "store empty archive",
			key:     "empty-v1.zip",
			content: "",
			wantErr: false,
		},
		{
			name:    "store large archive",
			key:     "large-v1.zip",
			content: strings.Repeat("x", 10000),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := strings.NewReader(tt.content)
			err := archive.Put(ctx, tt.key, r, int64(len(tt.content)))
			if (err != nil) != tt.wantErr {
				t.Errorf("Put() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr {
				return
			}

			var buf bytes.Buffer
			err = archive.Get(ctx, tt.key, &buf)
			if err != nil {
				t.Errorf("Get() unexpected error: %v", err)
				return
			}

			if got := buf.String(); got != tt.content {
				t.Errorf("Get() = %q, want %q", got, tt.content)
			}
		})
	}
}

func TestMemoryArchive_PutSizeMismatch(t *testing.T) {
	archive := NewMemoryArchive("test-archive")

	err := archive.Put(context.Background(), "bad.zip", strings.NewReader("short"), 100)
	if err == nil {
		t.Fatal("Put() expected size mismatch error")
	}
	if !strings.Contains(err.Error(), "size mismatch") {
		t.Errorf("error = %v, want error containing 'size mismatch'", err)
	}
}

func TestMemoryArchive_GetNotFound(t *testing.T) {
	archive := NewMemoryArchive("test-archive")

	var buf bytes.Buffer
	err := archive.Get(context.Background(), "nonexistent.zip", &buf)
	if err == nil {
		t.Fatal("Get() expected error for nonexistent archive")
	}
	if !strings.Contains(err.Error(), "archive not found") {
		t.Errorf("error = %v, want error containing 'archive not found'", err)
	}
}

func TestMemoryArchive_Exists(t *testing.T) {
	archive := NewMemoryArchive("test-archive")
	ctx := context.Background()

	ok, err := archive.Exists(ctx, "writing-helper-v3.zip")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if ok {
		t.Error("Exists() = true before Put")
	}

	content := "zip bytes"
	if err := archive.Put(ctx, "writing-helper-v3.zip", strings.NewReader(content), int64(len(content))); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	ok, err = archive.Exists(ctx, "writing-helper-v3.zip")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !ok {
		t.Error("Exists() = false after Put")
	}
}

func TestMemoryArchive_Overwrites(t *testing.T) {
	archive := NewMemoryArchive("test-archive")
	ctx := context.Background()

	key := "writing-helper-v3.zip"
	for i := 0; i < 2; i++ {
		content := strings.Repeat("v", i+1)
		if err := archive.Put(ctx, key, strings.NewReader(content), int64(len(content))); err != nil {
			t.Fatalf("Put() iteration %d error: %v", i+1, err)
		}
	}

	var buf bytes.Buffer
	if err := archive.Get(ctx, key, &buf); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if buf.String() != "vv" {
		t.Errorf("Get() = %q, want %q", buf.String(), "vv")
	}
}

func TestMemoryArchive_ValidateSetup(t *testing.T) {
	archive := NewMemoryArchive("test-archive")

	if err := archive.ValidateSetup(context.Background()); err != nil {
		t.Errorf("ValidateSetup() error = %v", err)
	}
}
