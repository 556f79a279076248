package diff_test

import (
	"reflect"
	"sort"
	"testing"

	"skillsync/internal/diff"
	"skillsync/internal/model"
)

func sorted(paths []string) []string {
	out := append([]string(nil), paths...)
	sort.Strings(out)
	return out
}

func TestCompare(t *testing.T) {
	t.Parallel()

	t.Run("remote only file reports deleted", func(t *testing.T) {
		t.Parallel()

		local := []model.FileHash{
			{Filepath: "A.md", ContentHash: "h1"},
		}
		remote := &model.RemoteStatus{
			Version: 3,
			Files: []model.FileHash{
				{Filepath: "A.md", ContentHash: "h1"},
				{Filepath: "B.md", ContentHash: "h2"},
			},
		}

		got := diff.Compare(local, remote)
		if !got.HasChanges {
			t.Error("HasChanges = false, want true")
		}
		if len(got.Added) != 0 {
			t.Errorf("Added = %v, want none", got.Added)
		}
		if len(got.Modified) != 0 {
			t.Errorf("Modified = %v, want none", got.Modified)
		}
		if want := []string{"B.md"}; !reflect.DeepEqual(got.Deleted, want) {
			t.Errorf("Deleted = %v, want %v", got.Deleted, want)
		}
	})

	t.Run("matching hashes report no changes", func(t *testing.T) {
		t.Parallel()

		files := []model.FileHash{
			{Filepath: "SKILL.md", ContentHash: "aaa"},
			{Filepath: "scripts/run.sh", ContentHash: "bbb"},
		}
		got := diff.Compare(files, &model.RemoteStatus{Version: 1, Files: files})
		if got.HasChanges {
			t.Errorf("HasChanges = true, want false (result %+v)", got)
		}
		if len(got.Added)+len(got.Modified)+len(got.Deleted) != 0 {
			t.Errorf("got %+v, want empty categories", got)
		}
	})

	t.Run("local only file reports added", func(t *testing.T) {
		t.Parallel()

		local := []model.FileHash{
			{Filepath: "SKILL.md", ContentHash: "aaa"},
			{Filepath: "notes.md", ContentHash: "ccc"},
		}
		remote := &model.RemoteStatus{
			Version: 2,
			Files:   []model.FileHash{{Filepath: "SKILL.md", ContentHash: "aaa"}},
		}

		got := diff.Compare(local, remote)
		if want := []string{"notes.md"}; !reflect.DeepEqual(got.Added, want) {
			t.Errorf("Added = %v, want %v", got.Added, want)
		}
	})

	t.Run("differing hash reports modified", func(t *testing.T) {
		t.Parallel()

		local := []model.FileHash{{Filepath: "SKILL.md", ContentHash: "new"}}
		remote := &model.RemoteStatus{
			Version: 2,
			Files:   []model.FileHash{{Filepath: "SKILL.md", ContentHash: "old"}},
		}

		got := diff.Compare(local, remote)
		if want := []string{"SKILL.md"}; !reflect.DeepEqual(got.Modified, want) {
			t.Errorf("Modified = %v, want %v", got.Modified, want)
		}
	})

	t.Run("nil remote reports everything added", func(t *testing.T) {
		t.Parallel()

		local := []model.FileHash{
			{Filepath: "a.md", ContentHash: "1"},
			{Filepath: "b.md", ContentHash: "2"},
		}
		got := diff.Compare(local, nil)
		if want := []string{"a.md", "b.md"}; !reflect.DeepEqual(sorted(got.Added), want) {
			t.Errorf("Added = %v, want %v", got.Added, want)
		}
		if len(got.Deleted) != 0 {
			t.Errorf("Deleted = %v, want none", got.Deleted)
		}
	})

	t.Run("empty local reports everything deleted", func(t *testing.T) {
		t.Parallel()

		remote := &model.RemoteStatus{
			Version: 5,
			Files: []model.FileHash{
				{Filepath: "a.md", ContentHash: "1"},
				{Filepath: "b.md", ContentHash: "2"},
			},
		}
		got := diff.Compare(nil, remote)
		if want := []string{"a.md", "b.md"}; !reflect.DeepEqual(sorted(got.Deleted), want) {
			t.Errorf("Deleted = %v, want %v", got.Deleted, want)
		}
	})

	t.Run("both sides empty reports no changes", func(t *testing.T) {
		t.Parallel()

		got := diff.Compare(nil, &model.RemoteStatus{})
		if got.HasChanges {
			t.Errorf("HasChanges = true, want false")
		}
	})

	t.Run("duplicate paths resolve to last entry", func(t *testing.T) {
		t.Parallel()

		local := []model.FileHash{
			{Filepath: "SKILL.md", ContentHash: "stale"},
			{Filepath: "SKILL.md", ContentHash: "current"},
		}
		remote := &model.RemoteStatus{
			Version: 1,
			Files:   []model.FileHash{{Filepath: "SKILL.md", ContentHash: "current"}},
		}

		got := diff.Compare(local, remote)
		if got.HasChanges {
			t.Errorf("HasChanges = true, want false (result %+v)", got)
		}
	})
}

func TestCompareIsPure(t *testing.T) {
	t.Parallel()

	local := []model.FileHash{
		{Filepath: "a.md", ContentHash: "1"},
		{Filepath: "b.md", ContentHash: "2x"},
		{Filepath: "c.md", ContentHash: "3"},
	}
	remote := &model.RemoteStatus{
		Version: 4,
		Files: []model.FileHash{
			{Filepath: "b.md", ContentHash: "2"},
			{Filepath: "c.md", ContentHash: "3"},
			{Filepath: "d.md", ContentHash: "4"},
		},
	}

	first := diff.Compare(local, remote)
	second := diff.Compare(local, remote)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeat call got %+v, want %+v", second, first)
	}
}

// TestCompareClassifiesEveryPathOnce walks the union of both path sets and
// checks each path lands in exactly one category, or in none when the hashes
// match on both sides.
func TestCompareClassifiesEveryPathOnce(t *testing.T) {
	t.Parallel()

	local := []model.FileHash{
		{Filepath: "same.md", ContentHash: "s"},
		{Filepath: "changed.md", ContentHash: "new"},
		{Filepath: "extra.md", ContentHash: "e"},
	}
	remote := &model.RemoteStatus{
		Version: 7,
		Files: []model.FileHash{
			{Filepath: "same.md", ContentHash: "s"},
			{Filepath: "changed.md", ContentHash: "old"},
			{Filepath: "gone.md", ContentHash: "g"},
		},
	}

	got := diff.Compare(local, remote)

	membership := map[string]int{}
	for _, p := range got.Added {
		membership[p]++
	}
	for _, p := range got.Modified {
		membership[p]++
	}
	for _, p := range got.Deleted {
		membership[p]++
	}

	wantCounts := map[string]int{
		"same.md":    0,
		"changed.md": 1,
		"extra.md":   1,
		"gone.md":    1,
	}
	for path, want := range wantCounts {
		if membership[path] != want {
			t.Errorf("path %s appears in %d categories, want %d", path, membership[path], want)
		}
	}
	for path := range membership {
		if _, known := wantCounts[path]; !known {
			t.Errorf("unexpected path %s in result %+v", path, got)
		}
	}
}
