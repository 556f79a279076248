package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"skillsync/internal/model"
)

// ReadMeta loads the workspace's sync metadata. A workspace that has never
// been synced has no metadata file; that returns nil with no error.
func (m *Manager) ReadMeta(root string) (*model.Meta, error) {
	data, err := os.ReadFile(filepath.Join(root, MetaFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading sync metadata: %w", err)
	}

	var meta model.Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing sync metadata: %w", err)
	}
	return &meta, nil
}

// WriteMeta stores the workspace's sync metadata, creating the workspace
// directory if needed.
func (m *Manager) WriteMeta(root string, meta *model.Meta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding sync metadata: %w", err)
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return fmt.Errorf("creating workspace: %w", err)
	}
	if err := os.WriteFile(filepath.Join(root, MetaFileName), append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing sync metadata: %w", err)
	}
	return nil
}
