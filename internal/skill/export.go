package skill

import (
	"bytes"
	"context"
	"fmt"
	"io"
)

// ExportOutcome reports a stored export archive.
type ExportOutcome struct {
	SkillID   string
	Version   int
	Key       string
	Size      int64
	Encrypted bool
}

// Export fetches the remote's export archive for the current head version
// and stores it in the archive store, encrypted when an encryption
// recipient is configured. The archive key is "<slug>-v<version>.zip" with
// an ".age" suffix for encrypted payloads.
func (s *SyncService) Export(ctx context.Context, root string) (*ExportOutcome, error) {
	meta, err := s.resolveMeta(root)
	if err != nil {
		return nil, err
	}

	status, err := s.client.Status(ctx, meta.SkillID)
	if err != nil {
		return nil, err
	}

	op := s.beginOperation(OpExport, meta.SkillID)
	var archiveBuf bytes.Buffer
	if _, err := s.client.Export(ctx, meta.SkillID, &archiveBuf); err != nil {
		s.finishOperation(op, 0, "", err)
		return nil, err
	}

	name := meta.SkillSlug
	if name == "" {
		name = meta.SkillID
	}
	key := fmt.Sprintf("%s-v%d.zip", name, status.Version)

	payload := archiveBuf.Bytes()
	encrypted := s.encryptor.IsConfigured()
	if encrypted {
		var sealed bytes.Buffer
		if err := s.encryptor.Encrypt(&archiveBuf, &sealed); err != nil {
			s.finishOperation(op, int64(status.Version), "", err)
			return nil, fmt.Errorf("encrypting export: %w", err)
		}
		payload = sealed.Bytes()
		key += ".age"
	}

	if err := s.archive.Put(ctx, key, bytes.NewReader(payload), int64(len(payload))); err != nil {
		s.finishOperation(op, int64(status.Version), "", err)
		return nil, fmt.Errorf("storing export: %w", err)
	}
	s.finishOperation(op, int64(status.Version), key, nil)

	s.logger.Info("export complete", "skill_id", meta.SkillID, "key", key, "bytes", len(payload))
	return &ExportOutcome{
		SkillID:   meta.SkillID,
		Version:   status.Version,
		Key:       key,
		Size:      int64(len(payload)),
		Encrypted: encrypted,
	}, nil
}

// RetrieveExport copies a stored export archive into w. For archives stored
// encrypted, pass the DecryptionContext obtained from Encryptor.Unlock;
// pass nil for plaintext archives.
func (s *SyncService) RetrieveExport(ctx context.Context, key string, w io.Writer, decrypt DecryptionContext) error {
	if decrypt == nil {
		return s.archive.Get(ctx, key, w)
	}
	var sealed bytes.Buffer
	if err := s.archive.Get(ctx, key, &sealed); err != nil {
		return err
	}
	if err := decrypt.Decrypt(&sealed, w); err != nil {
		return fmt.Errorf("decrypting export: %w", err)
	}
	return nil
}
