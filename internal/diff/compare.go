package diff

import "skillsync/internal/model"

// Compare classifies the local file set against a remote status snapshot by
// path and content hash. A path present only locally is added, a path present
// on both sides with differing hashes is modified, and a path present only
// remotely is deleted. Paths whose hashes match on both sides are omitted.
//
// A nil remote is treated as an empty remote, so every local file reports as
// added. Duplicate paths within either input resolve to the last entry.
func Compare(local []model.FileHash, remote *model.RemoteStatus) *model.CompareResult {
	localHash := make(map[string]string, len(local))
	for _, f := range local {
		localHash[f.Filepath] = f.ContentHash
	}

	var remoteFiles []model.FileHash
	if remote != nil {
		remoteFiles = remote.Files
	}
	remoteHash := make(map[string]string, len(remoteFiles))
	for _, f := range remoteFiles {
		remoteHash[f.Filepath] = f.ContentHash
	}

	result := &model.CompareResult{}

	seen := make(map[string]bool, len(local))
	for _, f := range local {
		if seen[f.Filepath] {
			continue
		}
		seen[f.Filepath] = true
		remoteH, onRemote := remoteHash[f.Filepath]
		switch {
		case !onRemote:
			result.Added = append(result.Added, f.Filepath)
		case remoteH != localHash[f.Filepath]:
			result.Modified = append(result.Modified, f.Filepath)
		}
	}

	seenRemote := make(map[string]bool, len(remoteFiles))
	for _, f := range remoteFiles {
		if seenRemote[f.Filepath] {
			continue
		}
		seenRemote[f.Filepath] = true
		if _, onLocal := localHash[f.Filepath]; !onLocal {
			result.Deleted = append(result.Deleted, f.Filepath)
		}
	}

	result.HasChanges = len(result.Added) > 0 || len(result.Modified) > 0 || len(result.Deleted) > 0
	return result
}
