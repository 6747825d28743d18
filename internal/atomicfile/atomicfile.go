// Package atomicfile implements write-then-rename durable writes: a path
// either ends up containing exactly the new bytes, or is left unchanged.
package atomicfile

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/brume-cli/brume/internal/core/domain"
)

// Write creates path's parent directories if missing, writes data to a
// uniquely named temp file in the same directory, sets owner-only
// permissions, and renames it onto path. Any failure before the rename
// leaves path untouched and best-effort removes the orphaned temp file.
func Write(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return domain.Wrap(domain.KindFilesystem, "create parent directory for "+path, err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		_ = os.Remove(tmp)
		return domain.Wrap(domain.KindFilesystem, "write temp file for "+path, err)
	}
	if err := os.Chmod(tmp, 0o600); err != nil {
		_ = os.Remove(tmp)
		return domain.Wrap(domain.KindFilesystem, "chmod temp file for "+path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return domain.Wrap(domain.KindFilesystem, "rename temp file onto "+path, err)
	}
	return nil
}
