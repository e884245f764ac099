package document

import (
	"os"
	"path/filepath"
)

// writeAtomic replaces dest through a temp file in the same directory, so a
// failed write leaves the original artifact intact. A symlinked dest is
// resolved first so the link target is replaced, not the link.
func writeAtomic(dest string, data []byte, mode os.FileMode) error {
	if resolved, err := filepath.EvalSymlinks(dest); err == nil {
		dest = resolved
	}
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, ".splicectl-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, mode)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
