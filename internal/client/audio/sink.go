package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/wikireader/internal/filex"
)

// FileSink writes downloads into a directory. A relative directory is
// resolved against the working directory.
type FileSink struct {
	Dir string
}

func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

// Store writes data as name and returns the full path. An existing file
// with the same name is replaced.
func (s *FileSink) Store(ctx context.Context, name string, data []byte) (string, error) {
	dir, err := filex.EnsureDir(s.Dir)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
