package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Filesystem struct{ root string }

func NewFilesystem(root string) (*Filesystem, error) {
	if root == "" {
		root = "static"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	return &Filesystem{root: root}, nil
}

func (f *Filesystem) Driver() string { return "fs" }

func (f *Filesystem) Root() string { return f.root }

// Check confirms the export dir still exists and is writable.
func (f *Filesystem) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	st, err := os.Stat(f.root)
	if err != nil {
		return err
	}
	if !st.IsDir() {
		return fmt.Errorf("%s is not a directory", f.root)
	}
	tmp, err := os.CreateTemp(f.root, ".check-*")
	if err != nil {
		return err
	}
	tmp.Close()
	return os.Remove(tmp.Name())
}

// Put writes through a temp file and renames it into place, so readers never
// see a half written export.
func (f *Filesystem) Put(ctx context.Context, name, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid export name %q", name)
	}
	tmp, err := os.CreateTemp(f.root, ".export-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	dst := filepath.Join(f.root, name)
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", err
	}
	return dst, nil
}
