package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"desergen/internal/modpath"
	"desergen/internal/schema/raw"
)

// Extensions are the schema file extensions, in lookup order.
var Extensions = []string{".yaml", ".yml"}

// FS loads schema documents from a file system.
type FS struct {
	fsys fs.FS
	// root is the directory fsys was opened from, used to report sources.
	root string
}

// New returns a loader over fsys.
func New(fsys fs.FS) *FS {
	return &FS{fsys: fsys}
}

// NewDir returns a loader over the directory dir.
func NewDir(dir string) *FS {
	return &FS{fsys: os.DirFS(dir), root: dir}
}

// Locate returns the slash-separated name of the file holding p.
func (l *FS) Locate(p modpath.Path) (string, error) {
	base := p.SlashPath()

	tried := make([]string, 0, len(Extensions))

	for _, ext := range Extensions {
		name := base + ext

		_, err := fs.Stat(l.fsys, name)
		if err == nil {
			return name, nil
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %s: %w", l.source(name), err)
		}

		tried = append(tried, l.source(name))
	}

	return "", fmt.Errorf("no schema file for %s (tried %s): %w",
		p, strings.Join(tried, ", "), fs.ErrNotExist)
}

// Load reads and decodes the document for p.
func (l *FS) Load(ctx context.Context, p modpath.Path) (*raw.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name, err := l.Locate(p)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", l.source(name), err)
	}

	doc, err := raw.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.source(name), err)
	}

	doc.Source = l.source(name)

	if st, err := fs.Stat(l.fsys, name); err == nil {
		doc.LastUpdated = st.ModTime()
	}

	return doc, nil
}

func (l *FS) source(name string) string {
	if l.root == "" {
		return name
	}

	return filepath.Join(l.root, filepath.FromSlash(name))
}
