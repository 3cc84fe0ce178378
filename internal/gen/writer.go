package gen

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files below the output directory,
// creating the directories each file needs.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, filepath.FromSlash(file.Filename))

		err := os.MkdirAll(filepath.Dir(outputPath), dirPerm)
		if err != nil {
			return fmt.Errorf("creating directory for %s: %w", file.Filename, err)
		}

		err = os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}

// PruneFiles removes TypeScript modules below outputDir that carry the
// generated-code header but are not among files, such as the output of a
// renamed or dropped schema. Directories left empty by a removal are removed
// too. Files without the header are never touched. It returns the removed
// files as slash-separated paths relative to outputDir.
func PruneFiles(files []GeneratedFile, outputDir string) ([]string, error) {
	keep := make(map[string]struct{}, len(files))
	for _, file := range files {
		keep[file.Filename] = struct{}{}
	}

	var stale []string

	err := filepath.WalkDir(outputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == outputDir {
				return fs.SkipAll
			}

			return err
		}

		if d.IsDir() || !strings.HasSuffix(path, ".ts") {
			return nil
		}

		rel, err := filepath.Rel(outputDir, path)
		if err != nil {
			return err
		}

		rel = filepath.ToSlash(rel)
		if _, ok := keep[rel]; ok {
			return nil
		}

		generated, err := isGenerated(path)
		if err != nil {
			return err
		}

		if generated {
			stale = append(stale, rel)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning output directory: %w", err)
	}

	for _, rel := range stale {
		path := filepath.Join(outputDir, filepath.FromSlash(rel))
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("removing stale file %s: %w", rel, err)
		}

		removeEmptyParents(filepath.Dir(path), outputDir)
	}

	return stale, nil
}

func isGenerated(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, len(header)+1)
	if _, err := io.ReadFull(f, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}

		return false, err
	}

	return string(buf) == header+"\n", nil
}

// removeEmptyParents removes dir and its ancestors below root while they
// are empty.
func removeEmptyParents(dir, root string) {
	root = filepath.Clean(root)

	for dir = filepath.Clean(dir); dir != root && strings.HasPrefix(dir, root); dir = filepath.Dir(dir) {
		if os.Remove(dir) != nil {
			return
		}
	}
}
