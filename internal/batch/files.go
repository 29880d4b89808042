package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultExtensions are the markdown file extensions picked up from directories.
var DefaultExtensions = []string{".md", ".mdx", ".markdown"}

// Collect expands paths into a sorted, deduplicated list of markdown files.
// Directories are walked recursively, skipping hidden ones and node_modules;
// explicit file paths are kept whatever their extension.
func Collect(paths []string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("collect %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if path != root && (strings.HasPrefix(name, ".") || name == "node_modules") {
					return filepath.SkipDir
				}
				return nil
			}
			if slices.Contains(exts, strings.ToLower(filepath.Ext(path))) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("collect %s: %w", root, err)
		}
	}
	// Сортируем для детерминированного порядка
	slices.Sort(files)
	return files, nil
}

// DisplayName returns path relative to baseDir when it lies under it,
// with forward slashes.
func DisplayName(path, baseDir string) string {
	path = filepath.Clean(path)
	base := strings.TrimSpace(baseDir)
	if base != "" {
		absBase, errBase := filepath.Abs(base)
		absPath, errPath := filepath.Abs(path)
		if errBase == nil && errPath == nil {
			if rel, err := filepath.Rel(absBase, absPath); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
				path = rel
			}
		}
	}
	return filepath.ToSlash(path)
}
