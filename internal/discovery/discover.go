package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Resolve turns command-line arguments into an ordered list of input files.
//
// A file argument is used as-is, whatever its extension. A directory argument
// expands to every *.sql file below it, ordered by relative path. A file named
// twice is only returned once, at its first position.
func Resolve(paths []string) ([]DiscoveredFile, error) {
	var files []DiscoveredFile
	seen := make(map[string]bool)

	for _, p := range paths {
		found, err := resolveOne(p)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			if seen[f.Path] {
				continue
			}
			seen[f.Path] = true
			files = append(files, f)
		}
	}

	return files, nil
}

func resolveOne(path string) ([]DiscoveredFile, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("input not found: %s", path)
		}
		return nil, fmt.Errorf("failed to access %s: %w", path, err)
	}

	if !info.IsDir() {
		return []DiscoveredFile{{
			Path:         absPath,
			RelativePath: filepath.Base(absPath),
			Type:         ClassifyPath(absPath),
			ModTime:      info.ModTime(),
		}}, nil
	}

	return Discover(absPath)
}

// Discover recursively finds all SQL files in the given directory
func Discover(rootPath string) ([]DiscoveredFile, error) {
	absRoot, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("directory not found: %s", absRoot)
		}
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", absRoot)
	}

	var files []DiscoveredFile

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip directories we can't access
			if os.IsPermission(err) {
				return nil
			}
			return err
		}

		if d.IsDir() || !IsInputFile(d.Name()) {
			return nil
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path: %w", err)
		}

		fi, err := d.Info()
		if err != nil {
			return err
		}

		files = append(files, DiscoveredFile{
			Path:         path,
			RelativePath: relPath,
			Type:         FileTypeInput,
			ModTime:      fi.ModTime(),
		})

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].RelativePath < files[j].RelativePath
	})

	return files, nil
}
