package resolver

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Resolve expands command line inputs into the AST files to analyze. A file
// is taken as given. A directory is searched recursively for *.json files in
// lexical order. Duplicates keep their first position.
func Resolve(inputs []string, logger *slog.Logger) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		clean := filepath.Clean(path)
		if seen[clean] {
			logger.Debug("skipping duplicate input", "path", path)
			return
		}
		seen[clean] = true
		files = append(files, path)
	}

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}
		if !info.IsDir() {
			add(input)
			continue
		}

		found, err := findASTFiles(input)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("no AST files found in %s", input)
		}
		logger.Info("resolved directory", "input", input, "files", len(found))
		for _, f := range found {
			add(f)
		}
	}
	return files, nil
}

// findASTFiles walks root for *.json files, skipping hidden directories and
// node_modules.
func findASTFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".json") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "node_modules"
}
