package maploader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LevelEntry describes a loadable level file
type LevelEntry struct {
	Name   string // Level name, or the file name when the level has none
	Path   string // Path of the level file
	Width  int
	Height int
}

// ScanLevels loads every JSON level in dir and returns the valid ones in file
// name order. Files that fail to load are reported in skipped.
func ScanLevels(dir string) (levels []LevelEntry, skipped map[string]error, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read level directory: %w", err)
	}

	skipped = make(map[string]error)
	for _, entry := range entries {
		// Skip directories and hidden files
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), ".json") {
			continue
		}

		path := filepath.Join(dir, name)
		m, err := LoadMap(path)
		if err != nil {
			skipped[path] = err
			continue
		}

		levelName := m.Name()
		if levelName == "" {
			levelName = strings.TrimSuffix(name, filepath.Ext(name))
		}
		levels = append(levels, LevelEntry{
			Name:   levelName,
			Path:   path,
			Width:  m.Width(),
			Height: m.Height(),
		})
	}

	return levels, skipped, nil
}
