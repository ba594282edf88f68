package lua

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover expands script paths into the files to load, in load order.
//
// A directory contributes its *.lua files sorted by name, plus the init.lua
// of each subdirectory; a missing directory contributes nothing. A pattern
// containing glob characters contributes its sorted matches. Any other path
// must be an existing file. A file reached twice is loaded once, at its
// first position.
func Discover(paths ...string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(p string) {
		clean := filepath.Clean(p)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, p := range paths {
		if strings.ContainsAny(p, "*?[") {
			matches, err := filepath.Glob(p)
			if err != nil {
				return nil, fmt.Errorf("script pattern %q: %w", p, err)
			}
			sort.Strings(matches)
			for _, m := range matches {
				add(m)
			}
			continue
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("script path %q: %w", p, err)
		}
		if !info.IsDir() {
			add(p)
			continue
		}

		found, err := discoverInDir(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}
	return files, nil
}

func discoverInDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if !entry.IsDir() {
			if filepath.Ext(entry.Name()) == ".lua" {
				files = append(files, path)
			}
			continue
		}
		initPath := filepath.Join(path, "init.lua")
		if _, err := os.Stat(initPath); err == nil {
			files = append(files, initPath)
		}
	}
	sort.Strings(files)
	return files, nil
}

// LoadPaths discovers scripts under paths and loads them in order. It stops
// at the first script that fails.
func (h *Host) LoadPaths(ctx context.Context, paths ...string) error {
	files, err := Discover(paths...)
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := h.LoadFile(ctx, f); err != nil {
			return err
		}
	}
	return nil
}
