// Package recent finds the most recently modified file in a project.
package recent

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/danieljhkim/statusline/internal/fsops"
)

const (
	// DeepContentPath is displayed when nothing was found within the depth
	// bound but deeper directories have content.
	DeepContentPath = ".../"

	// NoRecentFiles is the decorative text displayed when no file was found.
	NoRecentFiles = "no recent files"
)

// Result is the outcome of a search.
type Result struct {
	// DisplayPath is the shortened relative path, or a fallback text. Never empty.
	DisplayPath string

	// Path is the absolute path of the file found; empty when none was.
	Path string

	// HasDeepContent is set when a directory at the depth bound has entries.
	HasDeepContent bool
}

// Finder searches a directory tree through an fsops.FS.
type Finder struct {
	fs     fsops.FS
	logger *zap.Logger
}

// NewFinder creates a Finder.
func NewFinder(fsys fsops.FS, logger *zap.Logger) *Finder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Finder{fs: fsys, logger: logger}
}

type candidate struct {
	path    string
	modTime time.Time
}

// consider keeps c when it is strictly newer, so ties keep the first seen.
func (c *candidate) consider(path string, modTime time.Time) {
	if c.path == "" || modTime.After(c.modTime) {
		c.path = path
		c.modTime = modTime
	}
}

// Find returns the most recently modified non-hidden file under root, at
// most maxDepth levels deep, displayed relative to root.
func (f *Finder) Find(root string, maxDepth, pathShortening int) Result {
	if maxDepth < 1 {
		maxDepth = 1
	}

	res := Result{HasDeepContent: f.probeDeep(root, 1, maxDepth)}

	best, err := f.scan(root, maxDepth)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			f.logger.Debug("recursive scan denied, retrying shallow scan", zap.String("root", root), zap.Error(err))
			best = f.shallowScan(root)
		} else {
			f.logger.Warn("recent file scan failed", zap.String("root", root), zap.Error(err))
			best = candidate{}
		}
	}

	if best.path != "" {
		res.Path = best.path
		res.DisplayPath = displayPath(root, best.path, pathShortening)
	}

	if res.DisplayPath == "" {
		if res.HasDeepContent {
			res.DisplayPath = DeepContentPath
		} else {
			res.DisplayPath = NoRecentFiles
		}
	}
	return res
}

// scan walks root in lexical order, descending into directories until
// maxDepth. Any read error aborts the walk.
func (f *Finder) scan(root string, maxDepth int) (candidate, error) {
	var best candidate

	var walk func(dir string, depth int) error
	walk = func(dir string, depth int) error {
		entries, err := f.fs.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", dir, err)
		}
		for _, entry := range entries {
			if fsops.IsHidden(entry.Name()) {
				continue
			}
			path := filepath.Join(dir, entry.Name())

			if entry.IsDir() {
				if depth < maxDepth {
					if err := walk(path, depth+1); err != nil {
						return err
					}
				}
				continue
			}

			if modTime, ok := f.fileModTime(path, entry); ok {
				best.consider(path, modTime)
			}
		}
		return nil
	}

	err := walk(root, 1)
	return best, err
}

// shallowScan considers root's files and the files of each readable
// immediate subdirectory. Unreadable directories are skipped.
func (f *Finder) shallowScan(root string) candidate {
	var best candidate

	entries, err := f.fs.ReadDir(root)
	if err != nil {
		f.logger.Debug("shallow scan failed", zap.String("root", root), zap.Error(err))
		return best
	}

	for _, entry := range entries {
		if fsops.IsHidden(entry.Name()) {
			continue
		}
		path := filepath.Join(root, entry.Name())

		if !entry.IsDir() {
			if modTime, ok := f.fileModTime(path, entry); ok {
				best.consider(path, modTime)
			}
			continue
		}

		children, err := f.fs.ReadDir(path)
		if err != nil {
			continue
		}
		for _, child := range children {
			if child.IsDir() || fsops.IsHidden(child.Name()) {
				continue
			}
			childPath := filepath.Join(path, child.Name())
			if modTime, ok := f.fileModTime(childPath, child); ok {
				best.consider(childPath, modTime)
			}
		}
	}
	return best
}

// probeDeep reports whether any directory exactly maxDepth levels below
// root has non-hidden entries. Unreadable directories are skipped.
func (f *Finder) probeDeep(dir string, depth, maxDepth int) bool {
	entries, err := f.fs.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if !entry.IsDir() || fsops.IsHidden(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if depth == maxDepth {
			if hasVisibleEntries(f.fs, path) {
				return true
			}
			continue
		}
		if f.probeDeep(path, depth+1, maxDepth) {
			return true
		}
	}
	return false
}

func hasVisibleEntries(fsys fsops.FS, dir string) bool {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if !fsops.IsHidden(entry.Name()) {
			return true
		}
	}
	return false
}

// fileModTime returns the modification time of a regular file entry.
// Symlinks are followed only when they point at a regular file.
func (f *Finder) fileModTime(path string, entry fs.DirEntry) (time.Time, bool) {
	mode := entry.Type()
	if mode&fs.ModeSymlink != 0 {
		info, err := f.fs.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return time.Time{}, false
		}
		return info.ModTime(), true
	}
	if !mode.IsRegular() {
		return time.Time{}, false
	}
	info, err := entry.Info()
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// displayPath formats path relative to root, falling back to the file name
// when path is not under root.
func displayPath(root, path string, pathShortening int) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.Base(path)
	}
	return ShortenPath(filepath.ToSlash(rel), pathShortening)
}
