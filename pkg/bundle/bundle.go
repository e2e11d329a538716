// Package bundle packs hook directories into archives and reads them back.
// A bundle holds <class>/<phase>-<period>[.<suffix>].tengo entries, the
// layout the manifest's bundle setting loads from.
package bundle

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/glorpus-work/suitehooks/internal/logger"
	"github.com/glorpus-work/suitehooks/pkg/hooks"
	"github.com/glorpus-work/suitehooks/pkg/lifecycle"
	"github.com/mholt/archives"
)

// Entry is one hook script stored in a bundle.
type Entry struct {
	Class string         `json:"class" yaml:"class"`
	File  string         `json:"file" yaml:"file"`
	Slot  lifecycle.Slot `json:"-" yaml:"-"`
	Size  int64          `json:"size" yaml:"size"`
}

// Manager handles bundle creation and extraction.
type Manager struct{}

// NewManager creates a new Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// Pack writes the hook scripts found under sourceDir into a .tar.gz bundle.
// Only files matching <class>/<phase>-<period>[.<suffix>].tengo are kept.
func (m *Manager) Pack(ctx context.Context, sourceDir, bundlePath string) (int, error) {
	absolutePath, err := filepath.Abs(sourceDir)
	if err != nil {
		return 0, fmt.Errorf("failed to get absolute path for hooks directory: %w", err)
	}

	files, err := archives.FilesFromDisk(ctx, nil, map[string]string{
		absolutePath + string(os.PathSeparator): "",
	})
	if err != nil {
		return 0, fmt.Errorf("failed to read files from disk: %w", err)
	}

	kept := files[:0]
	scripts := 0
	for _, file := range files {
		name := strings.TrimPrefix(filepath.ToSlash(file.NameInArchive), "/")
		if file.IsDir() {
			dir := strings.TrimSuffix(name, "/")
			if dir != "" && !strings.Contains(dir, "/") {
				kept = append(kept, file)
			}
			continue
		}
		if _, _, ok := splitEntry(name); ok {
			kept = append(kept, file)
			scripts++
		}
	}
	if scripts == 0 {
		return 0, fmt.Errorf("no hook scripts found in %s", sourceDir)
	}

	out, err := os.Create(bundlePath)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file %s: %w", bundlePath, err)
	}
	defer func() {
		_ = out.Sync()
		_ = out.Close()
	}()

	format := archives.CompressedArchive{
		Compression: archives.Gz{},
		Archival:    archives.Tar{},
	}
	if err := format.Archive(ctx, out, kept); err != nil {
		return 0, fmt.Errorf("failed to create bundle: %w", err)
	}

	logger.Debug("Packed hook bundle", logger.Fields{"source": sourceDir, "bundle": bundlePath, "scripts": scripts})
	return scripts, nil
}

// List returns the hook scripts stored in a bundle, ordered by class and file.
func (m *Manager) List(ctx context.Context, bundlePath string) ([]Entry, error) {
	fsys, err := open(ctx, bundlePath)
	if err != nil {
		return nil, err
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	var entries []Entry
	err = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		class, slot, ok := splitEntry(p)
		if !ok {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("failed to get file info for %s: %w", p, err)
		}
		entries = append(entries, Entry{Class: class, File: path.Base(p), Slot: slot, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle %s: %w", bundlePath, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Class != entries[j].Class {
			return entries[i].Class < entries[j].Class
		}
		return entries[i].File < entries[j].File
	})
	return entries, nil
}

// Unpack extracts the hook scripts of a bundle into destDir, recreating the
// <class>/ directories. Other entries are ignored.
func (m *Manager) Unpack(ctx context.Context, bundlePath, destDir string) (int, error) {
	fsys, err := open(ctx, bundlePath)
	if err != nil {
		return 0, err
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create destination directory: %w", err)
	}

	written := 0
	err = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, _, ok := splitEntry(p); !ok {
			return nil
		}
		target, err := targetPath(destDir, p)
		if err != nil {
			return err
		}
		if err := writeFile(fsys, p, target); err != nil {
			return err
		}
		written++
		return nil
	})
	if err != nil {
		return written, fmt.Errorf("failed to unpack bundle %s: %w", bundlePath, err)
	}
	return written, nil
}

func open(ctx context.Context, bundlePath string) (fs.FS, error) {
	if _, err := os.Stat(bundlePath); err != nil {
		return nil, fmt.Errorf("hook bundle %s: %w", bundlePath, err)
	}
	fsys, err := archives.FileSystem(ctx, bundlePath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open hook bundle %s: %w", bundlePath, err)
	}
	return fsys, nil
}

// splitEntry accepts <class>/<hook file> paths.
func splitEntry(p string) (string, lifecycle.Slot, bool) {
	class, file, found := strings.Cut(p, "/")
	if !found || class == "" || class == "." || class == ".." || strings.Contains(file, "/") {
		return "", lifecycle.Slot{}, false
	}
	slot, ok := hooks.ParseHookFileName(file)
	if !ok {
		return "", lifecycle.Slot{}, false
	}
	return class, slot, true
}

// targetPath joins an entry onto destDir and rejects results outside it.
func targetPath(destDir, p string) (string, error) {
	target := filepath.Join(destDir, filepath.FromSlash(p))
	rel, err := filepath.Rel(destDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("bundle entry %s escapes %s", p, destDir)
	}
	return target, nil
}

func writeFile(fsys fs.FS, p, targetPath string) error {
	src, err := fsys.Open(p)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", p, err)
	}
	defer func() { _ = src.Close() }()

	if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory for %s: %w", p, err)
	}

	dst, err := os.OpenFile(targetPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", targetPath, err)
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to copy %s: %w", p, err)
	}
	return nil
}
