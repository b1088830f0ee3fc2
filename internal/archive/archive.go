// Package archive writes the repository tree, including version-control
// metadata, into a compressed zip file with glob-based exclusions.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"git.home.luguber.info/inful/switchctl/internal/logfields"
)

// Options controls what is left out of an archive.
type Options struct {
	// Exclude holds glob patterns matched against relative paths and segments.
	Exclude []string
	// SkipNames are exact base names never archived (the archive itself, the
	// switcher's own files).
	SkipNames []string
}

// Create walks root and writes every regular file into a zip at dest.
// Per-file I/O errors are logged and skipped; they do not abort the whole
// operation. On any walk-level failure the partially written file is removed
// before the error is returned. The destination is created exclusively.
func Create(root, dest string, opts Options) (err error) {
	out, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create archive file: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(dest)
		}
	}()

	matcher := NewMatcher(opts.Exclude)
	zw := zip.NewWriter(out)

	destAbs, err := filepath.Abs(dest)
	if err != nil {
		return err
	}

	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if matcher.Excluded(rel) {
				slog.Debug("Excluding directory from archive", logfields.Path(rel))
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		if abs, absErr := filepath.Abs(p); absErr == nil && abs == destAbs {
			return nil // never archive the file being written
		}
		if slices.Contains(opts.SkipNames, d.Name()) {
			return nil
		}
		if matcher.Excluded(rel) {
			slog.Debug("Excluding from archive", logfields.Path(rel))
			return nil
		}

		if copyErr := addFile(zw, p, filepath.ToSlash(rel)); copyErr != nil {
			slog.Warn("Skipping unreadable file", logfields.Path(rel), logfields.Error(copyErr))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk tree: %w", err)
	}

	if err = zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}

func addFile(zw *zip.Writer, src, name string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, f)
	return err
}
