package share

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/raphi011/treefrog/internal/config"
	"github.com/raphi011/treefrog/internal/log"
)

// Mode selects how an entry is placed in the target worktree.
type Mode int

const (
	ModeLink Mode = iota
	ModeCopy
)

// MissingError reports an entry that does not exist in the main repository.
type MissingError struct {
	File string
	Mode Mode
}

func (e *MissingError) Error() string {
	if e.Mode == ModeCopy {
		return fmt.Sprintf("File or directory to clone does not exist: %s", e.File)
	}
	return fmt.Sprintf("Shared file or directory does not exist: %s", e.File)
}

// Link symlinks each mainDir/f to targetDir/f, creating parent directories.
// An existing link that already points at the source is left alone.
func Link(ctx context.Context, files []string, mainDir, targetDir string) error {
	l := log.FromContext(ctx)
	for _, file := range files {
		src, dst, info, err := locate(file, mainDir, targetDir, ModeLink)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return fmt.Errorf("create parent of %s: %w", file, err)
		}
		if err := os.Symlink(src, dst); err != nil {
			if errors.Is(err, fs.ErrExist) && linksTo(dst, src) {
				l.Debug("already linked", "file", file)
				continue
			}
			return fmt.Errorf("link %s: %w", file, err)
		}
		if info.IsDir() {
			l.Printf("Linked directory: %s\n", file)
		} else {
			l.Printf("Linked file: %s\n", file)
		}
	}
	return nil
}

// Copy copies each mainDir/f to targetDir/f. Directories are copied
// recursively. Files that already exist in the target are never overwritten.
func Copy(ctx context.Context, files []string, mainDir, targetDir string) error {
	l := log.FromContext(ctx)
	for _, file := range files {
		src, dst, info, err := locate(file, mainDir, targetDir, ModeCopy)
		if err != nil {
			return err
		}
		if info.IsDir() {
			if err := copyTree(src, dst); err != nil {
				return fmt.Errorf("copy %s: %w", file, err)
			}
			l.Printf("Copied directory: %s\n", file)
			continue
		}
		copied, err := CopyFile(src, dst)
		if err != nil {
			return fmt.Errorf("copy %s: %w", file, err)
		}
		if !copied {
			l.Debug("skipped existing file", "file", file)
			continue
		}
		l.Printf("Copied file: %s\n", file)
	}
	return nil
}

func locate(file, mainDir, targetDir string, mode Mode) (src, dst string, info fs.FileInfo, err error) {
	if err := config.ValidateRelative(file); err != nil {
		return "", "", nil, err
	}
	src = filepath.Join(mainDir, file)
	info, err = os.Stat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", "", nil, &MissingError{File: file, Mode: mode}
		}
		return "", "", nil, err
	}
	return src, filepath.Join(targetDir, file), info, nil
}

func linksTo(link, target string) bool {
	got, err := os.Readlink(link)
	return err == nil && filepath.Clean(got) == filepath.Clean(target)
}

// CopyFile copies a single file from src to dst, preserving its mode.
// Returns false without error if dst already exists.
func CopyFile(src, dst string) (bool, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return false, err
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, srcInfo.Mode().Perm())
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, err
	}
	defer dstFile.Close()

	srcFile, err := os.Open(src)
	if err != nil {
		os.Remove(dst)
		return false, err
	}
	defer srcFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		os.Remove(dst)
		return false, err
	}
	return true, nil
}

// copyTree copies the directory src into dst. Symlinks are recreated,
// not followed.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case d.IsDir():
			info, err := d.Info()
			if err != nil {
				return err
			}
			return os.MkdirAll(target, info.Mode().Perm())
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			if err := os.Symlink(link, target); err != nil && !errors.Is(err, fs.ErrExist) {
				return err
			}
			return nil
		case d.Type().IsRegular():
			_, err := CopyFile(path, target)
			return err
		default:
			return nil
		}
	})
}
