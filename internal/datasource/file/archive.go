package file

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// StampLayout formats the timestamp appended to archived file names.
const StampLayout = "20060102150405"

// maxArchiveAttempts bounds the numbered names tried when the archive
// name is taken.
const maxArchiveAttempts = 1000

// ArchiveName returns the archive file name for src: the base name without
// its extensions, "_", stamp, then the data extension and any compression
// suffix.
//
//	ArchiveName("/in/orders.csv", "20240131235959") == "orders_20240131235959.csv"
//	ArchiveName("/in/orders.csv.gz", "20240131235959") == "orders_20240131235959.csv.gz"
func ArchiveName(src, stamp string) string {
	return archiveName(src, stamp, 1)
}

// archiveName adds "_<n>" after the stamp for n > 1.
func archiveName(src, stamp string, n int) string {
	base := filepath.Base(src)
	plain := TrimCompressionExt(base)
	comp := base[len(plain):]
	ext := filepath.Ext(plain)

	name := strings.TrimSuffix(plain, ext) + "_" + stamp
	if n > 1 {
		name += "_" + strconv.Itoa(n)
	}
	return name + ext + comp
}

// Archive moves src into dir and returns the destination path. dir is
// created if missing. The destination is ArchiveName(src, stamp); when that
// name is taken, by an earlier run or by another file with the same base
// name, "_2", "_3" and so on are tried. Names are claimed with an exclusive
// create, so concurrent callers never share a destination and an existing
// file is never overwritten. When a rename is impossible (e.g. across
// devices) the file is copied and the source removed.
func Archive(src, dir, stamp string) (string, error) {
	if _, err := os.Lstat(src); err != nil {
		return "", fmt.Errorf("archive: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("archive: create %s: %w", dir, err)
	}

	dst, err := claim(src, dir, stamp)
	if err != nil {
		return "", err
	}

	// Rename replaces the empty placeholder claim created.
	if err := os.Rename(src, dst); err == nil {
		return dst, nil
	} else if _, statErr := os.Stat(src); statErr != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("archive: move %s: %w", src, err)
	}

	if err := copyFile(src, dst); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("archive: copy %s: %w", src, err)
	}
	if err := os.Remove(src); err != nil {
		return "", fmt.Errorf("archive: remove %s: %w", src, err)
	}
	return dst, nil
}

// claim reserves a free archive name in dir by creating an empty file there.
func claim(src, dir, stamp string) (string, error) {
	for n := 1; n <= maxArchiveAttempts; n++ {
		dst := filepath.Join(dir, archiveName(src, stamp, n))
		f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("archive: create %s: %w", dst, err)
		}
		if err := f.Close(); err != nil {
			_ = os.Remove(dst)
			return "", fmt.Errorf("archive: create %s: %w", dst, err)
		}
		return dst, nil
	}
	return "", fmt.Errorf("archive: %s: no free name after %d attempts: %w",
		filepath.Join(dir, ArchiveName(src, stamp)), maxArchiveAttempts, os.ErrExist)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
