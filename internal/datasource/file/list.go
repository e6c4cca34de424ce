package file

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ReadList reads a text file line by line and returns a slice of strings
// containing non-empty, non-comment lines.
//
// Lines that are empty or start with '#' (after trimming) are skipped. The
// order of lines is preserved.
func ReadList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListDir returns the regular files directly inside dir whose names end in
// ext (case-insensitive), sorted by name. A compression suffix after ext is
// accepted, so ".csv" also matches "a.csv.gz". An empty ext matches every
// file.
func ListDir(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	var out []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		name := e.Name()
		if ext != "" && !strings.HasSuffix(strings.ToLower(TrimCompressionExt(name)), ext) {
			continue
		}
		out = append(out, filepath.Join(dir, name))
	}
	sort.Strings(out)
	return out, nil
}

// ResolveList reads a list file and resolves relative entries against the
// list file's directory.
func ResolveList(listPath string) ([]string, error) {
	items, err := ReadList(listPath)
	if err != nil {
		return nil, fmt.Errorf("read list %s: %w", listPath, err)
	}
	base := filepath.Dir(listPath)
	for i, p := range items {
		if !filepath.IsAbs(p) {
			items[i] = filepath.Join(base, p)
		}
	}
	return items, nil
}
