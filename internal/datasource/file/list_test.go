package file

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTempFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "list.txt")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestReadList_Basic(t *testing.T) {
	t.Parallel()

	content := `
# comment line
b.csv
   # indented comment
a.csv

   /abs/c.csv
`
	path := writeTempFile(t, content)

	got, err := ReadList(path)
	if err != nil {
		t.Fatalf("ReadList error: %v", err)
	}

	want := []string{"b.csv", "a.csv", "/abs/c.csv"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ReadList(%q) = %#v, want %#v", path, got, want)
	}
}

func TestReadList_FileNotFound(t *testing.T) {
	t.Parallel()

	if _, err := ReadList("does-not-exist-12345.txt"); err == nil {
		t.Fatalf("expected error for missing file, got nil")
	}
}

func TestResolveList_RelativeToListDir(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "x.csv\n/abs/y.csv\n")
	got, err := ResolveList(path)
	if err != nil {
		t.Fatalf("ResolveList: %v", err)
	}
	want := []string{filepath.Join(filepath.Dir(path), "x.csv"), "/abs/y.csv"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ResolveList = %#v, want %#v", got, want)
	}
}

func TestListDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, n := range []string{"b.csv", "a.CSV", "c.csv.gz", "notes.txt", "d.csvx"} {
		writeFile(t, dir, n, []byte("x"))
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.csv"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := ListDir(dir, ".csv")
	if err != nil {
		t.Fatalf("ListDir: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.CSV"),
		filepath.Join(dir, "b.csv"),
		filepath.Join(dir, "c.csv.gz"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ListDir = %#v, want %#v", got, want)
	}

	// Extension without a leading dot behaves the same.
	got2, err := ListDir(dir, "csv")
	if err != nil {
		t.Fatalf("ListDir: %v", err)
	}
	if !reflect.DeepEqual(got2, want) {
		t.Fatalf("ListDir(csv) = %#v, want %#v", got2, want)
	}

	all, err := ListDir(dir, "")
	if err != nil {
		t.Fatalf("ListDir: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("ListDir(\"\") returned %d files, want 5", len(all))
	}

	if _, err := ListDir(filepath.Join(dir, "missing"), ".csv"); err == nil {
		t.Fatalf("ListDir on missing dir should fail")
	}
}
