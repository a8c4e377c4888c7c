package exchange

import (
	"os"
	"path/filepath"
	"testing"
)

// createTree creates files (with parent directories) under root. Each entry
// maps a slash-separated relative path to its contents.
func createTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, contents := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal("unable to create parent directories:", err)
		}
		if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
			t.Fatal("unable to create file:", err)
		}
	}
}

// readFile reads a file under root, failing the test on error.
func readFile(t *testing.T, root, name string) string {
	t.Helper()
	contents, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
	if err != nil {
		t.Fatal("unable to read file:", err)
	}
	return string(contents)
}

// exists checks for the presence of a path under root.
func exists(root, name string) bool {
	_, err := os.Lstat(filepath.Join(root, filepath.FromSlash(name)))
	return err == nil
}

func TestCopyTree(t *testing.T) {
	source := t.TempDir()
	createTree(t, source, map[string]string{
		"ps1.ipynb":               "notebook",
		"data/values.csv":         "1,2,3",
		"module.pyc":              "bytecode",
		".ipynb_checkpoints/a.py": "checkpoint",
	})
	filter, err := NewFilter([]string{"*.pyc", ".ipynb_checkpoints"}, nil, 0)
	if err != nil {
		t.Fatal("unable to create filter:", err)
	}

	destination := filepath.Join(t.TempDir(), "copy")
	if err := CopyTree(source, destination, filter, nil); err != nil {
		t.Fatal("unable to copy tree:", err)
	}

	if readFile(t, destination, "ps1.ipynb") != "notebook" {
		t.Error("copied notebook contents not as expected")
	}
	if readFile(t, destination, "data/values.csv") != "1,2,3" {
		t.Error("copied nested file contents not as expected")
	}
	if exists(destination, "module.pyc") {
		t.Error("excluded file was copied")
	}
	if exists(destination, ".ipynb_checkpoints") {
		t.Error("excluded directory was copied")
	}
}

func TestCopyTreeMaxFileSize(t *testing.T) {
	source := t.TempDir()
	createTree(t, source, map[string]string{
		"small.txt": "ok",
		"big.txt":   "this file is over the limit",
	})
	filter, err := NewFilter(nil, nil, 10)
	if err != nil {
		t.Fatal("unable to create filter:", err)
	}

	destination := filepath.Join(t.TempDir(), "copy")
	if err := CopyTree(source, destination, filter, nil); err != nil {
		t.Fatal("unable to copy tree:", err)
	}

	if !exists(destination, "small.txt") {
		t.Error("small file was not copied")
	}
	if exists(destination, "big.txt") {
		t.Error("oversized file was copied")
	}
}

func TestCopyTreeMissingSource(t *testing.T) {
	if err := CopyTree(filepath.Join(t.TempDir(), "missing"), t.TempDir(), nil, nil); err == nil {
		t.Error("copy of missing source did not surface as an error")
	}
}

func TestCopyMissing(t *testing.T) {
	source := t.TempDir()
	createTree(t, source, map[string]string{
		"a.ipynb":     "released a",
		"b.ipynb":     "released b",
		"sub/c.ipynb": "released c",
	})

	// The destination already contains a student-modified a.ipynb and an
	// existing (but incomplete) subdirectory.
	destination := t.TempDir()
	createTree(t, destination, map[string]string{
		"a.ipynb": "student work",
	})
	if err := os.Mkdir(filepath.Join(destination, "sub"), 0755); err != nil {
		t.Fatal("unable to create subdirectory:", err)
	}

	if err := CopyMissing(source, destination, nil, nil); err != nil {
		t.Fatal("unable to fill in missing entries:", err)
	}

	if readFile(t, destination, "a.ipynb") != "student work" {
		t.Error("existing destination file was modified")
	}
	if readFile(t, destination, "b.ipynb") != "released b" {
		t.Error("missing file was not created from source")
	}
	if readFile(t, destination, "sub/c.ipynb") != "released c" {
		t.Error("missing nested file was not created from source")
	}
}

func TestCopyMissingRequiresDestination(t *testing.T) {
	source := t.TempDir()
	if err := CopyMissing(source, filepath.Join(t.TempDir(), "missing"), nil, nil); err == nil {
		t.Error("fill-missing copy into missing destination did not surface as an error")
	}
}

func TestCopyTreeOverwrite(t *testing.T) {
	source := t.TempDir()
	createTree(t, source, map[string]string{"current.txt": "current"})

	destination := filepath.Join(t.TempDir(), "scratch")
	createTree(t, destination, map[string]string{"stale.txt": "stale"})

	if err := CopyTreeOverwrite(source, destination, nil, nil); err != nil {
		t.Fatal("unable to overwrite tree:", err)
	}
	if exists(destination, "stale.txt") {
		t.Error("stale entry survived overwrite")
	}
	if readFile(t, destination, "current.txt") != "current" {
		t.Error("overwritten contents not as expected")
	}
}
