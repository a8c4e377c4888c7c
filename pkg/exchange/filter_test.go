package exchange

import (
	"os"
	"path/filepath"
	"testing"
)

// filterTestValue is a single path expectation for a filter test case.
type filterTestValue struct {
	path      string
	directory bool
	size      int64
	expected  bool
}

// filterTestCase is a filter configuration with path expectations.
type filterTestCase struct {
	exclude     []string
	include     []string
	maxFileSize uint64
	tests       []filterTestValue
}

// fakeFileInfo provides just enough os.FileInfo for filter tests.
type fakeFileInfo struct {
	os.FileInfo
	directory bool
	size      int64
}

func (f *fakeFileInfo) IsDir() bool { return f.directory }
func (f *fakeFileInfo) Size() int64 { return f.size }
func (f *fakeFileInfo) Mode() os.FileMode {
	if f.directory {
		return os.ModeDir | 0755
	}
	return 0644
}

func (c *filterTestCase) run(t *testing.T) {
	t.Helper()

	// Create the filter.
	filter, err := NewFilter(c.exclude, c.include, c.maxFileSize)
	if err != nil {
		t.Fatal("unable to create filter:", err)
	}

	// Verify expectations.
	for _, p := range c.tests {
		info := &fakeFileInfo{directory: p.directory, size: p.size}
		if skip, _ := filter.Skip(p.path, info); skip != p.expected {
			t.Error("filter behavior not as expected for", p.path)
		}
	}
}

func TestFilterNone(t *testing.T) {
	test := &filterTestCase{
		tests: []filterTestValue{
			{"ps1.ipynb", false, 100, false},
			{"data", true, 0, false},
			{"data/big.bin", false, 1 << 30, false},
		},
	}
	test.run(t)
}

func TestFilterExclude(t *testing.T) {
	test := &filterTestCase{
		exclude: []string{".ipynb_checkpoints", "*.pyc", ".*"},
		tests: []filterTestValue{
			{"ps1.ipynb", false, 100, false},
			{".ipynb_checkpoints", true, 0, true},
			{"sub/.ipynb_checkpoints", true, 0, true},
			{"module.pyc", false, 10, true},
			{"sub/module.pyc", false, 10, true},
			{".hidden", false, 10, true},
		},
	}
	test.run(t)
}

func TestFilterInclude(t *testing.T) {
	test := &filterTestCase{
		include: []string{"*.ipynb"},
		tests: []filterTestValue{
			{"ps1.ipynb", false, 100, false},
			{"sub/ps2.ipynb", false, 100, false},
			{"notes.txt", false, 100, true},
			// Directories are not subject to inclusion patterns.
			{"sub", true, 0, false},
		},
	}
	test.run(t)
}

func TestFilterMaxFileSize(t *testing.T) {
	test := &filterTestCase{
		maxFileSize: 1000,
		tests: []filterTestValue{
			{"small.ipynb", false, 1000, false},
			{"big.bin", false, 1001, true},
			// Directories are not subject to the size limit.
			{"data", true, 0, false},
		},
	}
	test.run(t)
}

func TestFilterInvalidPattern(t *testing.T) {
	if _, err := NewFilter([]string{"[invalid"}, nil, 0); err == nil {
		t.Error("invalid pattern did not surface as an error")
	}
	if _, err := NewFilter(nil, []string{""}, 0); err == nil {
		t.Error("empty pattern did not surface as an error")
	}
}

func TestNilFilterTransfersEverything(t *testing.T) {
	var filter *Filter
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, []byte("content"), 0644); err != nil {
		t.Fatal("unable to create file:", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal("unable to stat file:", err)
	}
	if skip, _ := filter.Skip("file", info); skip {
		t.Error("nil filter skipped an entry")
	}
}
