package notebook

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testNotebook is a minimal valid notebook with one code cell carrying
// outputs that must survive a read-stamp-write cycle.
const testNotebook = `{
 "cells": [
  {
   "cell_type": "code",
   "execution_count": 3,
   "metadata": {},
   "outputs": [{"name": "stdout", "output_type": "stream", "text": ["42\n"]}],
   "source": ["print(42)"]
  }
 ],
 "metadata": {"kernelspec": {"name": "python3"}},
 "nbformat": 4,
 "nbformat_minor": 5
}
`

// writeTestNotebook writes the test notebook into a temporary directory and
// returns its path.
func writeTestNotebook(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ps1.ipynb")
	if err := os.WriteFile(path, []byte(testNotebook), 0644); err != nil {
		t.Fatal("unable to write notebook:", err)
	}
	return path
}

func TestParseRejectsNonNotebook(t *testing.T) {
	if _, err := Parse([]byte(`{"not": "a notebook"}`)); err == nil {
		t.Error("parsing succeeded for document without cells")
	}
	if _, err := Parse([]byte(`not json`)); err == nil {
		t.Error("parsing succeeded for invalid JSON")
	}
}

func TestStampAppendsCell(t *testing.T) {
	document, err := Parse([]byte(testNotebook))
	if err != nil {
		t.Fatal("unable to parse notebook:", err)
	}
	document.Stamp("timestamp_cell", "stamped content")
	if count := document.TaggedCellCount("timestamp_cell"); count != 1 {
		t.Error("tagged cell count not as expected:", count)
	}
	if source := document.TaggedCellSource("timestamp_cell"); source != "stamped content" {
		t.Error("tagged cell source not as expected:", source)
	}
}

func TestStampIdempotent(t *testing.T) {
	document, err := Parse([]byte(testNotebook))
	if err != nil {
		t.Fatal("unable to parse notebook:", err)
	}
	document.Stamp("hashcode_cell", "first")
	document.Stamp("hashcode_cell", "second")
	if count := document.TaggedCellCount("hashcode_cell"); count != 1 {
		t.Error("repeated stamping created duplicate cells:", count)
	}
	if source := document.TaggedCellSource("hashcode_cell"); source != "second" {
		t.Error("tagged cell source not updated:", source)
	}
}

func TestStampSurvivesRoundTrip(t *testing.T) {
	path := writeTestNotebook(t)
	document, err := Read(path)
	if err != nil {
		t.Fatal("unable to read notebook:", err)
	}
	document.Stamp("timestamp_cell", "2026-01-02 10:20:30.000000 UTC")
	if err := document.Write(path); err != nil {
		t.Fatal("unable to write notebook:", err)
	}

	// Re-read and verify the stamp plus preservation of uninterpreted fields.
	reread, err := Read(path)
	if err != nil {
		t.Fatal("unable to re-read notebook:", err)
	}
	if count := reread.TaggedCellCount("timestamp_cell"); count != 1 {
		t.Error("tagged cell count not as expected after round trip:", count)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal("unable to read raw notebook:", err)
	}
	for _, fragment := range []string{"execution_count", "output_type", "kernelspec", "nbformat_minor"} {
		if !strings.Contains(string(data), fragment) {
			t.Errorf("field %q lost during round trip", fragment)
		}
	}
}

func TestHashcodeFormat(t *testing.T) {
	path := writeTestNotebook(t)
	hashcode, err := Hashcode(path)
	if err != nil {
		t.Fatal("unable to compute hashcode:", err)
	}
	groups := strings.Split(hashcode, "-")
	if len(groups) != 4 {
		t.Fatal("hashcode group count not as expected:", hashcode)
	}
	for _, group := range groups {
		if len(group) != 5 {
			t.Error("hashcode group length not as expected:", group)
		}
	}
}

func TestHashcodeDeterministic(t *testing.T) {
	path := writeTestNotebook(t)
	first, err := Hashcode(path)
	if err != nil {
		t.Fatal("unable to compute first hashcode:", err)
	}
	second, err := Hashcode(path)
	if err != nil {
		t.Fatal("unable to compute second hashcode:", err)
	}
	if first != second {
		t.Error("hashcodes of identical content differ:", first, "!=", second)
	}
}

func TestHashcodeSensitive(t *testing.T) {
	path := writeTestNotebook(t)
	original, err := Hashcode(path)
	if err != nil {
		t.Fatal("unable to compute original hashcode:", err)
	}
	modified := strings.Replace(testNotebook, "print(42)", "print(43)", 1)
	if err := os.WriteFile(path, []byte(modified), 0644); err != nil {
		t.Fatal("unable to modify notebook:", err)
	}
	changed, err := Hashcode(path)
	if err != nil {
		t.Fatal("unable to compute modified hashcode:", err)
	}
	if original == changed {
		t.Error("hashcodes of differing content are identical")
	}
}
