package exchange

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteReceipt(t *testing.T) {
	path := filepath.Join(t.TempDir(), ReceiptFileName("alice"))
	if err := WriteReceipt(path, "alice", "1a2b3-c4d5e-6f7a8-b9c0d", "2026-01-02 10:20:30.000000 UTC"); err != nil {
		t.Fatal("unable to write receipt:", err)
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatal("unable to read receipt:", err)
	}
	expected := "Username: alice\nHashcode: 1a2b3-c4d5e-6f7a8-b9c0d\nTimestamp: 2026-01-02 10:20:30.000000 UTC\n"
	if string(contents) != expected {
		t.Errorf("receipt contents not as expected:\n%s", contents)
	}
}

func TestWriteReceiptOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), ReceiptFileName("alice"))
	if err := WriteReceipt(path, "alice", "first", "t1"); err != nil {
		t.Fatal("unable to write first receipt:", err)
	}
	if err := WriteReceipt(path, "alice", "second", "t2"); err != nil {
		t.Fatal("unable to write second receipt:", err)
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatal("unable to read receipt:", err)
	}
	if string(contents) != "Username: alice\nHashcode: second\nTimestamp: t2\n" {
		t.Errorf("overwritten receipt contents not as expected:\n%s", contents)
	}
}

func TestWriteTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), TimestampFileName)
	if err := WriteTimestamp(path, "2026-01-02 10:20:30.000000 UTC"); err != nil {
		t.Fatal("unable to write timestamp:", err)
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatal("unable to read timestamp:", err)
	}
	if string(contents) != "2026-01-02 10:20:30.000000 UTC" {
		t.Error("timestamp contents not as expected:", string(contents))
	}
}

func TestReceiptFileName(t *testing.T) {
	if name := ReceiptFileName("bob"); name != "bob_info.txt" {
		t.Error("receipt file name not as expected:", name)
	}
}
