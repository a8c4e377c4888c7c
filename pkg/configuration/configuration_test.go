package configuration

import (
	"os"
	"path/filepath"
	"testing"
)

const testConfiguration = `exchange:
  root: /srv/test/exchange
  groupShared: true
  timezone: Europe/Berlin
course:
  id: cs101
  assignment: ps1
  maxFileSize: 5 MB
submit:
  strict: true
  randomSuffix: false
`

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	configuration, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	if err != nil {
		t.Fatal("unable to load configuration:", err)
	}
	if configuration.Exchange.Root != DefaultRoot {
		t.Error("default root not as expected:", configuration.Exchange.Root)
	}
	if configuration.Exchange.Timezone != DefaultTimezone {
		t.Error("default timezone not as expected:", configuration.Exchange.Timezone)
	}
	if !configuration.RandomSuffixEnabled() {
		t.Error("random suffix not enabled by default")
	}
	if len(configuration.Course.Ignore) == 0 {
		t.Error("default ignore patterns missing")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "handin.yml")
	if err := os.WriteFile(path, []byte(testConfiguration), 0600); err != nil {
		t.Fatal("unable to write configuration:", err)
	}
	configuration, err := Load(path)
	if err != nil {
		t.Fatal("unable to load configuration:", err)
	}
	if configuration.Exchange.Root != "/srv/test/exchange" {
		t.Error("root not as expected:", configuration.Exchange.Root)
	}
	if !configuration.Exchange.GroupShared {
		t.Error("group-shared flag not loaded")
	}
	if configuration.Course.ID != "cs101" || configuration.Course.Assignment != "ps1" {
		t.Error("course identity not as expected")
	}
	if uint64(configuration.Course.MaxFileSize) != 5000000 {
		t.Error("maximum file size not as expected:", configuration.Course.MaxFileSize)
	}
	if !configuration.Submit.Strict {
		t.Error("strict flag not loaded")
	}
	if configuration.RandomSuffixEnabled() {
		t.Error("random suffix enabled despite explicit disable")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "handin.yml")
	if err := os.WriteFile(path, []byte("exchange:\n  rooot: /srv\n"), 0600); err != nil {
		t.Fatal("unable to write configuration:", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("misspelled key did not surface as an error")
	}
}

func TestApplyEnvironment(t *testing.T) {
	t.Setenv("HANDIN_ROOT", "/srv/env/exchange")
	t.Setenv("HANDIN_COURSE", "cs201")
	configuration := Default()
	configuration.ApplyEnvironment()
	if configuration.Exchange.Root != "/srv/env/exchange" {
		t.Error("environment root override not applied")
	}
	if configuration.Course.ID != "cs201" {
		t.Error("environment course override not applied")
	}
}

func TestLoadEnvironmentFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "handin.env")
	if err := os.WriteFile(path, []byte("HANDIN_CACHE=/tmp/handin-cache\n"), 0600); err != nil {
		t.Fatal("unable to write environment file:", err)
	}
	if err := LoadEnvironmentFile(path); err != nil {
		t.Fatal("unable to load environment file:", err)
	}
	if os.Getenv("HANDIN_CACHE") != "/tmp/handin-cache" {
		t.Error("environment file value not applied")
	}
	os.Unsetenv("HANDIN_CACHE")

	// Missing files are tolerated.
	if err := LoadEnvironmentFile(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Error("missing environment file surfaced as an error:", err)
	}
}
