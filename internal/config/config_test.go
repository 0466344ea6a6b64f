package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultConfig(t *testing.T) {
	GetDefaultOptions()
	Opts.Data = filepath.Join(t.TempDir(), "data")

	opts, err := GetConfig()
	if err != nil {
		t.Fatalf("Error loading config: %s", err)
	}

	if opts.Port != defaultPort {
		t.Errorf("Port not set")
	}
	if opts.DSN != filepath.Join(opts.Data, "librarize.db") {
		t.Errorf("DSN not derived from data dir, got %s", opts.DSN)
	}
	if _, err := os.Stat(opts.Data); err != nil {
		t.Errorf("Data dir not created: %s", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	GetDefaultOptions()

	file := filepath.Join(t.TempDir(), "config.toml")
	content := `
host = "127.0.0.1"
port = 2333
log_file = "test.log"
log_level = "debug"
`
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	opts, err := ParseFile(file)
	if err != nil {
		t.Fatalf("Error loading config: %s", err)
	}
	if opts.Host != "127.0.0.1" {
		t.Errorf("Host not set")
	}
	if opts.Port != 2333 {
		t.Errorf("Port not set")
	}
	if opts.LogFile != "test.log" {
		t.Errorf("LogFile not set")
	}
	if opts.LogLevel != "debug" {
		t.Errorf("LogLevel not set")
	}
}
