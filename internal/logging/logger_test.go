package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "hirechat.log")

	logger, err := New(Options{Path: path, Profile: "work"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("poll cycle")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"msg":"poll cycle"`)) {
		t.Errorf("log file missing message: %s", data)
	}
	if !bytes.Contains(data, []byte(`"profile":"work"`)) {
		t.Errorf("log file missing profile field: %s", data)
	}
}

func TestDebugLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	logger, err := New(Options{Path: path, Profile: "p"})
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("hidden")
	_ = logger.Sync()

	data, _ := os.ReadFile(path)
	if bytes.Contains(data, []byte("hidden")) {
		t.Error("debug line written at info level")
	}

	logger, err = New(Options{Path: path, Profile: "p", Debug: true})
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("visible")
	_ = logger.Sync()

	data, _ = os.ReadFile(path)
	if !bytes.Contains(data, []byte("visible")) {
		t.Error("debug line missing with Debug enabled")
	}
}
