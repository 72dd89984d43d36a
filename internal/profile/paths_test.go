package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matheus3301/hirechat/internal/config"
)

func TestDirUsesHomeOverride(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HIRECHAT_HOME", tmp)

	got := Dir("work")
	want := filepath.Join(tmp, "profiles", "work")
	if got != want {
		t.Errorf("Dir(work) = %q, want %q", got, want)
	}
}

func TestLogPath(t *testing.T) {
	got := LogPath("test", "hirectl")
	if !strings.HasSuffix(got, filepath.Join("profiles", "test", "logs", "hirectl.log")) {
		t.Errorf("LogPath = %q, want suffix profiles/test/logs/hirectl.log", got)
	}
}

func TestEnsureDir(t *testing.T) {
	t.Setenv("HIRECHAT_HOME", t.TempDir())

	if err := EnsureDir("test"); err != nil {
		t.Fatal(err)
	}
	for _, d := range []string{Dir("test"), LogDir("test")} {
		info, err := os.Stat(d)
		if err != nil {
			t.Fatalf("%s not created: %v", d, err)
		}
		if info.Mode().Perm() != 0700 {
			t.Errorf("%s perm = %o, want 0700", d, info.Mode().Perm())
		}
	}
}

func TestResolvePrecedence(t *testing.T) {
	t.Setenv("HIRECHAT_HOME", t.TempDir())

	if got := Resolve(""); got != DefaultName {
		t.Errorf("Resolve() without config = %q, want %q", got, DefaultName)
	}

	if err := config.Save(ConfigPath(), &config.Config{DefaultProfile: "acme"}); err != nil {
		t.Fatal(err)
	}
	if got := Resolve(""); got != "acme" {
		t.Errorf("Resolve() = %q, want acme", got)
	}
	if got := Resolve("other"); got != "other" {
		t.Errorf("Resolve(other) = %q, want other", got)
	}
}

func TestLoadValidatesProfile(t *testing.T) {
	t.Setenv("HIRECHAT_HOME", t.TempDir())

	cfg := &config.Config{Profiles: map[string]*config.Profile{
		"good": {BaseURL: "http://localhost:8080", Surface: "seeker"},
		"bad":  {BaseURL: "http://localhost:8080", Surface: "nobody"},
	}}
	if err := config.Save(ConfigPath(), cfg); err != nil {
		t.Fatal(err)
	}

	if _, err := Load("good"); err != nil {
		t.Errorf("Load(good) error = %v", err)
	}
	if _, err := Load("bad"); err == nil {
		t.Error("Load(bad) expected validation error")
	}
	if _, err := Load("Bad Name"); err == nil {
		t.Error("Load with invalid name expected error")
	}
}
