package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// Holder describes the process recorded in a lock file.
type Holder struct {
	PID     int
	Program string
	Since   time.Time
}

// HeldError is returned when another process holds the profile lock.
// Only one interactive client per profile may poll and write the local cache.
type HeldError struct {
	Holder Holder
	Path   string
}

func (e *HeldError) Error() string {
	if e.Holder.Program != "" {
		return fmt.Sprintf("profile lock held by %s (PID %d) since %s (%s)",
			e.Holder.Program, e.Holder.PID, e.Holder.Since.Format(time.RFC3339), e.Path)
	}
	return fmt.Sprintf("profile lock held by PID %d (%s)", e.Holder.PID, e.Path)
}

// Lock represents an acquired profile lock file.
type Lock struct {
	file *os.File
	path string
}

// Acquire takes an exclusive, non-blocking flock on <dir>/LOCK and records
// the calling program in it. Returns *HeldError if another process holds it.
func Acquire(dir, program string) (*Lock, error) {
	lockPath := filepath.Join(dir, "LOCK")

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create profile dir: %w", err)
	}

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		data, _ := os.ReadFile(lockPath)
		_ = f.Close()
		return nil, &HeldError{Holder: parseHolder(string(data)), Path: lockPath}
	}

	if err := writeHolder(f, Holder{PID: os.Getpid(), Program: program, Since: time.Now().UTC()}); err != nil {
		_ = f.Close()
		return nil, err
	}

	return &Lock{file: f, path: lockPath}, nil
}

// Release releases the lock. Safe to call on nil receiver and more than once.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	_ = os.Remove(l.path)
	err := l.file.Close()
	l.file = nil
	return err
}

func writeHolder(f *os.File, h Holder) error {
	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.Seek(0, 0); err != nil {
		return err
	}
	content := fmt.Sprintf("pid=%d\nprogram=%s\ntime=%s\n", h.PID, h.Program, h.Since.Format(time.RFC3339))
	_, err := f.WriteString(content)
	return err
}

func parseHolder(content string) Holder {
	var h Holder
	for _, line := range strings.Split(content, "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch key {
		case "pid":
			h.PID, _ = strconv.Atoi(value)
		case "program":
			h.Program = value
		case "time":
			h.Since, _ = time.Parse(time.RFC3339, value)
		}
	}
	return h
}
