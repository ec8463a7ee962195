package pidfile

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// ErrAlreadyRunning is returned by Acquire when a live process owns the file.
var ErrAlreadyRunning = errors.New("another watcher is already running")

// PIDFile keeps a single watcher per payload directory
type PIDFile struct {
	path string
}

// New creates a new PIDFile manager
func New(path string) *PIDFile {
	return &PIDFile{path: path}
}

// Path returns the file location
func (p *PIDFile) Path() string {
	return p.path
}

// Acquire writes the current PID. A stale file left by a dead process is
// replaced; a live owner yields ErrAlreadyRunning.
func (p *PIDFile) Acquire() error {
	if pid, err := p.Read(); err == nil {
		if pid != os.Getpid() && isProcessRunning(pid) {
			return fmt.Errorf("%w (PID %d)", ErrAlreadyRunning, pid)
		}
		_ = os.Remove(p.path)
	} else if !os.IsNotExist(err) {
		// Unreadable or garbage content
		_ = os.Remove(p.path)
	}

	pidData := strconv.Itoa(os.Getpid()) + "\n"
	if err := os.WriteFile(p.path, []byte(pidData), 0o644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}

	return nil
}

// Read returns the PID stored in the file
func (p *PIDFile) Read() (int, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID file %s: %w", p.path, err)
	}
	return pid, nil
}

// Release removes the PID file
func (p *PIDFile) Release() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// isProcessRunning sends signal 0, which only checks that the process exists
func isProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = process.Signal(syscall.Signal(0))
	switch {
	case err == nil:
		return true
	case errors.Is(err, syscall.EPERM):
		// exists, owned by another user
		return true
	default:
		return false
	}
}
