// Package nvim loads patched file contents into Neovim buffers.
package nvim

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/neovim/go-client/nvim"

	"github.com/sokinpui/tidydiff.go/model"
)

// Session is a connection to a Neovim instance. It owns the instance when
// it had to start one itself.
type Session struct {
	client *nvim.Nvim
	child  *exec.Cmd
	tmpDir string
}

// Connect attaches to the instance named by $NVIM (or the older
// $NVIM_LISTEN_ADDRESS). Without one it starts a headless instance that
// Close shuts down again.
func Connect() (*Session, error) {
	for _, env := range []string{"NVIM", "NVIM_LISTEN_ADDRESS"} {
		addr := os.Getenv(env)
		if addr == "" {
			continue
		}
		if client, err := nvim.Dial(addr); err == nil {
			return &Session{client: client}, nil
		}
	}
	return spawn()
}

func spawn() (*Session, error) {
	tmpDir, err := os.MkdirTemp("", "tidydiff-nvim-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir for nvim: %w", err)
	}
	socket := filepath.Join(tmpDir, "nvim.sock")

	child := exec.Command("nvim", "--headless", "--clean", "--listen", socket)
	if err := child.Start(); err != nil {
		os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("failed to start headless nvim (is it in your PATH?): %w", err)
	}

	s := &Session{child: child, tmpDir: tmpDir}
	client, err := dialWhenReady(socket, time.Second)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.client = client
	return s, nil
}

// dialWhenReady polls until the socket of a freshly started instance shows
// up, then connects to it.
func dialWhenReady(socket string, timeout time.Duration) (*nvim.Nvim, error) {
	deadline := time.Now().Add(timeout)
	for {
		if _, err := os.Stat(socket); err == nil {
			return nvim.Dial(socket)
		}
		if time.Now().After(deadline) {
			return nil, errors.New("timed out waiting for headless nvim to listen")
		}
		time.Sleep(25 * time.Millisecond)
	}
}

// Close disconnects and stops the instance if Connect started it.
func (s *Session) Close() {
	if s.client != nil {
		s.client.Close()
	}
	if s.child != nil && s.child.Process != nil {
		s.child.Process.Kill()
		s.child.Wait()
	}
	if s.tmpDir != "" {
		os.RemoveAll(s.tmpDir)
	}
}

// Load opens a buffer for every change and replaces its lines with the new
// content. Buffers are left modified and unsaved. progress, if set, is called
// with the number of changes handled so far.
func (s *Session) Load(changes []model.FileChange, progress func(int)) (loaded, failed []string) {
	return each(changes, func(c model.FileChange) (string, error) {
		return c.Path, s.setBuffer(c.Path, c.Content)
	}, progress)
}

func (s *Session) setBuffer(path, content string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	b := s.client.NewBatch()
	b.Command("edit " + escapePath(abs))
	b.SetBufferLines(0, 0, -1, true, BufferLines(content))
	return b.Execute()
}

// each runs fn over items in order and sorts the returned paths by outcome.
func each[T any](items []T, fn func(T) (string, error), progress func(int)) (ok, failed []string) {
	for i, item := range items {
		if path, err := fn(item); err != nil {
			failed = append(failed, path)
		} else {
			ok = append(ok, path)
		}
		if progress != nil {
			progress(i + 1)
		}
	}
	return ok, failed
}

// BufferLines converts text to buffer lines. A final newline is implied by
// the buffer and does not become an extra empty line.
func BufferLines(content string) [][]byte {
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	out := make([][]byte, len(lines))
	for i, line := range lines {
		out[i] = []byte(line)
	}
	return out
}

func escapePath(path string) string {
	return strings.NewReplacer(" ", `\ `, "%", `\%`, "#", `\#`).Replace(path)
}
