// Package archive tracks which documents have already been downloaded
// across runs.
//
// The archive is a plain UTF-8 text file with one document identifier
// per line. It is loaded once at startup and only ever appended to;
// existing lines are never rewritten, so a crashed run can at worst
// lose the entry for the issue in flight.
package archive

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
)

// Archive is the set of completed document identifiers, optionally
// backed by an append-only file.
type Archive struct {
	mu   sync.Mutex
	path string
	done map[string]struct{}
}

// Load reads the archive file into memory. A missing file yields an
// empty archive that will create the file on the first Record. An
// empty path yields a purely in-memory archive.
func Load(path string) (*Archive, error) {
	a := &Archive{
		path: path,
		done: make(map[string]struct{}),
	}
	if path == "" {
		return a, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return a, nil
		}
		return nil, fmt.Errorf("opening archive file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id == "" {
			continue
		}
		a.done[id] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading archive file: %w", err)
	}
	return a, nil
}

// Contains reports whether id has already been downloaded.
func (a *Archive) Contains(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.done[id]
	return ok
}

// Record marks id as downloaded, appending a line to the archive file
// when one is configured. The file is created if absent.
func (a *Archive) Record(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.done[id] = struct{}{}
	if a.path == "" {
		return nil
	}

	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening archive file for append: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, id); err != nil {
		return fmt.Errorf("appending to archive file: %w", err)
	}
	return nil
}

// Len returns the number of recorded identifiers.
func (a *Archive) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.done)
}
