// Package ledger persists which tracking ids have already been downloaded, as
// a newline-delimited append-only file.
package ledger

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DefaultFilename is the ledger file name used when no override is given.
const DefaultFilename = "downloaded_media.log"

// Ledger is the in-memory view of the ledger file plus its path for appends.
type Ledger struct {
	path string
	seen map[string]bool
}

// Open loads the ledger at path. A missing file yields an empty ledger, not an
// error; the file is created on the first Record. Blank lines are skipped and
// surrounding whitespace is trimmed.
func Open(path string) (*Ledger, error) {
	l := &Ledger{
		path: path,
		seen: make(map[string]bool),
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, fmt.Errorf("failed to open ledger %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id == "" {
			continue
		}
		l.seen[id] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ledger %s: %w", path, err)
	}
	return l, nil
}

// Contains reports whether id was already recorded. Purely in-memory.
func (l *Ledger) Contains(id string) bool {
	return l.seen[id]
}

// Len returns the number of recorded ids.
func (l *Ledger) Len() int {
	return len(l.seen)
}

// Record appends id to the ledger file and marks it seen. The in-memory set is
// updated even when the append fails, so a retry within the run cannot
// double-download; the caller decides how to report the write failure.
func (l *Ledger) Record(id string) error {
	l.seen[id] = true

	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open ledger %s for append: %w", l.path, err)
	}
	defer file.Close()

	if _, err := file.WriteString(id + "\n"); err != nil {
		return fmt.Errorf("failed to append to ledger %s: %w", l.path, err)
	}
	return nil
}
