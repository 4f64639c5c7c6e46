// Package history keeps the ledger of previously generated weekly reports.
package history

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/danielolaszy/fetchissues/internal/logging"
)

// DefaultFileName is the ledger file used when no other path is given.
const DefaultFileName = "issue-history.txt"

// WeekID returns the report identifier for the ISO week containing t,
// e.g. "2023-W05".
func WeekID(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// Ledger is the ordered, newest-first list of report identifiers. No
// identifier appears twice. Concurrent writers are not guarded against; the
// last one to save wins.
type Ledger struct {
	path    string
	entries []string
}

// Load reads the ledger stored at path. A missing file is an empty ledger.
func Load(path string) (*Ledger, error) {
	entries, err := load(path)
	if err != nil {
		return nil, err
	}
	return &Ledger{path: path, entries: entries}, nil
}

// Path returns the file backing the ledger.
func (l *Ledger) Path() string {
	return l.path
}

// Entries returns a copy of the identifiers, newest first.
func (l *Ledger) Entries() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Contains reports whether id is already recorded.
func (l *Ledger) Contains(id string) bool {
	for _, e := range l.entries {
		if e == id {
			return true
		}
	}
	return false
}

// AppendIfAbsent records id as the newest entry and rewrites the ledger
// file. It reports whether anything was written; an id that is already
// present leaves the file untouched.
func (l *Ledger) AppendIfAbsent(id string) (bool, error) {
	if l.Contains(id) {
		logging.Debug("history entry already present", "id", id, "path", l.path)
		return false, nil
	}

	next := make([]string, 0, len(l.entries)+1)
	next = append(next, id)
	next = append(next, l.entries...)

	if err := save(l.path, next); err != nil {
		return false, err
	}
	l.entries = next

	logging.Info("recorded history entry", "id", id, "entries", len(next))
	return true, nil
}

func load(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logging.Info("no history file yet, starting empty", "path", path)
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	entries := []string{}
	scanner := bufio.NewScanner(bytes.NewReader(b))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse history file %s: %w", path, err)
	}
	return entries, nil
}

func save(path string, entries []string) error {
	var buf bytes.Buffer
	for _, e := range entries {
		buf.WriteString(e)
		buf.WriteByte('\n')
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return nil
}
