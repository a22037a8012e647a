// Package runlog keeps a history of finished runs, one JSON object per line
// in runs.jsonl.
package runlog

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileName is the log file inside the log directory.
const FileName = "runs.jsonl"

// Entry records how one run ended.
type Entry struct {
	Time       time.Time `json:"time"`
	Seed       string    `json:"seed"`
	Outcome    string    `json:"outcome"`
	Cause      string    `json:"cause"`
	Depth      int       `json:"depth"`
	Level      int       `json:"level"`
	Class      string    `json:"class"`
	XPBanked   int       `json:"xp_banked"`
	BattlesWon int       `json:"battles_won"`
}

// Log appends entries to a runs.jsonl file.
type Log struct {
	mu   sync.Mutex
	path string
}

// Open returns a Log writing into dir, creating it when needed.
func Open(dir string) (*Log, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create run log dir: %w", err)
	}
	return &Log{path: filepath.Join(dir, FileName)}, nil
}

// OpenDefault opens the log in Dir().
func OpenDefault() (*Log, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return Open(dir)
}

// Dir returns the directory where run logs are stored:
// $XDG_DATA_HOME/delve, defaulting to ~/.local/share/delve.
func Dir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "delve"), nil
}

// Append writes e as a single line.
func (l *Log) Append(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}
	data = append(data, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write run log: %w", err)
	}
	return f.Close()
}

// Read returns every entry in the log, oldest first. A missing file is an
// empty history. Lines that fail to decode are skipped.
func (l *Log) Read() ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.Open(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open run log: %w", err)
	}
	defer f.Close()

	var out []Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e Entry
		if json.Unmarshal(sc.Bytes(), &e) != nil {
			continue
		}
		out = append(out, e)
	}
	if err := sc.Err(); err != nil {
		return out, fmt.Errorf("read run log: %w", err)
	}
	return out, nil
}
