// Package audit keeps an append-only record of moderation actions.
// Entries are JSON lines, fsynced on every write so the trail survives
// a crash.
package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/neighborly/forum/pkg/logger"
	"go.uber.org/zap"
)

// Entry records a single moderation action.
type Entry struct {
	Action    string    `json:"action"` // approve_user, reject_user, ban_user, unban_user, delete_post, delete_advertisement
	ActorID   uint      `json:"actor_id"`
	TargetID  uint      `json:"target_id"`
	Note      string    `json:"note,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Log is the moderation audit trail.
type Log struct {
	filePath string
	file     *os.File
	mu       sync.Mutex
}

func Open(filePath string) (*Log, error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	return &Log{
		filePath: filePath,
		file:     file,
	}, nil
}

// Record appends an entry and syncs it to disk. Timestamp is filled in
// if the caller left it zero.
func (l *Log) Record(entry Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	if _, err := l.file.WriteString(string(data) + "\n"); err != nil {
		logger.Log.Error("Audit: failed to write entry",
			zap.String("action", entry.Action),
			zap.Error(err),
		)
		return err
	}

	if err := l.file.Sync(); err != nil {
		logger.Log.Error("Audit: failed to sync to disk",
			zap.String("action", entry.Action),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// Entries reads the whole trail, oldest first. Lines that fail to parse
// are skipped.
func (l *Log) Entries() ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.Open(l.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, err
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, scanner.Err()
}

func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}
