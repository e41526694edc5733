package kiosk

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
	SenderSystem    Sender = "system"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
)

// LogEntry is one line of the session transcript. Entries are append-only
// for the lifetime of one session.
type LogEntry struct {
	ID        string
	Timestamp time.Time
	Sender    Sender
	Message   string
	Severity  Severity
}

type sessionLog struct {
	mu       sync.Mutex
	entries  []LogEntry
	onAppend func(entry LogEntry)
}

func newSessionLog() *sessionLog {
	return &sessionLog{
		onAppend: func(LogEntry) {},
	}
}

func (l *sessionLog) SetCallback(onAppend func(entry LogEntry)) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if onAppend != nil {
		l.onAppend = onAppend
	}
}

func (l *sessionLog) Append(sender Sender, severity Severity, message string) {
	if l == nil {
		return
	}

	entry := LogEntry{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Sender:    sender,
		Message:   message,
		Severity:  severity,
	}

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	onAppend := l.onAppend
	l.mu.Unlock()

	onAppend(entry)
}

// Entries returns a point-in-time copy of the transcript.
func (l *sessionLog) Entries() []LogEntry {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LogEntry(nil), l.entries...)
}

// Reset discards the transcript. Only a user-initiated disconnect does this;
// remote close and errors keep the log visible.
func (l *sessionLog) Reset() {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
