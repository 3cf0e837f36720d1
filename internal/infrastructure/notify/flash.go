// Package notify collects the short-lived messages shown to the operator.
package notify

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Level is the severity of a notice.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// DefaultCapacity bounds the queue when NewFlash is given a non-positive size.
const DefaultCapacity = 50

// Notice is one toast.
type Notice struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Flash is a bounded FIFO of notices drained by the console. When full, the
// oldest notice is dropped.
type Flash struct {
	mu       sync.Mutex
	queue    []Notice
	capacity int
	log      zerolog.Logger
	now      func() time.Time
}

func NewFlash(capacity int, log zerolog.Logger) *Flash {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Flash{capacity: capacity, log: log, now: time.Now}
}

func (f *Flash) Success(msg string) { f.push(LevelSuccess, msg) }
func (f *Flash) Info(msg string)    { f.push(LevelInfo, msg) }
func (f *Flash) Warning(msg string) { f.push(LevelWarning, msg) }
func (f *Flash) Error(msg string)   { f.push(LevelError, msg) }

func (f *Flash) push(level Level, msg string) {
	ev := f.log.Info()
	switch level {
	case LevelWarning:
		ev = f.log.Warn()
	case LevelError:
		ev = f.log.Error()
	}
	ev.Str("kind", string(level)).Str("notice", msg).Msg("notice")

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queue) == f.capacity {
		f.queue = f.queue[1:]
	}
	f.queue = append(f.queue, Notice{Level: level, Message: msg, At: f.now()})
}

// Drain returns the queued notices in order and empties the queue.
func (f *Flash) Drain() []Notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.queue
	f.queue = nil
	if out == nil {
		out = []Notice{}
	}
	return out
}

// Len reports how many notices are waiting.
func (f *Flash) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}
