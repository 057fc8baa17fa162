package app

import (
	"log/slog"
	"sync"
	"time"
)

const maxNotices = 32

// Notice is a status message for the user, such as a failed save.
type Notice struct {
	Level   slog.Level
	Message string
	At      time.Time
}

// noticeBoard keeps the newest maxNotices messages.
type noticeBoard struct {
	mu    sync.Mutex
	items []Notice
	now   func() time.Time
}

func (b *noticeBoard) add(level slog.Level, msg string) {
	now := time.Now
	if b.now != nil {
		now = b.now
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, Notice{Level: level, Message: msg, At: now()})
	if over := len(b.items) - maxNotices; over > 0 {
		b.items = append(b.items[:0], b.items[over:]...)
	}
}

func (b *noticeBoard) list() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Notice(nil), b.items...)
}

func (b *noticeBoard) clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = nil
}
