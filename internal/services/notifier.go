package services

import (
	"sync"

	"go.uber.org/zap"
)

// LogNotifier is the server-side stand-in for the UI's audio player and
// toast notices: cues and notices are logged and the most recent ones
// kept for the status endpoint.
type LogNotifier struct {
	logger *zap.Logger

	mu      sync.Mutex
	lastCue string
	notices []string
}

const noticeBacklog = 20

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Cue(sound string) {
	n.mu.Lock()
	n.lastCue = sound
	n.mu.Unlock()
	n.logger.Info("audio cue", zap.String("sound", sound))
}

func (n *LogNotifier) Notify(message string) {
	n.mu.Lock()
	n.notices = append(n.notices, message)
	if len(n.notices) > noticeBacklog {
		n.notices = n.notices[len(n.notices)-noticeBacklog:]
	}
	n.mu.Unlock()
	n.logger.Info("notice", zap.String("message", message))
}

// Drain returns and clears the accumulated notices.
func (n *LogNotifier) Drain() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.notices
	n.notices = nil
	return out
}

// LastCue returns the most recently played cue identifier.
func (n *LogNotifier) LastCue() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.lastCue
}
