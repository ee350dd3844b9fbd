package domain

// SliceMode distinguishes work intervals from breaks.
type SliceMode string

const (
	SliceWork  SliceMode = "work"
	SliceBreak SliceMode = "break"
)

// Slice is one contiguous work or break interval within a session queue.
type Slice struct {
	Mode     SliceMode `json:"mode"`
	Duration int       `json:"duration"` // seconds
}

// Session is the transient pomodoro state. It is never persisted; it is
// rebuilt from scratch on every start and thrown away on any terminal
// transition.
type Session struct {
	IsActive     bool      `json:"isActive"`
	IsPaused     bool      `json:"isPaused"`
	BlockID      int64     `json:"blockId,omitempty"`
	Mode         SliceMode `json:"mode,omitempty"`
	TimeLeft     int       `json:"timeLeft"` // seconds
	Duration     int       `json:"duration"` // seconds
	Queue        []Slice   `json:"queue,omitempty"`
	CurrentSlice int       `json:"currentSliceIndex"`
	LastNotice   string    `json:"lastNotice,omitempty"`
}

// InactiveSession is the state a session resets to on completion, manual
// stop, or invalidation.
func InactiveSession() Session {
	return Session{CurrentSlice: -1}
}
