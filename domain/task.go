package domain

import (
	"strings"
	"time"
)

// PinMode controls task visibility relative to the active date filter.
type PinMode string

const (
	PinNone   PinMode = "none"
	PinGlobal PinMode = "global"
	PinLocal  PinMode = "local"
)

func (p PinMode) Valid() bool {
	switch p {
	case PinNone, PinGlobal, PinLocal:
		return true
	}
	return false
}

// Recurrence describes how a task repeats after completion.
type Recurrence string

const (
	RecurNone    Recurrence = "none"
	RecurDaily   Recurrence = "daily"
	RecurWeekly  Recurrence = "weekly"
	RecurMonthly Recurrence = "monthly"
	RecurYearly  Recurrence = "yearly"
)

func (r Recurrence) Valid() bool {
	switch r {
	case RecurNone, RecurDaily, RecurWeekly, RecurMonthly, RecurYearly:
		return true
	}
	return false
}

// DueDateLayout is the calendar-date-only format used by Task.DueDate.
const DueDateLayout = "2006-01-02"

// Task represents an active to-do item. Tags and links live inside Text
// and are extracted on demand, never stored separately.
type Task struct {
	ID         int64      `json:"id"`
	Text       string     `json:"text"`
	Completed  bool       `json:"completed"`
	Pinned     PinMode    `json:"pinned"`
	Importance bool       `json:"importance"`
	Urgency    bool       `json:"urgency"`
	Recurrence Recurrence `json:"recurrence"`
	CreatedAt  time.Time  `json:"createdAt"`
	DueDate    string     `json:"dueDate,omitempty"`
	Value      *int       `json:"value,omitempty"`
	Effort     *int       `json:"effort,omitempty"`
}

// HasScores reports whether both priority inputs are set.
func (t *Task) HasScores() bool {
	return t != nil && t.Value != nil && t.Effort != nil
}

// PriorityIndex returns value/effort, the matrix ordering key.
// Only meaningful when HasScores is true.
func (t *Task) PriorityIndex() float64 {
	if !t.HasScores() || *t.Effort == 0 {
		return 0
	}
	return float64(*t.Value) / float64(*t.Effort)
}

// Due parses the task's due date. The zero time and false are returned
// when no due date is set or it does not parse.
func (t *Task) Due() (time.Time, bool) {
	if t == nil || t.DueDate == "" {
		return time.Time{}, false
	}
	parsed, err := time.Parse(DueDateLayout, t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// Validate checks the invariants a task must satisfy before it is persisted.
func (t *Task) Validate() error {
	if t == nil {
		return ErrInvalidPayload
	}
	if strings.TrimSpace(t.Text) == "" {
		return NewError(ErrCodeInvalid, "task text must not be empty")
	}
	if !t.Pinned.Valid() {
		return NewError(ErrCodeInvalid, "unknown pin mode")
	}
	if !t.Recurrence.Valid() {
		return NewError(ErrCodeInvalid, "unknown recurrence")
	}
	if t.DueDate != "" {
		if _, err := time.Parse(DueDateLayout, t.DueDate); err != nil {
			return WrapError(ErrCodeInvalid, "due date must be YYYY-MM-DD", err)
		}
	}
	if err := validateScore(t.Value, "value"); err != nil {
		return err
	}
	return validateScore(t.Effort, "effort")
}

func validateScore(v *int, field string) error {
	if v == nil {
		return nil
	}
	if *v < 1 || *v > 10 {
		return NewError(ErrCodeInvalid, field+" must be between 1 and 10")
	}
	return nil
}

// ArchivedTask is a completed task snapshot moved out of the active set.
type ArchivedTask struct {
	Task
	ArchivedAt time.Time `json:"archivedAt"`
}
