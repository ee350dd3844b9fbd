package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func score(v int) *int { return &v }

func validTask() Task {
	return Task{ID: 1, Text: "do the thing", Pinned: PinNone, Recurrence: RecurNone}
}

func TestTaskValidate(t *testing.T) {
	ok := validTask()
	assert.NoError(t, ok.Validate())

	cases := []struct {
		name   string
		mutate func(*Task)
	}{
		{"blank text", func(t *Task) { t.Text = "  " }},
		{"bad pin mode", func(t *Task) { t.Pinned = "sideways" }},
		{"bad recurrence", func(t *Task) { t.Recurrence = "fortnightly" }},
		{"bad due date", func(t *Task) { t.DueDate = "June 5th" }},
		{"value too low", func(t *Task) { t.Value = score(0) }},
		{"value too high", func(t *Task) { t.Value = score(11) }},
		{"effort too low", func(t *Task) { t.Effort = score(-1) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			task := validTask()
			tc.mutate(&task)
			err := task.Validate()
			require.Error(t, err)
			assert.True(t, IsDomainError(err, ErrCodeInvalid))
		})
	}
}

func TestTaskDue(t *testing.T) {
	task := validTask()
	_, ok := task.Due()
	assert.False(t, ok)

	task.DueDate = "2024-06-15"
	due, ok := task.Due()
	require.True(t, ok)
	assert.Equal(t, 2024, due.Year())
	assert.Equal(t, 15, due.Day())

	task.DueDate = "garbage"
	_, ok = task.Due()
	assert.False(t, ok)
}

func TestTaskPriorityIndex(t *testing.T) {
	task := validTask()
	assert.False(t, task.HasScores())
	assert.Zero(t, task.PriorityIndex())

	task.Value = score(9)
	assert.False(t, task.HasScores(), "value alone is not scored")

	task.Effort = score(3)
	assert.True(t, task.HasScores())
	assert.InDelta(t, 3.0, task.PriorityIndex(), 1e-9)
}
