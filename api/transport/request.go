package transport

// TaskRequest is the create payload for a task.
type TaskRequest struct {
	Text       string `json:"text"`
	Pinned     string `json:"pinned"`
	Importance bool   `json:"importance"`
	Urgency    bool   `json:"urgency"`
	Recurrence string `json:"recurrence"`
	DueDate    string `json:"dueDate"`
	Value      *int   `json:"value"`
	Effort     *int   `json:"effort"`
}

// TaskPatchRequest applies a single field edit. Exactly one field is
// expected per call; extra fields are ignored in favor of the first
// recognized one.
type TaskPatchRequest struct {
	Text       *string `json:"text"`
	Pinned     *string `json:"pinned"`
	Recurrence *string `json:"recurrence"`
	DueDate    *string `json:"dueDate"`
	Importance *bool   `json:"importance"`
	Urgency    *bool   `json:"urgency"`
	Value      *int    `json:"value"`
	Effort     *int    `json:"effort"`
	Scores     bool    `json:"scores"`
}

// BlockRequest is the create/update payload for a planner block.
type BlockRequest struct {
	Title     string `json:"title"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Color     string `json:"color"`
}

// PomodoroStartRequest names the block a focus session should run in.
type PomodoroStartRequest struct {
	BlockID int64 `json:"blockId"`
}

// SettingRequest updates one setting by name.
type SettingRequest struct {
	ID    string      `json:"id"`
	Value interface{} `json:"value"`
}

// WorkSettingsRequest updates the pomodoro durations.
type WorkSettingsRequest struct {
	WorkSeconds  int `json:"workSeconds"`
	BreakSeconds int `json:"breakSeconds"`
}

// ClearRequest guards the destructive wipe behind an explicit flag.
type ClearRequest struct {
	Confirm bool `json:"confirm"`
}
