package domain

// Setting is a single row in the settings collection, keyed by name.
// Value is persisted as raw JSON so booleans, numbers and strings all fit.
type Setting struct {
	ID    string      `json:"id"`
	Value interface{} `json:"value"`
}

// Well-known setting names.
const (
	SettingLocale     = "locale"
	SettingTheme      = "theme"
	SettingWeekStart  = "weekStart"
	SettingHideGlobal = "hideGlobal"
	SettingHideLocal  = "hideLocal"
	SettingNSFWTags   = "nsfwTags"
	SettingViewMode   = "viewMode"
)

// DefaultSettings are seeded on first initialization of the store.
func DefaultSettings() []Setting {
	return []Setting{
		{ID: SettingLocale, Value: "en-US"},
		{ID: SettingTheme, Value: "system"},
		{ID: SettingWeekStart, Value: 0},
		{ID: SettingHideGlobal, Value: false},
		{ID: SettingHideLocal, Value: false},
		{ID: SettingNSFWTags, Value: ""},
		{ID: SettingViewMode, Value: "list"},
	}
}

// WorkSettings configures the pomodoro slice durations, in seconds.
// Non-positive durations are rejected at configuration time.
type WorkSettings struct {
	WorkSeconds  int `json:"workSeconds"`
	BreakSeconds int `json:"breakSeconds"`
}

// DefaultWorkSettings is the classic 25/5 pomodoro split.
func DefaultWorkSettings() WorkSettings {
	return WorkSettings{WorkSeconds: 25 * 60, BreakSeconds: 5 * 60}
}

// Validate rejects zero or negative slice durations.
func (w WorkSettings) Validate() error {
	if w.WorkSeconds <= 0 {
		return NewError(ErrCodeInvalid, "work duration must be positive")
	}
	if w.BreakSeconds <= 0 {
		return NewError(ErrCodeInvalid, "break duration must be positive")
	}
	return nil
}
