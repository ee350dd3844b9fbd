// Package backup implements the JSON import/export surface: a single
// document with tasks, archived tasks and settings.
package backup

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/planora/backend/domain"
	applog "github.com/planora/backend/pkg/logger"
	"github.com/planora/backend/repository"
)

// Resetter clears every collection. Implemented by the bolt store.
type Resetter interface {
	Reset() error
}

// Document is the exact export shape. Import accepts any subset of the
// three keys.
type Document struct {
	Tasks    []domain.Task          `json:"tasks"`
	Archived []domain.ArchivedTask  `json:"archived"`
	Settings map[string]interface{} `json:"settings"`
}

// Report summarizes a partial-success import.
type Report struct {
	Tasks    int      `json:"tasks"`
	Archived int      `json:"archived"`
	Settings int      `json:"settings"`
	Skipped  []string `json:"skipped,omitempty"`
}

type Service struct {
	tasks    repository.TaskRepository
	settings repository.SettingsRepository
	resetter Resetter
	logger   *zap.Logger
}

func New(tasks repository.TaskRepository, settings repository.SettingsRepository, resetter Resetter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		tasks:    tasks,
		settings: settings,
		resetter: resetter,
		logger:   logger,
	}
}

// Export serializes the full persisted state.
func (s *Service) Export(ctx context.Context) (*Document, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	archived, err := s.tasks.ListArchived(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.settings.All(ctx)
	if err != nil {
		return nil, err
	}
	settings := make(map[string]interface{}, len(rows))
	for _, row := range rows {
		settings[row.ID] = row.Value
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	if archived == nil {
		archived = []domain.ArchivedTask{}
	}
	return &Document{Tasks: tasks, Archived: archived, Settings: settings}, nil
}

// Import upserts every record the document carries. A malformed record
// is skipped and reported, never fatal; records already in the store
// but absent from the document are left untouched.
func (s *Service) Import(ctx context.Context, payload []byte) (*Report, error) {
	var doc struct {
		Tasks    []json.RawMessage          `json:"tasks"`
		Archived []json.RawMessage          `json:"archived"`
		Settings map[string]json.RawMessage `json:"settings"`
	}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "import document is not valid JSON", err)
	}

	report := &Report{}
	for i, raw := range doc.Tasks {
		var t domain.Task
		if err := json.Unmarshal(raw, &t); err != nil {
			report.Skipped = append(report.Skipped, fmt.Sprintf("tasks[%d]: %v", i, err))
			continue
		}
		if t.ID == 0 {
			report.Skipped = append(report.Skipped, fmt.Sprintf("tasks[%d]: missing id", i))
			continue
		}
		if err := t.Validate(); err != nil {
			report.Skipped = append(report.Skipped, fmt.Sprintf("tasks[%d]: %v", i, err))
			continue
		}
		if err := s.tasks.Put(ctx, &t); err != nil {
			return report, err
		}
		report.Tasks++
	}

	for i, raw := range doc.Archived {
		var t domain.ArchivedTask
		if err := json.Unmarshal(raw, &t); err != nil {
			report.Skipped = append(report.Skipped, fmt.Sprintf("archived[%d]: %v", i, err))
			continue
		}
		if t.ID == 0 {
			report.Skipped = append(report.Skipped, fmt.Sprintf("archived[%d]: missing id", i))
			continue
		}
		if err := s.tasks.PutArchived(ctx, &t); err != nil {
			return report, err
		}
		report.Archived++
	}

	for key, raw := range doc.Settings {
		var value interface{}
		if err := json.Unmarshal(raw, &value); err != nil {
			report.Skipped = append(report.Skipped, fmt.Sprintf("settings[%s]: %v", key, err))
			continue
		}
		if err := s.settings.Set(ctx, domain.Setting{ID: key, Value: value}); err != nil {
			return report, err
		}
		report.Settings++
	}

	applog.WithRequestID(ctx, s.logger).Info("import finished",
		zap.Int("tasks", report.Tasks),
		zap.Int("archived", report.Archived),
		zap.Int("settings", report.Settings),
		zap.Int("skipped", len(report.Skipped)))
	return report, nil
}

// Clear wipes every collection and reseeds the default settings. The
// confirmation prompt happens at the boundary; this call is already
// past the point of no return.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.resetter.Reset(); err != nil {
		return err
	}
	if err := s.settings.SeedDefaults(ctx); err != nil {
		return err
	}
	applog.WithRequestID(ctx, s.logger).Warn("all data cleared")
	return nil
}
