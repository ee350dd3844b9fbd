package router

import (
	"github.com/fasthttp/router"

	apiHandler "github.com/planora/backend/api/handler"
)

type Handlers struct {
	Task     *apiHandler.TaskHandler
	Archive  *apiHandler.ArchiveHandler
	Planner  *apiHandler.PlannerHandler
	Pomodoro *apiHandler.PomodoroHandler
	Settings *apiHandler.SettingsHandler
	Backup   *apiHandler.BackupHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Tasks
	r.GET("/api/v1/tasks", handlers.Task.GetTasks)
	r.POST("/api/v1/tasks", handlers.Task.CreateTask)
	r.PATCH("/api/v1/tasks/{id}", handlers.Task.PatchTask)
	r.DELETE("/api/v1/tasks/{id}", handlers.Task.DeleteTask)
	r.POST("/api/v1/tasks/{id}/complete", handlers.Task.CompleteTask)
	r.GET("/api/v1/tasks/matrix", handlers.Task.GetMatrix)
	r.GET("/api/v1/tags", handlers.Task.GetTags)
	r.GET("/api/v1/calendar", handlers.Task.GetCalendar)

	// Archive
	r.GET("/api/v1/archive", handlers.Archive.GetArchived)
	r.POST("/api/v1/archive/{id}/restore", handlers.Archive.RestoreTask)
	r.DELETE("/api/v1/archive/{id}", handlers.Archive.DeleteArchived)

	// Day planner
	r.GET("/api/v1/planner/blocks", handlers.Planner.GetBlocks)
	r.POST("/api/v1/planner/blocks", handlers.Planner.CreateBlock)
	r.PUT("/api/v1/planner/blocks/{id}", handlers.Planner.UpdateBlock)
	r.DELETE("/api/v1/planner/blocks/{id}", handlers.Planner.DeleteBlock)
	r.GET("/api/v1/planner/layout", handlers.Planner.GetLayout)
	r.GET("/api/v1/planner/settings", handlers.Planner.GetWorkSettings)
	r.PUT("/api/v1/planner/settings", handlers.Planner.SetWorkSettings)

	// Pomodoro
	r.GET("/api/v1/pomodoro", handlers.Pomodoro.Status)
	r.POST("/api/v1/pomodoro/start", handlers.Pomodoro.Start)
	r.POST("/api/v1/pomodoro/pause", handlers.Pomodoro.PauseResume)
	r.POST("/api/v1/pomodoro/reset", handlers.Pomodoro.Reset)

	// Settings
	r.GET("/api/v1/settings", handlers.Settings.GetSettings)
	r.PUT("/api/v1/settings", handlers.Settings.PutSetting)

	// Backup
	r.GET("/api/v1/export", handlers.Backup.Export)
	r.POST("/api/v1/import", handlers.Backup.Import)
	r.POST("/api/v1/clear", handlers.Backup.Clear)

	return r
}
