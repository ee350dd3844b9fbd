package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/planora/backend/api/transport"
	"github.com/planora/backend/domain"
	"github.com/planora/backend/pkg/httpcontext"
	"github.com/planora/backend/repository"
	taskUC "github.com/planora/backend/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc       *taskUC.Service
	settings repository.SettingsRepository
}

func NewTaskHandler(uc *taskUC.Service, settings repository.SettingsRepository, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		settings:    settings,
	}
}

// @Summary List tasks through the filter/sort pipeline
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	query, ok := h.parseQuery(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListFiltered(stdCtx, query)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	h.respondList(ctx, http.StatusOK, tasks, len(tasks))
}

// @Summary Eisenhower matrix of the filtered tasks
// @Tags tasks
// @Router /api/v1/tasks/matrix [get]
func (h *TaskHandler) GetMatrix(ctx *fasthttp.RequestCtx) {
	query, ok := h.parseQuery(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	matrix, err := h.uc.MatrixView(stdCtx, query)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, matrix)
}

// @Summary Create task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	var req transport.TaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.badRequest(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, taskUC.Draft{
		Text:       req.Text,
		Pinned:     domain.PinMode(req.Pinned),
		Importance: req.Importance,
		Urgency:    req.Urgency,
		Recurrence: domain.Recurrence(req.Recurrence),
		DueDate:    req.DueDate,
		Value:      req.Value,
		Effort:     req.Effort,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Apply a single field edit
// @Tags tasks
// @Router /api/v1/tasks/{id} [patch]
func (h *TaskHandler) PatchTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	var req transport.TaskPatchRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.badRequest(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	// Each branch is an independent read-modify-write on one field.
	var (
		updated *domain.Task
		err     error
	)
	switch {
	case req.Text != nil:
		updated, err = h.uc.UpdateText(stdCtx, id, *req.Text)
	case req.Pinned != nil:
		updated, err = h.uc.SetPinMode(stdCtx, id, domain.PinMode(*req.Pinned))
	case req.Recurrence != nil:
		updated, err = h.uc.SetRecurrence(stdCtx, id, domain.Recurrence(*req.Recurrence))
	case req.DueDate != nil:
		updated, err = h.uc.SetDueDate(stdCtx, id, *req.DueDate)
	case req.Importance != nil:
		updated, err = h.uc.ToggleImportance(stdCtx, id)
	case req.Urgency != nil:
		updated, err = h.uc.ToggleUrgency(stdCtx, id)
	case req.Scores:
		updated, err = h.uc.SetScores(stdCtx, id, req.Value, req.Effort)
	default:
		h.badRequest(ctx, "no editable field in payload")
		return
	}
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Complete a task (archives it; recurring tasks spawn the next occurrence)
// @Tags tasks
// @Router /api/v1/tasks/{id}/complete [post]
func (h *TaskHandler) CompleteTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	next, err := h.uc.Complete(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{"next": next})
}

// @Summary Delete task
// @Tags tasks
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Tag cloud
// @Tags tasks
// @Router /api/v1/tags [get]
func (h *TaskHandler) GetTags(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	cloud, err := h.uc.TagCloud(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondList(ctx, http.StatusOK, cloud, len(cloud))
}

// @Summary Per-day due counts for a month
// @Tags tasks
// @Router /api/v1/calendar [get]
func (h *TaskHandler) GetCalendar(ctx *fasthttp.RequestCtx) {
	year := queryInt(ctx, "year", time.Now().Year())
	month := queryInt(ctx, "month", int(time.Now().Month()))
	if month < 1 || month > 12 {
		h.badRequest(ctx, "month must be 1-12")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	// The stored weekStart setting is the default; the query parameter
	// overrides it per request.
	weekStart := queryInt(ctx, "weekStart", h.storedWeekStart(stdCtx))

	counts, err := h.uc.DueCounts(stdCtx, year, time.Month(month))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"grid":   taskUC.GridFor(year, time.Month(month), weekStart),
		"counts": counts,
	})
}

func (h *TaskHandler) parseQuery(ctx *fasthttp.RequestCtx) (taskUC.Query, bool) {
	query := taskUC.Query{
		Search:     string(ctx.QueryArgs().Peek("q")),
		Tag:        string(ctx.QueryArgs().Peek("tag")),
		Mode:       taskUC.TimeFilterMode(string(ctx.QueryArgs().Peek("mode"))),
		HideGlobal: ctx.QueryArgs().GetBool("hideGlobal"),
		HideLocal:  ctx.QueryArgs().GetBool("hideLocal"),
		Reference:  time.Now(),
	}
	if query.Mode == "" {
		query.Mode = taskUC.FilterDay
	}
	if !query.Mode.Valid() {
		h.badRequest(ctx, "unknown time filter mode")
		return taskUC.Query{}, false
	}
	if raw := string(ctx.QueryArgs().Peek("date")); raw != "" {
		ref, err := time.Parse(domain.DueDateLayout, raw)
		if err != nil {
			h.badRequest(ctx, "date must be YYYY-MM-DD")
			return taskUC.Query{}, false
		}
		query.Reference = ref
	}
	return query, true
}

// storedWeekStart reads the persisted weekStart setting, falling back
// to Sunday when it is missing or malformed.
func (h *TaskHandler) storedWeekStart(ctx context.Context) int {
	if h.settings == nil {
		return 0
	}
	row, err := h.settings.Get(ctx, domain.SettingWeekStart)
	if err != nil {
		return 0
	}
	switch v := row.Value.(type) {
	case float64: // JSON numbers decode as float64
		return int(v)
	case int:
		return v
	}
	return 0
}

func queryInt(ctx *fasthttp.RequestCtx, key string, fallback int) int {
	if v, err := strconv.Atoi(string(ctx.QueryArgs().Peek(key))); err == nil {
		return v
	}
	return fallback
}
