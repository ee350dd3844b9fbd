package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/planora/backend/api/transport"
	"github.com/planora/backend/internal/services"
	"github.com/planora/backend/pkg/httpcontext"
)

type PomodoroHandler struct {
	baseHandler
	runner   *services.PomodoroRunner
	notifier *services.LogNotifier
}

func NewPomodoroHandler(runner *services.PomodoroRunner, notifier *services.LogNotifier, adapter *httpcontext.Adapter, logger *zap.Logger) *PomodoroHandler {
	return &PomodoroHandler{
		baseHandler: newBaseHandler(adapter, logger),
		runner:      runner,
		notifier:    notifier,
	}
}

// @Summary Start a focus session inside a planner block
// @Tags pomodoro
// @Router /api/v1/pomodoro/start [post]
func (h *PomodoroHandler) Start(ctx *fasthttp.RequestCtx) {
	var req transport.PomodoroStartRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.BlockID == 0 {
		h.badRequest(ctx, "blockId is required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, err := h.runner.Start(stdCtx, req.BlockID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, session)
}

// @Summary Toggle pause on the running session
// @Tags pomodoro
// @Router /api/v1/pomodoro/pause [post]
func (h *PomodoroHandler) PauseResume(ctx *fasthttp.RequestCtx) {
	session, err := h.runner.PauseResume()
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, session)
}

// @Summary Stop and clear the session
// @Tags pomodoro
// @Router /api/v1/pomodoro/reset [post]
func (h *PomodoroHandler) Reset(ctx *fasthttp.RequestCtx) {
	// Stopping a live session is destructive; the client must confirm.
	if h.runner.Active() && !ctx.QueryArgs().GetBool("confirm") {
		h.badRequest(ctx, "a session is running; pass confirm=true to stop it")
		return
	}
	h.respondSuccess(ctx, http.StatusOK, h.runner.Reset())
}

// @Summary Session status plus pending notices
// @Tags pomodoro
// @Router /api/v1/pomodoro [get]
func (h *PomodoroHandler) Status(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"session": h.runner.Session(),
		"notices": h.notifier.Drain(),
		"lastCue": h.notifier.LastCue(),
	})
}
