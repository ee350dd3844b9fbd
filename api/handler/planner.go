package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/planora/backend/api/transport"
	"github.com/planora/backend/domain"
	"github.com/planora/backend/internal/services"
	"github.com/planora/backend/pkg/httpcontext"
	plannerUC "github.com/planora/backend/usecase/planner"
)

type PlannerHandler struct {
	baseHandler
	uc    *plannerUC.Service
	clock *services.PlannerClock
}

func NewPlannerHandler(uc *plannerUC.Service, clock *services.PlannerClock, adapter *httpcontext.Adapter, logger *zap.Logger) *PlannerHandler {
	return &PlannerHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		clock:       clock,
	}
}

// @Summary List planner blocks
// @Tags planner
// @Router /api/v1/planner/blocks [get]
func (h *PlannerHandler) GetBlocks(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	blocks, err := h.uc.ListBlocks(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if blocks == nil {
		blocks = []domain.PlannerBlock{}
	}
	h.respondList(ctx, http.StatusOK, blocks, len(blocks))
}

// @Summary Create planner block
// @Tags planner
// @Router /api/v1/planner/blocks [post]
func (h *PlannerHandler) CreateBlock(ctx *fasthttp.RequestCtx) {
	draft, ok := h.parseBlock(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateBlock(stdCtx, draft)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.clock.Refresh(stdCtx)
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update planner block
// @Tags planner
// @Router /api/v1/planner/blocks/{id} [put]
func (h *PlannerHandler) UpdateBlock(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	draft, ok := h.parseBlock(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateBlock(stdCtx, id, draft)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.clock.Refresh(stdCtx)
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete planner block
// @Tags planner
// @Router /api/v1/planner/blocks/{id} [delete]
func (h *PlannerHandler) DeleteBlock(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteBlock(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.clock.Refresh(stdCtx)
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Day layout with collision columns and the now marker
// @Tags planner
// @Router /api/v1/planner/layout [get]
func (h *PlannerHandler) GetLayout(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.clock.View(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view)
}

// @Summary Get pomodoro work/break durations
// @Tags planner
// @Router /api/v1/planner/settings [get]
func (h *PlannerHandler) GetWorkSettings(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	settings, err := h.uc.WorkSettings(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, settings)
}

// @Summary Update pomodoro work/break durations
// @Tags planner
// @Router /api/v1/planner/settings [put]
func (h *PlannerHandler) SetWorkSettings(ctx *fasthttp.RequestCtx) {
	var req transport.WorkSettingsRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.badRequest(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	settings := domain.WorkSettings{WorkSeconds: req.WorkSeconds, BreakSeconds: req.BreakSeconds}
	if err := h.uc.SetWorkSettings(stdCtx, settings); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, settings)
}

func (h *PlannerHandler) parseBlock(ctx *fasthttp.RequestCtx) (plannerUC.BlockDraft, bool) {
	var req transport.BlockRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.badRequest(ctx, "invalid payload")
		return plannerUC.BlockDraft{}, false
	}
	return plannerUC.BlockDraft{
		Title:     req.Title,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Color:     req.Color,
	}, true
}
