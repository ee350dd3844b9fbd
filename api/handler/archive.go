package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/planora/backend/domain"
	"github.com/planora/backend/pkg/httpcontext"
	taskUC "github.com/planora/backend/usecase/task"
)

type ArchiveHandler struct {
	baseHandler
	uc *taskUC.Service
}

func NewArchiveHandler(uc *taskUC.Service, adapter *httpcontext.Adapter, logger *zap.Logger) *ArchiveHandler {
	return &ArchiveHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List archived tasks
// @Tags archive
// @Router /api/v1/archive [get]
func (h *ArchiveHandler) GetArchived(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	archived, err := h.uc.ListArchived(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if archived == nil {
		archived = []domain.ArchivedTask{}
	}
	h.respondList(ctx, http.StatusOK, archived, len(archived))
}

// @Summary Restore an archived task into the active collection
// @Tags archive
// @Router /api/v1/archive/{id}/restore [post]
func (h *ArchiveHandler) RestoreTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	restored, err := h.uc.Restore(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, restored)
}

// @Summary Permanently delete an archived task
// @Tags archive
// @Router /api/v1/archive/{id} [delete]
func (h *ArchiveHandler) DeleteArchived(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteArchived(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}
