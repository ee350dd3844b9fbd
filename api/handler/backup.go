package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/planora/backend/api/transport"
	"github.com/planora/backend/pkg/httpcontext"
	backupUC "github.com/planora/backend/usecase/backup"
)

type BackupHandler struct {
	baseHandler
	uc *backupUC.Service
}

func NewBackupHandler(uc *backupUC.Service, adapter *httpcontext.Adapter, logger *zap.Logger) *BackupHandler {
	return &BackupHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Export tasks, archive and settings as one JSON document
// @Tags backup
// @Router /api/v1/export [get]
func (h *BackupHandler) Export(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	doc, err := h.uc.Export(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	// The document itself is the payload, not wrapped in an envelope,
	// so the file round-trips through import unchanged.
	ctx.Response.Header.SetContentType("application/json")
	ctx.Response.Header.Set("Content-Disposition", `attachment; filename="task_manager_export.json"`)
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.SetStatusCode(http.StatusOK)
	ctx.SetBody(body)
}

// @Summary Import a previously exported document; invalid records are skipped
// @Tags backup
// @Router /api/v1/import [post]
func (h *BackupHandler) Import(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	report, err := h.uc.Import(stdCtx, ctx.PostBody())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, report)
}

// @Summary Destroy all data and reseed defaults
// @Tags backup
// @Router /api/v1/clear [post]
func (h *BackupHandler) Clear(ctx *fasthttp.RequestCtx) {
	var req transport.ClearRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || !req.Confirm {
		h.badRequest(ctx, "clearing all data requires confirm=true")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Clear(stdCtx); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}
