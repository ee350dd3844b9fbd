package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/planora/backend/api/transport"
	"github.com/planora/backend/domain"
	"github.com/planora/backend/pkg/httpcontext"
	"github.com/planora/backend/repository"
)

type SettingsHandler struct {
	baseHandler
	settings repository.SettingsRepository
}

func NewSettingsHandler(settings repository.SettingsRepository, adapter *httpcontext.Adapter, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		baseHandler: newBaseHandler(adapter, logger),
		settings:    settings,
	}
}

// @Summary All settings as a name/value map
// @Tags settings
// @Router /api/v1/settings [get]
func (h *SettingsHandler) GetSettings(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	rows, err := h.settings.All(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	out := make(map[string]interface{}, len(rows))
	for _, row := range rows {
		out[row.ID] = row.Value
	}
	h.respondSuccess(ctx, http.StatusOK, out)
}

// @Summary Update one setting by name
// @Tags settings
// @Router /api/v1/settings [put]
func (h *SettingsHandler) PutSetting(ctx *fasthttp.RequestCtx) {
	var req transport.SettingRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.ID == "" {
		h.badRequest(ctx, "setting id is required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	setting := domain.Setting{ID: req.ID, Value: req.Value}
	if err := h.settings.Set(stdCtx, setting); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, setting)
}
