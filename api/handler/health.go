package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	boltRepo "github.com/planora/backend/repository/bolt"

	"github.com/planora/backend/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	store *boltRepo.Store
}

func NewHealthHandler(store *boltRepo.Store, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		store:       store,
	}
}

// @Summary Liveness probe with store statistics
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	stats := h.store.Stats()
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"status":        "ok",
		"open_tx":       stats.OpenTxN,
		"pending_pages": stats.PendingPageN,
	})
}
