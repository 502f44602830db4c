package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/elliottking-cpu/beast-app-sub003/internal/export"
	"github.com/elliottking-cpu/beast-app-sub003/internal/models"
	"github.com/elliottking-cpu/beast-app-sub003/internal/repository"
)

// ClientViewLoader is what the handler needs from the aggregate layer.
type ClientViewLoader interface {
	Load(ctx context.Context, accountID string) (*models.ClientView, error)
}

// ClientHandler serves the aggregate client view and its export.
type ClientHandler struct {
	loader ClientViewLoader
	logger *zap.Logger
}

func NewClientHandler(loader ClientViewLoader, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{loader: loader, logger: logger}
}

// GET /api/v1/clients/{account_id}
func (h *ClientHandler) GetClient(w http.ResponseWriter, r *http.Request, accountID string) {
	view, err := h.loader.Load(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("account not found"))
			return
		}
		h.logger.Error("Failed to load client view",
			zap.String("account_id", accountID),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to load client"))
		return
	}

	writeJSON(w, http.StatusOK, Ok(view))
}

// GET /api/v1/clients/{account_id}/export
func (h *ClientHandler) ExportClient(w http.ResponseWriter, r *http.Request, accountID string) {
	view, err := h.loader.Load(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("account not found"))
			return
		}
		h.logger.Error("Failed to load client view for export",
			zap.String("account_id", accountID),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to load client"))
		return
	}

	data, err := export.GenerateClientExport(view)
	if err != nil {
		h.logger.Error("Failed to generate client export",
			zap.String("account_id", accountID),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to generate export"))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=client-%s.xlsx", accountID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
