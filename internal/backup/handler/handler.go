package handler

import (
	"encoding/json"
	"net/http"

	"github.com/restodine/admin-service/internal/auth"
	"github.com/restodine/admin-service/internal/backup"
	"github.com/restodine/admin-service/pkg/logger"
	"go.uber.org/zap"
)

type BackupHandler struct {
	svc    *backup.Service
	logger logger.Logger
}

func NewBackupHandler(svc *backup.Service, log logger.Logger) *BackupHandler {
	return &BackupHandler{
		svc:    svc,
		logger: log,
	}
}

func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		h.writeError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	bundle, err := h.svc.Export(ctx, merchantID)
	if err != nil {
		h.logger.Error("backup export failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="backup.json"`)
	h.writeJSON(w, http.StatusOK, bundle)
}

func (h *BackupHandler) Restore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		h.writeError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var bundle backup.Bundle
	if err := json.NewDecoder(r.Body).Decode(&bundle); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid backup bundle")
		return
	}

	if err := h.svc.Restore(ctx, merchantID, &bundle); err != nil {
		h.logger.Error("backup restore failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "restore failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *BackupHandler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

func (h *BackupHandler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
