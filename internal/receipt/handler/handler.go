package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/restodine/admin-service/internal/auth"
	"github.com/restodine/admin-service/internal/model"
	"github.com/restodine/admin-service/internal/receipt"
	"github.com/restodine/admin-service/internal/receipt/dto"
	receiptUC "github.com/restodine/admin-service/internal/receipt/usecase"
	"github.com/restodine/admin-service/pkg/logger"
	"go.uber.org/zap"
)

type ReceiptHandler struct {
	uc     receipt.UseCase
	logger logger.Logger
}

func NewReceiptHandler(uc receipt.UseCase, log logger.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ReceiptHandler) CreateReceipt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		h.writeError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var data model.ReceiptData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(data.Items) == 0 {
		h.writeError(w, http.StatusBadRequest, "receipt must contain at least one item")
		return
	}

	rec, err := h.uc.CreateReceipt(ctx, merchantID, &data)
	if err != nil {
		h.logger.Error("failed to create receipt", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusCreated, rec)
}

func (h *ReceiptHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "receiptId")

	rec, err := h.uc.GetReceipt(ctx, id)
	if err != nil {
		h.logger.Error("failed to get receipt", zap.String("id", id), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if rec == nil || rec.MerchantID != auth.GetMerchantID(ctx) {
		h.writeError(w, http.StatusNotFound, "receipt not found")
		return
	}

	h.writeJSON(w, http.StatusOK, rec)
}

// ListReceipts is the order history view: newest first, paged.
func (h *ReceiptHandler) ListReceipts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		h.writeError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	filters := &dto.ReceiptFilters{
		MerchantID: merchantID,
		Page:       queryInt(r, "page", 1),
		PageSize:   queryInt(r, "page_size", 20),
	}

	receipts, count, err := h.uc.ListReceipts(ctx, filters)
	if err != nil {
		h.logger.Error("failed to list receipts", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"receipts": receipts,
		"total":    count,
	})
}

// PrintReceipt returns the plain-text print document. The first successful
// print sets printed_at; reprints return the same content without moving it.
func (h *ReceiptHandler) PrintReceipt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "receiptId")

	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		h.writeError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	content, _, err := h.uc.PrintReceipt(ctx, id, merchantID)
	if err != nil {
		if errors.Is(err, receiptUC.ErrReceiptNotFound) {
			h.writeError(w, http.StatusNotFound, "receipt not found")
			return
		}
		h.logger.Error("failed to print receipt", zap.String("id", id), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(content))
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func (h *ReceiptHandler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

func (h *ReceiptHandler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
