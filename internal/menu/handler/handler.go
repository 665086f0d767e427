package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/restodine/admin-service/internal/auth"
	"github.com/restodine/admin-service/internal/menu"
	"github.com/restodine/admin-service/internal/menu/dto"
	menuUC "github.com/restodine/admin-service/internal/menu/usecase"
	"github.com/restodine/admin-service/internal/notify"
	"github.com/restodine/admin-service/pkg/logger"
	"go.uber.org/zap"
)

// MenuHandler exposes menu item CRUD. Form payloads are validated before
// conversion; a rejected form answers 400 and the validator has already
// emitted the user-facing notification.
type MenuHandler struct {
	uc       menu.UseCase
	notifier notify.Notifier
	logger   logger.Logger
}

func NewMenuHandler(uc menu.UseCase, notifier notify.Notifier, log logger.Logger) *MenuHandler {
	return &MenuHandler{
		uc:       uc,
		notifier: notifier,
		logger:   log,
	}
}

func (h *MenuHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		h.writeError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var form dto.MenuItemForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !menu.ValidateMenuItemForm(ctx, &form, h.notifier) {
		h.writeError(w, http.StatusBadRequest, "validation failed")
		return
	}

	item, err := h.uc.CreateItem(ctx, merchantID, &form)
	if err != nil {
		h.logger.Error("failed to create menu item", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusCreated, item)
}

func (h *MenuHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "itemId")

	item, err := h.uc.GetItem(ctx, id)
	if err != nil {
		h.logger.Error("failed to get menu item", zap.String("id", id), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if item == nil || item.MerchantID != auth.GetMerchantID(ctx) {
		h.writeError(w, http.StatusNotFound, "menu item not found")
		return
	}

	h.writeJSON(w, http.StatusOK, item)
}

func (h *MenuHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		h.writeError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	filters := &dto.MenuItemFilters{
		MerchantID:  merchantID,
		CategoryID:  r.URL.Query().Get("category_id"),
		SearchQuery: r.URL.Query().Get("q"),
		SortBy:      r.URL.Query().Get("sort_by"),
		SortOrder:   r.URL.Query().Get("sort_order"),
		Page:        queryInt(r, "page", 1),
		PageSize:    queryInt(r, "page_size", 20),
	}
	if v := r.URL.Query().Get("available"); v != "" {
		if avail, err := strconv.ParseBool(v); err == nil {
			filters.IsAvailable = &avail
		}
	}

	items, count, err := h.uc.ListItems(ctx, filters)
	if err != nil {
		h.logger.Error("failed to list menu items", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"total": count,
	})
}

func (h *MenuHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "itemId")

	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		h.writeError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var form dto.MenuItemForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !menu.ValidateMenuItemForm(ctx, &form, h.notifier) {
		h.writeError(w, http.StatusBadRequest, "validation failed")
		return
	}

	item, err := h.uc.UpdateItem(ctx, id, merchantID, &form)
	if err != nil {
		if errors.Is(err, menuUC.ErrItemNotFound) {
			h.writeError(w, http.StatusNotFound, "menu item not found")
			return
		}
		h.logger.Error("failed to update menu item", zap.String("id", id), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, item)
}

func (h *MenuHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "itemId")

	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		h.writeError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	if err := h.uc.DeleteItem(ctx, id, merchantID); err != nil {
		h.logger.Error("failed to delete menu item", zap.String("id", id), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func (h *MenuHandler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

func (h *MenuHandler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
