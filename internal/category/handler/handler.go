package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/restodine/admin-service/internal/auth"
	"github.com/restodine/admin-service/internal/category"
	"github.com/restodine/admin-service/internal/category/dto"
	catUC "github.com/restodine/admin-service/internal/category/usecase"
	"github.com/restodine/admin-service/pkg/logger"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.Logger
}

func NewCategoryHandler(uc category.UseCase, log logger.Logger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	IsActive    bool   `json:"isActive"`
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		h.writeError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		h.writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	cat, err := h.uc.CreateCategory(ctx, &dto.CreateCategoryInput{
		MerchantID:  merchantID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		h.logger.Error("failed to create category", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusCreated, cat)
}

func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "categoryId")

	cat, err := h.uc.GetCategory(ctx, id)
	if err != nil {
		h.logger.Error("failed to get category", zap.String("id", id), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if cat == nil || cat.MerchantID != auth.GetMerchantID(ctx) {
		h.writeError(w, http.StatusNotFound, "category not found")
		return
	}

	h.writeJSON(w, http.StatusOK, cat)
}

func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		h.writeError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	filters := &dto.CategoryFilters{
		MerchantID: merchantID,
		Page:       queryInt(r, "page", 1),
		PageSize:   queryInt(r, "page_size", 50),
	}
	if v := r.URL.Query().Get("active"); v != "" {
		if active, err := strconv.ParseBool(v); err == nil {
			filters.IsActive = &active
		}
	}

	cats, count, err := h.uc.ListCategories(ctx, filters)
	if err != nil {
		h.logger.Error("failed to list categories", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": cats,
		"total":      count,
	})
}

func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "categoryId")

	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		h.writeError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cat, err := h.uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{
		ID:          id,
		MerchantID:  merchantID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		IsActive:    req.IsActive,
	})
	if err != nil {
		if errors.Is(err, catUC.ErrCategoryNotFound) {
			h.writeError(w, http.StatusNotFound, "category not found")
			return
		}
		h.logger.Error("failed to update category", zap.String("id", id), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, cat)
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "categoryId")

	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		h.writeError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	if err := h.uc.DeleteCategory(ctx, id, merchantID); err != nil {
		h.logger.Error("failed to delete category", zap.String("id", id), zap.Error(err))
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

func (h *CategoryHandler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

func (h *CategoryHandler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
