package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/restodine/admin-service/internal/auth"
	"github.com/restodine/admin-service/internal/stock"
	"github.com/restodine/admin-service/internal/stock/dto"
	stockUC "github.com/restodine/admin-service/internal/stock/usecase"
	"github.com/restodine/admin-service/pkg/logger"
	"go.uber.org/zap"
)

type StockHandler struct {
	uc     stock.UseCase
	flow   *stock.NotificationFlow
	logger logger.Logger
}

func NewStockHandler(uc stock.UseCase, flow *stock.NotificationFlow, log logger.Logger) *StockHandler {
	return &StockHandler{
		uc:     uc,
		flow:   flow,
		logger: log,
	}
}

type createIngredientRequest struct {
	Name            string   `json:"name"`
	Unit            string   `json:"unit"`
	Quantity        float64  `json:"quantity"`
	ReorderPoint    float64  `json:"reorderPoint"`
	ReorderQuantity float64  `json:"reorderQuantity"`
	CostPerUnit     *float64 `json:"costPerUnit"`
	Supplier        string   `json:"supplier"`
}

func (h *StockHandler) CreateIngredient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		h.writeError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var req createIngredientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Unit == "" {
		h.writeError(w, http.StatusBadRequest, "name and unit are required")
		return
	}

	ing, err := h.uc.CreateIngredient(ctx, &dto.CreateIngredientInput{
		MerchantID:      merchantID,
		Name:            req.Name,
		Unit:            req.Unit,
		Quantity:        req.Quantity,
		ReorderPoint:    req.ReorderPoint,
		ReorderQuantity: req.ReorderQuantity,
		CostPerUnit:     req.CostPerUnit,
		Supplier:        req.Supplier,
	})
	if err != nil {
		h.logger.Error("failed to create ingredient", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusCreated, ing)
}

func (h *StockHandler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		h.writeError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	filters := &dto.IngredientFilters{
		MerchantID:  merchantID,
		SearchQuery: r.URL.Query().Get("q"),
		Page:        queryInt(r, "page", 1),
		PageSize:    queryInt(r, "page_size", 50),
	}
	if v := r.URL.Query().Get("low_stock"); v != "" {
		if low, err := strconv.ParseBool(v); err == nil {
			filters.LowStock = low
		}
	}

	ingredients, count, err := h.uc.ListIngredients(ctx, filters)
	if err != nil {
		h.logger.Error("failed to list ingredients", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"ingredients": ingredients,
		"total":       count,
	})
}

type adjustStockRequest struct {
	Type           string   `json:"type"`
	QuantityChange float64  `json:"quantityChange"`
	UnitCost       *float64 `json:"unitCost"`
	StaffName      string   `json:"staffName"`
	Supplier       string   `json:"supplier"`
	Reference      string   `json:"reference"`
	Notes          string   `json:"notes"`
}

func (h *StockHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ingredientID := chi.URLParam(r, "ingredientId")

	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		h.writeError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var req adjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ing, err := h.uc.AdjustStock(ctx, &dto.AdjustStockInput{
		MerchantID:     merchantID,
		IngredientID:   ingredientID,
		Type:           req.Type,
		QuantityChange: req.QuantityChange,
		UnitCost:       req.UnitCost,
		StaffName:      req.StaffName,
		Supplier:       req.Supplier,
		Reference:      req.Reference,
		Notes:          req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, stockUC.ErrIngredientNotFound):
			h.writeError(w, http.StatusNotFound, "ingredient not found")
		case errors.Is(err, stockUC.ErrInsufficientStock):
			h.writeError(w, http.StatusConflict, "insufficient stock")
		default:
			h.logger.Error("failed to adjust stock", zap.String("ingredient_id", ingredientID), zap.Error(err))
			h.writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.writeJSON(w, http.StatusOK, ing)
}

func (h *StockHandler) ListAdjustments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		h.writeError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	filters := &dto.AdjustmentFilters{
		MerchantID:   merchantID,
		IngredientID: r.URL.Query().Get("ingredient_id"),
		Type:         r.URL.Query().Get("type"),
		Page:         queryInt(r, "page", 1),
		PageSize:     queryInt(r, "page_size", 50),
	}

	adjustments, count, err := h.uc.ListAdjustments(ctx, filters)
	if err != nil {
		h.logger.Error("failed to list adjustments", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"adjustments": adjustments,
		"total":       count,
	})
}

func (h *StockHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	if auth.GetMerchantID(r.Context()) == "" {
		h.writeError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"alerts": h.flow.Notifications(),
	})
}

type alertActionRequest struct {
	Action string `json:"action"`
}

func (h *StockHandler) AlertAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	alertID := chi.URLParam(r, "alertId")

	if auth.GetMerchantID(ctx) == "" {
		h.writeError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var req alertActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.flow.OnNotificationAction(ctx, alertID, req.Action); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
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

func (h *StockHandler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

func (h *StockHandler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
