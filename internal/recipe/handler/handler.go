package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/restodine/admin-service/internal/auth"
	"github.com/restodine/admin-service/internal/recipe"
	"github.com/restodine/admin-service/internal/recipe/dto"
	"github.com/restodine/admin-service/pkg/logger"
	"go.uber.org/zap"
)

// RecipeHandler exposes the recipe of a menu item: read and whole-list
// replace. The save response carries a success boolean only; partial success
// is not representable.
type RecipeHandler struct {
	store  recipe.Store
	logger logger.Logger
}

func NewRecipeHandler(store recipe.Store, log logger.Logger) *RecipeHandler {
	return &RecipeHandler{
		store:  store,
		logger: log,
	}
}

func (h *RecipeHandler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	itemID := chi.URLParam(r, "itemId")

	if auth.GetMerchantID(ctx) == "" {
		h.writeError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	lines, err := h.store.GetMenuItemRecipe(ctx, itemID)
	if err != nil {
		h.logger.Error("failed to fetch recipe", zap.String("item_id", itemID), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"menu_item_id": itemID,
		"ingredients":  lines,
	})
}

func (h *RecipeHandler) SaveRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	itemID := chi.URLParam(r, "itemId")

	if auth.GetMerchantID(ctx) == "" {
		h.writeError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var form dto.RecipeForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	form.MenuItemID = itemID

	if err := h.store.SaveMenuItemRecipe(ctx, &form); err != nil {
		h.logger.Error("failed to save recipe", zap.String("item_id", itemID), zap.Error(err))
		h.writeJSON(w, http.StatusOK, map[string]bool{"success": false})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *RecipeHandler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

func (h *RecipeHandler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
