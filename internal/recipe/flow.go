package recipe

import (
	"context"
	"sync"

	"github.com/restodine/admin-service/internal/model"
	"github.com/restodine/admin-service/internal/recipe/dto"
	"github.com/restodine/admin-service/pkg/logger"
	"go.uber.org/zap"
)

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateSaving  State = "saving"
)

// Flow manages the recipe of one bound menu item: it fetches the ingredient
// list from the store, holds the in-memory copy, and resynchronizes after a
// successful save (read-after-write).
//
// Overlapping fetches are not serialized. Each fetch carries a generation
// token; a response belonging to an older generation is dropped, so the last
// relevant response wins. The loading flag is true strictly between request
// issuance and completion of the newest fetch. Saves never set loading.
type Flow struct {
	store  Store
	logger logger.Logger

	mu       sync.Mutex
	boundID  string
	recipe   []model.MenuItemIngredient
	state    State
	loading  bool
	fetchGen uint64
}

func NewFlow(store Store, log logger.Logger) *Flow {
	return &Flow{
		store:  store,
		logger: log,
		state:  StateIdle,
	}
}

// Bind attaches the flow to a menu item. Binding to a new identity triggers
// an automatic fetch; rebinding to the same identity does not. An unbound
// flow ("" id) never fetches.
func (f *Flow) Bind(ctx context.Context, itemID string) {
	f.mu.Lock()
	if itemID == f.boundID {
		f.mu.Unlock()
		return
	}
	f.boundID = itemID
	f.mu.Unlock()

	if itemID != "" {
		_ = f.FetchRecipe(ctx, itemID)
	}
}

// FetchRecipe loads the ingredient list for itemID and replaces the in-memory
// recipe wholesale. Loading is cleared on success, failure, and staleness.
func (f *Flow) FetchRecipe(ctx context.Context, itemID string) error {
	f.mu.Lock()
	f.fetchGen++
	gen := f.fetchGen
	f.loading = true
	f.state = StateLoading
	f.mu.Unlock()

	lines, err := f.store.GetMenuItemRecipe(ctx, itemID)

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.fetchGen {
		// A newer fetch owns the state now; this response is no longer
		// relevant.
		return err
	}

	f.loading = false
	if err != nil {
		f.state = StateIdle
		f.logger.Error("failed to fetch recipe", zap.String("item_id", itemID), zap.Error(err))
		return err
	}

	f.recipe = lines
	f.state = StateReady
	return nil
}

// SaveRecipe submits a full replacement of the menu item's ingredient list.
// Returns true on success. On success while bound to the saved item, the flow
// re-fetches from the store so local state reflects the authoritative copy;
// the fetch is sequenced strictly after the save acknowledgment. On failure
// the local recipe is left untouched.
func (f *Flow) SaveRecipe(ctx context.Context, form *dto.RecipeForm) bool {
	f.mu.Lock()
	prev := f.state
	f.state = StateSaving
	f.mu.Unlock()

	err := f.store.SaveMenuItemRecipe(ctx, form)

	f.mu.Lock()
	f.state = prev
	bound := f.boundID
	f.mu.Unlock()

	if err != nil {
		f.logger.Error("failed to save recipe", zap.String("item_id", form.MenuItemID), zap.Error(err))
		return false
	}

	if bound != "" && bound == form.MenuItemID {
		_ = f.FetchRecipe(ctx, bound)
	}
	return true
}

// Recipe returns a copy of the current in-memory recipe.
func (f *Flow) Recipe() []model.MenuItemIngredient {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.MenuItemIngredient, len(f.recipe))
	copy(out, f.recipe)
	return out
}

func (f *Flow) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) BoundItemID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.boundID
}
