package menu

import (
	"context"
	"strings"

	"github.com/restodine/admin-service/internal/menu/dto"
	"github.com/restodine/admin-service/internal/notify"
)

// ValidateMenuItemForm checks a form before submit. Rules run in order and the
// first failure short-circuits: name, then category, then price. A failure
// emits exactly one validation-error notification and returns false; passing
// all checks returns true and emits nothing. Never returns an error and never
// panics.
func ValidateMenuItemForm(ctx context.Context, form *dto.MenuItemForm, notifier notify.Notifier) bool {
	if strings.TrimSpace(form.Name) == "" {
		notifier.Notify(ctx, notify.Message{
			Title:       "Validation Error",
			Description: "Item name is required.",
			Variant:     notify.VariantDestructive,
		})
		return false
	}

	if strings.TrimSpace(form.Category) == "" {
		notifier.Notify(ctx, notify.Message{
			Title:       "Validation Error",
			Description: "Category is required.",
			Variant:     notify.VariantDestructive,
		})
		return false
	}

	if form.Price <= 0 {
		notifier.Notify(ctx, notify.Message{
			Title:       "Validation Error",
			Description: "Price must be greater than 0.",
			Variant:     notify.VariantDestructive,
		})
		return false
	}

	return true
}
