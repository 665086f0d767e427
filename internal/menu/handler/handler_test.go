package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/restodine/admin-service/internal/auth"
	"github.com/restodine/admin-service/internal/menu/dto"
	"github.com/restodine/admin-service/internal/model"
	"github.com/restodine/admin-service/internal/notify"
	"github.com/restodine/admin-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUseCase struct {
	items   map[string]*model.MenuItem
	deleted []string
}

func newFakeUseCase(items ...*model.MenuItem) *fakeUseCase {
	uc := &fakeUseCase{items: make(map[string]*model.MenuItem)}
	for _, it := range items {
		uc.items[it.ID] = it
	}
	return uc
}

func (f *fakeUseCase) CreateItem(ctx context.Context, merchantID string, form *dto.MenuItemForm) (*model.MenuItem, error) {
	item := dto.FormToItem(form)
	item.ID = "item-new"
	item.MerchantID = merchantID
	f.items[item.ID] = &item
	return &item, nil
}

func (f *fakeUseCase) GetItem(ctx context.Context, id string) (*model.MenuItem, error) {
	return f.items[id], nil
}

func (f *fakeUseCase) ListItems(ctx context.Context, filters *dto.MenuItemFilters) ([]model.MenuItem, int, error) {
	var out []model.MenuItem
	for _, it := range f.items {
		if it.MerchantID == filters.MerchantID {
			out = append(out, *it)
		}
	}
	return out, len(out), nil
}

func (f *fakeUseCase) UpdateItem(ctx context.Context, id, merchantID string, form *dto.MenuItemForm) (*model.MenuItem, error) {
	item := dto.FormToItem(form)
	item.ID = id
	item.MerchantID = merchantID
	f.items[id] = &item
	return &item, nil
}

func (f *fakeUseCase) DeleteItem(ctx context.Context, id, merchantID string) error {
	if it, ok := f.items[id]; ok && it.MerchantID == merchantID {
		delete(f.items, id)
		f.deleted = append(f.deleted, id)
	}
	return nil
}

func newRouter(uc *fakeUseCase, rec *notify.Recorder) *chi.Mux {
	h := NewMenuHandler(uc, rec, logger.NewNop())
	r := chi.NewRouter()
	r.Route("/menu-items", func(r chi.Router) {
		r.Get("/", h.ListItems)
		r.Post("/", h.CreateItem)
		r.Get("/{itemId}", h.GetItem)
		r.Put("/{itemId}", h.UpdateItem)
		r.Delete("/{itemId}", h.DeleteItem)
	})
	return r
}

func doRequest(t *testing.T, router http.Handler, method, target, merchantID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if merchantID != "" {
		req = req.WithContext(auth.WithMerchantID(req.Context(), merchantID))
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func validForm() *dto.MenuItemForm {
	return &dto.MenuItemForm{
		Name:     "Margherita",
		Category: "cat-1",
		Price:    11.50,
	}
}

func existingItem(id, merchantID string) *model.MenuItem {
	item := dto.FormToItem(validForm())
	item.ID = id
	item.MerchantID = merchantID
	return &item
}

func TestCreateItem(t *testing.T) {
	uc := newFakeUseCase()
	rr := doRequest(t, newRouter(uc, &notify.Recorder{}), http.MethodPost, "/menu-items", "m-1", validForm())

	require.Equal(t, http.StatusCreated, rr.Code)

	var item model.MenuItem
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &item))
	assert.Equal(t, "Margherita", item.Name)
	assert.Equal(t, "m-1", item.MerchantID)
	assert.Contains(t, uc.items, "item-new")
}

func TestCreateItem_InvalidFormRejected(t *testing.T) {
	uc := newFakeUseCase()
	rec := &notify.Recorder{}
	form := validForm()
	form.Name = "   "

	rr := doRequest(t, newRouter(uc, rec), http.MethodPost, "/menu-items", "m-1", form)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, uc.items, "invalid form never reaches the usecase")
	require.Len(t, rec.Messages, 1)
	assert.Equal(t, "Item name is required.", rec.Messages[0].Description)
}

func TestCreateItem_MissingMerchant(t *testing.T) {
	rr := doRequest(t, newRouter(newFakeUseCase(), &notify.Recorder{}), http.MethodPost, "/menu-items", "", validForm())

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreateItem_MalformedBody(t *testing.T) {
	router := newRouter(newFakeUseCase(), &notify.Recorder{})
	req := httptest.NewRequest(http.MethodPost, "/menu-items", bytes.NewBufferString("{not json"))
	req = req.WithContext(auth.WithMerchantID(req.Context(), "m-1"))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetItem(t *testing.T) {
	uc := newFakeUseCase(existingItem("item-1", "m-1"))
	rr := doRequest(t, newRouter(uc, &notify.Recorder{}), http.MethodGet, "/menu-items/item-1", "m-1", nil)

	require.Equal(t, http.StatusOK, rr.Code)

	var item model.MenuItem
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &item))
	assert.Equal(t, "item-1", item.ID)
}

func TestGetItem_NotFound(t *testing.T) {
	rr := doRequest(t, newRouter(newFakeUseCase(), &notify.Recorder{}), http.MethodGet, "/menu-items/nope", "m-1", nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetItem_ForeignMerchantSeesNotFound(t *testing.T) {
	uc := newFakeUseCase(existingItem("item-1", "m-1"))
	rr := doRequest(t, newRouter(uc, &notify.Recorder{}), http.MethodGet, "/menu-items/item-1", "m-2", nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListItems(t *testing.T) {
	uc := newFakeUseCase(existingItem("item-1", "m-1"), existingItem("item-2", "m-2"))
	rr := doRequest(t, newRouter(uc, &notify.Recorder{}), http.MethodGet, "/menu-items?page=1&page_size=10", "m-1", nil)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Items []model.MenuItem `json:"items"`
		Total int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "item-1", resp.Items[0].ID)
}

func TestUpdateItem(t *testing.T) {
	uc := newFakeUseCase(existingItem("item-1", "m-1"))
	form := validForm()
	form.Price = 13.00

	rr := doRequest(t, newRouter(uc, &notify.Recorder{}), http.MethodPut, "/menu-items/item-1", "m-1", form)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 13.00, uc.items["item-1"].Price)
}

func TestUpdateItem_InvalidFormRejected(t *testing.T) {
	uc := newFakeUseCase(existingItem("item-1", "m-1"))
	form := validForm()
	form.Price = 0

	rr := doRequest(t, newRouter(uc, &notify.Recorder{}), http.MethodPut, "/menu-items/item-1", "m-1", form)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 11.50, uc.items["item-1"].Price, "rejected update leaves the item untouched")
}

func TestDeleteItem(t *testing.T) {
	uc := newFakeUseCase(existingItem("item-1", "m-1"))
	rr := doRequest(t, newRouter(uc, &notify.Recorder{}), http.MethodDelete, "/menu-items/item-1", "m-1", nil)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, []string{"item-1"}, uc.deleted)
}

func TestDeleteItem_ForeignMerchantIsNoop(t *testing.T) {
	uc := newFakeUseCase(existingItem("item-1", "m-1"))
	rr := doRequest(t, newRouter(uc, &notify.Recorder{}), http.MethodDelete, "/menu-items/item-1", "m-2", nil)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Contains(t, uc.items, "item-1", "foreign delete must not remove the item")
}
