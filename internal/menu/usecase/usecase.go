package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/restodine/admin-service/internal/menu"
	"github.com/restodine/admin-service/internal/menu/dto"
	"github.com/restodine/admin-service/internal/model"
	"github.com/restodine/admin-service/pkg/cache"
	"github.com/restodine/admin-service/pkg/logger"
	"github.com/restodine/admin-service/pkg/search"
	"go.uber.org/zap"
)

// ErrItemNotFound is returned when the target menu item does not exist.
var ErrItemNotFound = errors.New("menu item not found")

const itemsIndex = "menu_items"

type menuUseCase struct {
	repo   menu.Repository
	cache  *cache.RedisClient
	es     *search.Client
	logger logger.Logger
}

// NewMenuUseCase wires the menu item usecase. cache and es may be nil; both
// are optional accelerators, not correctness dependencies.
func NewMenuUseCase(repo menu.Repository, cache *cache.RedisClient, es *search.Client, log logger.Logger) menu.UseCase {
	return &menuUseCase{
		repo:   repo,
		cache:  cache,
		es:     es,
		logger: log,
	}
}

func (uc *menuUseCase) CreateItem(ctx context.Context, merchantID string, form *dto.MenuItemForm) (*model.MenuItem, error) {
	now := time.Now()

	item := dto.FormToItem(form)
	item.BaseModel = model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	item.MerchantID = merchantID

	if err := uc.repo.Create(ctx, &item); err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background(), merchantID)
	go uc.syncToElastic(context.Background(), &item)

	return &item, nil
}

func (uc *menuUseCase) GetItem(ctx context.Context, id string) (*model.MenuItem, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *menuUseCase) ListItems(ctx context.Context, filters *dto.MenuItemFilters) ([]model.MenuItem, int, error) {
	cacheKey := uc.listCacheKey(filters)

	if uc.cache != nil && cacheKey != "" {
		val, err := uc.cache.Client.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached struct {
				Items []model.MenuItem
				Count int
			}
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached.Items, cached.Count, nil
			}
		}
	}

	if filters.SearchQuery != "" && uc.es != nil {
		items, count, err := uc.searchElastic(ctx, filters)
		if err == nil {
			return items, count, nil
		}
		uc.logger.Error("menu search failed, falling back to db", zap.Error(err))
	}

	items, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if uc.cache != nil && cacheKey != "" {
		cached := struct {
			Items []model.MenuItem
			Count int
		}{Items: items, Count: count}
		if data, err := json.Marshal(cached); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, 5*time.Minute)
		}
	}

	return items, count, nil
}

func (uc *menuUseCase) UpdateItem(ctx context.Context, id, merchantID string, form *dto.MenuItemForm) (*model.MenuItem, error) {
	existing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.MerchantID != merchantID {
		return nil, ErrItemNotFound
	}

	item := dto.FormToItem(form)
	item.BaseModel = existing.BaseModel
	item.MerchantID = existing.MerchantID
	item.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, &item); err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background(), merchantID)
	go uc.syncToElastic(context.Background(), &item)

	return &item, nil
}

func (uc *menuUseCase) DeleteItem(ctx context.Context, id, merchantID string) error {
	item, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil || item.MerchantID != merchantID {
		return nil // Already gone, or not ours to delete
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	go uc.invalidateListCache(context.Background(), item.MerchantID)
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), itemsIndex, id); err != nil {
				uc.logger.Error("failed to delete menu item from index", zap.Error(err))
			}
		}()
	}

	return nil
}

func (uc *menuUseCase) searchElastic(ctx context.Context, filters *dto.MenuItemFilters) ([]model.MenuItem, int, error) {
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []map[string]interface{}{
					{
						"query_string": map[string]interface{}{
							"query":  fmt.Sprintf("*%s*", filters.SearchQuery),
							"fields": []string{"name^3", "description"},
						},
					},
					{
						"term": map[string]interface{}{
							"merchant_id": filters.MerchantID,
						},
					},
				},
			},
		},
		"from": (filters.Page - 1) * filters.PageSize,
	}
	if filters.PageSize > 0 {
		q["size"] = filters.PageSize
	}

	res, err := uc.es.Search(ctx, itemsIndex, q)
	if err != nil {
		return nil, 0, err
	}

	var items []model.MenuItem
	for _, hit := range res.Hits.Hits {
		var item model.MenuItem
		if err := json.Unmarshal(hit.Source, &item); err == nil {
			items = append(items, item)
		}
	}
	return items, res.Hits.Total.Value, nil
}

func (uc *menuUseCase) syncToElastic(ctx context.Context, item *model.MenuItem) {
	if uc.es == nil {
		return
	}

	mapping := `{
		"mappings": {
			"properties": {
				"merchant_id": { "type": "keyword" },
				"name": { "type": "text" },
				"description": { "type": "text" },
				"price": { "type": "double" },
				"created_at": { "type": "date" }
			}
		}
	}`
	_ = uc.es.CreateIndex(ctx, itemsIndex, mapping)

	if err := uc.es.Index(ctx, itemsIndex, item.ID, item); err != nil {
		uc.logger.Error("failed to index menu item", zap.Error(err))
	}
}

func (uc *menuUseCase) listCacheKey(filters *dto.MenuItemFilters) string {
	data, err := json.Marshal(filters)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("menu:list:%s:%x", filters.MerchantID, md5.Sum(data))
}

func (uc *menuUseCase) invalidateListCache(ctx context.Context, merchantID string) {
	if uc.cache == nil {
		return
	}
	pattern := fmt.Sprintf("menu:list:%s:*", merchantID)
	keys, err := uc.cache.Client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		uc.cache.Client.Del(ctx, keys...)
	}
}
