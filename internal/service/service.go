// Package service — бизнес-правила ресурсов поверх репозиториев
// плюс сквозная дисциплина кеширования: точечные чтения и списки
// идут через read-through кеш (TTL 300с), любая запись коротко
// инвалидирует точечный ключ, все списочные ключи ресурса и
// производные выборки. Корректность важнее hit-rate.
package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/EgorLis/news-cms/internal/domain"
)

// getCached распаковывает значение по ключу в out.
// false — промах или ошибка кеша (ошибка не фатальна, идём в БД).
func getCached(ctx context.Context, log *log.Logger, cache domain.Cache, key string, out any) bool {
	b, err := cache.Get(ctx, key)
	if err != nil {
		log.Printf("cache get %q: %v", key, err)
		return false
	}
	if len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, out); err != nil {
		log.Printf("cache unmarshal %q: %v", key, err)
		return false
	}
	return true
}

// putCached кладёт значение с единым TTL. Ошибка кеша не фатальна.
func putCached(ctx context.Context, log *log.Logger, cache domain.Cache, key string, val any) {
	b, err := json.Marshal(val)
	if err != nil {
		log.Printf("cache marshal %q: %v", key, err)
		return
	}
	if err := cache.Set(ctx, key, b, domain.CacheTTLSeconds); err != nil {
		log.Printf("cache set %q: %v", key, err)
	}
}

func paginate(total, page, limit int) domain.Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return domain.Pagination{Total: total, Page: page, Pages: pages, Limit: limit}
}
