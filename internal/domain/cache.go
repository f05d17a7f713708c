package domain

import (
	"context"
	"fmt"
)

// Единый TTL кеша для всех ресурсов (секунды)
const CacheTTLSeconds = 300

// Ключи кеша — единое место, чтобы не расползались по коду.
// Точечные ключи — единственное число, списки — множественное
// (пространство имён должно совпадать бит-в-бит с инвалидацией).
func CacheKeyArticle(id ArticleID) string   { return "article:" + id.String() }
func CacheKeyCategory(id CategoryID) string { return "category:" + id.String() }
func CacheKeyLocation(id LocationID) string { return "location:" + id.String() }
func CacheKeyShort(id ShortID) string       { return "short:" + id.String() }
func CacheKeyEPaper(id EPaperID) string     { return "epaper:" + id.String() }
func CacheKeyTokenJTI(jti string) string    { return "jti:" + jti }

// Списки: {resource}s:all:{page}:{limit}:{search}
func CacheKeyList(resource string, page, limit int, search string) string {
	return fmt.Sprintf("%ss:all:%d:%d:%s", resource, page, limit, search)
}

// Шаблон для массовой инвалидации всех списочных ключей ресурса
func CacheKeyListPattern(resource string) string { return resource + "s:all:*" }

// Производные выборки
const (
	CacheKeyArticlesPublished = "articles:published"
	CacheKeyCategoriesActive  = "categories:active"
	CacheKeyLocationsActive   = "locations:active"
)

// Простой k/v интерфейс. Реализация — Redis.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttlSeconds int) error
	SetNX(ctx context.Context, key string, val []byte, ttlSeconds int) (bool, error)
	Exists(ctx context.Context, key string) (bool, error)
	Del(ctx context.Context, keys ...string) error
	// Удаление по шаблону (SCAN + DEL) — для инвалидации списочных ключей
	DelPattern(ctx context.Context, pattern string) error
	Ping(context.Context) error
	Close()
}
