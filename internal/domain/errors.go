package domain

import "errors"

// Бизнес-ошибки (маппятся на HTTP коды в transport/web/v1)
var (
	ErrBadParams        = errors.New("bad_params")         // 400
	ErrUnauth           = errors.New("unauthorized")       // 401
	ErrForbidden        = errors.New("forbidden")          // 403
	ErrNotFound         = errors.New("not_found")          // 404
	ErrMethodNotAllowed = errors.New("method_not_allowed") // 405
	ErrDuplicate        = errors.New("duplicate")          // 409
	ErrUnexpected       = errors.New("unexpected")         // 500
)

// Ошибки жизненного цикла токенов. Наружу никогда не уходят как есть:
// на уровне HTTP все они схлопываются в 401 с общим текстом.
var (
	// Кривой формат и плохая подпись неразличимы снаружи
	ErrInvalidToken     = errors.New("invalid_token")
	ErrTokenExpired     = errors.New("token_expired")
	ErrTokenBlacklisted = errors.New("token_blacklisted")
)

// Коды ошибок для конверта ответа
const (
	ErrCodeBadParams        = 1000
	ErrCodeUnauth           = 1001
	ErrCodeForbidden        = 1003
	ErrCodeNotFound         = 1004
	ErrCodeMethodNotAllowed = 1005
	ErrCodeDuplicate        = 1009
	ErrCodeUnexpected       = 1500
)
