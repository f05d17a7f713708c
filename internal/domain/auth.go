package domain

import (
	"context"
	"time"
)

type Token string

// Клеймы access/refresh токена. Роли нормализуются в []string
// один раз при выпуске — потребители форму не переугадывают.
type TokenClaims struct {
	JTI       string // уникальный id токена
	AdminID   AdminID
	Email     string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Пара токенов, выдаваемая при логине/регистрации и при каждой ротации
type TokenPair struct {
	Access     Token
	Refresh    Token
	AccessExp  time.Time
	RefreshExp time.Time
}

// Хеширование паролей
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, encodedHash string) (bool, error)
}

// Кодек токенов (JWT, HS256; отдельные секреты для access и refresh)
type TokenCodec interface {
	IssueAccess(ctx context.Context, a Admin) (Token, TokenClaims, error)
	IssueRefresh(ctx context.Context, a Admin) (Token, TokenClaims, error)
	ParseAccess(ctx context.Context, t Token) (TokenClaims, error)
	ParseRefresh(ctx context.Context, t Token) (TokenClaims, error)
	// PeekClaims декодирует клеймы без проверки подписи и сроков —
	// нужно, чтобы занести в блэклист истекающий токен, который мы выбрасываем.
	PeekClaims(t Token) (TokenClaims, error)
}

// Блэклист access-токенов (Redis, TTL = остаток жизни токена)
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, exp time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Хранилище refresh-токенов (Postgres)
type RefreshTokenStore interface {
	SaveRefreshToken(ctx context.Context, rec RefreshToken) error
	// ConsumeRefreshToken атомарно помечает живой токен blacklisted и
	// возвращает его запись. Уже потреблённый/истёкший — ErrTokenBlacklisted,
	// неизвестный — ErrNotFound. Ровно один из конкурентных вызовов побеждает.
	ConsumeRefreshToken(ctx context.Context, token Token) (RefreshToken, error)
	BlacklistRefreshToken(ctx context.Context, token Token) error
	RefreshTokenByValue(ctx context.Context, token Token) (RefreshToken, error)
}

// Менеджер жизненного цикла: выпуск, проверка, одноразовая ротация
type SessionManager interface {
	Generate(ctx context.Context, a Admin) (TokenPair, error)
	// VerifyAccess: сначала блэклист, потом подпись/срок.
	// Блэклист всегда сильнее валидности.
	VerifyAccess(ctx context.Context, t Token) (TokenClaims, error)
	// Rotate потребляет refresh-токен (одноразово) и выдаёт новую пару.
	// Старый access попадает в блэклист (кроме admin при включённой политике).
	Rotate(ctx context.Context, refresh, oldAccess Token) (TokenPair, TokenClaims, error)
	// Revoke — логаут: блэклистит обе половины сессии
	Revoke(ctx context.Context, access, refresh Token) error
}
