package token

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/EgorLis/news-cms/internal/domain"
)

// Manager подписывает и проверяет пары access/refresh.
// Секреты раздельные: утечка одного не компрометирует второй контур.
type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func New(accessSecret, refreshSecret, issuer string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// внутренний тип для подписи/парсинга с jwt.RegisteredClaims
type jwtClaims struct {
	JTI     string         `json:"jti"`
	AdminID domain.AdminID `json:"aid"`
	Email   string         `json:"email"`
	Roles   []string       `json:"roles"`
	jwt.RegisteredClaims
}

// Ensure: Manager implements domain.TokenCodec
var _ domain.TokenCodec = (*Manager)(nil)

func (m *Manager) IssueAccess(ctx context.Context, a domain.Admin) (domain.Token, domain.TokenClaims, error) {
	return m.issue(a, m.accessSecret, m.accessTTL)
}

func (m *Manager) IssueRefresh(ctx context.Context, a domain.Admin) (domain.Token, domain.TokenClaims, error) {
	return m.issue(a, m.refreshSecret, m.refreshTTL)
}

func (m *Manager) issue(a domain.Admin, secret []byte, ttl time.Duration) (domain.Token, domain.TokenClaims, error) {
	now := time.Now().UTC()
	jti := uuid.NewString()

	// Роли нормализуем здесь, один раз: дальше по коду всегда []string
	roles := normalizeRoles(a.Roles)

	cl := jwtClaims{
		JTI:     jti,
		AdminID: a.ID,
		Email:   a.Email,
		Roles:   roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   a.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        jti,
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, cl)
	tokenStr, err := t.SignedString(secret)
	if err != nil {
		return "", domain.TokenClaims{}, err
	}

	return domain.Token(tokenStr), toDomain(cl), nil
}

func (m *Manager) ParseAccess(ctx context.Context, raw domain.Token) (domain.TokenClaims, error) {
	return m.parse(raw, m.accessSecret)
}

func (m *Manager) ParseRefresh(ctx context.Context, raw domain.Token) (domain.TokenClaims, error) {
	return m.parse(raw, m.refreshSecret)
}

func (m *Manager) parse(raw domain.Token, secret []byte) (domain.TokenClaims, error) {
	var out jwtClaims
	tkn, err := jwt.ParseWithClaims(string(raw), &out, func(token *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		// Истёкший отличаем (нужно для ветки авторефреша), остальное —
		// кривой формат, плохая подпись — схлопываем в одну ошибку,
		// чтобы не давать оракула
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.TokenClaims{}, domain.ErrTokenExpired
		}
		return domain.TokenClaims{}, domain.ErrInvalidToken
	}
	if !tkn.Valid {
		return domain.TokenClaims{}, domain.ErrInvalidToken
	}

	return toDomain(out), nil
}

// PeekClaims декодирует клеймы без проверки подписи и сроков.
// Использовать только для извлечения jti/exp токена, который мы
// собираемся занести в блэклист.
func (m *Manager) PeekClaims(raw domain.Token) (domain.TokenClaims, error) {
	var out jwtClaims
	p := jwt.NewParser(jwt.WithoutClaimsValidation(), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if _, _, err := p.ParseUnverified(string(raw), &out); err != nil {
		return domain.TokenClaims{}, domain.ErrInvalidToken
	}
	return toDomain(out), nil
}

func toDomain(cl jwtClaims) domain.TokenClaims {
	out := domain.TokenClaims{
		JTI:     cl.JTI,
		AdminID: cl.AdminID,
		Email:   cl.Email,
		Roles:   cl.Roles,
	}
	if cl.IssuedAt != nil {
		out.IssuedAt = cl.IssuedAt.Time
	}
	if cl.ExpiresAt != nil {
		out.ExpiresAt = cl.ExpiresAt.Time
	}
	return out
}

func normalizeRoles(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, r := range in {
		if r == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
