package session

import (
	"context"
	"errors"
	"log"

	"github.com/EgorLis/news-cms/internal/domain"
)

// Manager — ядро жизненного цикла токенов: выпуск пары, проверка access
// с приоритетом блэклиста и одноразовая ротация refresh.
type Manager struct {
	log    *log.Logger
	codec  domain.TokenCodec
	store  domain.RefreshTokenStore
	black  domain.TokenBlacklist
	admins domain.AdminsRepo

	// Политика: при ротации не блэклистить старый access администратора
	// (конфигурируемый флаг, не зашитая проверка роли)
	keepAdminAccess bool
}

func New(logger *log.Logger, codec domain.TokenCodec, store domain.RefreshTokenStore,
	black domain.TokenBlacklist, admins domain.AdminsRepo, keepAdminAccess bool) *Manager {
	return &Manager{
		log:             logger,
		codec:           codec,
		store:           store,
		black:           black,
		admins:          admins,
		keepAdminAccess: keepAdminAccess,
	}
}

var _ domain.SessionManager = (*Manager)(nil)

// Generate всегда выпускает свежую пару и сохраняет refresh-запись.
// Используется при регистрации/логине и при ротации.
func (m *Manager) Generate(ctx context.Context, a domain.Admin) (domain.TokenPair, error) {
	access, accessCl, err := m.codec.IssueAccess(ctx, a)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, refreshCl, err := m.codec.IssueRefresh(ctx, a)
	if err != nil {
		return domain.TokenPair{}, err
	}

	rec := domain.RefreshToken{
		Token:     string(refresh),
		AdminID:   a.ID,
		ExpiresAt: refreshCl.ExpiresAt,
	}
	if err := m.store.SaveRefreshToken(ctx, rec); err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		Access:     access,
		Refresh:    refresh,
		AccessExp:  accessCl.ExpiresAt,
		RefreshExp: refreshCl.ExpiresAt,
	}, nil
}

// VerifyAccess проверяет access-токен. Порядок жёсткий:
// сначала блэклист, потом подпись/срок — отозванный, но ещё не истёкший
// токен никогда не считается валидным.
func (m *Manager) VerifyAccess(ctx context.Context, t domain.Token) (domain.TokenClaims, error) {
	peeked, err := m.codec.PeekClaims(t)
	if err != nil {
		return domain.TokenClaims{}, domain.ErrInvalidToken
	}

	revoked, err := m.black.IsRevoked(ctx, peeked.JTI)
	if err != nil {
		return domain.TokenClaims{}, err
	}
	if revoked {
		return domain.TokenClaims{}, domain.ErrTokenBlacklisted
	}

	return m.codec.ParseAccess(ctx, t)
}

// Rotate потребляет refresh-токен и выдаёт новую пару.
// Потребление одноразовое: запись помечается blacklisted атомарно,
// из конкурентных ротаций одним токеном побеждает ровно одна.
func (m *Manager) Rotate(ctx context.Context, refresh, oldAccess domain.Token) (domain.TokenPair, domain.TokenClaims, error) {
	rec, err := m.store.ConsumeRefreshToken(ctx, refresh)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.TokenPair{}, domain.TokenClaims{}, domain.ErrInvalidToken
		}
		return domain.TokenPair{}, domain.TokenClaims{}, err
	}

	// Подпись проверяем после потребления: чужой/битый токен в хранилище
	// не живёт, но подпись всё равно обязана сойтись
	if _, err := m.codec.ParseRefresh(ctx, refresh); err != nil {
		return domain.TokenPair{}, domain.TokenClaims{}, err
	}

	admin, err := m.admins.AdminByID(ctx, rec.AdminID)
	if err != nil {
		return domain.TokenPair{}, domain.TokenClaims{}, err
	}

	// Старый access — в блэклист до его собственного exp.
	// Исключение — admin при включённой политике keepAdminAccess.
	if oldAccess != "" {
		if cl, err := m.codec.PeekClaims(oldAccess); err == nil {
			if !(m.keepAdminAccess && admin.HasRole(domain.RoleAdmin)) {
				if err := m.black.Revoke(ctx, cl.JTI, cl.ExpiresAt); err != nil {
					// ротация важнее: не валим запрос, но фиксируем
					m.log.Printf("rotate: revoke old access failed: %v", err)
				}
			}
		}
	}

	pair, err := m.Generate(ctx, admin)
	if err != nil {
		return domain.TokenPair{}, domain.TokenClaims{}, err
	}

	cl, err := m.codec.ParseAccess(ctx, pair.Access)
	if err != nil {
		return domain.TokenPair{}, domain.TokenClaims{}, err
	}
	return pair, cl, nil
}

// Revoke — логаут: access в блэклист до exp, refresh помечается в хранилище.
// Идемпотентно: повторный логаут не ошибка.
func (m *Manager) Revoke(ctx context.Context, access, refresh domain.Token) error {
	if access != "" {
		if cl, err := m.codec.PeekClaims(access); err == nil {
			if err := m.black.Revoke(ctx, cl.JTI, cl.ExpiresAt); err != nil {
				return err
			}
		}
	}
	if refresh != "" {
		if err := m.store.BlacklistRefreshToken(ctx, refresh); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
	}
	return nil
}
