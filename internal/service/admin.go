package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/EgorLis/news-cms/internal/domain"
)

type AdminService struct {
	log      *log.Logger
	admins   domain.AdminsRepo
	hasher   domain.PasswordHasher
	sessions domain.SessionManager
}

func NewAdminService(logger *log.Logger, admins domain.AdminsRepo,
	hasher domain.PasswordHasher, sessions domain.SessionManager) *AdminService {
	return &AdminService{log: logger, admins: admins, hasher: hasher, sessions: sessions}
}

// Signup регистрирует администратора и сразу открывает сессию
func (s *AdminService) Signup(ctx context.Context, email, password string) (domain.Admin, domain.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !domain.ValidEmail(email) {
		return domain.Admin{}, domain.TokenPair{}, fmt.Errorf("%w: invalid email", domain.ErrBadParams)
	}
	if !domain.ValidPassword(password) {
		return domain.Admin{}, domain.TokenPair{}, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrBadParams)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.Admin{}, domain.TokenPair{}, err
	}

	a, err := s.admins.CreateAdmin(ctx, email, []byte(hash), []string{domain.RoleAdmin})
	if err != nil {
		return domain.Admin{}, domain.TokenPair{}, err
	}

	pair, err := s.sessions.Generate(ctx, a)
	if err != nil {
		return domain.Admin{}, domain.TokenPair{}, err
	}
	return a, pair, nil
}

// Login проверяет пароль и выдаёт свежую пару токенов.
// Неверный email и неверный пароль неразличимы снаружи.
func (s *AdminService) Login(ctx context.Context, email, password string) (domain.Admin, domain.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return domain.Admin{}, domain.TokenPair{}, fmt.Errorf("%w: email and password are required", domain.ErrBadParams)
	}

	a, err := s.admins.AdminByEmail(ctx, email)
	if err != nil {
		s.log.Printf("login failed for %q: %v", email, err)
		return domain.Admin{}, domain.TokenPair{}, domain.ErrUnauth
	}

	ok, err := s.hasher.Verify(password, string(a.PassHash))
	if err != nil {
		return domain.Admin{}, domain.TokenPair{}, err
	}
	if !ok {
		s.log.Printf("login failed for %q: wrong password", email)
		return domain.Admin{}, domain.TokenPair{}, domain.ErrUnauth
	}

	pair, err := s.sessions.Generate(ctx, a)
	if err != nil {
		return domain.Admin{}, domain.TokenPair{}, err
	}
	return a, pair, nil
}

func (s *AdminService) GetByID(ctx context.Context, id domain.AdminID) (domain.Admin, error) {
	return s.admins.AdminByID(ctx, id)
}
