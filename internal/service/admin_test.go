package service

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgorLis/news-cms/internal/domain"
)

type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hash:" + plain, nil }
func (fakeHasher) Verify(plain, encoded string) (bool, error) {
	return encoded == "hash:"+plain, nil
}

type fakeAdmins struct {
	byEmail map[string]domain.Admin
}

func (f *fakeAdmins) Close()                     {}
func (f *fakeAdmins) Ping(context.Context) error { return nil }
func (f *fakeAdmins) CreateAdmin(_ context.Context, email string, hash []byte, roles []string) (domain.Admin, error) {
	if _, ok := f.byEmail[email]; ok {
		return domain.Admin{}, domain.ErrDuplicate
	}
	a := domain.Admin{ID: uuid.New(), Email: email, PassHash: hash, Roles: roles}
	f.byEmail[email] = a
	return a, nil
}
func (f *fakeAdmins) AdminByEmail(_ context.Context, email string) (domain.Admin, error) {
	a, ok := f.byEmail[email]
	if !ok {
		return domain.Admin{}, domain.ErrNotFound
	}
	return a, nil
}
func (f *fakeAdmins) AdminByID(_ context.Context, id domain.AdminID) (domain.Admin, error) {
	for _, a := range f.byEmail {
		if a.ID == id {
			return a, nil
		}
	}
	return domain.Admin{}, domain.ErrNotFound
}

type stubSessions struct{}

func (stubSessions) Generate(_ context.Context, a domain.Admin) (domain.TokenPair, error) {
	return domain.TokenPair{
		Access: "access", Refresh: "refresh",
		AccessExp: time.Now().Add(time.Minute), RefreshExp: time.Now().Add(time.Hour),
	}, nil
}
func (stubSessions) VerifyAccess(context.Context, domain.Token) (domain.TokenClaims, error) {
	panic("not used")
}
func (stubSessions) Rotate(context.Context, domain.Token, domain.Token) (domain.TokenPair, domain.TokenClaims, error) {
	panic("not used")
}
func (stubSessions) Revoke(context.Context, domain.Token, domain.Token) error { return nil }

func newAdminSvc() *AdminService {
	admins := &fakeAdmins{byEmail: make(map[string]domain.Admin)}
	return NewAdminService(log.New(io.Discard, "", 0), admins, fakeHasher{}, stubSessions{})
}

func TestSignupValidation(t *testing.T) {
	t.Parallel()
	svc := newAdminSvc()

	_, _, err := svc.Signup(context.Background(), "not-an-email", "password1")
	assert.ErrorIs(t, err, domain.ErrBadParams)

	_, _, err = svc.Signup(context.Background(), "admin@example.com", "short")
	assert.ErrorIs(t, err, domain.ErrBadParams)
}

func TestSignupNormalizesEmailAndGrantsAdmin(t *testing.T) {
	t.Parallel()
	svc := newAdminSvc()

	a, pair, err := svc.Signup(context.Background(), "  Admin@Example.COM ", "password1")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", a.Email)
	assert.True(t, a.HasRole(domain.RoleAdmin))
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)
}

func TestSignupDuplicateEmail(t *testing.T) {
	t.Parallel()
	svc := newAdminSvc()

	_, _, err := svc.Signup(context.Background(), "admin@example.com", "password1")
	require.NoError(t, err)

	_, _, err = svc.Signup(context.Background(), "ADMIN@example.com", "password2")
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLogin(t *testing.T) {
	t.Parallel()
	svc := newAdminSvc()

	_, _, err := svc.Signup(context.Background(), "admin@example.com", "password1")
	require.NoError(t, err)

	a, pair, err := svc.Login(context.Background(), "admin@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", a.Email)
	assert.NotEmpty(t, pair.Access)
}

func TestLoginWrongCredsIndistinguishable(t *testing.T) {
	t.Parallel()
	svc := newAdminSvc()

	_, _, err := svc.Signup(context.Background(), "admin@example.com", "password1")
	require.NoError(t, err)

	// неверный пароль и неизвестный email дают одну и ту же ошибку
	_, _, errPass := svc.Login(context.Background(), "admin@example.com", "wrong-pass")
	_, _, errMail := svc.Login(context.Background(), "nobody@example.com", "password1")
	assert.ErrorIs(t, errPass, domain.ErrUnauth)
	assert.ErrorIs(t, errMail, domain.ErrUnauth)
	assert.Equal(t, errPass, errMail)
}
