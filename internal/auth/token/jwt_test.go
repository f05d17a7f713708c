package token

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgorLis/news-cms/internal/domain"
)

func testAdmin() domain.Admin {
	return domain.Admin{
		ID:    uuid.New(),
		Email: "admin@example.com",
		Roles: []string{"admin"},
	}
}

func TestIssueParseRoundTrip(t *testing.T) {
	t.Parallel()
	m := New("access-secret", "refresh-secret", "test", time.Minute, time.Hour)
	a := testAdmin()

	tok, issued, err := m.IssueAccess(context.Background(), a)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	cl, err := m.ParseAccess(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, a.ID, cl.AdminID)
	assert.Equal(t, a.Email, cl.Email)
	assert.Equal(t, []string{"admin"}, cl.Roles)
	assert.Equal(t, issued.JTI, cl.JTI)
	assert.WithinDuration(t, time.Now().Add(time.Minute), cl.ExpiresAt, 5*time.Second)
}

func TestAccessAndRefreshSecretsAreSeparate(t *testing.T) {
	t.Parallel()
	m := New("access-secret", "refresh-secret", "test", time.Minute, time.Hour)
	a := testAdmin()

	access, _, err := m.IssueAccess(context.Background(), a)
	require.NoError(t, err)
	refresh, _, err := m.IssueRefresh(context.Background(), a)
	require.NoError(t, err)

	// access-токен не проходит как refresh и наоборот
	_, err = m.ParseRefresh(context.Background(), access)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
	_, err = m.ParseAccess(context.Background(), refresh)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestParseExpired(t *testing.T) {
	t.Parallel()
	m := New("access-secret", "refresh-secret", "test", -time.Minute, time.Hour)
	a := testAdmin()

	tok, _, err := m.IssueAccess(context.Background(), a)
	require.NoError(t, err)

	_, err = m.ParseAccess(context.Background(), tok)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestParseWrongSecretAndGarbage(t *testing.T) {
	t.Parallel()
	m := New("access-secret", "refresh-secret", "test", time.Minute, time.Hour)
	other := New("other-secret", "refresh-secret", "test", time.Minute, time.Hour)

	tok, _, err := other.IssueAccess(context.Background(), testAdmin())
	require.NoError(t, err)

	// плохая подпись и мусор неразличимы
	_, err = m.ParseAccess(context.Background(), tok)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
	_, err = m.ParseAccess(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestPeekClaimsOnExpiredToken(t *testing.T) {
	t.Parallel()
	m := New("access-secret", "refresh-secret", "test", -time.Minute, time.Hour)
	a := testAdmin()

	tok, issued, err := m.IssueAccess(context.Background(), a)
	require.NoError(t, err)

	// Peek обязан работать и для истёкшего: иначе его не занести в блэклист
	cl, err := m.PeekClaims(tok)
	require.NoError(t, err)
	assert.Equal(t, issued.JTI, cl.JTI)
	assert.Equal(t, a.ID, cl.AdminID)
}

func TestRolesNormalizedAtIssue(t *testing.T) {
	t.Parallel()
	m := New("access-secret", "refresh-secret", "test", time.Minute, time.Hour)
	a := testAdmin()
	a.Roles = []string{"admin", "", "editor", "admin"}

	tok, _, err := m.IssueAccess(context.Background(), a)
	require.NoError(t, err)

	cl, err := m.ParseAccess(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, []string{"admin", "editor"}, cl.Roles)
}
