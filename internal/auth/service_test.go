package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sharath018/potluck-rsvp-backend/config"
	"github.com/sharath018/potluck-rsvp-backend/internal/auditlog"
	"github.com/sharath018/potluck-rsvp-backend/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTAccessSecret:    "access-secret",
		JWTRefreshSecret:   "refresh-secret",
		JWTAccessTTLHours:  1,
		JWTRefreshTTLHours: 24,
	}
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t, &User{}, &auditlog.AuditLog{})
	svc := NewService(NewRepository(db), testConfig(), auditlog.NewService(auditlog.NewRepository(db)))
	require.NoError(t, svc.SeedAdmin("Orga@Example.ch", "geheim123", "Orga"))
	return svc, db
}

func TestSeedAdmin_IsIdempotent(t *testing.T) {
	svc, db := newTestService(t)
	require.NoError(t, svc.SeedAdmin("orga@example.ch", "anderes-passwort", "Orga"))

	var n int64
	require.NoError(t, db.Model(&User{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	// the original password still works
	_, _, err := svc.Login(LoginInput{Email: "orga@example.ch", Password: "geheim123"}, "127.0.0.1")
	assert.NoError(t, err)
}

func TestSeedAdmin_RejectsShortPassword(t *testing.T) {
	db := testutil.NewDB(t, &User{})
	svc := NewService(NewRepository(db), testConfig(), nil)
	assert.ErrorIs(t, svc.SeedAdmin("a@b.ch", "kurz", "A"), ErrWeakPassword)
}

func TestLogin(t *testing.T) {
	svc, db := newTestService(t)

	tokens, user, err := svc.Login(LoginInput{Email: " ORGA@example.ch ", Password: "geheim123"}, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "orga@example.ch", user.Email)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	parsed, err := jwt.Parse(tokens.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte("access-secret"), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(user.ID), claims["user_id"])

	_, _, err = svc.Login(LoginInput{Email: "orga@example.ch", Password: "falsch"}, "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(LoginInput{Email: "nobody@example.ch", Password: "geheim123"}, "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	var failed int64
	require.NoError(t, db.Model(&auditlog.AuditLog{}).Where("action = ?", "LOGIN_FAILED").Count(&failed).Error)
	assert.Equal(t, int64(2), failed)
}

func TestLogin_InactiveUser(t *testing.T) {
	svc, db := newTestService(t)
	require.NoError(t, db.Model(&User{}).Where("email = ?", "orga@example.ch").Update("status", StatusInactive).Error)

	_, _, err := svc.Login(LoginInput{Email: "orga@example.ch", Password: "geheim123"}, "")
	assert.ErrorIs(t, err, ErrInactive)
}

func TestRefresh(t *testing.T) {
	svc, _ := newTestService(t)
	tokens, _, err := svc.Login(LoginInput{Email: "orga@example.ch", Password: "geheim123"}, "")
	require.NoError(t, err)

	access, err := svc.Refresh(tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, access)

	// an access token is signed with the other secret
	_, err = svc.Refresh(tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestService(t)
	_, user, err := svc.Login(LoginInput{Email: "orga@example.ch", Password: "geheim123"}, "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(user.ID, "falsch", "neues-passwort", ""), ErrInvalidCredentials)
	assert.ErrorIs(t, svc.ChangePassword(user.ID, "geheim123", "kurz", ""), ErrWeakPassword)
	require.NoError(t, svc.ChangePassword(user.ID, "geheim123", "neues-passwort", ""))

	_, _, err = svc.Login(LoginInput{Email: "orga@example.ch", Password: "neues-passwort"}, "")
	assert.NoError(t, err)
}
