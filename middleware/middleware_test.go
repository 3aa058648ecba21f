package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharath018/potluck-rsvp-backend/config"
	"github.com/sharath018/potluck-rsvp-backend/internal/auth"
	"github.com/sharath018/potluck-rsvp-backend/internal/testutil"
)

const accessSecret = "access-secret-access-secret-0123456789"

func newAuthRouter(t *testing.T) (*gin.Engine, auth.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTAccessSecret:    accessSecret,
		JWTRefreshSecret:   "refresh-secret-refresh-secret-0123456789",
		JWTAccessTTLHours:  1,
		JWTRefreshTTLHours: 1,
	}
	db := testutil.NewDB(t, &auth.User{})
	svc := auth.NewService(auth.NewRepository(db), cfg, nil)
	require.NoError(t, svc.SeedAdmin("orga@example.ch", "geheim123", "Orga"))

	r := gin.New()
	require.NoError(t, r.SetTrustedProxies([]string{"192.0.2.0/24", "10.0.0.0/8"}))
	r.Use(AuditMiddleware())
	r.GET("/admin", AuthMiddleware(cfg, svc), func(c *gin.Context) {
		actor := ActorFromContext(c)
		require.NotNil(t, actor.UserID)
		c.JSON(http.StatusOK, gin.H{"user_id": *actor.UserID, "ip": actor.IP})
	})
	return r, svc
}

func TestAuthMiddleware_RejectsMissingAndBadTokens(t *testing.T) {
	r, _ := newAuthRouter(t)

	for _, header := range []string{"", "Token abc", "Bearer not-a-jwt"} {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}
}

func TestAuthMiddleware_AcceptsAccessToken(t *testing.T) {
	r, svc := newAuthRouter(t)
	tokens, _, err := svc.Login(auth.LoginInput{Email: "orga@example.ch", Password: "geheim123"}, "")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ip":"203.0.113.7"`)
}

func TestAuthMiddleware_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	r, svc := newAuthRouter(t)
	tokens, _, err := svc.Login(auth.LoginInput{Email: "orga@example.ch", Password: "geheim123"}, "")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.RemoteAddr = "198.51.100.4:4000"
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ip":"198.51.100.4"`)
}

func TestAuthMiddleware_RejectsTokenSignedWithEmptyKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t, &auth.User{})
	cfg := &config.Config{JWTAccessTTLHours: 1, JWTRefreshTTLHours: 1}
	svc := auth.NewService(auth.NewRepository(db), cfg, nil)
	require.NoError(t, svc.SeedAdmin("orga@example.ch", "geheim123", "Orga"))

	r := gin.New()
	r.GET("/admin", AuthMiddleware(cfg, svc), func(c *gin.Context) { c.Status(http.StatusOK) })

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(""))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, http.StatusOK, w.Code)

	// a forged token against a configured key fails as well
	r2, _ := newAuthRouter(t)
	w = httptest.NewRecorder()
	r2.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_RefreshTokenIsNotAccepted(t *testing.T) {
	r, svc := newAuthRouter(t)
	tokens, _, err := svc.Login(auth.LoginInput{Email: "orga@example.ch", Password: "geheim123"}, "")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.RefreshToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestActorFromContext_Public(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "192.0.2.1:5555"

	actor := ActorFromContext(c)
	assert.Nil(t, actor.UserID)
	assert.Equal(t, "192.0.2.1", actor.IP)
}

func TestSubmitLimiter_BlocksAfterLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/rsvp", SubmitLimiter(2, nil), func(c *gin.Context) { c.Status(http.StatusCreated) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/rsvp", nil)
		req.RemoteAddr = "198.51.100.9:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)
}

func TestSubmitLimiter_RotatingForwardedForDoesNotBypass(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(nil))
	r.POST("/rsvp", SubmitLimiter(2, nil), func(c *gin.Context) { c.Status(http.StatusCreated) })

	accepted := 0
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodPost, "/rsvp", nil)
		req.RemoteAddr = "198.51.100.9:1234"
		req.Header.Set("X-Forwarded-For", "203.0.113."+strconv.Itoa(i+1))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code == http.StatusCreated {
			accepted++
		}
	}
	assert.Equal(t, 2, accepted)
}
