package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newProtectedRouter(auth *Auth) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/companies", auth.RequirePermission(PermAnalyticsRead), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestRequirePermission(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name       string
		auth       *Auth
		setup      func(r *http.Request)
		wantStatus int
	}{
		{
			name:       "disabled lets everything through",
			auth:       NewAuth(false, ""),
			setup:      func(*http.Request) {},
			wantStatus: http.StatusOK,
		},
		{
			name:       "nil auth lets everything through",
			auth:       nil,
			setup:      func(*http.Request) {},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			auth:       NewAuth(true, testSecret),
			setup:      func(*http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "malformed header",
			auth: NewAuth(true, testSecret),
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Token abc")
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "wrong signature",
			auth: NewAuth(true, testSecret),
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+signToken(t, "other", jwt.MapClaims{"permissions": []string{PermAnalyticsRead}, "exp": exp}))
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "expired",
			auth: NewAuth(true, testSecret),
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, jwt.MapClaims{"permissions": []string{PermAnalyticsRead}, "exp": time.Now().Add(-time.Hour).Unix()}))
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "missing permission",
			auth: NewAuth(true, testSecret),
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, jwt.MapClaims{"permissions": []string{"other.read"}, "exp": exp}))
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "permission granted",
			auth: NewAuth(true, testSecret),
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, jwt.MapClaims{"permissions": []string{PermAnalyticsRead}, "exp": exp}))
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "space separated permissions",
			auth: NewAuth(true, testSecret),
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, jwt.MapClaims{"permissions": "x.read " + PermAnalyticsRead, "exp": exp}))
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "admin role",
			auth: NewAuth(true, testSecret),
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, jwt.MapClaims{"role": "admin", "exp": exp}))
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "cookie token",
			auth: NewAuth(true, testSecret),
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: "access_token", Value: signToken(t, testSecret, jwt.MapClaims{"role": "admin", "exp": exp})})
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/companies", nil)
			tt.setup(req)
			w := httptest.NewRecorder()

			newProtectedRouter(tt.auth).ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestParseToken_RejectsNonHMAC(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"role": "admin"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewAuth(true, testSecret).ParseToken(signed)
	assert.Error(t, err)
}
