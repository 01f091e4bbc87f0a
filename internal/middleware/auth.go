package middleware

import (
	"net/http"
	"strings"

	"tradeboard/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rotisserie/eris"
)

// PermAnalyticsRead grants access to every read endpoint
const PermAnalyticsRead = "analytics.read"

const roleAdmin = "admin"

// Auth validates bearer tokens when enabled. A disabled Auth lets every
// request through.
type Auth struct {
	enabled bool
	secret  []byte
}

func NewAuth(enabled bool, secret string) *Auth {
	return &Auth{enabled: enabled, secret: []byte(secret)}
}

// Enabled reports whether tokens are checked. A nil Auth is disabled.
func (a *Auth) Enabled() bool {
	return a != nil && a.enabled
}

// ParseToken verifies an HS256 token and returns its claims
func (a *Auth) ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, eris.Wrap(err, "invalid token")
	}
	if !token.Valid {
		return nil, eris.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, eris.New("invalid token claims")
	}
	return claims, nil
}

// RequirePermission validates the JWT and checks that its "permissions" claim
// holds every required code. The admin role always passes.
func (a *Auth) RequirePermission(requiredPerms ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.Enabled() {
			c.Next()
			return
		}

		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
			return
		}

		claims, err := a.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token"))
			return
		}

		role, _ := claims["role"].(string)
		c.Set("userID", claims["sub"])
		c.Set("userRole", role)

		if role == roleAdmin {
			c.Next()
			return
		}

		permSet := permissionsFromClaims(claims)
		for _, required := range requiredPerms {
			if !permSet[required] {
				c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: missing permission '"+required+"'"))
				return
			}
		}

		c.Next()
	}
}

// bearerToken reads the access_token cookie, then the Authorization header
func bearerToken(c *gin.Context) (string, bool) {
	if tokenString, err := c.Cookie("access_token"); err == nil && tokenString != "" {
		return tokenString, true
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func permissionsFromClaims(claims jwt.MapClaims) map[string]bool {
	set := make(map[string]bool)
	switch perms := claims["permissions"].(type) {
	case []interface{}:
		for _, p := range perms {
			if s, ok := p.(string); ok {
				set[s] = true
			}
		}
	case string:
		for _, p := range strings.Fields(perms) {
			set[p] = true
		}
	}
	return set
}
