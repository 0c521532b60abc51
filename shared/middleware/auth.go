package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	userIDKey   = "userId"
	authProcess = "AuthMiddleware"
)

type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// AuthMiddleware accepts HS256 bearer tokens signed with secret and stores
// the caller's user id on the context.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	keyFunc := func(*jwt.Token) (any, error) { return secret, nil }
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			RespondWithError(c, http.StatusUnauthorized, authProcess, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			RespondWithError(c, http.StatusUnauthorized, authProcess, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims := &Claims{}
		token, err := parser.ParseWithClaims(parts[1], claims, keyFunc)
		if err != nil || !token.Valid {
			RespondWithError(c, http.StatusUnauthorized, authProcess, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(userIDKey)
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok
}
