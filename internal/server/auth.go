package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	ctxUserID   = "userID"
	ctxUserName = "userName"
)

// AuthMiddleware validates the Bearer token and places the caller's identity
// into the request context. Tokens are HS256 with the user ID in "sub" and an
// optional display name in "name".
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respondError(c, http.StatusUnauthorized, CodeAuthRequired, "authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondError(c, http.StatusUnauthorized, CodeAuthRequired, "invalid authorization header format")
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			respondError(c, http.StatusUnauthorized, CodeAuthRequired, "invalid or expired token")
			return
		}

		sub, err := claims.GetSubject()
		if err != nil || sub == "" {
			respondError(c, http.StatusUnauthorized, CodeAuthRequired, "token has no subject")
			return
		}
		userID, err := uuid.Parse(sub)
		if err != nil {
			respondError(c, http.StatusUnauthorized, CodeAuthRequired, "token subject is not a valid user id")
			return
		}

		c.Set(ctxUserID, userID)
		if name, ok := claims["name"].(string); ok {
			c.Set(ctxUserName, name)
		}

		c.Next()
	}
}

// userFrom extracts the authenticated identity set by AuthMiddleware.
func userFrom(c *gin.Context) (uuid.UUID, string) {
	id, _ := c.Get(ctxUserID)
	userID, _ := id.(uuid.UUID)
	name := c.GetString(ctxUserName)
	return userID, name
}

// SignToken mints an HS256 token for the given user. Used by tests and the
// token CLI command; production traffic carries tokens from the identity
// provider.
func SignToken(secret string, userID uuid.UUID, name string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	if name != "" {
		claims["name"] = name
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
