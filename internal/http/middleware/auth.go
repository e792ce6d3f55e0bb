package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const sessionIDKey = "session_id"

// IssueSessionToken signs the guest session JWT the web client keeps in its
// cookie and sends as a bearer token on booking/payment calls.
func IssueSessionToken(secret, sessionID string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sessionID,
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	})
	return token.SignedString([]byte(secret))
}

// Session validates the guest session bearer token on mutating routes.
func Session(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if !strings.HasPrefix(raw, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token", "request_id": GetRequestID(c)})
			return
		}
		raw = strings.TrimPrefix(raw, "Bearer ")

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session token", "request_id": GetRequestID(c)})
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if sid, ok := claims["sid"].(string); ok {
				c.Set(sessionIDKey, sid)
			}
		}
		c.Next()
	}
}

// GetSessionID extracts the validated session id when present.
func GetSessionID(c *gin.Context) string {
	if v, ok := c.Get(sessionIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
