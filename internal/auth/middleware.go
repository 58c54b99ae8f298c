package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const identityKey = "auth.identity"

// Middleware returns a gin middleware that validates the bearer token
// and stores the resolved identity in the request context.
func Middleware(cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := parseRequest(cfg, c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": err.Error(),
			})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// FromContext retrieves the identity set by Middleware.
func FromContext(c *gin.Context) (*Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*Identity)
	return identity, ok
}

// WithIdentity stores an identity on the context. Used by handler tests
// to simulate an authenticated request.
func WithIdentity(c *gin.Context, identity *Identity) {
	c.Set(identityKey, identity)
}

func parseRequest(cfg Config, r *http.Request) (*Identity, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, ErrMissingToken
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return nil, ErrInvalidToken
	}
	token := strings.TrimSpace(header[len("Bearer "):])
	return ParseToken(cfg, token)
}
