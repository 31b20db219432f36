package middleware

import (
	"context"
	"net/http"
	"strings"

	"Lee_Channel/internal/model"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserKey  = "user"
	ContextTokenKey = "session_token"
)

// TokenResolver is the one way a request becomes a trusted user.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (*model.User, error)
}

// AuthMiddleware rejects the request before any handler runs unless the
// bearer token resolves to a live session. Handlers read the user from the
// context; they never build one from request input.
func AuthMiddleware(auth TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid authorization format"})
			c.Abort()
			return
		}

		tokenStr := parts[1]
		user, err := auth.Resolve(c.Request.Context(), tokenStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid or expired session"})
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextTokenKey, tokenStr)
		c.Next()
	}
}

func UserFromCtx(c *gin.Context) *model.User {
	if v, ok := c.Get(ContextUserKey); ok {
		if u, ok2 := v.(*model.User); ok2 {
			return u
		}
	}
	return nil
}

func TokenFromCtx(c *gin.Context) string {
	if v, ok := c.Get(ContextTokenKey); ok {
		if t, ok2 := v.(string); ok2 {
			return t
		}
	}
	return ""
}
