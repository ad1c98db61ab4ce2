package middleware

import (
	"net/http"
	"strings"

	"reviewhub/internal/http-api/permissions"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

const callerKey = "caller"

// AuthMiddleware is a Gin middleware for JWT authentication of API requests.
// It checks for the presence and validity of a bearer token in the
// Authorization header and stores the resulting caller in the context.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		// Extract token (format: "Bearer <token>")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		role, _ := permissions.ParseRole(claims.Role)
		c.Set(callerKey, permissions.Caller{
			Authenticated: true,
			UserID:        claims.UserID,
			Role:          role,
			IsSuperuser:   claims.IsSuperuser,
		})

		c.Next()
	}
}

// CallerFromContext returns the authenticated caller, or the zero
// (unauthenticated) caller on public routes.
func CallerFromContext(c *gin.Context) permissions.Caller {
	if v, exists := c.Get(callerKey); exists {
		if caller, ok := v.(permissions.Caller); ok {
			return caller
		}
	}
	return permissions.Caller{}
}

// RequireElevated gates catalog mutations on the decision table.
func RequireElevated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !permissions.CanModify(CallerFromContext(c), permissions.KindCatalog, "") {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}
