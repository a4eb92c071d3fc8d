package http

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/career-os/pkg/apperror"
	"github.com/khoahotran/career-os/pkg/auth"
)

const (
	GinContextKeySubject = "subject"
)

// AuthMiddleware requires a bearer token issued to the owner.
func AuthMiddleware(jwtSvc *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			_ = c.Error(apperror.NewUnauthorized("authorization header is required", nil))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			_ = c.Error(apperror.NewUnauthorized("invalid token format", nil))
			c.Abort()
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			_ = c.Error(apperror.NewUnauthorized("invalid or expired token", err))
			c.Abort()
			return
		}

		c.Set(GinContextKeySubject, claims.Subject)

		c.Next()
	}
}

// ErrorMiddleware renders the last error a handler attached. The mapper logs
// it once; the response carries only the sanitized message.
func ErrorMiddleware(mapper *apperror.Mapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		resp := mapper.Render(err,
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
		)
		c.JSON(apperror.ToHTTPStatus(err), gin.H{"error": resp})
	}
}
