package middleware

import (
	"catalog/errs"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const (
	ContextUserID = "userId"
	ContextRole   = "role"

	RoleAdmin = "admin"
)

// AuthMiddleware accepts HS256 bearer tokens signed with secret and stores
// their userId and role claims on the context.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			abort(c, errs.NewUnauthorizedError("Token required"))
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			abort(c, errs.NewUnauthorizedError("Invalid or expired token"))
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			c.Set(ContextUserID, claims["userId"])
			c.Set(ContextRole, claims["role"])
		}
		c.Next()
	}
}

// AdminMiddleware must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists || role != RoleAdmin {
			abort(c, errs.NewForbiddenError("Access denied: admin only"))
			return
		}
		c.Next()
	}
}

// abort hands err to ErrorHandler and stops the chain.
func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
