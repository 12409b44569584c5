package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/fashion-studio/pkg/helpers"
	"github.com/oksasatya/fashion-studio/pkg/response"
)

const (
	CtxUserIDKey      = "userID"
	accessTokenCookie = "access_token"
)

// bearerToken prefers the Authorization header and falls back to the
// access_token cookie.
func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		scheme, token, found := strings.Cut(h, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	token, _ := c.Cookie(accessTokenCookie)
	return token
}

// Auth validates the access token and sets userID in the Gin context.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil || claims.UserID == "" {
			response.Abort(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}
