package middleware

import (
	types "efood-checkout/internal/common/type"
	"efood-checkout/internal/pkg/helper"
	"efood-checkout/internal/pkg/jwt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const SessionKey = "session"

// AuthMiddleware requires a bearer session token and stores the session
// under SessionKey.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		send := c.MustGet("send").(func(r *types.Response))

		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if header == "" || !found || token == "" {
			send(helper.ParseResponse(&types.Response{Code: http.StatusUnauthorized, Message: "token not found"}))
			return
		}

		session, err := jwt.ValidateToken(token)
		if err != nil {
			send(helper.ParseResponse(&types.Response{Code: http.StatusUnauthorized, Message: "invalid token", Error: err}))
			return
		}

		c.Set(SessionKey, *session)
		c.Next()
	}
}

// GetSession returns the session stored by AuthMiddleware.
func GetSession(c *gin.Context) (types.SessionWithAuth, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return types.SessionWithAuth{}, false
	}
	session, ok := v.(types.SessionWithAuth)
	return session, ok
}
