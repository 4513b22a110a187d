package middleware

import (
	"bitwise74/auth-api/pkg/security"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRefreshGuard only lets requests through that carry a valid refresh token
// in the Authorization header. The user ID and the raw token are stored as
// userID and refreshToken for the handler.
func NewRefreshGuard(s *security.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetString("requestID")

		tokenStr, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message":   "accessDenied",
				"requestID": requestID,
			})
			return
		}

		claims, err := s.VerifyRefresh(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message":   "accessDenied",
				"requestID": requestID,
			})

			zap.L().Debug("Rejected refresh token", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("refreshToken", tokenStr)
		c.Next()
	}
}

func bearerToken(h string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(h), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}
