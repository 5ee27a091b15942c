package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"hospital-medicine-api/internal/models"
	"hospital-medicine-api/internal/service"
	"hospital-medicine-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Context keys set by the authentication middleware
const (
	SubjectKey     = "subject"
	AuthoritiesKey = "authorities"
)

const basicRealm = `Basic realm="hospital-medicine-api"`

// Authenticator checks username/password credentials
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// BearerAuth validates the JWT from the Authorization header
func BearerAuth(signer *utils.TokenSigner) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Extract token from Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.AbortWithError(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		// Check Bearer prefix
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.AbortWithError(c, http.StatusUnauthorized, "Invalid authorization format. Use: Bearer <token>")
			return
		}

		claims, err := signer.Verify(parts[1])
		if err != nil {
			utils.AbortWithError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		authenticate(c, claims.Subject, claims.Scopes())
		c.Next()
	}
}

// BasicAuth authenticates the caller with HTTP Basic credentials against
// the user store. It guards the token endpoint.
func BasicAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", basicRealm)
			utils.AbortWithError(c, http.StatusUnauthorized, "Basic credentials required")
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), username, password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				c.Header("WWW-Authenticate", basicRealm)
				utils.AbortWithError(c, http.StatusUnauthorized, "Invalid credentials")
				return
			}
			log.Ctx(c.Request.Context()).Error().Err(err).Msg("authentication failed")
			utils.AbortWithError(c, http.StatusInternalServerError, "internal server error")
			return
		}

		authenticate(c, user.Username, user.Authorities())
		c.Next()
	}
}

func authenticate(c *gin.Context, subject string, authorities []string) {
	c.Set(SubjectKey, subject)
	c.Set(AuthoritiesKey, authorities)
	c.Request = c.Request.WithContext(service.WithActor(c.Request.Context(), subject))
}
