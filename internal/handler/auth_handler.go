package handler

import (
	"net/http"

	"hospital-medicine-api/internal/middleware"
	"hospital-medicine-api/internal/service"
	"hospital-medicine-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Token issues a bearer token for the caller authenticated by BasicAuth.
// The response body is the bare token.
func (h *AuthHandler) Token(c *gin.Context) {
	subject := c.GetString(middleware.SubjectKey)
	if subject == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	authorities := c.GetStringSlice(middleware.AuthoritiesKey)

	token, err := h.authService.IssueToken(c.Request.Context(), subject, authorities)
	if err != nil {
		log.Ctx(c.Request.Context()).Error().Err(err).Str("subject", subject).Msg("token issuance failed")
		utils.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.String(http.StatusOK, token)
}
