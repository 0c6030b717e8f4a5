package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/gatekeeper/internal/auth/http/dto"
	authUseCase "github.com/allisson/gatekeeper/internal/auth/usecase"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
	"github.com/allisson/gatekeeper/internal/httputil"
	customValidation "github.com/allisson/gatekeeper/internal/validation"
)

const (
	// TokenHeader carries the session token minted by signup.
	TokenHeader = "token"

	// AuthCookie carries the session token for browser clients.
	AuthCookie = "auth"
)

// AuthHandler handles the identity endpoints: signup, signin and access key issuance.
type AuthHandler struct {
	authUseCase authUseCase.AuthUseCase
	userUseCase authUseCase.UserUseCase
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler with required dependencies.
func NewAuthHandler(
	authUseCase authUseCase.AuthUseCase,
	userUseCase authUseCase.UserUseCase,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// SignupHandler registers a user with the default role and returns a session token.
// POST /signup - No authentication required.
// The token is written as the body, the "token" header and the "auth" cookie.
func (h *AuthHandler) SignupHandler(c *gin.Context) {
	var req dto.SignupRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.AbortWithError(c, apperrors.Wrap(apperrors.ErrInvalidInput, "invalid request body"))
		return
	}

	if err := req.Validate(); err != nil {
		httputil.AbortWithError(c, customValidation.WrapValidationError(err))
		return
	}

	ctx := c.Request.Context()

	user, err := h.userUseCase.Create(ctx, req.ToInput())
	if err != nil {
		httputil.AbortWithError(c, err)
		return
	}

	principal, err := h.authUseCase.Authorize(ctx, user)
	if err != nil {
		httputil.AbortWithError(c, err)
		return
	}

	h.logger.Info("user signed up",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))

	c.Header(TokenHeader, principal.Token)
	h.writeToken(c, principal.Token)
}

// SigninHandler returns the session token minted by AuthenticationMiddleware.
// POST /signin - Requires Basic or Bearer authentication.
func (h *AuthHandler) SigninHandler(c *gin.Context) {
	token, ok := GetToken(c.Request.Context())
	if !ok || token == "" {
		httputil.AbortWithError(c, apperrors.ErrUnauthorized)
		return
	}

	h.writeToken(c, token)
}

// KeyHandler issues a non-expiring access key for the authenticated user.
// POST /key - Requires Basic or Bearer authentication.
func (h *AuthHandler) KeyHandler(c *gin.Context) {
	user, ok := GetUser(c.Request.Context())
	if !ok {
		httputil.AbortWithError(c, apperrors.ErrUnauthorized)
		return
	}

	key, err := h.authUseCase.IssueKey(c.Request.Context(), user)
	if err != nil {
		httputil.AbortWithError(c, err)
		return
	}

	h.logger.Info("access key issued", slog.String("user_id", user.ID.String()))

	c.String(http.StatusOK, key)
}

func (h *AuthHandler) writeToken(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AuthCookie, token, 0, "/", "", c.Request.TLS != nil, true)
	c.String(http.StatusOK, token)
}
