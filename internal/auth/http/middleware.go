package http

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	authUseCase "github.com/allisson/gatekeeper/internal/auth/usecase"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
	"github.com/allisson/gatekeeper/internal/httputil"
)

// Supported authorization schemes, compared case-insensitively.
const (
	schemeBasic  = "basic"
	schemeBearer = "bearer"
)

// errMalformedHeader is logged for unusable Authorization headers and never returned to callers.
var errMalformedHeader = errors.New("malformed authorization header")

// AuthenticationMiddleware authenticates the caller and authorizes the request
// against the given capabilities in a single step.
//
// Authorization header formats:
//
//	Basic <base64(username:password)>
//	Bearer <token>
//
// Every authentication failure is reported as ErrInvalidCredentials (401) with
// the same body. Once authenticated, the user's capabilities are resolved from
// the current role state (never from the token snapshot) and every capability
// in required must be granted, otherwise ErrInsufficientCapability (403).
// Passing no capability only requires a valid identity.
//
// On success the user, the resolved capabilities and a freshly minted session
// token are stored in the request context.
//
// Usage:
//
//	router.DELETE("/api/v1/:model/:id",
//	    AuthenticationMiddleware(authUseCase, logger, authDomain.DeleteCapability),
//	    handler)
func AuthenticationMiddleware(
	authUseCase authUseCase.AuthUseCase,
	logger *slog.Logger,
	required ...authDomain.Capability,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		user, err := authenticate(ctx, authUseCase, c.GetHeader("Authorization"))
		if err != nil {
			if !apperrors.Is(err, apperrors.ErrUnauthorized) && !errors.Is(err, errMalformedHeader) {
				httputil.AbortWithError(c, err)
				return
			}
			logger.Debug("authentication failed",
				slog.String("path", c.Request.URL.Path),
				slog.String("reason", err.Error()))
			httputil.AbortWithError(c, authDomain.ErrInvalidCredentials)
			return
		}

		principal, err := authUseCase.Authorize(ctx, user, required...)
		if err != nil {
			logger.Debug("authorization failed",
				slog.String("user_id", user.ID.String()),
				slog.String("role", user.Role),
				slog.Any("required", required),
				slog.String("reason", err.Error()))
			httputil.AbortWithError(c, err)
			return
		}

		c.Request = c.Request.WithContext(WithPrincipal(ctx, principal))

		logger.Debug("authorization successful",
			slog.String("user_id", user.ID.String()),
			slog.String("role", user.Role))

		c.Next()
	}
}

// authenticate dispatches on the authorization scheme.
func authenticate(
	ctx context.Context,
	authUseCase authUseCase.AuthUseCase,
	header string,
) (*authDomain.User, error) {
	fields := strings.Fields(header)
	if len(fields) != 2 {
		return nil, errMalformedHeader
	}

	scheme, payload := fields[0], fields[1]

	switch strings.ToLower(scheme) {
	case schemeBasic:
		username, password, err := decodeBasic(payload)
		if err != nil {
			return nil, err
		}
		return authUseCase.AuthenticateBasic(ctx, username, password)
	case schemeBearer:
		return authUseCase.AuthenticateBearer(ctx, payload)
	default:
		return nil, errMalformedHeader
	}
}

// decodeBasic decodes base64(username:password), splitting at the first colon
// so passwords may contain colons.
func decodeBasic(payload string) (string, string, error) {
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", "", errMalformedHeader
	}

	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok || username == "" {
		return "", "", errMalformedHeader
	}

	return username, password, nil
}
