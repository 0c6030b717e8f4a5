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

// errForced is raised by ForceErrorHandler to exercise the error boundary.
var errForced = apperrors.New("forced error")

// AdminHandler handles administrative endpoints. Every route is expected to
// require all four capabilities.
type AdminHandler struct {
	userUseCase authUseCase.UserUseCase
	roleUseCase authUseCase.RoleUseCase
	logger      *slog.Logger
}

// NewAdminHandler creates a new admin handler with required dependencies.
func NewAdminHandler(
	userUseCase authUseCase.UserUseCase,
	roleUseCase authUseCase.RoleUseCase,
	logger *slog.Logger,
) *AdminHandler {
	return &AdminHandler{
		userUseCase: userUseCase,
		roleUseCase: roleUseCase,
		logger:      logger,
	}
}

// ListUsersHandler lists users with pagination.
// GET /users?offset=0&limit=50
func (h *AdminHandler) ListUsersHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.AbortWithError(c, err)
		return
	}

	users, err := h.userUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapUsersToListResponse(users))
}

// CreateRoleHandler creates a role.
// POST /roles
func (h *AdminHandler) CreateRoleHandler(c *gin.Context) {
	var req dto.CreateRoleRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.AbortWithError(c, apperrors.Wrap(apperrors.ErrInvalidInput, "invalid request body"))
		return
	}

	if err := req.Validate(); err != nil {
		httputil.AbortWithError(c, customValidation.WrapValidationError(err))
		return
	}

	role, err := h.roleUseCase.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.AbortWithError(c, err)
		return
	}

	h.logger.Info("role created", slog.String("name", role.Name))

	c.JSON(http.StatusOK, dto.MapRoleToResponse(role))
}

// ForceErrorHandler always fails with an internal error.
// GET /error
func (h *AdminHandler) ForceErrorHandler(c *gin.Context) {
	httputil.AbortWithError(c, errForced)
}
