package http

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	"github.com/allisson/gatekeeper/internal/auth/http/dto"
	usecaseMocks "github.com/allisson/gatekeeper/internal/auth/usecase/mocks"
)

func setupAdminTestHandler(t *testing.T) (*AdminHandler, *usecaseMocks.MockUserUseCase, *usecaseMocks.MockRoleUseCase) {
	t.Helper()

	userUseCase := &usecaseMocks.MockUserUseCase{}
	roleUseCase := &usecaseMocks.MockRoleUseCase{}
	handler := NewAdminHandler(userUseCase, roleUseCase, discardLogger())

	return handler, userUseCase, roleUseCase
}

func TestAdminHandler_ListUsersHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, userUseCase, _ := setupAdminTestHandler(t)
		users := []*authDomain.User{
			{ID: uuid.Must(uuid.NewV7()), Username: "alice", Password: "hash", Role: "admin"},
			{ID: uuid.Must(uuid.NewV7()), Username: "bob", Password: "hash", Role: "user"},
		}
		userUseCase.On("List", mock.Anything, 0, 50).Return(users, nil).Once()

		w := serve(handler.ListUsersHandler, http.MethodGet, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "hash")

		var response dto.ListUsersResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Data, 2)
		assert.Equal(t, "alice", response.Data[0].Username)
		userUseCase.AssertExpectations(t)
	})

	t.Run("Error_UseCase", func(t *testing.T) {
		handler, userUseCase, _ := setupAdminTestHandler(t)
		userUseCase.On("List", mock.Anything, 0, 50).Return(nil, assert.AnError).Once()

		w := serve(handler.ListUsersHandler, http.MethodGet, "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestAdminHandler_CreateRoleHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, _, roleUseCase := setupAdminTestHandler(t)
		role := &authDomain.Role{
			ID:           uuid.Must(uuid.NewV7()),
			Name:         "auditor",
			Capabilities: []authDomain.Capability{authDomain.ReadCapability},
			CreatedAt:    time.Now().UTC(),
		}
		roleUseCase.On("Create", mock.Anything, &authDomain.CreateRoleInput{
			Name:         "auditor",
			Capabilities: []string{"read"},
		}).Return(role, nil).Once()

		w := serve(handler.CreateRoleHandler, http.MethodPost, `{"name":"auditor","capabilities":["read"]}`)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.RoleResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "auditor", response.Name)
		assert.Equal(t, []authDomain.Capability{authDomain.ReadCapability}, response.Capabilities)
		roleUseCase.AssertExpectations(t)
	})

	t.Run("Error_UnknownCapability", func(t *testing.T) {
		handler, _, roleUseCase := setupAdminTestHandler(t)

		w := serve(handler.CreateRoleHandler, http.MethodPost, `{"name":"root","capabilities":["sudo"]}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		roleUseCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_Duplicate", func(t *testing.T) {
		handler, _, roleUseCase := setupAdminTestHandler(t)
		roleUseCase.On("Create", mock.Anything, mock.Anything).
			Return(nil, authDomain.ErrRoleAlreadyExists).Once()

		w := serve(handler.CreateRoleHandler, http.MethodPost, `{"name":"admin","capabilities":[]}`)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestAdminHandler_ForceErrorHandler(t *testing.T) {
	handler, _, _ := setupAdminTestHandler(t)

	w := serve(handler.ForceErrorHandler, http.MethodGet, "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())
}
