package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	usecaseMocks "github.com/allisson/gatekeeper/internal/auth/usecase/mocks"
)

func setupAuthTestHandler(t *testing.T) (*AuthHandler, *usecaseMocks.MockAuthUseCase, *usecaseMocks.MockUserUseCase) {
	t.Helper()

	authUseCase := &usecaseMocks.MockAuthUseCase{}
	userUseCase := &usecaseMocks.MockUserUseCase{}
	handler := NewAuthHandler(authUseCase, userUseCase, discardLogger())

	return handler, authUseCase, userUseCase
}

func serve(handler gin.HandlerFunc, method, body string, prepare ...gin.HandlerFunc) *httptest.ResponseRecorder {
	router := gin.New()
	router.Use(renderErrors)
	handlers := append(prepare, handler)
	router.Handle(method, "/target", handlers...)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/target", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func withPrincipal(principal *authDomain.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), principal))
		c.Next()
	}
}

func TestAuthHandler_SignupHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, authUseCase, userUseCase := setupAuthTestHandler(t)
		user := &authDomain.User{ID: uuid.Must(uuid.NewV7()), Username: "john", Role: "user"}

		userUseCase.On("Create", mock.Anything, &authDomain.CreateUserInput{
			Username: "john",
			Password: "secret",
		}).Return(user, nil).Once()
		authUseCase.On("Authorize", mock.Anything, user, []authDomain.Capability(nil)).
			Return(&authDomain.Principal{User: user, Token: "session-token"}, nil).Once()

		w := serve(handler.SignupHandler, http.MethodPost, `{"username":"john","password":"secret"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "session-token", w.Body.String())
		assert.Equal(t, "session-token", w.Header().Get(TokenHeader))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, AuthCookie, cookies[0].Name)
		assert.Equal(t, "session-token", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)

		userUseCase.AssertExpectations(t)
		authUseCase.AssertExpectations(t)
	})

	t.Run("Error_RoleInBodyIgnored", func(t *testing.T) {
		handler, authUseCase, userUseCase := setupAuthTestHandler(t)
		user := &authDomain.User{ID: uuid.Must(uuid.NewV7()), Username: "mallory", Role: "user"}

		userUseCase.On("Create", mock.Anything, mock.MatchedBy(func(input *authDomain.CreateUserInput) bool {
			return input.Role == ""
		})).Return(user, nil).Once()
		authUseCase.On("Authorize", mock.Anything, user, mock.Anything).
			Return(&authDomain.Principal{User: user, Token: "t"}, nil).Once()

		w := serve(handler.SignupHandler, http.MethodPost,
			`{"username":"mallory","password":"secret","role":"admin"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		userUseCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		handler, _, _ := setupAuthTestHandler(t)

		w := serve(handler.SignupHandler, http.MethodPost, `not json`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_MissingPassword", func(t *testing.T) {
		handler, _, userUseCase := setupAuthTestHandler(t)

		w := serve(handler.SignupHandler, http.MethodPost, `{"username":"john"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		userUseCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_UsernameTaken", func(t *testing.T) {
		handler, _, userUseCase := setupAuthTestHandler(t)
		userUseCase.On("Create", mock.Anything, mock.Anything).
			Return(nil, authDomain.ErrUserAlreadyExists).Once()

		w := serve(handler.SignupHandler, http.MethodPost, `{"username":"john","password":"secret"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "user already exists")
	})
}

func TestAuthHandler_SigninHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, _, _ := setupAuthTestHandler(t)
		user := &authDomain.User{ID: uuid.Must(uuid.NewV7()), Username: "john"}

		w := serve(handler.SigninHandler, http.MethodPost, "",
			withPrincipal(&authDomain.Principal{User: user, Token: "reminted"}))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "reminted", w.Body.String())
		require.Len(t, w.Result().Cookies(), 1)
		assert.Equal(t, "reminted", w.Result().Cookies()[0].Value)
	})

	t.Run("Error_NoToken", func(t *testing.T) {
		handler, _, _ := setupAuthTestHandler(t)

		w := serve(handler.SigninHandler, http.MethodPost, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_KeyHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, authUseCase, _ := setupAuthTestHandler(t)
		user := &authDomain.User{ID: uuid.Must(uuid.NewV7()), Username: "robot"}
		authUseCase.On("IssueKey", mock.Anything, user).Return("access-key", nil).Once()

		w := serve(handler.KeyHandler, http.MethodPost, "",
			withPrincipal(&authDomain.Principal{User: user, Token: "session"}))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "access-key", w.Body.String())
		authUseCase.AssertExpectations(t)
	})

	t.Run("Error_NoUser", func(t *testing.T) {
		handler, _, _ := setupAuthTestHandler(t)

		w := serve(handler.KeyHandler, http.MethodPost, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
