package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"familyagenda/internal/domain"
)

func TestAuthController_SignUp(t *testing.T) {
	validBody := `{"email":"mom@example.com","password":"supersecret","name":"Ana","last_name":"Perez","role":"parent"}`

	t.Run("created", func(t *testing.T) {
		svc := &fakeAuthService{
			token: "token-abc",
			user:  &domain.User{ID: "user-1", Email: "mom@example.com", Name: "Ana"},
		}
		ctrl := NewAuthController(testLogger, svc)

		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(validBody))
		rec := httptest.NewRecorder()
		ctrl.SignUp(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		resp := decodeEnvelope(t, rec)
		require.Nil(t, resp.Error)
		data := resp.Data.(map[string]any)
		assert.Equal(t, "token-abc", data["token"])
		assert.Equal(t, "Bearer", data["token_type"])
		user := data["user"].(map[string]any)
		assert.Equal(t, "mom@example.com", user["email"])
		assert.NotContains(t, rec.Body.String(), "password")
		assert.Equal(t, "parent", svc.lastSignUp.Role)
	})

	t.Run("invalid email", func(t *testing.T) {
		svc := &fakeAuthService{}
		ctrl := NewAuthController(testLogger, svc)

		body := `{"email":"not-an-email","password":"supersecret","name":"Ana","last_name":"Perez"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
		rec := httptest.NewRecorder()
		ctrl.SignUp(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeEnvelope(t, rec)
		require.NotNil(t, resp.Error)
		assert.Contains(t, resp.Error.Message, "invalid email format")
		assert.Empty(t, svc.lastSignUp.Email)
	})

	t.Run("short password", func(t *testing.T) {
		ctrl := NewAuthController(testLogger, &fakeAuthService{})

		body := `{"email":"mom@example.com","password":"short","name":"Ana","last_name":"Perez"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
		rec := httptest.NewRecorder()
		ctrl.SignUp(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeEnvelope(t, rec)
		require.NotNil(t, resp.Error)
		assert.Contains(t, resp.Error.Message, "at least 8 characters")
	})

	t.Run("unknown role", func(t *testing.T) {
		ctrl := NewAuthController(testLogger, &fakeAuthService{})

		body := `{"email":"mom@example.com","password":"supersecret","role":"admin"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
		rec := httptest.NewRecorder()
		ctrl.SignUp(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		ctrl := NewAuthController(testLogger, &fakeAuthService{signUpErr: domain.ErrDuplicateEmail})

		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(validBody))
		rec := httptest.NewRecorder()
		ctrl.SignUp(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("service validation error", func(t *testing.T) {
		ctrl := NewAuthController(testLogger, &fakeAuthService{
			signUpErr: domain.NewValidationError("invalid email format"),
		})

		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(validBody))
		rec := httptest.NewRecorder()
		ctrl.SignUp(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestAuthController_Login(t *testing.T) {
	validBody := `{"email":"mom@example.com","password":"supersecret"}`

	t.Run("ok", func(t *testing.T) {
		svc := &fakeAuthService{
			token: "token-abc",
			user:  &domain.User{ID: "user-1", Email: "mom@example.com"},
		}
		ctrl := NewAuthController(testLogger, svc)

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(validBody))
		rec := httptest.NewRecorder()
		ctrl.Login(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeEnvelope(t, rec)
		require.Nil(t, resp.Error)
		data := resp.Data.(map[string]any)
		assert.Equal(t, "token-abc", data["token"])
		assert.Equal(t, "mom@example.com", svc.lastEmail)
	})

	t.Run("bad credentials map to 401", func(t *testing.T) {
		ctrl := NewAuthController(testLogger, &fakeAuthService{loginErr: domain.ErrInvalidInput})

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(validBody))
		rec := httptest.NewRecorder()
		ctrl.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		resp := decodeEnvelope(t, rec)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "invalid credentials", resp.Error.Message)
	})

	t.Run("missing fields", func(t *testing.T) {
		ctrl := NewAuthController(testLogger, &fakeAuthService{})

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"mom@example.com"}`))
		rec := httptest.NewRecorder()
		ctrl.Login(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unexpected error is masked", func(t *testing.T) {
		ctrl := NewAuthController(testLogger, &fakeAuthService{loginErr: assert.AnError})

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(validBody))
		rec := httptest.NewRecorder()
		ctrl.Login(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		resp := decodeEnvelope(t, rec)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "internal error", resp.Error.Message)
	})
}
