package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orbit/internal/application/user/usecases"
	"orbit/internal/interfaces/http/handlers/testutil"
	"orbit/internal/shared/errors"
)

type mockLoginUC struct {
	result *usecases.LoginResult
	err    error
	gotCmd usecases.LoginCommand
}

func (m *mockLoginUC) Execute(_ context.Context, cmd usecases.LoginCommand) (*usecases.LoginResult, error) {
	m.gotCmd = cmd
	return m.result, m.err
}

func TestAuthHandler_Login_Success(t *testing.T) {
	result := &usecases.LoginResult{Token: "signed.jwt.token"}
	result.User.ID = 7
	result.User.Name = "Dana"
	result.User.Email = "dana@example.com"
	result.User.Role = "developer"

	mockUC := &mockLoginUC{result: result}
	handler := NewAuthHandler(mockUC)

	reqBody := LoginRequest{Email: "dana@example.com", Password: "secret123"}
	c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", reqBody)

	handler.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dana@example.com", mockUC.gotCmd.Email)
	assert.Equal(t, "secret123", mockUC.gotCmd.Password)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)

	var loginResp usecases.LoginResult
	require.NoError(t, json.Unmarshal(resp.Data, &loginResp))
	assert.Equal(t, "signed.jwt.token", loginResp.Token)
	assert.Equal(t, uint(7), loginResp.User.ID)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mockUC := &mockLoginUC{err: errors.NewUnauthorizedError("invalid credentials")}
	handler := NewAuthHandler(mockUC)

	reqBody := LoginRequest{Email: "dana@example.com", Password: "wrong"}
	c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", reqBody)

	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "unauthorized", resp.Error.Type)
}

func TestAuthHandler_Login_BindError(t *testing.T) {
	tests := []struct {
		name string
		body interface{}
	}{
		{name: "missing password", body: map[string]string{"email": "dana@example.com"}},
		{name: "malformed email", body: map[string]string{"email": "not-an-email", "password": "secret123"}},
		{name: "empty body", body: map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(&mockLoginUC{})

			c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", tt.body)

			handler.Login(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
