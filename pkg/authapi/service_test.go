package authapi_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowneywebster/joyful-cargoparcels/internal/testutil/mockhttp"
	"github.com/rowneywebster/joyful-cargoparcels/pkg/authapi"
)

func TestLogin_Success(t *testing.T) {
	b := mockhttp.New()
	capture := b.Capture()
	server := b.
		Envelope("/auth/login", map[string]any{
			"user": map[string]any{
				"id": 1, "name": "Jane Wanjiru", "email": "jane@example.com", "role": "admin",
			},
			"access_token":  "access-1",
			"refresh_token": "refresh-1",
			"expires_in":    900,
		}).
		Build()
	defer server.Close()

	svc := authapi.NewService(server.URL)
	result, err := svc.Login(context.Background(), "jane@example.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, "access-1", result.AccessToken)
	assert.Equal(t, "refresh-1", result.RefreshToken)
	assert.EqualValues(t, 900, result.ExpiresIn)
	assert.Equal(t, authapi.RoleAdmin, result.User.Role)

	req := capture.Last()
	require.NotNil(t, req)
	assert.Equal(t, http.MethodPost, req.Method)
	var body map[string]string
	require.NoError(t, req.BodyJSON(&body))
	assert.Equal(t, "jane@example.com", body["email"])
	assert.Equal(t, "secret", body["password"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	server := mockhttp.New().
		EnvelopeError("/auth/login", http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials").
		Build()
	defer server.Close()

	svc := authapi.NewService(server.URL)
	_, err := svc.Login(context.Background(), "jane@example.com", "wrong")
	require.Error(t, err)

	assert.ErrorIs(t, err, authapi.ErrInvalidCredentials)
	var ae *authapi.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "Invalid credentials", ae.Message)
	assert.Equal(t, "INVALID_CREDENTIALS", ae.Code)
}

func TestLogin_UnstructuredErrorGetsGenericMessage(t *testing.T) {
	server := mockhttp.New().
		Route("POST", "/auth/login", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("<html>nope</html>"))
		}).
		Build()
	defer server.Close()

	svc := authapi.NewService(server.URL)
	_, err := svc.Login(context.Background(), "jane@example.com", "wrong")
	require.Error(t, err)

	var ae *authapi.Error
	require.ErrorAs(t, err, &ae)
	assert.NotContains(t, ae.Message, "html", "raw payloads must not leak into messages")
	assert.NotEmpty(t, ae.Message)
}

func TestLogin_ServerErrorIsUnavailable(t *testing.T) {
	server := mockhttp.New().
		Status("/auth/login", http.StatusInternalServerError).
		Build()
	defer server.Close()

	svc := authapi.NewService(server.URL)
	_, err := svc.Login(context.Background(), "jane@example.com", "secret")
	assert.ErrorIs(t, err, authapi.ErrUnavailable)
	assert.NotErrorIs(t, err, authapi.ErrInvalidCredentials)
}

func TestLogin_NetworkErrorIsUnavailable(t *testing.T) {
	svc := authapi.NewService("http://127.0.0.1:1")
	_, err := svc.Login(context.Background(), "jane@example.com", "secret")
	assert.ErrorIs(t, err, authapi.ErrUnavailable)
}

func TestRefresh_Success(t *testing.T) {
	b := mockhttp.New()
	capture := b.Capture()
	server := b.
		Envelope("/auth/refresh", map[string]any{
			"access_token":  "access-2",
			"refresh_token": "refresh-2",
			"expires_in":    900,
		}).
		Build()
	defer server.Close()

	svc := authapi.NewService(server.URL)
	pair, err := svc.Refresh(context.Background(), "refresh-1")
	require.NoError(t, err)

	assert.Equal(t, "access-2", pair.AccessToken)
	assert.Equal(t, "refresh-2", pair.RefreshToken)

	var body map[string]string
	require.NoError(t, capture.Last().BodyJSON(&body))
	assert.Equal(t, "refresh-1", body["refresh_token"])
}

func TestRefresh_Rejected(t *testing.T) {
	server := mockhttp.New().
		EnvelopeError("/auth/refresh", http.StatusUnauthorized, "TOKEN_EXPIRED", "Refresh token expired").
		Build()
	defer server.Close()

	svc := authapi.NewService(server.URL)
	_, err := svc.Refresh(context.Background(), "stale")
	assert.ErrorIs(t, err, authapi.ErrInvalidRefreshToken)
}

func TestLogout_SendsBearer(t *testing.T) {
	b := mockhttp.New()
	capture := b.Capture()
	server := b.
		Envelope("/auth/logout", map[string]string{"message": "ok"}).
		Build()
	defer server.Close()

	svc := authapi.NewService(server.URL)
	require.NoError(t, svc.Logout(context.Background(), "access-1"))

	assert.Equal(t, "Bearer access-1", capture.Last().Headers.Get("Authorization"))
}

func TestCurrentUser(t *testing.T) {
	b := mockhttp.New()
	capture := b.Capture()
	server := b.
		Envelope("/auth/me", map[string]any{
			"id": 7, "name": "Amos Otieno", "email": "amos@example.com", "role": "user",
		}).
		Build()
	defer server.Close()

	svc := authapi.NewService(server.URL)
	user, err := svc.CurrentUser(context.Background(), "access-1")
	require.NoError(t, err)

	assert.EqualValues(t, 7, user.ID)
	assert.Equal(t, authapi.RoleUser, user.Role)
	assert.Equal(t, "Bearer access-1", capture.Last().Headers.Get("Authorization"))
}

func TestCurrentUser_Unauthenticated(t *testing.T) {
	server := mockhttp.New().
		EnvelopeError("/auth/me", http.StatusUnauthorized, "UNAUTHORIZED", "invalid token").
		Build()
	defer server.Close()

	svc := authapi.NewService(server.URL)
	_, err := svc.CurrentUser(context.Background(), "bad")
	assert.ErrorIs(t, err, authapi.ErrUnauthenticated)
}

func TestRoleValid(t *testing.T) {
	assert.True(t, authapi.RoleAdmin.Valid())
	assert.True(t, authapi.RoleUser.Valid())
	assert.False(t, authapi.Role("superuser").Valid())
	assert.False(t, authapi.Role("").Valid())
}
