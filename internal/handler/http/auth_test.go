package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexsky74/Anamneon/internal/service"
	"github.com/alexsky74/Anamneon/internal/store"
	"github.com/alexsky74/Anamneon/models"
)

func TestHandler_Register(t *testing.T) {
	auth := defaultAuthMock()
	auth.register = func(_ context.Context, req models.RegisterRequest) (models.Account, models.Token, error) {
		switch req.Email {
		case "taken@example.com":
			return models.Account{}, models.Token{}, store.ErrEmailAlreadyExists
		case "":
			return models.Account{}, models.Token{}, service.ErrInvalidDataProvided
		}
		return models.Account{ID: testUserID, Email: req.Email}, models.Token{SignedString: sessionToken}, nil
	}

	srv := newTestServer(&service.Services{AuthService: auth}, nil)
	defer srv.Close()

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "success", body: `{"email":"ada@example.com","password":"secret"}`, wantStatus: http.StatusOK},
		{name: "duplicate email", body: `{"email":"taken@example.com","password":"secret"}`, wantStatus: http.StatusConflict},
		{name: "missing fields", body: `{"password":"secret"}`, wantStatus: http.StatusBadRequest},
		{name: "broken json", body: `{"email":`, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/user/register", "application/json", bytes.NewBufferString(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "Bearer "+sessionToken, resp.Header.Get("Authorization"))

				var body models.AuthResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, sessionToken, body.Token)
				assert.Equal(t, "ada@example.com", body.User.Email)
			}
		})
	}
}

func TestHandler_Login(t *testing.T) {
	auth := defaultAuthMock()
	auth.login = func(_ context.Context, req models.LoginRequest) (models.Account, models.Token, error) {
		if req.Email != "ada@example.com" || req.Password != "secret" {
			return models.Account{}, models.Token{}, service.ErrInvalidCredentials
		}
		return models.Account{ID: testUserID, Email: req.Email}, models.Token{SignedString: sessionToken}, nil
	}

	srv := newTestServer(&service.Services{AuthService: auth}, nil)
	defer srv.Close()

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "success", body: `{"email":"ada@example.com","password":"secret"}`, wantStatus: http.StatusOK},
		{name: "wrong password", body: `{"email":"ada@example.com","password":"guess"}`, wantStatus: http.StatusUnauthorized},
		{name: "unknown email", body: `{"email":"nobody@example.com","password":"secret"}`, wantStatus: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/user/login", "application/json", bytes.NewBufferString(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus == http.StatusUnauthorized {
				var body models.ErrorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, service.ErrInvalidCredentials.Error(), body.Error,
					"the message must not reveal which credential mismatched")
			}
		})
	}
}

func TestHandler_Logout(t *testing.T) {
	var loggedOut int64
	auth := defaultAuthMock()
	auth.logout = func(_ context.Context, userID int64) {
		loggedOut = userID
	}

	srv := newTestServer(&service.Services{AuthService: auth}, nil)
	defer srv.Close()

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/user/logout", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(authorized(req))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, testUserID, loggedOut)
}

func TestHandler_AuthMiddleware(t *testing.T) {
	srv := newTestServer(&service.Services{AuthService: defaultAuthMock()}, nil)
	defer srv.Close()

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "not a bearer", header: "Basic dXNlcjpwYXNz"},
		{name: "empty token", header: "Bearer "},
		{name: "rejected token", header: "Bearer forged"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/diary/entries", nil)
			require.NoError(t, err)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, doErr := http.DefaultClient.Do(req)
			require.NoError(t, doErr)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestHandler_TraceIDHeader(t *testing.T) {
	auth := defaultAuthMock()
	auth.login = func(_ context.Context, _ models.LoginRequest) (models.Account, models.Token, error) {
		return models.Account{}, models.Token{}, service.ErrInvalidCredentials
	}
	srv := newTestServer(&service.Services{AuthService: auth}, nil)
	defer srv.Close()

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/user/login", bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	req.Header.Set("X-Trace-ID", "trace-42")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "trace-42", resp.Header.Get("X-Trace-ID"), "incoming trace id is echoed back")
}
