package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/cricbytes/cricbytes/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, url string, body map[string]string) *http.Response {
	t.Helper()

	payload, _ := json.Marshal(body)
	resp, err := http.Post(url, "application/json", bytes.NewBuffer(payload))
	require.NoError(t, err)
	return resp
}

func TestAuthHandler_Signup(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		request        map[string]string
		setup          func()
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "successful signup",
			request: map[string]string{
				"email":    "a@x.com",
				"password": "pw123456",
				"name":     "A",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result testutil.AuthResponse
				testutil.AssertJSONResponse(t, resp, &result)
				assert.Equal(t, "a@x.com", result.User.Email)
				assert.Equal(t, "A", result.User.Name)
				assert.NotEmpty(t, result.Token)
			},
		},
		{
			name: "missing email",
			request: map[string]string{
				"password": "pw123456",
				"name":     "A",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing password",
			request: map[string]string{
				"email": "a@x.com",
				"name":  "A",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing name",
			request: map[string]string{
				"email":    "a@x.com",
				"password": "pw123456",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			request: map[string]string{
				"email":    "existing@x.com",
				"password": "pw123456",
				"name":     "B",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("existing@x.com").
					Build(t, ts.DB.DB)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.DB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			resp := postJSON(t, ts.APIURL("/auth/signup"), tt.request)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, rawPassword := testutil.NewUserBuilder().
		WithEmail("login@x.com").
		WithPassword("correctpassword").
		Build(t, ts.DB.DB)

	t.Run("successful login", func(t *testing.T) {
		resp := postJSON(t, ts.APIURL("/auth/login"), map[string]string{
			"email":    user.Email,
			"password": rawPassword,
		})
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result testutil.AuthResponse
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, user.Email, result.User.Email)
		assert.NotEmpty(t, result.Token)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		wrongPw := postJSON(t, ts.APIURL("/auth/login"), map[string]string{
			"email":    user.Email,
			"password": "wrongpassword",
		})
		defer wrongPw.Body.Close()

		unknown := postJSON(t, ts.APIURL("/auth/login"), map[string]string{
			"email":    "nobody@x.com",
			"password": "anypassword",
		})
		defer unknown.Body.Close()

		testutil.AssertErrorResponse(t, wrongPw, http.StatusUnauthorized, "Invalid credentials")
		testutil.AssertErrorResponse(t, unknown, http.StatusUnauthorized, "Invalid credentials")
	})
}

func TestAuthHandler_PasswordResetFlow(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, _ := testutil.NewUserBuilder().
		WithEmail("reset@x.com").
		WithPassword("oldpassword").
		Build(t, ts.DB.DB)

	t.Run("forgot-password answers generically for unknown email", func(t *testing.T) {
		resp := postJSON(t, ts.APIURL("/auth/forgot-password"), map[string]string{
			"email": "nobody@x.com",
		})
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result map[string]string
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, "If email exists, reset link sent", result["message"])
	})

	t.Run("full reset flow", func(t *testing.T) {
		resp := postJSON(t, ts.APIURL("/auth/forgot-password"), map[string]string{
			"email": user.Email,
		})
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		// Pull the recorded token off the user row, as the reset email would
		stored, err := ts.Repos.User.GetByID(t.Context(), user.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.ResetToken)

		resetResp := postJSON(t, ts.APIURL("/auth/reset-password"), map[string]string{
			"token":       *stored.ResetToken,
			"newPassword": "newpassword123",
		})
		defer resetResp.Body.Close()
		require.Equal(t, http.StatusOK, resetResp.StatusCode)

		loginResp := postJSON(t, ts.APIURL("/auth/login"), map[string]string{
			"email":    user.Email,
			"password": "newpassword123",
		})
		defer loginResp.Body.Close()
		assert.Equal(t, http.StatusOK, loginResp.StatusCode)
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		resp := postJSON(t, ts.APIURL("/auth/reset-password"), map[string]string{
			"token":       "garbage",
			"newPassword": "whatever123",
		})
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Invalid or expired token")
	})
}
