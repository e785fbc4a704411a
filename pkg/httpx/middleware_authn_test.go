package httpx_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rezosh/server-stats-website/pkg/httpx"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	userID string
	err    error
}

func (f fakeVerifier) VerifySession(token string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if token != "valid-token" {
		return "", errors.New("unknown token")
	}
	return f.userID, nil
}

func TestSessionAuthMiddleware(t *testing.T) {
	t.Parallel()

	echoUser := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(httpx.UserID(r.Context())))
	})

	t.Run("valid token injects user id", func(t *testing.T) {
		handler := httpx.SessionAuthMiddleware(fakeVerifier{userID: "12345"})(echoUser)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "12345", rec.Body.String())
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		handler := httpx.SessionAuthMiddleware(fakeVerifier{userID: "12345"})(echoUser)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		handler := httpx.SessionAuthMiddleware(fakeVerifier{userID: "12345"})(echoUser)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer forged")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("non-bearer scheme is rejected", func(t *testing.T) {
		handler := httpx.SessionAuthMiddleware(fakeVerifier{userID: "12345"})(echoUser)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
