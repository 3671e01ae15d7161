package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func sign(t *testing.T, key []byte, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "admin@x.com",
		"exp":   exp.Unix(),
	})
	s, err := token.SignedString(key)
	require.NoError(t, err)
	return s
}

func serve(t *testing.T, header string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	var seen string
	h := AdminAuthMiddleware(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = AdminEmail(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/spots", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w, seen
}

func TestAdminAuthMiddleware_ValidToken(t *testing.T) {
	w, email := serve(t, "Bearer "+sign(t, secret, time.Now().Add(time.Hour)))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "admin@x.com", email)
}

func TestAdminAuthMiddleware_Rejects(t *testing.T) {
	cases := map[string]string{
		"missing":    "",
		"not bearer": "Basic abc",
		"wrong key":  "Bearer " + sign(t, []byte("other"), time.Now().Add(time.Hour)),
		"expired":    "Bearer " + sign(t, secret, time.Now().Add(-time.Hour)),
		"garbage":    "Bearer not.a.jwt",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			w, _ := serve(t, header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
		})
	}
}
