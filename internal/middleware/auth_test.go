package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"delivery-service/pkg/config"
	"delivery-service/pkg/jwtutil"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest(t *testing.T, jwt *jwtutil.JWTUtil, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	require.NoError(t, Auth(jwt)(next)(c))
	return rec, c
}

func TestAuth_ValidToken(t *testing.T) {
	jwt := jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "test-key"})
	token, err := jwt.GenerateToken("a@b.com", 7)
	require.NoError(t, err)

	rec, c := testRequest(t, jwt, "JWT "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(7), c.Get("user_id"))
	assert.Equal(t, "a@b.com", c.Get("email"))
}

func TestAuth_Rejections(t *testing.T) {
	jwt := jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "test-key"})
	token, err := jwt.GenerateToken("a@b.com", 7)
	require.NoError(t, err)

	otherKey := jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "another-key"})
	foreign, err := otherKey.GenerateToken("a@b.com", 7)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Bearer " + token},
		{"no token", "JWT"},
		{"garbage token", "JWT not-a-token"},
		{"wrong signing key", "JWT " + foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := testRequest(t, jwt, tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
