package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testConfig = Config{Secret: "test-secret", Issuer: "test-issuer"}

func TestParseValidToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub":       "athlete-1",
		"device_id": "band-42",
		"iss":       testConfig.Issuer,
		"exp":       time.Now().Add(time.Hour).Unix(),
		"scopes":    []string{ScopeWorkoutsRead},
	})

	claims, err := Parse(token, testConfig)
	require.NoError(t, err)
	require.Equal(t, "athlete-1", claims.Subject)
	require.Equal(t, "band-42", claims.DeviceID)
	require.True(t, claims.HasScope(ScopeWorkoutsRead))
	require.False(t, claims.HasScope(ScopeWorkoutsWrite))
	require.True(t, claims.CanRead())
}

func TestParseSpaceSeparatedScopes(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub":    "athlete-1",
		"iss":    testConfig.Issuer,
		"exp":    time.Now().Add(time.Hour).Unix(),
		"scopes": "workouts:write  workouts:read",
	})

	claims, err := Parse(token, testConfig)
	require.NoError(t, err)
	require.True(t, claims.HasScope(ScopeWorkoutsWrite))
	require.True(t, claims.HasScope(ScopeWorkoutsRead))
}

func TestParseRejectsBadTokens(t *testing.T) {
	cases := map[string]string{
		"wrong issuer": signToken(t, jwt.MapClaims{"sub": "a", "iss": "other", "exp": time.Now().Add(time.Hour).Unix()}),
		"expired":      signToken(t, jwt.MapClaims{"sub": "a", "iss": testConfig.Issuer, "exp": time.Now().Add(-time.Hour).Unix()}),
		"no expiry":    signToken(t, jwt.MapClaims{"sub": "a", "iss": testConfig.Issuer}),
		"no subject":   signToken(t, jwt.MapClaims{"iss": testConfig.Issuer, "exp": time.Now().Add(time.Hour).Unix()}),
		"garbage":      "not-a-jwt",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(token, testConfig)
			require.ErrorIs(t, err, ErrInvalidToken)
		})
	}

	_, err := Parse("   ", testConfig)
	require.ErrorIs(t, err, ErrMissingToken)
}

func TestMiddleware(t *testing.T) {
	var seen *Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	handler := NewMiddleware(testConfig, PublicPaths("/healthz")).Wrap(next)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Nil(t, seen)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/workouts/summary", nil))
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodPost, "/v1/workouts/summary", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{
		"sub": "athlete-1",
		"iss": testConfig.Issuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	}))
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNoContent, rr.Code)
	require.NotNil(t, seen)
	require.Equal(t, "athlete-1", seen.Subject)
}

func TestMiddlewareToleratesPaddedBearerToken(t *testing.T) {
	var seen *Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	handler := NewMiddleware(testConfig, nil).Wrap(next)

	req := httptest.NewRequest(http.MethodGet, "/v1/workouts/recent", nil)
	req.Header.Set("Authorization", "Bearer   "+signToken(t, jwt.MapClaims{
		"sub": "athlete-2",
		"iss": testConfig.Issuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	})+" ")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNoContent, rr.Code)
	require.NotNil(t, seen)
	require.Equal(t, "athlete-2", seen.Subject)
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testConfig.Secret))
	require.NoError(t, err)
	return token
}
