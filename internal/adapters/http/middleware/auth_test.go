package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotes-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotes-service/internal/platform/config"
)

const testSigningKey = "0123456789abcdef0123456789abcdef"

func jwtConfig() *config.AuthConfig {
	return &config.AuthConfig{
		Mode:       config.AuthModeJWT,
		SigningKey: testSigningKey,
		Issuer:     "quotes-auth",
		Audience:   "quotes-mobile",
	}
}

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)

	return token
}

func validClaims(subject string) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    "quotes-auth",
		Audience:  jwt.ClaimStrings{"quotes-mobile"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
}

// authRouter serves an open route and a route behind RequireAuth, both
// echoing the caller's subject.
func authRouter(cfg *config.AuthConfig) *gin.Engine {
	echo := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"subject": UserID(c)})
	}

	router := gin.New()
	api := router.Group("/api/v1", Authenticate(cfg))
	api.POST("/open", echo)
	api.POST("/private", RequireAuth(), echo)

	return router
}

func serve(router *gin.Engine, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return resp.Error.Code
}

func TestAuthenticate_HeaderMode(t *testing.T) {
	router := authRouter(&config.AuthConfig{Mode: config.AuthModeHeader, SubjectHeader: "X-User-ID"})

	t.Run("open route without identity", func(t *testing.T) {
		w := serve(router, "/api/v1/open", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"subject":""}`, w.Body.String())
	})

	t.Run("private route without identity", func(t *testing.T) {
		w := serve(router, "/api/v1/private", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeUnauthenticated, errorCode(t, w))
	})

	t.Run("blank identity is anonymous", func(t *testing.T) {
		w := serve(router, "/api/v1/private", map[string]string{"X-User-ID": "   "})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("private route with identity", func(t *testing.T) {
		w := serve(router, "/api/v1/private", map[string]string{"X-User-ID": "u1"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"subject":"u1"}`, w.Body.String())
	})

	t.Run("bearer token ignored", func(t *testing.T) {
		w := serve(router, "/api/v1/private", map[string]string{"Authorization": "Bearer whatever"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthenticate_DefaultsToHeaderMode(t *testing.T) {
	router := authRouter(nil)

	w := serve(router, "/api/v1/private", map[string]string{"X-User-ID": "u2"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"subject":"u2"}`, w.Body.String())
}

func TestAuthenticate_JWTMode(t *testing.T) {
	router := authRouter(jwtConfig())
	key := []byte(testSigningKey)

	expired := validClaims("u1")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	wrongAudience := validClaims("u1")
	wrongAudience.Audience = jwt.ClaimStrings{"someone-else"}

	wrongIssuer := validClaims("u1")
	wrongIssuer.Issuer = "evil"

	noExpiry := validClaims("u1")
	noExpiry.ExpiresAt = nil

	tests := []struct {
		name        string
		path        string
		auth        string
		wantStatus  int
		wantSubject string
	}{
		{"valid token on private route", "/api/v1/private", "Bearer " + signToken(t, jwt.SigningMethodHS256, key, validClaims("u1")), http.StatusOK, "u1"},
		{"valid token on open route", "/api/v1/open", "Bearer " + signToken(t, jwt.SigningMethodHS256, key, validClaims("u2")), http.StatusOK, "u2"},
		{"no token on open route", "/api/v1/open", "", http.StatusOK, ""},
		{"no token on private route", "/api/v1/private", "", http.StatusUnauthorized, ""},
		{"invalid token on open route", "/api/v1/open", "Bearer not-a-jwt", http.StatusUnauthorized, ""},
		{"not a bearer scheme", "/api/v1/open", "Basic dTE6cGFzcw==", http.StatusUnauthorized, ""},
		{"wrong key", "/api/v1/private", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("another-key-another-key-another!!"), validClaims("u1")), http.StatusUnauthorized, ""},
		{"wrong algorithm", "/api/v1/private", "Bearer " + signToken(t, jwt.SigningMethodHS512, key, validClaims("u1")), http.StatusUnauthorized, ""},
		{"expired", "/api/v1/private", "Bearer " + signToken(t, jwt.SigningMethodHS256, key, expired), http.StatusUnauthorized, ""},
		{"missing expiry", "/api/v1/private", "Bearer " + signToken(t, jwt.SigningMethodHS256, key, noExpiry), http.StatusUnauthorized, ""},
		{"wrong audience", "/api/v1/private", "Bearer " + signToken(t, jwt.SigningMethodHS256, key, wrongAudience), http.StatusUnauthorized, ""},
		{"wrong issuer", "/api/v1/private", "Bearer " + signToken(t, jwt.SigningMethodHS256, key, wrongIssuer), http.StatusUnauthorized, ""},
		{"missing subject", "/api/v1/private", "Bearer " + signToken(t, jwt.SigningMethodHS256, key, validClaims("")), http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.auth != "" {
				headers["Authorization"] = tt.auth
			}

			w := serve(router, tt.path, headers)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"subject":"`+tt.wantSubject+`"}`, w.Body.String())
			} else {
				assert.Equal(t, dto.ErrorCodeUnauthenticated, errorCode(t, w))
			}
		})
	}
}

func TestAuthenticate_JWTModeIgnoresSubjectHeader(t *testing.T) {
	router := authRouter(jwtConfig())

	w := serve(router, "/api/v1/private", map[string]string{"X-User-ID": "u1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetClaims(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetClaims(c))
	assert.Empty(t, UserID(c))

	c.Set(ContextKeyClaims, "not claims")
	assert.Nil(t, GetClaims(c))

	c.Set(ContextKeyClaims, &Claims{Subject: "u1", Method: config.AuthModeHeader})
	assert.Equal(t, "u1", UserID(c))
}
