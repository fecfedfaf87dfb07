package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/autoservice/garage-api/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomClaims_HasScope(t *testing.T) {
	tests := []struct {
		name          string
		scope         string
		expectedScope string
		want          bool
	}{
		{name: "has exact scope", scope: "write:orders", expectedScope: "write:orders", want: true},
		{name: "has scope among several", scope: "read:orders  write:orders read:catalog", expectedScope: "write:orders", want: true},
		{name: "does not have scope", scope: "read:orders", expectedScope: "write:orders", want: false},
		{name: "empty scope", scope: "", expectedScope: "write:orders", want: false},
		{name: "partial match does not count", scope: "write:orders", expectedScope: "write", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := CustomClaims{Scope: tt.scope}
			assert.Equal(t, tt.want, claims.HasScope(tt.expectedScope))
		})
	}
}

func TestGetSubject(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		setup   func(*gin.Context)
		want    string
		wantErr bool
	}{
		{name: "subject present", setup: func(c *gin.Context) { c.Set(subjectKey, "auth0|mechanic-7") }, want: "auth0|mechanic-7"},
		{name: "subject missing", setup: func(c *gin.Context) {}, wantErr: true},
		{name: "subject of wrong type", setup: func(c *gin.Context) { c.Set(subjectKey, 7) }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			tt.setup(c)

			got, err := GetSubject(c)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, err := GetClaims(c)
	assert.Error(t, err)

	c.Set(claimsKey, "not claims")
	_, err = GetClaims(c)
	assert.Error(t, err)

	want := &validator.ValidatedClaims{CustomClaims: &CustomClaims{Scope: ScopeWriteOrders}}
	c.Set(claimsKey, want)
	got, err := GetClaims(c)
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestRequireScope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		claims         interface{}
		wantStatusCode int
		wantAborted    bool
	}{
		{
			name:        "has write scope",
			claims:      &validator.ValidatedClaims{CustomClaims: &CustomClaims{Scope: "read:orders write:orders"}},
			wantAborted: false,
		},
		{
			name:           "read only token",
			claims:         &validator.ValidatedClaims{CustomClaims: &CustomClaims{Scope: "read:orders"}},
			wantStatusCode: http.StatusForbidden,
			wantAborted:    true,
		},
		{
			name:           "claims without custom part",
			claims:         &validator.ValidatedClaims{},
			wantStatusCode: http.StatusForbidden,
			wantAborted:    true,
		},
		{
			name:           "no claims",
			wantStatusCode: http.StatusUnauthorized,
			wantAborted:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/api/order", nil)
			if tt.claims != nil {
				c.Set(claimsKey, tt.claims)
			}

			RequireScope(ScopeWriteOrders)(c)

			assert.Equal(t, tt.wantAborted, c.IsAborted())
			if tt.wantAborted {
				assert.Equal(t, tt.wantStatusCode, w.Code)
			}
		})
	}
}

func TestEnsureValidToken_RejectsMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler, err := EnsureValidToken(&config.Config{Auth0Domain: "garage.example.auth0.com", Auth0Audience: "https://garage-api"})
	require.NoError(t, err)

	reached := false
	router := gin.New()
	router.GET("/api/order", handler, func(c *gin.Context) {
		reached = true
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/order", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
	assert.False(t, reached)
}

func TestAuthError(t *testing.T) {
	err := &AuthError{Code: "TEST_ERROR", Message: "This is a test error"}
	assert.Equal(t, "This is a test error", err.Error())
}
