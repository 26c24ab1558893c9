package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ukil-legal/ukil-api/api"
)

func TestMiddleware_AuthenticateMissingHeader(t *testing.T) {
	m := api.Middleware{Tokens: api.TokenService{Secret: []byte("test-secret")}}

	handlerCalled := false
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	}))

	req, err := http.NewRequest("GET", "/advocate", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, `{"message":"Unauthorized access!"}`, rr.Body.String())
	assert.False(t, handlerCalled)
}

func TestMiddleware_AuthenticateBadToken(t *testing.T) {
	m := api.Middleware{Tokens: api.TokenService{Secret: []byte("test-secret")}}

	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run with a bad token")
	}))

	for _, header := range []string{"Bearer not-a-token", "not-a-token", "Bearer"} {
		req, err := http.NewRequest("GET", "/advocate", nil)
		if err != nil {
			t.Fatal(err)
		}
		req.Header.Set("Authorization", header)

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, header)
		assert.Equal(t, `{"message":"Unauthorized access!"}`, rr.Body.String(), header)
	}
}

func TestMiddleware_AuthenticatePassesClaims(t *testing.T) {
	tokens := api.TokenService{Secret: []byte("test-secret")}
	m := api.Middleware{Tokens: tokens}

	token, err := tokens.Issue("a@x.com")
	if err != nil {
		t.Fatal(err)
	}

	var gotEmail string
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := api.ClaimsFromContext(r.Context())
		assert.True(t, ok)
		gotEmail = claims.Email
		w.WriteHeader(http.StatusOK)
	}))

	req, err := http.NewRequest("GET", "/advocate", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "a@x.com", gotEmail)
}
