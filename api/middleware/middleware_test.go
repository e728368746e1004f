package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-foodmarket/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newProtected(t *testing.T) (*gin.Engine, *auth.TokenCodec) {
	t.Helper()
	codec, err := auth.NewTokenCodec("s3cret", time.Hour)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", RequireSession(codec), func(c *gin.Context) {
		c.String(http.StatusOK, SessionEmail(c))
	})
	r.GET("/mine", RequireSession(codec), RequireOwner(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r, codec
}

func get(r http.Handler, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireSession(t *testing.T) {
	r, codec := newProtected(t)
	token, err := codec.Issue("a@b.com")
	require.NoError(t, err)

	tests := []struct {
		name       string
		token      string
		wantStatus int
		wantBody   string
	}{
		{name: "no cookie", wantStatus: http.StatusUnauthorized, wantBody: `{"message":"unauthorized access"}`},
		{name: "garbage", token: "abc", wantStatus: http.StatusUnauthorized, wantBody: `{"message":"unauthorized access"}`},
		{name: "valid", token: token, wantStatus: http.StatusOK, wantBody: "a@b.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, "/me", tt.token)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestRequireOwner(t *testing.T) {
	r, codec := newProtected(t)
	token, err := codec.Issue("a@b.com")
	require.NoError(t, err)

	tests := []struct {
		name       string
		target     string
		token      string
		wantStatus int
	}{
		{name: "matching email", target: "/mine?email=a@b.com", token: token, wantStatus: http.StatusOK},
		{name: "other email", target: "/mine?email=x@y.com", token: token, wantStatus: http.StatusForbidden},
		{name: "missing email", target: "/mine", token: token, wantStatus: http.StatusForbidden},
		{name: "no session", target: "/mine?email=a@b.com", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, tt.target, tt.token)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	w := get(r, "/", "")
	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
