package middleware

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	domainErrors "github.com/polkiloo/deeshop/internal/domain/errors"
	"github.com/polkiloo/deeshop/internal/domain/model"
	pkgAuth "github.com/polkiloo/deeshop/internal/pkg/auth"
	testhelpers "github.com/polkiloo/deeshop/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(handlers []gin.HandlerFunc, token string) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/", handlers...)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func ok(c *gin.Context) { c.Status(http.StatusOK) }

func TestAuthRequired(t *testing.T) {
	tests := []struct {
		name     string
		sessions testhelpers.SessionResolverStub
		token    string
		status   int
		message  string
	}{
		{"missing token", testhelpers.SessionResolverStub{}, "", http.StatusUnauthorized, "Not authorized, please login"},
		{"invalid token", testhelpers.SessionResolverStub{ParseErr: pkgAuth.ErrInvalidToken}, "token", http.StatusUnauthorized, "Not authorized, please login"},
		{"parse failure", testhelpers.SessionResolverStub{ParseErr: context.DeadlineExceeded}, "token", http.StatusInternalServerError, "Internal server error"},
		{"deleted user", testhelpers.SessionResolverStub{UserErr: domainErrors.ErrNotFound}, "token", http.StatusUnauthorized, "User not found"},
		{"lookup failure", testhelpers.SessionResolverStub{UserErr: errors.New("db down")}, "token", http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := serve([]gin.HandlerFunc{AuthRequired(tc.sessions), ok}, tc.token)
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.Code)
			}
			if !bytes.Contains(resp.Body.Bytes(), []byte(tc.message)) {
				t.Fatalf("expected message %q, got %s", tc.message, resp.Body.String())
			}
		})
	}
}

func TestAuthRequiredStoresPrincipal(t *testing.T) {
	var stored model.Principal
	resp := serve([]gin.HandlerFunc{
		AuthRequired(testhelpers.SessionResolverStub{User: testhelpers.Customer}),
		func(c *gin.Context) {
			stored, _ = Principal(c)
			c.Status(http.StatusOK)
		},
	}, "token")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if stored.UserID != testhelpers.Customer.ID || stored.Email != testhelpers.Customer.Email {
		t.Fatalf("unexpected principal %+v", stored)
	}
}

func TestAdminOnly(t *testing.T) {
	resp := serve([]gin.HandlerFunc{AuthRequired(testhelpers.SessionResolverStub{User: testhelpers.Customer}), AdminOnly(), ok}, "token")
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer, got %d", resp.Code)
	}
	if !bytes.Contains(resp.Body.Bytes(), []byte("Not authorized as an admin")) {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}

	resp = serve([]gin.HandlerFunc{AuthRequired(testhelpers.SessionResolverStub{User: testhelpers.Admin}), AdminOnly(), ok}, "token")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", resp.Code)
	}

	resp = serve([]gin.HandlerFunc{AdminOnly(), ok}, "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without principal, got %d", resp.Code)
	}
}

func TestSetAuthCookie(t *testing.T) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	SetAuthCookie(c, "token")
	if got := recorder.Header().Get("Authorization"); got != "Bearer token" {
		t.Fatalf("expected auth header, got %q", got)
	}
	result := recorder.Result()
	t.Cleanup(func() {
		_ = result.Body.Close()
	})
	cookies := result.Cookies()
	if len(cookies) == 0 || cookies[0].Value != "token" || cookies[0].Name != authCookieName {
		t.Fatalf("expected cookie with token, got %+v", cookies)
	}
	if !cookies[0].HttpOnly || cookies[0].SameSite != http.SameSiteLaxMode {
		t.Fatalf("expected http-only lax cookie, got %+v", cookies[0])
	}
}

func TestExtractToken(t *testing.T) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)
	if token := extractToken(c); token != "" {
		t.Fatalf("expected empty token, got %q", token)
	}
	c.Request.Header.Set("Authorization", "bearer abc")
	if token := extractToken(c); token != "abc" {
		t.Fatalf("expected token from header, got %q", token)
	}
	c.Request.Header.Del("Authorization")
	c.Request.AddCookie(&http.Cookie{Name: authCookieName, Value: "cookie"})
	if token := extractToken(c); token != "cookie" {
		t.Fatalf("expected token from cookie, got %q", token)
	}
}

func TestDecompressRequest(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write([]byte(`{"name":"lamp"}`))
	_ = gz.Close()

	router := gin.New()
	router.Use(DecompressRequest())
	var body string
	router.POST("/", func(c *gin.Context) {
		data, _ := io.ReadAll(c.Request.Body)
		body = string(data)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(buf.Bytes()))
	req.Header.Set("Content-Encoding", "gzip")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if body != `{"name":"lamp"}` {
		t.Fatalf("expected decompressed payload, got %q", body)
	}

	req = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("plain")))
	resp = httptest.NewRecorder()
	body = ""
	router.ServeHTTP(resp, req)
	if body != "plain" {
		t.Fatalf("expected plain body, got %q", body)
	}

	req = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("not gzip")))
	req.Header.Set("Content-Encoding", "gzip")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed gzip, got %d", resp.Code)
	}
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	router := gin.New()
	router.Use(RequestLogger(zap.New(core)))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/fail", func(c *gin.Context) {
		_ = c.Error(errors.New("db down"))
		c.Status(http.StatusInternalServerError)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected two log entries, got %d", len(entries))
	}
	if entries[0].Level != zapcore.InfoLevel || entries[0].ContextMap()["path"] != "/ok" {
		t.Fatalf("unexpected entry for /ok: %+v", entries[0])
	}
	if entries[1].Level != zapcore.ErrorLevel {
		t.Fatalf("expected error level for 500, got %v", entries[1].Level)
	}
	if errs, _ := entries[1].ContextMap()["errors"].(string); !bytes.Contains([]byte(errs), []byte("db down")) {
		t.Fatalf("expected attached error in log, got %q", errs)
	}
}
