package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/vampi-007/AI-Interviewer/internal/utils"
)

func authedRouter(t *testing.T, extra ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()

	chain := append([]gin.HandlerFunc{JWTAuth()}, extra...)
	chain = append(chain, func(c *gin.Context) {
		uid, _ := c.Get("user_id")
		role, _ := c.Get("role")
		c.JSON(http.StatusOK, gin.H{"user_id": uid, "role": role})
	})
	r.GET("/secure", chain...)
	return r
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := authedRouter(t)

	token, err := utils.CreateAccessToken("test-secret", "user-1", "USER")
	if err != nil {
		t.Fatal(err)
	}

	if w := get(r, "Bearer "+token); w.Code != http.StatusOK {
		t.Fatalf("valid token: status %d, want 200: %s", w.Code, w.Body.String())
	}
	if w := get(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("no header: status %d, want 401", w.Code)
	}
	if w := get(r, "Bearer "); w.Code != http.StatusUnauthorized {
		t.Fatalf("empty token: status %d, want 401", w.Code)
	}
	if w := get(r, "Bearer not-a-jwt"); w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: status %d, want 401", w.Code)
	}

	wrong, err := utils.CreateAccessToken("other-secret", "user-1", "USER")
	if err != nil {
		t.Fatal(err)
	}
	if w := get(r, "Bearer "+wrong); w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong secret: status %d, want 401", w.Code)
	}
}

func TestJWTAuthWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	r := authedRouter(t)

	if w := get(r, "Bearer anything"); w.Code != http.StatusInternalServerError {
		t.Fatalf("status %d, want 500", w.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := authedRouter(t, RequireAdmin())

	admin, err := utils.CreateAccessToken("test-secret", "admin-1", "ADMIN")
	if err != nil {
		t.Fatal(err)
	}
	if w := get(r, "Bearer "+admin); w.Code != http.StatusOK {
		t.Fatalf("admin: status %d, want 200", w.Code)
	}

	user, err := utils.CreateAccessToken("test-secret", "user-1", "USER")
	if err != nil {
		t.Fatal(err)
	}
	if w := get(r, "Bearer "+user); w.Code != http.StatusForbidden {
		t.Fatalf("non-admin: status %d, want 403", w.Code)
	}

	// Role casing from older tokens is tolerated.
	lower, err := utils.CreateAccessToken("test-secret", "admin-2", "admin")
	if err != nil {
		t.Fatal(err)
	}
	if w := get(r, "Bearer "+lower); w.Code != http.StatusOK {
		t.Fatalf("lowercase role: status %d, want 200", w.Code)
	}
}
