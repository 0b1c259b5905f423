package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"transportbooking/internal/utils"
)

func authTestServer(secret []byte) (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	var seen string
	r := gin.New()
	r.Use(RequireAuth(secret))
	r.GET("/whoami", func(c *gin.Context) {
		seen = GetUserEmail(c)
		c.JSON(http.StatusOK, gin.H{"email": seen})
	})
	return r, &seen
}

func TestRequireAuth(t *testing.T) {
	secret := []byte("test-secret")
	r, seen := authTestServer(secret)

	token, err := utils.GenerateToken(secret, "ivan@gmail.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if *seen != "ivan@gmail.com" {
		t.Errorf("handler saw email %q, want ivan@gmail.com", *seen)
	}
}

func TestRequireAuthRejects(t *testing.T) {
	r, _ := authTestServer([]byte("test-secret"))

	// No header at all.
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: status = %d, want 401", w.Code)
	}

	// Token signed with another secret.
	token, err := utils.GenerateToken([]byte("other-secret"), "ivan@gmail.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("foreign token: status = %d, want 401", w.Code)
	}
}
