package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func sessionRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Session(secret))
	r.GET("/guarded", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"sid": GetSessionID(c)})
	})
	return r
}

func TestSessionAcceptsIssuedToken(t *testing.T) {
	token, err := IssueSessionToken("test-secret", "sess_1", time.Minute)
	if err != nil {
		t.Fatalf("IssueSessionToken error: %v", err)
	}

	r := sessionRouter("test-secret")
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", w.Code, w.Body.String())
	}
}

func TestSessionRejectsBadTokens(t *testing.T) {
	r := sessionRouter("test-secret")

	// No token at all.
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: got %d", w.Code)
	}

	// Signed with a different secret.
	token, err := IssueSessionToken("other-secret", "sess_1", time.Minute)
	if err != nil {
		t.Fatalf("IssueSessionToken error: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong secret: got %d", w.Code)
	}

	// Expired.
	token, err = IssueSessionToken("test-secret", "sess_1", -time.Minute)
	if err != nil {
		t.Fatalf("IssueSessionToken error: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expired token: got %d", w.Code)
	}
}
