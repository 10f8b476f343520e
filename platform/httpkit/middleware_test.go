package httpkit

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type stubJWTConfig struct {
	secret string
}

func (s stubJWTConfig) GetJWTAccessSecret() string { return s.secret }

func signAccessToken(t *testing.T, secret string, userID uuid.UUID, roles []string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"type":  "access",
		"sub":   userID.String(),
		"roles": roles,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func authTestRouter(t *testing.T, cfg stubJWTConfig) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	admin := engine.Group("/admin")
	admin.Use(AuthRequired(cfg), RequireRole(RoleAdmin))
	admin.POST("/rebuild", func(c *gin.Context) {
		caller := MustGetIdentity(c)
		if caller == nil {
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": caller.UserID().String()})
	})

	return engine
}

func TestAuthRequiredRejectsMissingToken(t *testing.T) {
	router := authTestRouter(t, stubJWTConfig{secret: "test-secret"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/rebuild", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRequireRoleRejectsNonAdmin(t *testing.T) {
	cfg := stubJWTConfig{secret: "test-secret"}
	router := authTestRouter(t, cfg)

	token := signAccessToken(t, cfg.secret, uuid.New(), []string{"viewer"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/rebuild", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
}

func TestRequireRoleAllowsAdmin(t *testing.T) {
	cfg := stubJWTConfig{secret: "test-secret"}
	router := authTestRouter(t, cfg)

	userID := uuid.New()
	token := signAccessToken(t, cfg.secret, userID, []string{RoleAdmin})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/rebuild", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Body.String(); !strings.Contains(got, userID.String()) {
		t.Fatalf("expected body to echo user ID %s, got %s", userID, got)
	}
}

func TestGetIdentityUnauthenticatedRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	caller := GetIdentity(c)

	if caller.IsAuthenticated() {
		t.Fatal("expected unauthenticated identity on a bare context")
	}
	if caller.HasRole(RoleAdmin) {
		t.Fatal("unauthenticated identity must not carry roles")
	}
}

func TestMustGetIdentityAbortsUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	if caller := MustGetIdentity(c); caller != nil {
		t.Fatalf("expected nil identity, got %v", caller)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}
