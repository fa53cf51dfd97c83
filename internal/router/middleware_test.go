package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kariakoo/marketplace/internal/config"
	"github.com/kariakoo/marketplace/internal/constants"
	"github.com/kariakoo/marketplace/internal/models"
	"github.com/kariakoo/marketplace/internal/repository"
	"github.com/kariakoo/marketplace/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	generated := w2.Header().Get(requestIDHeader)
	if strings.TrimSpace(generated) == "" {
		t.Fatalf("generated request id should not be empty")
	}
}

func TestJWTAuthMiddlewareMissingSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(JWTAuthMiddleware("", nil))
	r.GET("/admin/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", resp.StatusCode)
	}
}

func setupRouterTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:router_%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func TestUserJWTAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := setupRouterTestDB(t)
	userRepo := repository.NewUserRepository(db)
	cfg := config.JWTConfig{SecretKey: "test-secret", ExpireHours: 1}

	active := models.User{
		Email:        "buyer@example.com",
		PasswordHash: "hash",
		Status:       constants.UserStatusActive,
		ReferralCode: "REFCODE001",
	}
	if err := db.Create(&active).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	disabled := models.User{
		Email:        "blocked@example.com",
		PasswordHash: "hash",
		Status:       constants.UserStatusDisabled,
		ReferralCode: "REFCODE002",
	}
	if err := db.Create(&disabled).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	r := gin.New()
	r.Use(UserJWTAuthMiddleware(cfg.SecretKey, userRepo))
	r.GET("/cart", func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})

	call := func(token string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		r.ServeHTTP(w, req)
		return w
	}

	statusCode := func(t *testing.T, w *httptest.ResponseRecorder) int {
		t.Helper()
		var resp struct {
			StatusCode int `json:"status_code"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response failed: %v", err)
		}
		return resp.StatusCode
	}

	token, err := service.IssueUserToken(cfg, &active)
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}
	w := call(token)
	var ok struct {
		UserID float64 `json:"user_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &ok); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if uint(ok.UserID) != active.ID {
		t.Fatalf("user_id want %d got %v", active.ID, ok.UserID)
	}

	if got := statusCode(t, call("")); got != 401 {
		t.Fatalf("missing token status_code want 401 got %d", got)
	}
	if got := statusCode(t, call("not-a-token")); got != 401 {
		t.Fatalf("garbage token status_code want 401 got %d", got)
	}

	blockedToken, err := service.IssueUserToken(cfg, &disabled)
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}
	if got := statusCode(t, call(blockedToken)); got != 401 {
		t.Fatalf("disabled user status_code want 401 got %d", got)
	}
}
