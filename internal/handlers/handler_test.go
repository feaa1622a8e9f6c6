package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"warble/internal/config"
	"warble/internal/metrics"
	"warble/internal/models"
	"warble/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

var testDBCounter atomic.Int64

func setupTestHandler() (*Handler, *gorm.DB) {
	// Each handler gets its own named in-memory database so tests cannot
	// bleed rows into each other through the shared cache.
	dsn := fmt.Sprintf("file:warblehandlers%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, _ := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	db.AutoMigrate(&models.User{}, &models.Message{}, &models.Follow{}, &models.Like{}, &models.AuditLog{})

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Config{
		SessionSecret: "test-secret-12345678901234567890123456789012",
	}

	audit := services.NewAuditService(db, logger)
	users := services.NewUserService(db)
	messages := services.NewMessageService(db)
	follows := services.NewFollowService(db)
	likes := services.NewLikeService(db)
	m := metrics.NewMetrics(prometheus.NewRegistry())

	h := NewHandler(cfg, logger, db, users, messages, follows, likes, audit, m)
	return h, db
}

func setupTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return h.SetupRouter(nil)
}

// signupTestUser registers a user through the API and returns the new id
// together with the session cookie from the response.
func signupTestUser(t *testing.T, r *gin.Engine, username, email string) (uint, string) {
	t.Helper()

	body := map[string]string{
		"username": username,
		"email":    email,
		"password": "password123",
	}
	jsonBody, _ := json.Marshal(body)

	req, _ := http.NewRequest("POST", "/signup", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("signup %s: got status %d, body %s", username, w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	return uint(resp["id"].(float64)), w.Header().Get("Set-Cookie")
}

// postTestMessage posts a warble with the given session cookie and returns
// the new message id.
func postTestMessage(t *testing.T, r *gin.Engine, cookie, text string) uint {
	t.Helper()

	jsonBody, _ := json.Marshal(map[string]string{"text": text})
	req, _ := http.NewRequest("POST", "/messages/new", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cookie", cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("post message: got status %d, body %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	return uint(resp["id"].(float64))
}
