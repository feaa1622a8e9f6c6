package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"warble/internal/models"
)

func TestSignupHandler(t *testing.T) {
	h, db := setupTestHandler()
	r := setupTestRouter(h)

	t.Run("Success", func(t *testing.T) {
		body := map[string]string{
			"username": "testuser",
			"email":    "test@example.com",
			"password": "password123",
		}
		jsonBody, _ := json.Marshal(body)

		req, _ := http.NewRequest("POST", "/signup", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotEmpty(t, w.Header().Get("Set-Cookie"), "signup should start a session")

		var resp map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, "testuser", resp["username"])
		assert.Equal(t, models.DefaultImageURL, resp["image_url"])
		assert.NotEmpty(t, resp["api_key"])
		assert.NotContains(t, w.Body.String(), "password_hash")
	})

	t.Run("Duplicate username", func(t *testing.T) {
		body := map[string]string{
			"username": "testuser",
			"email":    "other@example.com",
			"password": "password123",
		}
		jsonBody, _ := json.Marshal(body)

		req, _ := http.NewRequest("POST", "/signup", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "Username or email already taken")
	})

	t.Run("Duplicate email", func(t *testing.T) {
		body := map[string]string{
			"username": "otheruser",
			"email":    "test@example.com",
			"password": "password123",
		}
		jsonBody, _ := json.Marshal(body)

		req, _ := http.NewRequest("POST", "/signup", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Invalid input", func(t *testing.T) {
		body := map[string]string{
			"username": "tu",
			"email":    "invalid",
		}
		jsonBody, _ := json.Marshal(body)

		req, _ := http.NewRequest("POST", "/signup", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Short password", func(t *testing.T) {
		body := map[string]string{
			"username": "shortpw",
			"email":    "short@example.com",
			"password": "abc",
		}
		jsonBody, _ := json.Marshal(body)

		req, _ := http.NewRequest("POST", "/signup", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Hash error", func(t *testing.T) {
		body := map[string]string{
			"username": "hashuser",
			"email":    "hash@user.com",
			"password": strings.Repeat("A", 100),
		}
		jsonBody, _ := json.Marshal(body)

		req, _ := http.NewRequest("POST", "/signup", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("DB Error", func(t *testing.T) {
		db.Migrator().DropTable(&models.User{})
		defer db.AutoMigrate(&models.User{})

		body := map[string]string{
			"username": "dberror",
			"email":    "db@err.com",
			"password": "password123",
		}
		jsonBody, _ := json.Marshal(body)

		req, _ := http.NewRequest("POST", "/signup", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestLoginHandler(t *testing.T) {
	h, db := setupTestHandler()
	r := setupTestRouter(h)

	signupTestUser(t, r, "alice", "alice@example.com")

	t.Run("Success", func(t *testing.T) {
		body := map[string]string{
			"username": "alice",
			"password": "password123",
		}
		jsonBody, _ := json.Marshal(body)

		req, _ := http.NewRequest("POST", "/login", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("Set-Cookie"))

		var resp map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, "alice", resp["username"])
	})

	t.Run("Wrong password", func(t *testing.T) {
		body := map[string]string{
			"username": "alice",
			"password": "wrongpassword",
		}
		jsonBody, _ := json.Marshal(body)

		req, _ := http.NewRequest("POST", "/login", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials.")
	})

	t.Run("Nonexistent user", func(t *testing.T) {
		body := map[string]string{
			"username": "nobody",
			"password": "password123",
		}
		jsonBody, _ := json.Marshal(body)

		req, _ := http.NewRequest("POST", "/login", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Invalid input", func(t *testing.T) {
		req, _ := http.NewRequest("POST", "/login", bytes.NewBuffer([]byte("invalid json")))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("DB Error", func(t *testing.T) {
		db.Migrator().DropTable(&models.User{})
		defer db.AutoMigrate(&models.User{})

		body := map[string]string{
			"username": "alice",
			"password": "password123",
		}
		jsonBody, _ := json.Marshal(body)

		req, _ := http.NewRequest("POST", "/login", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestLogoutHandler(t *testing.T) {
	h, _ := setupTestHandler()
	r := setupTestRouter(h)

	_, cookie := signupTestUser(t, r, "bob", "bob@example.com")

	t.Run("Logged in", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/logout", nil)
		req.Header.Set("Cookie", cookie)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "You have successfully logged out.")

		// The cleared cookie no longer opens protected routes.
		cleared := w.Header().Get("Set-Cookie")
		req2, _ := http.NewRequest("GET", "/users/profile", nil)
		req2.Header.Set("Cookie", cleared)

		w2 := httptest.NewRecorder()
		r.ServeHTTP(w2, req2)

		assert.Equal(t, http.StatusUnauthorized, w2.Code)
	})

	t.Run("Anonymous is a no-op", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/logout", nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
