package api_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestRegisterAndLogin(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
	}{
		{
			name:       "Register_InvalidJSON",
			method:     http.MethodPost,
			path:       "/api/auth/register",
			body:       "not a json",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Register_ShortPassword",
			method:     http.MethodPost,
			path:       "/api/auth/register",
			body:       map[string]string{"email": "short@example.com", "password": "short", "role": "brand"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Register_AdminRoleRejected",
			method:     http.MethodPost,
			path:       "/api/auth/register",
			body:       map[string]string{"email": "evil@example.com", "password": "longenough", "role": "admin"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "Register_Success",
			method: http.MethodPost,
			path:   "/api/auth/register",
			body: map[string]string{
				"email": "newbrand@example.com", "password": "longenough",
				"firstName": "Nadia", "lastName": "Grant", "role": "brand",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "Register_DuplicateEmail",
			method:     http.MethodPost,
			path:       "/api/auth/register",
			body:       map[string]string{"email": "admin@jamakers.example", "password": "longenough", "role": "brand"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Login_UnknownEmail",
			method:     http.MethodPost,
			path:       "/api/auth/login",
			body:       map[string]string{"email": "nobody@example.com", "password": "whatever1"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Login_WrongPassword",
			method:     http.MethodPost,
			path:       "/api/auth/login",
			body:       map[string]string{"email": "admin@jamakers.example", "password": "wrongpassword"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Login_Success",
			method:     http.MethodPost,
			path:       "/api/auth/login",
			body:       map[string]string{"email": "admin@jamakers.example", "password": "makers123"},
			wantStatus: http.StatusOK,
		},
	}

	env := newTestEnv(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, tt.method, tt.path, "", tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d got %d body=%s", tt.wantStatus, w.Code, w.Body.String())
			}
			if w.Code >= 300 {
				return
			}

			var ar struct {
				Token string `json:"token"`
				User  struct {
					ID    string `json:"id"`
					Email string `json:"email"`
				} `json:"user"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &ar); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if ar.Token == "" || ar.User.ID == "" {
				t.Fatalf("incomplete auth response: %s", w.Body.String())
			}

			tok, err := jwt.Parse(ar.Token, func(token *jwt.Token) (any, error) { return []byte(testSecret), nil })
			if err != nil {
				t.Fatalf("parse token: %v", err)
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				t.Fatalf("unexpected claims type")
			}
			if sub, _ := claims["sub"].(string); sub != ar.User.ID {
				t.Fatalf("sub claim %q does not match user %q", sub, ar.User.ID)
			}
			if expF, ok := claims["exp"].(float64); !ok || int64(expF) < time.Now().Unix() {
				t.Fatalf("invalid exp claim")
			}
		})
	}
}

func TestCurrentUser(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin@jamakers.example")

	w := env.do(t, http.MethodGet, "/api/auth/user", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("current user: status %d body=%s", w.Code, w.Body.String())
	}
	var u struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	decodeInto(t, w, &u)
	if u.Email != "admin@jamakers.example" || u.Role != "admin" {
		t.Fatalf("unexpected principal: %+v", u)
	}

	w = env.do(t, http.MethodGet, "/api/auth/user", "garbage-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", w.Code)
	}

	// password hash never leaves the API
	w = env.do(t, http.MethodGet, "/api/auth/user", token, nil)
	if body := w.Body.String(); body == "" || containsSubstring(body, "passwordHash") {
		t.Fatalf("password hash leaked: %s", body)
	}
}

func containsSubstring(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
