package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/jamakers/platform/internal/validate"
	"github.com/jamakers/platform/pkg/models"
	"github.com/jamakers/platform/pkg/storage"
)

type AuthHandler struct {
	store         storage.Store
	schemas       *validate.Registry
	jwtSecret     string
	tokenDuration time.Duration
}

func NewAuthHandler(store storage.Store, schemas *validate.Registry, jwtSecret string, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{store: store, schemas: schemas, jwtSecret: jwtSecret, tokenDuration: tokenDuration}
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	Currency  string `json:"currency"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (h *AuthHandler) issueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(h.tokenDuration).Unix(),
	})
	return token.SignedString([]byte(h.jwtSecret))
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if err := h.schemas.Check(r.Context(), "register", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req registerRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	existing, err := h.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		writeError(w, "failed to check email", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		writeError(w, "email already registered", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, "failed to hash password", http.StatusInternalServerError)
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "JMD"
	}
	user := models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		Currency:     currency,
	}
	if err := h.store.CreateUser(ctx, &user); err != nil {
		writeError(w, "failed to create user", http.StatusInternalServerError)
		return
	}

	tokenStr, err := h.issueToken(&user)
	if err != nil {
		writeError(w, "failed to sign token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, authResponse{Token: tokenStr, User: user}, http.StatusCreated)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if err := h.schemas.Check(r.Context(), "login", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req loginRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, "failed to load user", http.StatusInternalServerError)
		return
	}
	if user == nil {
		writeError(w, "credentials not found", http.StatusUnauthorized)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, "credentials not found", http.StatusUnauthorized)
		return
	}

	tokenStr, err := h.issueToken(user)
	if err != nil {
		writeError(w, "failed to sign token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, authResponse{Token: tokenStr, User: *user}, http.StatusOK)
}

// CurrentUser returns the authenticated principal.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFrom(r.Context())
	if principal == nil {
		writeError(w, "authentication required", http.StatusUnauthorized)
		return
	}
	writeJSON(w, principal, http.StatusOK)
}
