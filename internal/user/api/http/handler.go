package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/SuryaTanukuT/commerce-backend/internal/auth"
	"github.com/SuryaTanukuT/commerce-backend/internal/user/service"
)

// Handler содержит HTTP-обработчики User Service
type Handler struct {
	logger      *zap.Logger
	userService *service.UserService
}

// NewHandler создаёт новый HTTP handler
func NewHandler(logger *zap.Logger, userService *service.UserService) *Handler {
	return &Handler{
		logger:      logger,
		userService: userService,
	}
}

// CredentialsRequest — тело запросов register и login
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse представляет пользователя в HTTP ответах
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// LoginResponse — ответ на успешный вход
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// PostRegister обрабатывает POST /auth/register
func (h *Handler) PostRegister(w http.ResponseWriter, r *http.Request) {
	var reqBody CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if reqBody.Email == "" || reqBody.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password required")
		return
	}

	user, err := h.userService.Register(r.Context(), reqBody.Email, reqBody.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "email already taken")
			return
		}
		h.logger.Error("registration failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to register")
		return
	}

	writeJSON(w, http.StatusCreated, UserResponse{ID: user.ID, Email: user.Email})
}

// PostLogin обрабатывает POST /auth/login
func (h *Handler) PostLogin(w http.ResponseWriter, r *http.Request) {
	var reqBody CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	user, token, err := h.userService.Login(r.Context(), reqBody.Email, reqBody.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to login")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Token: token,
		User:  UserResponse{ID: user.ID, Email: user.Email},
	})
}

// GetMe обрабатывает GET /auth/me — профиль текущего пользователя
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	authUser, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authenticated user")
		return
	}

	user, err := h.userService.Me(r.Context(), authUser.ID)
	if err != nil {
		h.logger.Error("me lookup failed", zap.Error(err))
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, UserResponse{ID: user.ID, Email: user.Email})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"message": message})
}
