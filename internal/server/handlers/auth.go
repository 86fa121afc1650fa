package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/authsvc/internal/server/auth"
	"github.com/iudanet/authsvc/internal/server/storage"
	"github.com/iudanet/authsvc/internal/validation"
	"github.com/iudanet/authsvc/pkg/api"
)

// AuthHandler обрабатывает запросы регистрации, логина и профиля
type AuthHandler struct {
	logger *slog.Logger
	auth   *auth.Service
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		logger: logger,
		auth:   authService,
	}
}

// Register обрабатывает POST /register
// Регистрация нового пользователя, в ответ сразу выдается access token
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Парсим request body
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode register request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Проверка обязательных полей
	if req.Email == "" || req.Password == "" {
		h.sendError(w, "email and password are required", http.StatusBadRequest)
		return
	}

	// Валидация email
	if err := validation.ValidateEmail(req.Email); err != nil {
		h.logger.WarnContext(ctx, "invalid email", slog.Any("error", err))
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Валидация опциональных полей имени
	if req.FirstName != "" {
		if err := validation.ValidateName(req.FirstName, validation.MaxFirstNameLen); err != nil {
			h.sendError(w, "firstname: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	if req.LastName != "" {
		if err := validation.ValidateName(req.LastName, validation.MaxLastNameLen); err != nil {
			h.sendError(w, "lastname: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	// Валидация пароля
	if err := validation.ValidatePassword(req.Password); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.auth.Register(ctx, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			h.logger.WarnContext(ctx, "email already registered")
			h.sendError(w, "email already registered", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to register user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Новому пользователю сразу выдаем токен, повторный логин не нужен
	accessToken, expiresIn, err := h.auth.IssueToken(user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.TokenResponse{
		Token:     accessToken,
		ExpiresIn: expiresIn,
	}

	h.sendJSON(w, resp, http.StatusCreated)
}

// Login обрабатывает POST /login
// Аутентификация пользователя по email и паролю
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Парсим request body
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode login request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Проверка обязательных полей
	if req.Email == "" || req.Password == "" {
		h.sendError(w, "email and password are required", http.StatusBadRequest)
		return
	}

	accessToken, expiresIn, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.logger.WarnContext(ctx, "login failed: invalid credentials")
			h.sendError(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to login user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.TokenResponse{
		Token:     accessToken,
		ExpiresIn: expiresIn,
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// Profile обрабатывает GET /profile
// Возвращает публичный профиль аутентифицированного пользователя
// user_id кладет в контекст auth middleware
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		// Маршрут защищен middleware, сюда попадать не должны
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := h.auth.Profile(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "profile not found", slog.String("user_id", userID))
			h.sendError(w, "user not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get profile", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, profile, http.StatusOK)
}

// sendJSON отправляет JSON ответ
func (h *AuthHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func (h *AuthHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}
