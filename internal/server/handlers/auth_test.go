package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/authsvc/internal/models"
	"github.com/iudanet/authsvc/internal/server/auth"
	"github.com/iudanet/authsvc/internal/server/storage"
	"github.com/iudanet/authsvc/internal/server/token"
	"github.com/iudanet/authsvc/pkg/api"
)

// mockUserStorage is a mock implementation of UserStorage for testing
type mockUserStorage struct {
	users       map[string]*models.User // email -> User
	createError error
	getError    error
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{users: make(map[string]*models.User)}
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	if m.createError != nil {
		return m.createError
	}
	if _, exists := m.users[user.Email]; exists {
		return storage.ErrEmailExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	user, ok := m.users[email]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError,
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func setupAuthHandler(users storage.UserStorage) *AuthHandler {
	logger := setupTestLogger()
	tokens := token.NewService("test-secret-key", time.Hour)
	authService := auth.NewService(logger, users, tokens, auth.PlainVerifier{})
	return NewAuthHandler(logger, authService)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestRegister_Success(t *testing.T) {
	h := setupAuthHandler(newMockUserStorage())

	w := postJSON(t, h.Register, "/register", api.RegisterRequest{
		Email:     "a@b.com",
		Password:  "pw123",
		FirstName: "John",
		LastName:  "Doe",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp api.TokenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	// Выданный токен валиден
	tokens := token.NewService("test-secret-key", time.Hour)
	_, err := tokens.Validate(resp.Token)
	assert.NoError(t, err)
}

func TestRegister_InvalidBody(t *testing.T) {
	h := setupAuthHandler(newMockUserStorage())

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	h.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  api.RegisterRequest
	}{
		{name: "missing email", req: api.RegisterRequest{Password: "pw123"}},
		{name: "missing password", req: api.RegisterRequest{Email: "a@b.com"}},
		{name: "bad email", req: api.RegisterRequest{Email: "not-an-email", Password: "pw123"}},
		{name: "email too long", req: api.RegisterRequest{
			Email:    strings.Repeat("a", 80) + "@b.com",
			Password: "pw123",
		}},
		{name: "short password", req: api.RegisterRequest{Email: "a@b.com", Password: "pw"}},
		{name: "firstname too long", req: api.RegisterRequest{
			Email:     "a@b.com",
			Password:  "pw123",
			FirstName: strings.Repeat("x", 21),
		}},
		{name: "lastname too long", req: api.RegisterRequest{
			Email:    "a@b.com",
			Password: "pw123",
			LastName: strings.Repeat("x", 31),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := setupAuthHandler(newMockUserStorage())
			w := postJSON(t, h.Register, "/register", tt.req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h := setupAuthHandler(newMockUserStorage())

	req := api.RegisterRequest{Email: "a@b.com", Password: "pw123"}

	w := postJSON(t, h.Register, "/register", req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, h.Register, "/register", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "email already registered", resp.Message)
}

func TestRegister_StoreError(t *testing.T) {
	users := newMockUserStorage()
	users.createError = errors.New("db unavailable")
	h := setupAuthHandler(users)

	w := postJSON(t, h.Register, "/register", api.RegisterRequest{
		Email:    "a@b.com",
		Password: "pw123",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLogin_Success(t *testing.T) {
	users := newMockUserStorage()
	h := setupAuthHandler(users)

	w := postJSON(t, h.Register, "/register", api.RegisterRequest{Email: "a@b.com", Password: "pw123"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, h.Login, "/login", api.LoginRequest{Email: "a@b.com", Password: "pw123"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.TokenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	users := newMockUserStorage()
	h := setupAuthHandler(users)

	w := postJSON(t, h.Register, "/register", api.RegisterRequest{Email: "a@b.com", Password: "pw123"})
	require.Equal(t, http.StatusCreated, w.Code)

	// Неверный пароль
	w = postJSON(t, h.Login, "/login", api.LoginRequest{Email: "a@b.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Несуществующий email: ответ неотличим от неверного пароля
	w = postJSON(t, h.Login, "/login", api.LoginRequest{Email: "missing@b.com", Password: "pw123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_MissingFields(t *testing.T) {
	h := setupAuthHandler(newMockUserStorage())

	w := postJSON(t, h.Login, "/login", api.LoginRequest{Email: "a@b.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_StoreError(t *testing.T) {
	users := newMockUserStorage()
	users.getError = errors.New("db unavailable")
	h := setupAuthHandler(users)

	w := postJSON(t, h.Login, "/login", api.LoginRequest{Email: "a@b.com", Password: "pw123"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestProfile_Success(t *testing.T) {
	users := newMockUserStorage()
	h := setupAuthHandler(users)

	w := postJSON(t, h.Register, "/register", api.RegisterRequest{
		Email:     "a@b.com",
		Password:  "pw123",
		FirstName: "John",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	user, err := users.GetUserByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req = req.WithContext(context.WithValue(req.Context(), UserIDKey, user.ID))

	w2 := httptest.NewRecorder()
	h.Profile(w2, req)

	require.Equal(t, http.StatusOK, w2.Code)

	var resp api.ProfileResponse
	require.NoError(t, json.NewDecoder(w2.Body).Decode(&resp))
	assert.Equal(t, user.ID, resp.UserID)
	assert.Equal(t, "a@b.com", resp.Email)
	assert.Equal(t, "John", resp.FirstName)

	// Пароль не должен утекать в ответ
	assert.NotContains(t, w2.Body.String(), "pw123")
}

func TestProfile_NoIdentity(t *testing.T) {
	h := setupAuthHandler(newMockUserStorage())

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	w := httptest.NewRecorder()
	h.Profile(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfile_NotFound(t *testing.T) {
	h := setupAuthHandler(newMockUserStorage())

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req = req.WithContext(context.WithValue(req.Context(), UserIDKey, "no-such-id"))

	w := httptest.NewRecorder()
	h.Profile(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
