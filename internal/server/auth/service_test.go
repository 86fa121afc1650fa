package auth

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/authsvc/internal/models"
	"github.com/iudanet/authsvc/internal/server/storage"
	"github.com/iudanet/authsvc/internal/server/token"
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

func newTestService(users storage.UserStorage) *Service {
	tokens := token.NewService("test-secret-key", time.Hour)
	return NewService(setupTestLogger(), users, tokens, PlainVerifier{})
}

func TestRegister_Success(t *testing.T) {
	users := newMockUserStorage()
	svc := newTestService(users)

	user, err := svc.Register(context.Background(), "a@b.com", "pw123", "John", "Doe")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	assert.Equal(t, "a@b.com", user.Email)
	assert.Equal(t, "pw123", user.Password)
	assert.Equal(t, "John", user.FirstName)
	assert.Equal(t, "Doe", user.LastName)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := newMockUserStorage()
	svc := newTestService(users)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@b.com", "pw123", "", "")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "a@b.com", "other", "", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_DuplicateOnCreateRace(t *testing.T) {
	// Пре-проверка прошла (хранилище пустое), но вставка вернула
	// нарушение уникального индекса — как при конкурентной регистрации
	users := newMockUserStorage()
	users.createError = storage.ErrEmailExists
	svc := newTestService(users)

	_, err := svc.Register(context.Background(), "a@b.com", "pw123", "", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_StoreError(t *testing.T) {
	users := newMockUserStorage()
	users.createError = errors.New("disk on fire")
	svc := newTestService(users)

	_, err := svc.Register(context.Background(), "a@b.com", "pw123", "", "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_BcryptScheme(t *testing.T) {
	users := newMockUserStorage()
	tokens := token.NewService("test-secret-key", time.Hour)
	svc := NewService(setupTestLogger(), users, tokens, BcryptVerifier{})
	ctx := context.Background()

	user, err := svc.Register(ctx, "a@b.com", "pw123", "", "")
	require.NoError(t, err)
	// В БД уходит bcrypt хеш, не исходный пароль
	assert.NotEqual(t, "pw123", user.Password)

	_, _, err = svc.Login(ctx, "a@b.com", "pw123")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "a@b.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_Success(t *testing.T) {
	users := newMockUserStorage()
	svc := newTestService(users)
	ctx := context.Background()

	user, err := svc.Register(ctx, "a@b.com", "pw123", "", "")
	require.NoError(t, err)

	accessToken, expiresIn, err := svc.Login(ctx, "a@b.com", "pw123")
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	assert.Equal(t, int64(3600), expiresIn)

	// Токен разбирается обратно в id зарегистрированного пользователя
	tokens := token.NewService("test-secret-key", time.Hour)
	userID, err := tokens.Validate(accessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := newMockUserStorage()
	svc := newTestService(users)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@b.com", "pw123", "", "")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "a@b.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := newMockUserStorage()
	svc := newTestService(users)

	_, _, err := svc.Login(context.Background(), "missing@b.com", "pw123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProfile_Success(t *testing.T) {
	users := newMockUserStorage()
	svc := newTestService(users)
	ctx := context.Background()

	user, err := svc.Register(ctx, "a@b.com", "pw123", "John", "Doe")
	require.NoError(t, err)

	profile, err := svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.UserID)
	assert.Equal(t, "a@b.com", profile.Email)
	assert.Equal(t, "John", profile.FirstName)
	assert.Equal(t, "Doe", profile.LastName)
}

func TestProfile_NotFound(t *testing.T) {
	users := newMockUserStorage()
	svc := newTestService(users)

	_, err := svc.Profile(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}
