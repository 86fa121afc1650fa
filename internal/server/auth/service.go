package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/authsvc/internal/models"
	"github.com/iudanet/authsvc/internal/server/storage"
	"github.com/iudanet/authsvc/internal/server/token"
	"github.com/iudanet/authsvc/pkg/api"
)

// Ошибки уровня сервиса авторизации
var (
	// ErrEmailTaken email уже зарегистрирован
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials пара email/пароль не подошла
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service реализует регистрацию, логин и выдачу профиля
// поверх UserStorage и token.Service
type Service struct {
	logger   *slog.Logger
	users    storage.UserStorage
	tokens   *token.Service
	verifier CredentialVerifier
}

// NewService создает новый сервис авторизации
func NewService(logger *slog.Logger, users storage.UserStorage, tokens *token.Service, verifier CredentialVerifier) *Service {
	return &Service{
		logger:   logger,
		users:    users,
		tokens:   tokens,
		verifier: verifier,
	}
}

// Register регистрирует нового пользователя
//
// Предварительная проверка email — только ранний выход: между проверкой
// и вставкой нет транзакции, поэтому проигравший конкурентную регистрацию
// получает ErrEmailTaken от уникального индекса в БД, а не 500.
func (s *Service) Register(ctx context.Context, email, password, firstName, lastName string) (*models.User, error) {
	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	stored, err := s.verifier.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare password: %w", err)
	}

	user := &models.User{
		ID:        uuid.New().String(),
		Email:     email,
		Password:  stored,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrEmailExists) {
			// Проиграли гонку конкурентной регистрации
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID))

	return user, nil
}

// Login проверяет учетные данные и выдает access token
// Несуществующий email и неверный пароль неразличимы для клиента
func (s *Service) Login(ctx context.Context, email, password string) (string, int64, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return "", 0, ErrInvalidCredentials
		}
		return "", 0, fmt.Errorf("failed to get user: %w", err)
	}

	if !s.verifier.Verify(user.Password, password) {
		return "", 0, ErrInvalidCredentials
	}

	accessToken, expiresIn, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", 0, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID))

	return accessToken, expiresIn, nil
}

// IssueToken выдает access token для уже аутентифицированного пользователя
// Используется HTTP слоем для ответа на успешную регистрацию
func (s *Service) IssueToken(userID string) (string, int64, error) {
	return s.tokens.Issue(userID)
}

// Profile возвращает публичный профиль пользователя
// Пароль в проекцию не попадает
func (s *Service) Profile(ctx context.Context, userID string) (*api.ProfileResponse, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &api.ProfileResponse{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}
