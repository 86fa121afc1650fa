package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTypeBearer единственный допустимый тип access token
const TokenTypeBearer = "bearer"

// bearerPrefix опциональная схема перед токеном в заголовке Authorization
const bearerPrefix = "Bearer "

// Ошибки валидации токена. Различаются только внутри сервера
// (логи, тесты) — наружу все они отдаются как единый 401,
// чтобы не подсказывать атакующему, какая именно проверка не прошла.
var (
	// ErrMalformedToken токен не разбирается на три сегмента или payload не декодируется
	ErrMalformedToken = errors.New("malformed token")

	// ErrInvalidTokenType token_type в payload отличается от "bearer"
	ErrInvalidTokenType = errors.New("invalid token type")

	// ErrTokenExpired срок действия токена истек
	ErrTokenExpired = errors.New("token expired")

	// ErrInvalidSignature подпись не сходится с ключом, производным от user_id
	ErrInvalidSignature = errors.New("invalid token signature")
)

// Claims представляет payload access token
// Формат полей фиксирован контрактом API: token_type, expires, user_id
type Claims struct {
	TokenType string `json:"token_type"` // всегда "bearer"
	Expires   int64  `json:"expires"`    // unix timestamp истечения
	UserID    string `json:"user_id"`    // UUID пользователя
}

// GetExpirationTime реализует jwt.Claims
func (c Claims) GetExpirationTime() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.Expires, 0)), nil
}

// GetIssuedAt реализует jwt.Claims
func (c Claims) GetIssuedAt() (*jwt.NumericDate, error) { return nil, nil }

// GetNotBefore реализует jwt.Claims
func (c Claims) GetNotBefore() (*jwt.NumericDate, error) { return nil, nil }

// GetIssuer реализует jwt.Claims
func (c Claims) GetIssuer() (string, error) { return "", nil }

// GetSubject реализует jwt.Claims
func (c Claims) GetSubject() (string, error) { return c.UserID, nil }

// GetAudience реализует jwt.Claims
func (c Claims) GetAudience() (jwt.ClaimStrings, error) { return nil, nil }

// Service provides bearer token issuance and validation.
//
// Подпись HMAC-SHA256, но ключ производный для каждого пользователя:
// secret + userID. Токены разных пользователей не проверяются одним
// ключом, поэтому при валидации payload декодируется ДО проверки
// подписи — иначе неизвестно, какой ключ восстанавливать.
type Service struct {
	secret string
	ttl    time.Duration
}

// NewService creates a new token service.
// secret is the server-wide base secret, ttl is the access token lifetime.
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: secret,
		ttl:    ttl,
	}
}

// Issue создает подписанный access token для пользователя
// Возвращает токен и время жизни в секундах
func (s *Service) Issue(userID string) (string, int64, error) {
	claims := Claims{
		TokenType: TokenTypeBearer,
		Expires:   time.Now().Add(s.ttl).Unix(),
		UserID:    userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.signingKey(userID))
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, int64(s.ttl.Seconds()), nil
}

// Validate проверяет access token и возвращает user_id владельца
//
// Принимает как голый токен, так и значение заголовка Authorization
// со схемой "Bearer ". Порядок проверок фиксирован:
// структура -> token_type -> срок действия -> подпись.
func (s *Service) Validate(raw string) (string, error) {
	raw = strings.TrimPrefix(raw, bearerPrefix)

	// Токен должен состоять ровно из трех сегментов: header.payload.signature
	if strings.Count(raw, ".") != 2 {
		return "", ErrMalformedToken
	}

	// Декодируем payload без проверки подписи: ключ подписи зависит
	// от user_id, который лежит внутри payload
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return "", ErrMalformedToken
	}

	if claims.TokenType != TokenTypeBearer {
		return "", ErrInvalidTokenType
	}

	if claims.Expires <= time.Now().Unix() {
		return "", ErrTokenExpired
	}

	// Восстанавливаем ключ из user_id и проверяем подпись.
	// Валидация claims уже выполнена выше, поэтому отключена.
	_, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey(claims.UserID), nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return "", ErrInvalidSignature
		}
		return "", ErrMalformedToken
	}

	return claims.UserID, nil
}

// signingKey возвращает производный ключ подписи для пользователя
func (s *Service) signingKey(userID string) []byte {
	return []byte(s.secret + userID)
}
