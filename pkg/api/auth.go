package api

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Email     string `json:"email"`               // email пользователя (уникальный)
	Password  string `json:"password"`            // пароль пользователя
	FirstName string `json:"firstname,omitempty"` // имя (опционально, до 20 символов)
	LastName  string `json:"lastname,omitempty"`  // фамилия (опционально, до 30 символов)
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Email    string `json:"email"`    // email пользователя
	Password string `json:"password"` // пароль пользователя
}

// TokenResponse представляет ответ с access token
// Возвращается и при регистрации, и при логине
type TokenResponse struct {
	Token     string `json:"token"`      // подписанный bearer token
	ExpiresIn int64  `json:"expires_in"` // время жизни токена в секундах
}

// ProfileResponse представляет публичный профиль пользователя
// Пароль никогда не включается в ответ
type ProfileResponse struct {
	UserID    string `json:"user_id"`              // UUID пользователя
	Email     string `json:"email"`                // email пользователя
	FirstName string `json:"first_name,omitempty"` // имя
	LastName  string `json:"last_name,omitempty"`  // фамилия
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
