package handlers

import "context"

// contextKey тип для ключей контекста запроса
type contextKey string

const (
	// UserIDKey ключ для хранения user_id в контексте
	UserIDKey contextKey = "user_id"
)

// GetUserID извлекает user_id из контекста запроса
// Возвращает false, если запрос анонимный
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}
