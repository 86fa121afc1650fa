package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/iudanet/authsvc/internal/server/handlers"
	"github.com/iudanet/authsvc/internal/server/token"
)

// Authenticate создает middleware для проверки bearer token
//
// Токен берется из заголовка Authorization, при его отсутствии —
// из query параметра accessToken. Отсутствие токена — ошибка только
// при mandatory=true (анонимный запрос проходит дальше без identity).
// Предъявленный невалидный токен — ошибка всегда, независимо от mandatory.
// Все причины отказа наружу отдаются одинаковым 401.
func Authenticate(logger *slog.Logger, tokens *token.Service, mandatory bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Извлекаем кандидата: заголовок, затем query параметр
			candidate := r.Header.Get("Authorization")
			if candidate == "" {
				candidate = r.URL.Query().Get("accessToken")
			}

			if candidate == "" {
				if mandatory {
					logger.Warn("Missing access token", "path", r.URL.Path)
					http.Error(w, "Unauthorized", http.StatusUnauthorized)
					return
				}

				// Анонимный запрос: identity в контекст не кладем
				next.ServeHTTP(w, r)
				return
			}

			// Валидируем токен
			userID, err := tokens.Validate(candidate)
			if err != nil {
				logger.Warn("Invalid access token", "error", err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			// Добавляем user_id в контекст запроса
			ctx := context.WithValue(r.Context(), handlers.UserIDKey, userID)

			logger.Debug("User authenticated", "user_id", userID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
