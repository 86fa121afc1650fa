package models

import "time"

// User представляет пользователя в системе
type User struct {
	ID        string    `json:"id"`         // UUID пользователя
	Email     string    `json:"email"`      // уникальный email
	Password  string    `json:"-"`          // пароль как хранится в БД (схема зависит от PASSWORD_SCHEME)
	FirstName string    `json:"first_name"` // имя
	LastName  string    `json:"last_name"`  // фамилия
	CreatedAt time.Time `json:"created_at"` // время создания
}
