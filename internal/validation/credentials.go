package validation

import (
	"fmt"
	"regexp"
)

// EmailPattern определяет допустимый формат email
// Общая длина ограничена 80 символами, домен должен содержать
// минимум одну точку либо быть IPv4 адресом в квадратных скобках
var EmailPattern = regexp.MustCompile(`^(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`)

const (
	// MaxEmailLen максимальная длина email
	MaxEmailLen = 80
	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 4
	// MaxFirstNameLen максимальная длина имени
	MaxFirstNameLen = 20
	// MaxLastNameLen максимальная длина фамилии
	MaxLastNameLen = 30
)

// ValidateEmail проверяет, что email соответствует требованиям
// Формат проверяется регулярным выражением, длина ограничена 80 символами
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if len(email) > MaxEmailLen {
		return fmt.Errorf("email must not exceed %d characters", MaxEmailLen)
	}

	if !EmailPattern.MatchString(email) {
		return fmt.Errorf("email has invalid format")
	}

	return nil
}

// ValidatePassword проверяет минимальные требования к паролю
// Минимум 4 символа
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}

	return nil
}

// ValidateName проверяет длину опционального поля имени
// Пустое значение допустимо, maxLength задает верхнюю границу
func ValidateName(name string, maxLength int) error {
	if len(name) > maxLength {
		return fmt.Errorf("name must not exceed %d characters", maxLength)
	}

	return nil
}
