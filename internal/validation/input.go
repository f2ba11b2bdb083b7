package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/promoshare/promocode-backend/internal/catalog"
)

// Константы валидации
const (
	MaxServiceNameLength = 100
	MaxCodeLength        = 100
	MaxDescriptionLength = 2000
	MaxDiscountLength    = 100
	MaxReasonLength      = 1000
	MinPasswordLength    = 8
	MaxPasswordLength    = 72 // предел bcrypt
)

// urlRegex ловит ссылки в описании: http(s)://... и голый www.-токен.
var urlRegex = regexp.MustCompile(`(?i)(https?://|www\.)[^\s/$.?#]\S*`)

// PromocodeInput содержит поля формы подачи/редактирования промокода.
// Category — отображаемое имя из справочника, не slug.
type PromocodeInput struct {
	ServiceName string
	Code        string
	Description string
	Discount    string
	Category    string
}

// ValidatePromocodeInput проверяет форму и возвращает slug категории.
// Правила: все поля обязательны, описание без ссылок, категория из справочника.
func ValidatePromocodeInput(in PromocodeInput) (string, error) {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"название сервиса", in.ServiceName, MaxServiceNameLength},
		{"промокод", in.Code, MaxCodeLength},
		{"описание", in.Description, MaxDescriptionLength},
		{"размер скидки", in.Discount, MaxDiscountLength},
		{"категория", in.Category, 0},
	}
	for _, f := range fields {
		if err := ValidateNonEmpty(f.name, f.value); err != nil {
			return "", err
		}
		if f.max > 0 {
			if err := ValidateLength(f.name, f.value, 0, f.max); err != nil {
				return "", err
			}
		}
	}

	if urlRegex.MatchString(in.Description) {
		return "", fmt.Errorf("описание не может содержать ссылки на сайты")
	}

	slug, ok := catalog.SlugByName(strings.TrimSpace(in.Category))
	if !ok {
		return "", fmt.Errorf("неизвестная категория: %s", in.Category)
	}

	return slug, nil
}

// ContainsLink сообщает, содержит ли текст ссылку.
func ContainsLink(text string) bool {
	return urlRegex.MatchString(text)
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidateLength проверяет длину строки в символах.
func ValidateLength(fieldName, value string, min, max int) error {
	length := len([]rune(value))
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateReason проверяет причину жалобы.
func ValidateReason(reason string) error {
	if err := ValidateNonEmpty("причина жалобы", reason); err != nil {
		return err
	}
	return ValidateLength("причина жалобы", reason, 0, MaxReasonLength)
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("некорректный формат email")
	}
	if len(parts[0]) > 64 || len(parts[1]) > 255 {
		return fmt.Errorf("email слишком длинный")
	}

	domainRegex := regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	if !domainRegex.MatchString(parts[1]) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidatePassword проверяет пароль при регистрации.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("пароль обязателен")
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("пароль должен быть не менее %d символов", MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("пароль должен быть не более %d символов", MaxPasswordLength)
	}
	return nil
}
