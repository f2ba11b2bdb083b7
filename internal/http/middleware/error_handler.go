package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/promoshare/promocode-backend/internal/logger"
	"github.com/promoshare/promocode-backend/internal/repository"
	"github.com/promoshare/promocode-backend/internal/service"
)

// ErrorHandler обрабатывает ошибки централизованно.
// Маскирует внутренние ошибки и возвращает понятные сообщения клиенту.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Проверяем, не был ли уже отправлен ответ
		if c.Writer.Written() {
			return
		}

		if len(c.Errors) > 0 {
			err := c.Errors.Last()

			statusCode := http.StatusInternalServerError
			message := "внутренняя ошибка сервера"

			if logger.Log != nil {
				logger.Log.WithFields(logrus.Fields{
					"error":  err.Error(),
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
				}).Error("Request error")
			}

			// Обрабатываем известные типы ошибок
			if errors.Is(err.Err, repository.ErrPromocodeNotFound) {
				statusCode = http.StatusNotFound
				message = "промокод не найден"
			} else if errors.Is(err.Err, repository.ErrReportNotFound) {
				statusCode = http.StatusNotFound
				message = "жалоба не найдена"
			} else if errors.Is(err.Err, repository.ErrUserNotFound) {
				statusCode = http.StatusNotFound
				message = "пользователь не найден"
			} else if errors.Is(err.Err, repository.ErrSessionNotFound) {
				statusCode = http.StatusUnauthorized
				message = "сессия не найдена"
			} else if errors.Is(err.Err, service.ErrForbidden) {
				statusCode = http.StatusForbidden
				message = "доступ запрещён"
			} else if service.IsValidation(err.Err) {
				statusCode = http.StatusBadRequest
				message = err.Error()
			} else if err.Error() != "" {
				// Если ошибка содержит понятное сообщение, используем его,
				// но только если это не внутренняя ошибка
				errStr := err.Error()
				if !containsInternalKeywords(errStr) {
					message = errStr
					if contains(errStr, "неверный") || contains(errStr, "невалид") ||
						contains(errStr, "не может") || contains(errStr, "обязателен") ||
						contains(errStr, "неизвестн") || contains(errStr, "недопустим") {
						statusCode = http.StatusBadRequest
					} else if contains(errStr, "нет прав") || contains(errStr, "не авторизован") {
						statusCode = http.StatusForbidden
					}
				}
			}

			c.JSON(statusCode, gin.H{"error": message})
		}
	}
}

// containsInternalKeywords проверяет, содержит ли строка ключевые слова внутренних ошибок.
func containsInternalKeywords(s string) bool {
	keywords := []string{
		"sql:",
		"repository:",
		"database",
		"connection",
		"timeout",
		"internal",
		"panic",
		"runtime",
	}

	for _, keyword := range keywords {
		if contains(s, keyword) {
			return true
		}
	}
	return false
}

// contains проверяет, содержит ли строка подстроку (case-insensitive).
func contains(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
