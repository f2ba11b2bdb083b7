package service

import (
	"errors"
	"fmt"
)

// ErrForbidden возвращается при попытке изменить чужой промокод.
var ErrForbidden = errors.New("доступ запрещён")

// ValidationError помечает ошибку пользовательского ввода.
// Хэндлеры отдают текст таких ошибок клиенту как есть со статусом 400;
// все остальные ошибки сервисов считаются внутренними и маскируются.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

// invalid оборачивает ошибку пользовательского ввода.
func invalid(format string, args ...interface{}) error {
	return &ValidationError{Err: fmt.Errorf(format, args...)}
}

// IsValidation сообщает, вызвана ли ошибка пользовательским вводом.
func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
