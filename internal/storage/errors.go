package storage

import (
	"errors"
	"fmt"
)

// Error - ошибка чтения или записи в хранилище
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap оборачивает err в *Error; nil остается nil
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var storageErr *Error
	if errors.As(err, &storageErr) {
		return err
	}
	return &Error{Op: op, Err: err}
}

// IsStorageError проверяет, что ошибка пришла из хранилища
func IsStorageError(err error) bool {
	var storageErr *Error
	return errors.As(err, &storageErr)
}
