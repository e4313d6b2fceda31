package validation

import (
	"errors"
	"fmt"
	"strings"

	"carriers/internal/entities"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidInput = errors.New("invalid input")

// Error описывает первое найденное нарушение.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *Error) Unwrap() error {
	return ErrInvalidInput
}

// TypeMismatch - поле пришло в теле не строкой.
func TypeMismatch(field string) *Error {
	return &Error{Field: field, Message: labelFor(field) + " must be a string"}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateCreate требует все три поля, pin ровно из 4 символов.
func ValidateCreate(m entities.CarrierModify) error {
	if err := check(OpCreate, FieldPhone, deref(m.Phone)); err != nil {
		return err
	}
	if err := check(OpCreate, FieldDescription, deref(m.Description)); err != nil {
		return err
	}
	return check(OpCreate, FieldPIN, deref(m.PIN))
}

// ValidateUpdate проверяет только переданные поля. pin используется для авторизации
// и обязателен всегда, новый pin передаётся в m.PIN.
func ValidateUpdate(pin string, m entities.CarrierModify) error {
	if m.Phone != nil {
		if err := check(OpUpdate, FieldPhone, *m.Phone); err != nil {
			return err
		}
	}
	if m.Description != nil {
		if err := check(OpUpdate, FieldDescription, *m.Description); err != nil {
			return err
		}
	}
	if err := check(OpUpdate, FieldPIN, pin); err != nil {
		return err
	}
	if m.PIN != nil {
		return check(OpUpdate, FieldNewPIN, *m.PIN)
	}
	return nil
}

func ValidateDelete(pin string) error {
	return check(OpDelete, FieldPIN, pin)
}

func check(op Operation, field, value string) error {
	rule, ok := ruleFor(field)
	if !ok {
		return fmt.Errorf("unknown field %q", field)
	}

	tag := rule.Tag(op)
	if tag == "" {
		return nil
	}

	// пробелы не считаются значением, но pin сравнивается как есть
	if field == FieldPhone || field == FieldDescription {
		value = strings.TrimSpace(value)
	}

	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return fmt.Errorf("validate %s: %w", field, err)
	}

	failedTag := validationErrors[0].Tag()
	message, ok := rule.Messages[failedTag]
	if !ok {
		message = fmt.Sprintf("%s is invalid", field)
	}

	return &Error{Field: field, Message: message}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
