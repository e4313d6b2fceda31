// Package response собирает JSON-ответы carrier-ручек.
// Тела ошибок всегда {message} или {message, field}, внутренние детали наружу не уходят.
package response

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"carriers/internal/entities"
	"carriers/internal/generated/dto"
	"carriers/internal/validation"
	"carriers/pkg/logger"
)

const (
	MessageCarrierNotFound = "Carrier not found"
	MessageInvalidBody     = "Invalid request body"
	MessageInvalidPIN      = "Invalid PIN"
	MessageInternal        = "Internal server error"
)

func JSON(w http.ResponseWriter, log logger.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

func Error(w http.ResponseWriter, log logger.Logger, status int, message string) {
	JSON(w, log, status, dto.ErrorResponse{Message: message})
}

// Invalid отвечает 400 с полем, на котором споткнулась валидация.
func Invalid(w http.ResponseWriter, log logger.Logger, validationErr *validation.Error) {
	field := validationErr.Field
	JSON(w, log, http.StatusBadRequest, dto.ErrorResponse{
		Message: validationErr.Message,
		Field:   &field,
	})
}

// DecodeBody разбирает JSON-тело в dst. Пустое тело равносильно {}, чтобы
// отсутствующие поля дошли до валидации. Поле не того типа даёт 400 с именем поля.
// Возвращает false, если ответ уже записан.
func DecodeBody(w http.ResponseWriter, log logger.Logger, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		Invalid(w, log, validation.TypeMismatch(typeErr.Field))
		return false
	}

	Error(w, log, http.StatusBadRequest, MessageInvalidBody)
	return false
}

// Internal логирует причину и отдаёт клиенту только общее сообщение.
func Internal(w http.ResponseWriter, log logger.Logger, err error) {
	log.With(
		logger.NewField("error", err),
	).Error("request failed")
	Error(w, log, http.StatusInternalServerError, MessageInternal)
}

func Carrier(carrier *entities.Carrier) dto.Carrier {
	return dto.Carrier{
		ID:          carrier.ID,
		Phone:       carrier.Phone,
		Description: carrier.Description,
		Pin:         carrier.PIN,
		CreatedAt:   carrier.CreatedAt,
	}
}

// Carriers никогда не возвращает nil, пустой список кодируется как [].
func Carriers(carriers []entities.Carrier) []dto.Carrier {
	res := make([]dto.Carrier, 0, len(carriers))
	for i := range carriers {
		res = append(res, Carrier(&carriers[i]))
	}
	return res
}
