package http

import (
	"strings"

	"members-service/internal/httpkit"
	"members-service/internal/service"
)

// ValidateRequest проверяет DTO по тегам validate и возвращает ErrBadRequest
// с описанием первого невалидного поля.
func ValidateRequest(req any) error {
	if msg := httpkit.ValidationMessage(req); msg != "" {
		return service.ErrBadRequest(msg)
	}
	return nil
}

// ValidatePathID Валидация идентификатора из пути запроса.
func ValidatePathID(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return service.ErrBadRequest(name + " is required")
	}
	return nil
}
