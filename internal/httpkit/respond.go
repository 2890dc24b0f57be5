// Package httpkit содержит общую обвязку HTTP-обработчиков:
// JSON-ответы, конверт ошибки, журналирование ошибок, метрики запросов и проверку DTO.
package httpkit

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse конверт ошибки {"error":{"code","message"}}.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Failure описывает ошибку, которую обработчик отдаёт клиенту.
type Failure struct {
	Handler string
	Status  int
	Code    string
	Message string
	Err     error
}

// WriteJSON пишет v в формате JSON с указанным статусом.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// LogFailure пишет ошибку обработчика в журнал: 5xx как error, остальное как warn.
func LogFailure(log *slog.Logger, f Failure) {
	level := slog.LevelWarn
	if f.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	log.Log(context.Background(), level, "handler error",
		slog.String("handler", f.Handler),
		slog.String("code", f.Code),
		slog.String("message", f.Message),
		slog.Any("err", f.Err),
	)
}

// WriteFailure журналирует f и отвечает конвертом ошибки.
func WriteFailure(w http.ResponseWriter, log *slog.Logger, f Failure) {
	LogFailure(log, f)
	WriteJSON(w, f.Status, ErrorResponse{Error: ErrorBody{Code: f.Code, Message: f.Message}})
}
