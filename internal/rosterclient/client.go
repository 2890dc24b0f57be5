// Package rosterclient реализует HTTP-клиент внешнего roster API:
// список участников организации, изменение имени и роли, удаление.
package rosterclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"members-service/internal/model"
)

// RequestIDHeader заголовок, которым помечается каждый исходящий запрос.
const RequestIDHeader = "X-Request-ID"

// DefaultMaxBodySize ограничивает размер читаемого тела ответа.
const DefaultMaxBodySize = 4 << 20

// ErrResponseTooLarge возвращается, если тело ответа больше допустимого.
var ErrResponseTooLarge = errors.New("roster api response too large")

// Response описывает результат мутирующего вызова: HTTP-статус и сообщение об ошибке от сервера, если оно было.
type Response struct {
	StatusCode int
	Error      string
}

// OK сообщает, что сервер ответил 200.
func (r Response) OK() bool {
	return r.StatusCode == http.StatusOK
}

// RosterResponse описывает ответ на запрос списка участников.
// Payload содержит тело ответа как есть: разбор и проверка формы выполняются потребителем.
type RosterResponse struct {
	Response
	Payload json.RawMessage
}

// Client вызывает roster API. Ошибки транспорта возвращаются как error,
// ответы сервера с любым статусом возвращаются как Response.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	log     *slog.Logger
	maxBody int64
}

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient подменяет используемый http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

// WithMaxBodySize меняет предел размера тела ответа.
func WithMaxBodySize(n int64) Option {
	return func(cl *Client) {
		cl.maxBody = n
	}
}

// WithLogger задаёт логгер клиента.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) {
		cl.log = l
	}
}

// New создаёт клиент для roster API с базовым адресом baseURL.
// По умолчанию запросы идут через транспорт с трассировкой OpenTelemetry и без таймаута.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse roster api url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("roster api url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		log:     slog.New(slog.DiscardHandler),
		maxBody: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchRoster запрашивает участников организации orgID.
func (c *Client) FetchRoster(ctx context.Context, orgID string) (RosterResponse, error) {
	resp, body, err := c.do(ctx, http.MethodGet, "/api/v1/orgUsers/"+url.PathEscape(orgID), nil)
	if err != nil {
		return RosterResponse{}, err
	}
	out := RosterResponse{Response: resp}
	if resp.OK() {
		out.Payload = json.RawMessage(body)
	}
	return out, nil
}

// UpdateName меняет имя участника userID.
func (c *Client) UpdateName(ctx context.Context, userID, name string) (Response, error) {
	resp, _, err := c.do(ctx, http.MethodPut, "/api/v1/user/"+url.PathEscape(userID), map[string]string{
		"name": name,
	})
	return resp, err
}

// UpdateRole меняет роль участника userID.
func (c *Client) UpdateRole(ctx context.Context, userID string, role model.Role) (Response, error) {
	resp, _, err := c.do(ctx, http.MethodPut, "/api/v1/rbac/role/"+url.PathEscape(userID), map[string]string{
		"group_name": role.String(),
	})
	return resp, err
}

// DeleteMember удаляет участника userID.
func (c *Client) DeleteMember(ctx context.Context, userID string) (Response, error) {
	resp, _, err := c.do(ctx, http.MethodDelete, "/api/v1/user/"+url.PathEscape(userID), nil)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (Response, []byte, error) {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return Response{}, nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return Response{}, nil, fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("roster api request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("request_id", requestID),
			slog.Any("err", err),
		)
		return Response{}, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, c.maxBody+1))
	if err != nil {
		return Response{}, nil, fmt.Errorf("read response: %w", err)
	}
	if int64(len(raw)) > c.maxBody {
		c.log.Warn("roster api response too large",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("request_id", requestID),
			slog.Int64("limit", c.maxBody),
		)
		return Response{}, nil, fmt.Errorf("%s %s: %w", method, path, ErrResponseTooLarge)
	}

	resp := Response{StatusCode: res.StatusCode}
	if !resp.OK() {
		resp.Error = errorMessage(raw)
	}

	c.log.Debug("roster api request",
		slog.String("method", method),
		slog.String("path", path),
		slog.String("request_id", requestID),
		slog.Int("status", res.StatusCode),
	)
	return resp, raw, nil
}

// errorMessage достаёт сообщение об ошибке из тела ответа.
// Поддерживаются формы {"error":{"message":"..."}} и {"error":"..."}.
func errorMessage(raw []byte) string {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Error) == 0 {
		return ""
	}

	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(envelope.Error, &nested); err == nil {
		return nested.Message
	}

	var flat string
	if err := json.Unmarshal(envelope.Error, &flat); err == nil {
		return flat
	}
	return ""
}
