package members

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"members-service/internal/model"
)

// Status описывает состояние загрузки списка.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

var (
	// ErrNoOrganization возвращается, если в состоянии приложения не выбрана организация.
	ErrNoOrganization = errors.New("organization is not resolved")

	// ErrMalformedRoster возвращается, если тело ответа не является JSON-массивом участников.
	ErrMalformedRoster = errors.New("roster payload is not a list")
)

// Loader один раз загружает список участников текущей организации и заполняет List.
type Loader struct {
	api     RosterAPI
	app     AppState
	list    *List
	metrics *Metrics

	mu     sync.Mutex
	status Status
}

// NewLoader создаёт загрузчик, который пишет результат в list.
func NewLoader(api RosterAPI, app AppState, list *List, metrics *Metrics) *Loader {
	return &Loader{
		api:     api,
		app:     app,
		list:    list,
		metrics: metrics,
		status:  StatusIdle,
	}
}

// Status возвращает текущее состояние загрузки.
func (l *Loader) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}

// Loading сообщает, что запрос ещё выполняется.
func (l *Loader) Loading() bool {
	return l.Status() == StatusLoading
}

// Load выполняет единственный запрос списка. Повторные вызовы ничего не делают.
// При успехе список полностью заменяется; при любой ошибке список не меняется,
// а ошибка возвращается только для журнала.
func (l *Loader) Load(ctx context.Context) error {
	l.mu.Lock()
	if l.status != StatusIdle {
		l.mu.Unlock()
		return nil
	}
	l.status = StatusLoading
	l.mu.Unlock()

	rows, err := l.fetch(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.status = StatusError
		l.metrics.load(false)
		return err
	}
	l.list.Set(rows)
	l.status = StatusSuccess
	l.metrics.load(true)
	return nil
}

func (l *Loader) fetch(ctx context.Context) ([]Member, error) {
	orgID := l.app.OrganizationID()
	if orgID == "" {
		return nil, ErrNoOrganization
	}

	resp, err := l.api.FetchRoster(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("fetch roster: %w", err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("fetch roster: status %d: %s", resp.StatusCode, resp.Error)
	}

	return DecodeRoster(resp.Payload)
}

// DecodeRoster превращает тело ответа roster API в строки таблицы.
// Скалярные поля приводятся к строке независимо от JSON-типа, в котором их прислал сервер;
// роль передаётся без проверки.
func DecodeRoster(payload []byte) ([]Member, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrMalformedRoster
	}

	var entries []rosterEntry
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRoster, err)
	}

	rows := make([]Member, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, Member{
			ID:          string(e.ID),
			Name:        string(e.Name),
			Email:       string(e.Email),
			AccessLevel: model.Role(e.Role),
			JoinedOn:    string(e.CreatedAt),
		})
	}
	return rows, nil
}

type rosterEntry struct {
	ID        looseString `json:"id"`
	Name      looseString `json:"name"`
	Email     looseString `json:"email"`
	Role      looseString `json:"role"`
	CreatedAt looseString `json:"createdAt"`
}

// looseString принимает JSON-строку или любое скалярное значение и хранит его текстом.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*s = ""
	case len(b) > 0 && b[0] == '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = looseString(str)
	case len(b) > 0 && (b[0] == '{' || b[0] == '['):
		return fmt.Errorf("expected scalar, got %s", b)
	default:
		*s = looseString(b)
	}
	return nil
}
