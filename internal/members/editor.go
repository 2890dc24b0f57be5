package members

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"members-service/internal/rosterclient"
)

// EditorState описывает состояние редактора строки.
type EditorState string

const (
	StateIdle            EditorState = "idle"
	StateEditModalOpen   EditorState = "edit_modal_open"
	StateDeleteModalOpen EditorState = "delete_modal_open"
	StateSubmitting      EditorState = "submitting"
)

// ErrInvalidTransition возвращается, если действие недопустимо в текущем состоянии редактора.
var ErrInvalidTransition = errors.New("action is not allowed in the current editor state")

type modal int

const (
	modalNone modal = iota
	modalEdit
	modalDelete
)

// RowEditor хранит состояние модальных окон и черновик для одной строки
// и синхронизирует общий список с результатом запросов к roster API.
// Список доступен редактору только через Mutator.
type RowEditor struct {
	id       string
	api      RosterAPI
	rows     Mutator
	notifier Notifier
	log      *slog.Logger
	metrics  *Metrics

	mu         sync.Mutex
	modal      modal
	submitting bool
	draft      Draft
}

// NewRowEditor создаёт редактор строки id.
func NewRowEditor(id string, api RosterAPI, rows Mutator, notifier Notifier, log *slog.Logger, metrics *Metrics) *RowEditor {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &RowEditor{
		id:       id,
		api:      api,
		rows:     rows,
		notifier: notifier,
		log:      log,
		metrics:  metrics,
	}
}

// ID возвращает идентификатор строки.
func (e *RowEditor) ID() string {
	return e.id
}

// State возвращает текущее состояние редактора.
func (e *RowEditor) State() EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

func (e *RowEditor) stateLocked() EditorState {
	switch {
	case e.submitting:
		return StateSubmitting
	case e.modal == modalEdit:
		return StateEditModalOpen
	case e.modal == modalDelete:
		return StateDeleteModalOpen
	default:
		return StateIdle
	}
}

// EditModalOpen сообщает, показано ли окно редактирования (в том числе во время отправки).
func (e *RowEditor) EditModalOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.modal == modalEdit
}

// DeleteModalOpen сообщает, показано ли окно удаления (в том числе во время отправки).
func (e *RowEditor) DeleteModalOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.modal == modalDelete
}

// Draft возвращает текущий черновик.
func (e *RowEditor) Draft() Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}

// OpenEdit открывает окно редактирования и заполняет черновик значениями current.
func (e *RowEditor) OpenEdit(current Member) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stateLocked() != StateIdle {
		return ErrInvalidTransition
	}
	e.modal = modalEdit
	e.draft = DraftOf(current)
	return nil
}

// OpenDelete открывает окно подтверждения удаления.
func (e *RowEditor) OpenDelete() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stateLocked() != StateIdle {
		return ErrInvalidTransition
	}
	e.modal = modalDelete
	return nil
}

// SetDraft меняет черновик. Допустимо только при открытом окне редактирования.
func (e *RowEditor) SetDraft(d Draft) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stateLocked() != StateEditModalOpen {
		return ErrInvalidTransition
	}
	e.draft = d
	return nil
}

// Close закрывает открытое окно и отбрасывает черновик.
// Запрос, отправленный до закрытия, не отменяется: его результат всё равно
// попадёт в список и в уведомления.
func (e *RowEditor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.modal = modalNone
	e.draft = Draft{}
}

// ConfirmEdit параллельно отправляет изменение имени и роли и ждёт оба ответа.
// Строка в списке меняется только если оба ответа имеют статус 200;
// иначе окно остаётся открытым, а черновик сохраняется для повтора.
// Возвращает показанное уведомление.
func (e *RowEditor) ConfirmEdit(ctx context.Context) (Toast, error) {
	e.mu.Lock()
	if e.stateLocked() != StateEditModalOpen {
		e.mu.Unlock()
		return Toast{}, ErrInvalidTransition
	}
	draft := e.draft
	e.submitting = true
	e.mu.Unlock()

	// Закрытие окна или уход со страницы не прерывает запросы
	ctx = context.WithoutCancel(ctx)

	var nameResp, roleResp rosterclient.Response
	var g errgroup.Group
	g.Go(func() error {
		var err error
		nameResp, err = e.api.UpdateName(ctx, e.id, draft.Name)
		return err
	})
	g.Go(func() error {
		var err error
		roleResp, err = e.api.UpdateRole(ctx, e.id, draft.Role)
		return err
	})
	err := g.Wait()

	ok := err == nil && nameResp.OK() && roleResp.OK()
	var toast Toast
	switch {
	case ok:
		e.rows.Replace(e.id, draft.Apply)
		toast = SuccessToast()
	case err != nil:
		e.log.Warn("member update failed", slog.String("member_id", e.id), slog.Any("err", err))
		toast = ErrorToast("")
	default:
		e.log.Warn("member update rejected",
			slog.String("member_id", e.id),
			slog.Int("name_status", nameResp.StatusCode),
			slog.Int("role_status", roleResp.StatusCode),
		)
		toast = ErrorToast(firstNonEmpty(nameResp.Error, roleResp.Error))
	}
	e.metrics.action("edit", ok)
	e.notify(toast)

	e.mu.Lock()
	e.submitting = false
	if ok {
		e.modal = modalNone
		e.draft = Draft{}
	}
	e.mu.Unlock()

	return toast, nil
}

// ConfirmDelete отправляет удаление участника. При статусе 200 строка удаляется из списка
// и окно закрывается; иначе окно остаётся открытым.
func (e *RowEditor) ConfirmDelete(ctx context.Context) (Toast, error) {
	e.mu.Lock()
	if e.stateLocked() != StateDeleteModalOpen {
		e.mu.Unlock()
		return Toast{}, ErrInvalidTransition
	}
	e.submitting = true
	e.mu.Unlock()

	ctx = context.WithoutCancel(ctx)

	resp, err := e.api.DeleteMember(ctx, e.id)
	ok := err == nil && resp.OK()

	var toast Toast
	switch {
	case ok:
		e.rows.Remove(e.id)
		toast = SuccessToast()
	case err != nil:
		e.log.Warn("member delete failed", slog.String("member_id", e.id), slog.Any("err", err))
		toast = ErrorToast("")
	default:
		e.log.Warn("member delete rejected", slog.String("member_id", e.id), slog.Int("status", resp.StatusCode))
		toast = ErrorToast(resp.Error)
	}
	e.metrics.action("delete", ok)
	e.notify(toast)

	e.mu.Lock()
	e.submitting = false
	if ok {
		e.modal = modalNone
	}
	e.mu.Unlock()

	return toast, nil
}

func (e *RowEditor) notify(t Toast) {
	if e.notifier != nil {
		e.notifier.Notify(t)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
