package members

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrUnknownMember возвращается, если строки с таким id нет в списке.
var ErrUnknownMember = errors.New("member is not in the list")

// Row описывает строку вместе с состоянием её редактора.
type Row struct {
	Member
	State      EditorState `json:"state"`
	EditOpen   bool        `json:"editOpen"`
	DeleteOpen bool        `json:"deleteOpen"`
	Draft      *Draft      `json:"draft,omitempty"`
}

// Workspace объединяет список, загрузчик и редакторы строк одной открытой страницы.
type Workspace struct {
	api     RosterAPI
	list    *List
	loader  *Loader
	inbox   *Inbox
	log     *slog.Logger
	metrics *Metrics

	mu      sync.Mutex
	editors map[string]*RowEditor
}

// NewWorkspace создаёт страницу для организации из app.
func NewWorkspace(api RosterAPI, app AppState, log *slog.Logger, metrics *Metrics) *Workspace {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	list := NewList()
	return &Workspace{
		api:     api,
		list:    list,
		loader:  NewLoader(api, app, list, metrics),
		inbox:   NewInbox(),
		log:     log,
		metrics: metrics,
		editors: make(map[string]*RowEditor),
	}
}

// Mount загружает список. Ошибка загрузки только пишется в журнал.
func (w *Workspace) Mount(ctx context.Context) {
	if err := w.loader.Load(ctx); err != nil {
		w.log.Warn("roster load failed", slog.Any("err", err))
	}
}

// Status возвращает состояние загрузки списка.
func (w *Workspace) Status() Status {
	return w.loader.Status()
}

// Loading сообщает, что список ещё загружается.
func (w *Workspace) Loading() bool {
	return w.loader.Loading()
}

// Members возвращает текущие строки без состояния редакторов.
func (w *Workspace) Members() []Member {
	return w.list.Snapshot()
}

// Rows возвращает строки в порядке ответа сервера вместе с состоянием редакторов.
// Редакторы удалённых строк при этом забываются.
func (w *Workspace) Rows() []Row {
	members := w.list.Snapshot()

	w.mu.Lock()
	defer w.mu.Unlock()

	present := make(map[string]struct{}, len(members))
	rows := make([]Row, 0, len(members))
	for _, m := range members {
		present[m.ID] = struct{}{}
		row := Row{Member: m, State: StateIdle}
		if ed, ok := w.editors[m.ID]; ok {
			row.State = ed.State()
			row.EditOpen = ed.EditModalOpen()
			row.DeleteOpen = ed.DeleteModalOpen()
			if row.EditOpen {
				d := ed.Draft()
				row.Draft = &d
			}
		}
		rows = append(rows, row)
	}
	for id, ed := range w.editors {
		if _, ok := present[id]; !ok && ed.State() != StateSubmitting {
			delete(w.editors, id)
		}
	}
	return rows
}

// Toasts забирает накопленные уведомления.
func (w *Workspace) Toasts() []Toast {
	return w.inbox.Drain()
}

// Notify позволяет добавить уведомление извне, например из обработчика формы.
func (w *Workspace) Notify(t Toast) {
	w.inbox.Notify(t)
}

func (w *Workspace) editor(id string) (*RowEditor, Member, error) {
	m, ok := w.list.Get(id)
	if !ok {
		return nil, Member{}, ErrUnknownMember
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	ed, ok := w.editors[id]
	if !ok {
		ed = NewRowEditor(id, w.api, w.list, w.inbox, w.log, w.metrics)
		w.editors[id] = ed
	}
	return ed, m, nil
}

// OpenEdit открывает окно редактирования строки id.
func (w *Workspace) OpenEdit(id string) error {
	ed, m, err := w.editor(id)
	if err != nil {
		return err
	}
	return ed.OpenEdit(m)
}

// OpenDelete открывает окно удаления строки id.
func (w *Workspace) OpenDelete(id string) error {
	ed, _, err := w.editor(id)
	if err != nil {
		return err
	}
	return ed.OpenDelete()
}

// Draft возвращает черновик строки id.
func (w *Workspace) Draft(id string) (Draft, error) {
	ed, _, err := w.editor(id)
	if err != nil {
		return Draft{}, err
	}
	return ed.Draft(), nil
}

// SetDraft меняет черновик строки id.
func (w *Workspace) SetDraft(id string, d Draft) error {
	ed, _, err := w.editor(id)
	if err != nil {
		return err
	}
	return ed.SetDraft(d)
}

// Close закрывает окно строки id.
func (w *Workspace) Close(id string) error {
	ed, _, err := w.editor(id)
	if err != nil {
		return err
	}
	ed.Close()
	return nil
}

// ConfirmEdit подтверждает редактирование строки id.
func (w *Workspace) ConfirmEdit(ctx context.Context, id string) (Toast, error) {
	ed, _, err := w.editor(id)
	if err != nil {
		return Toast{}, err
	}
	return ed.ConfirmEdit(ctx)
}

// ConfirmDelete подтверждает удаление строки id.
func (w *Workspace) ConfirmDelete(ctx context.Context, id string) (Toast, error) {
	ed, _, err := w.editor(id)
	if err != nil {
		return Toast{}, err
	}
	return ed.ConfirmDelete(ctx)
}
