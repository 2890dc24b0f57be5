package members

import "sync"

// ToastKind различает успешные и ошибочные уведомления.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Ключи сообщений каталога common, которыми подписываются уведомления.
const (
	MsgSuccess            = "common.success"
	MsgSomethingWentWrong = "common.something_went_wrong"
)

// Toast описывает уведомление для пользователя.
// Если Text заполнен (сообщение от сервера), он показывается как есть,
// иначе отображается перевод ключа Key.
type Toast struct {
	Kind ToastKind `json:"kind"`
	Key  string    `json:"key,omitempty"`
	Text string    `json:"text,omitempty"`
}

// SuccessToast возвращает стандартное уведомление об успехе.
func SuccessToast() Toast {
	return Toast{Kind: ToastSuccess, Key: MsgSuccess}
}

// ErrorToast возвращает уведомление об ошибке с сообщением сервера
// или с общим сообщением, если сервер его не прислал.
func ErrorToast(serverMessage string) Toast {
	if serverMessage != "" {
		return Toast{Kind: ToastError, Text: serverMessage}
	}
	return Toast{Kind: ToastError, Key: MsgSomethingWentWrong}
}

// Notifier принимает уведомления по принципу fire-and-forget.
type Notifier interface {
	Notify(t Toast)
}

// Inbox копит уведомления, пока представление их не заберёт.
type Inbox struct {
	mu     sync.Mutex
	toasts []Toast
}

// NewInbox создаёт пустую очередь уведомлений.
func NewInbox() *Inbox {
	return &Inbox{}
}

// Notify реализует Notifier.
func (in *Inbox) Notify(t Toast) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.toasts = append(in.toasts, t)
}

// Drain возвращает накопленные уведомления и очищает очередь.
func (in *Inbox) Drain() []Toast {
	in.mu.Lock()
	defer in.mu.Unlock()
	out := in.toasts
	in.toasts = nil
	return out
}
