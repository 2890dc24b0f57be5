package members

import (
	"slices"
	"sync"
)

// Mutator даёт редактору строки ровно две операции над общим списком:
// замену элемента по id и удаление элемента по id.
type Mutator interface {
	Replace(id string, fn func(Member) Member)
	Remove(id string)
}

// List хранит упорядоченный список строк. Порядок совпадает с порядком ответа сервера.
// Все изменения выполняются как чистые функции от предыдущего состояния под мьютексом.
type List struct {
	mu   sync.RWMutex
	rows []Member
}

// NewList создаёт пустой список.
func NewList() *List {
	return &List{rows: []Member{}}
}

// Snapshot возвращает копию текущих строк.
func (l *List) Snapshot() []Member {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.rows)
}

// Len возвращает количество строк.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.rows)
}

// Get возвращает строку по id.
func (l *List) Get(id string) (Member, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i := indexOf(l.rows, id)
	if i < 0 {
		return Member{}, false
	}
	return l.rows[i], true
}

// Set полностью заменяет содержимое списка.
func (l *List) Set(rows []Member) {
	l.Update(func([]Member) []Member {
		return slices.Clone(rows)
	})
}

// Update применяет fn к текущему состоянию и сохраняет результат.
// fn не должна изменять переданный срез на месте.
func (l *List) Update(fn func(prev []Member) []Member) {
	l.mu.Lock()
	defer l.mu.Unlock()
	next := fn(l.rows)
	if next == nil {
		next = []Member{}
	}
	l.rows = next
}

// Replace реализует Mutator.
func (l *List) Replace(id string, fn func(Member) Member) {
	l.Update(func(prev []Member) []Member {
		return ReplaceByID(prev, id, fn)
	})
}

// Remove реализует Mutator.
func (l *List) Remove(id string) {
	l.Update(func(prev []Member) []Member {
		return RemoveByID(prev, id)
	})
}

// ReplaceByID возвращает новый срез, в котором строка id заменена на fn(строка).
// Если строки нет, возвращается исходный срез.
func ReplaceByID(rows []Member, id string, fn func(Member) Member) []Member {
	i := indexOf(rows, id)
	if i < 0 {
		return rows
	}
	next := slices.Clone(rows)
	next[i] = fn(rows[i])
	return next
}

// RemoveByID возвращает новый срез без строки id, сохраняя порядок остальных.
// Если строки нет, возвращается исходный срез.
func RemoveByID(rows []Member, id string) []Member {
	i := indexOf(rows, id)
	if i < 0 {
		return rows
	}
	next := make([]Member, 0, len(rows)-1)
	next = append(next, rows[:i]...)
	return append(next, rows[i+1:]...)
}

func indexOf(rows []Member, id string) int {
	return slices.IndexFunc(rows, func(m Member) bool {
		return m.ID == id
	})
}
