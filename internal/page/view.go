// Package page строит представление страницы участников из состояния members.Workspace
// и выводит его в HTML, JSON или текстовую таблицу.
package page

import (
	"math"
	"strconv"
	"time"

	"golang.org/x/text/language"

	"members-service/internal/i18n"
	"members-service/internal/members"
	"members-service/internal/model"
)

// JoinedLayout формат даты вступления в таблице.
const JoinedLayout = "January 02,2006"

// Column описывает колонку таблицы.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// RowView описывает строку таблицы в готовом к выводу виде.
type RowView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	AccessLevel string `json:"accessLevel"`
	JoinedOn    string `json:"joinedOn"`
	State       string `json:"state"`
	Busy        bool   `json:"busy"`
}

// EditModal описывает открытое окно редактирования.
type EditModal struct {
	MemberID   string   `json:"memberId"`
	Title      string   `json:"title"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Role       string   `json:"role"`
	Roles      []string `json:"roles"`
	Submitting bool     `json:"submitting"`
}

// DeleteModal описывает открытое окно удаления.
type DeleteModal struct {
	MemberID   string `json:"memberId"`
	Title      string `json:"title"`
	Prompt     string `json:"prompt"`
	Submitting bool   `json:"submitting"`
}

// ToastView описывает переведённое уведомление.
type ToastView struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Labels подписи элементов управления.
type Labels struct {
	Edit          string `json:"edit"`
	Delete        string `json:"delete"`
	Save          string `json:"save"`
	Cancel        string `json:"cancel"`
	ConfirmDelete string `json:"confirmDelete"`
	Submitting    string `json:"submitting"`
	Loading       string `json:"loading"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
}

// View полное представление страницы.
type View struct {
	Lang        string       `json:"lang"`
	Title       string       `json:"title"`
	Loading     bool         `json:"loading"`
	Status      string       `json:"status"`
	Empty       string       `json:"empty,omitempty"`
	Columns     []Column     `json:"columns"`
	Rows        []RowView    `json:"rows"`
	EditModal   *EditModal   `json:"editModal,omitempty"`
	DeleteModal *DeleteModal `json:"deleteModal,omitempty"`
	Toasts      []ToastView  `json:"toasts"`
	Labels      Labels       `json:"labels"`
}

// State состояние страницы, из которого строится View.
type State struct {
	Status members.Status
	Rows   []members.Row
	Toasts []members.Toast
}

// Snapshot снимает состояние с ws и забирает накопленные уведомления.
func Snapshot(ws *members.Workspace) State {
	return State{
		Status: ws.Status(),
		Rows:   ws.Rows(),
		Toasts: ws.Toasts(),
	}
}

// Builder переводит подписи и форматирует даты.
type Builder struct {
	tr  *i18n.Translator
	loc *time.Location
}

// NewBuilder создаёт построитель представления. Даты выводятся в часовом поясе loc.
func NewBuilder(tr *i18n.Translator, loc *time.Location) *Builder {
	if loc == nil {
		loc = time.UTC
	}
	return &Builder{tr: tr, loc: loc}
}

// Build строит представление на языке tag.
func (b *Builder) Build(tag language.Tag, st State) View {
	t := func(key string, args ...any) string {
		return b.tr.Text(tag, key, args...)
	}

	v := View{
		Lang:    tag.String(),
		Title:   t("members.title"),
		Loading: st.Status == members.StatusLoading || st.Status == members.StatusIdle,
		Status:  string(st.Status),
		Columns: []Column{
			{Key: "name", Label: t("members.column.name")},
			{Key: "emails", Label: t("members.column.emails")},
			{Key: "accessLevel", Label: t("members.column.access_level")},
			{Key: "joinedOn", Label: t("members.column.joined_on")},
			{Key: "action", Label: t("members.column.action")},
		},
		Rows:   make([]RowView, 0, len(st.Rows)),
		Toasts: make([]ToastView, 0, len(st.Toasts)),
		Labels: Labels{
			Edit:          t("members.action.edit"),
			Delete:        t("members.action.delete"),
			Save:          t("members.button.save"),
			Cancel:        t("members.button.cancel"),
			ConfirmDelete: t("members.button.confirm_delete"),
			Submitting:    t("members.button.submitting"),
			Loading:       t("members.loading"),
			Name:          t("members.field.name"),
			Email:         t("members.field.email"),
			Role:          t("members.field.role"),
		},
	}

	for _, r := range st.Rows {
		submitting := r.State == members.StateSubmitting
		v.Rows = append(v.Rows, RowView{
			ID:          r.ID,
			Name:        r.Name,
			Email:       r.Email,
			AccessLevel: r.AccessLevel.String(),
			JoinedOn:    FormatJoined(r.JoinedOn, b.loc),
			State:       string(r.State),
			Busy:        submitting,
		})

		// На странице одновременно показывается одно окно: первое открытое по порядку строк
		switch {
		case r.EditOpen && v.EditModal == nil && v.DeleteModal == nil:
			d := members.DraftOf(r.Member)
			if r.Draft != nil {
				d = *r.Draft
			}
			v.EditModal = &EditModal{
				MemberID:   r.ID,
				Title:      t("members.modal.edit_title"),
				Name:       d.Name,
				Email:      d.Email,
				Role:       d.Role.String(),
				Roles:      roleNames(),
				Submitting: submitting,
			}
		case r.DeleteOpen && v.EditModal == nil && v.DeleteModal == nil:
			v.DeleteModal = &DeleteModal{
				MemberID:   r.ID,
				Title:      t("members.modal.delete_title"),
				Prompt:     t("members.modal.delete_confirm", r.Name),
				Submitting: submitting,
			}
		}
	}

	if !v.Loading && len(v.Rows) == 0 {
		v.Empty = t("members.empty")
	}

	for _, toast := range st.Toasts {
		msg := toast.Text
		if msg == "" {
			msg = t(toast.Key)
		}
		v.Toasts = append(v.Toasts, ToastView{Kind: string(toast.Kind), Message: msg})
	}
	return v
}

// FormatJoined выводит Unix-время в секундах как дату вступления.
// Значение, которое не является числом, выводится как есть.
func FormatJoined(raw string, loc *time.Location) string {
	if raw == "" {
		return ""
	}
	sec, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(sec) || math.IsInf(sec, 0) {
		return raw
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.Unix(int64(sec), 0).In(loc).Format(JoinedLayout)
}

func roleNames() []string {
	roles := model.Roles()
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, r.String())
	}
	return out
}
