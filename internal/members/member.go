// Package members синхронизирует список участников организации, полученный из roster API,
// с локальными строками таблицы: загрузка списка и редактирование/удаление отдельных строк.
package members

import "members-service/internal/model"

// Member описывает строку таблицы участников.
// JoinedOn хранит Unix-время вступления в секундах в виде строки, как его прислал сервер.
type Member struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	AccessLevel model.Role `json:"accessLevel"`
	JoinedOn    string     `json:"joinedOn"`
}

// Draft описывает несохранённые значения из модального окна редактирования.
type Draft struct {
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

// DraftOf заполняет черновик текущими значениями строки.
func DraftOf(m Member) Draft {
	return Draft{Name: m.Name, Email: m.Email, Role: m.AccessLevel}
}

// Apply возвращает копию строки с именем, ролью и email из черновика.
func (d Draft) Apply(m Member) Member {
	m.Name = d.Name
	m.AccessLevel = d.Role
	m.Email = d.Email
	return m
}
