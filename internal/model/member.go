// Package model содержит доменные структуры участников организации и их ролей.
package model

// Role описывает уровень доступа участника внутри организации.
type Role string

const (
	// RoleAdmin управляет организацией и её участниками.
	RoleAdmin Role = "ADMIN"
	// RoleEditor может изменять ресурсы организации.
	RoleEditor Role = "EDITOR"
	// RoleViewer имеет доступ только на чтение.
	RoleViewer Role = "VIEWER"
)

// Roles возвращает все известные роли в порядке убывания прав.
func Roles() []Role {
	return []Role{RoleAdmin, RoleEditor, RoleViewer}
}

// Valid сообщает, является ли роль одной из известных.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// OrgUser описывает участника организации в том виде, в котором его хранит и отдаёт roster API.
// CreatedAt хранится в секундах Unix-времени.
type OrgUser struct {
	ID        string `json:"id"`
	OrgID     string `json:"orgId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	CreatedAt int64  `json:"createdAt"`
}

// IsAdmin сообщает, обладает ли участник ролью администратора.
func (u OrgUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}
