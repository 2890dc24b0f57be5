package members

import (
	"context"

	"members-service/internal/model"
	"members-service/internal/rosterclient"
)

// RosterAPI описывает вызовы внешнего roster API, которые нужны загрузчику и редакторам строк.
// *rosterclient.Client реализует этот интерфейс.
type RosterAPI interface {
	FetchRoster(ctx context.Context, orgID string) (rosterclient.RosterResponse, error)
	UpdateName(ctx context.Context, userID, name string) (rosterclient.Response, error)
	UpdateRole(ctx context.Context, userID string, role model.Role) (rosterclient.Response, error)
	DeleteMember(ctx context.Context, userID string) (rosterclient.Response, error)
}

// AppState отдаёт общее состояние приложения, из которого берётся текущая организация.
type AppState interface {
	OrganizationID() string
}

// StaticOrg реализует AppState для процесса, работающего с одной организацией.
type StaticOrg string

// OrganizationID реализует AppState.
func (o StaticOrg) OrganizationID() string {
	return string(o)
}
