package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"members-service/internal/model"
	"members-service/internal/repository"
)

// MsgLastAdmin сообщение, с которым отклоняется удаление или понижение последнего администратора.
const MsgLastAdmin = "cannot remove last admin"

// MemberRepository описывает контракт репозитория участников для бизнес-слоя.
type MemberRepository interface {
	ListByOrg(ctx context.Context, orgID string) ([]model.OrgUser, error)
	GetByID(ctx context.Context, id string) (model.OrgUser, error)
	Create(ctx context.Context, u model.OrgUser) (model.OrgUser, error)
	UpdateName(ctx context.Context, id, name string) (model.OrgUser, error)
	UpdateRole(ctx context.Context, id string, role model.Role) (model.OrgUser, error)
	Delete(ctx context.Context, id string) error
	LockAdmins(ctx context.Context, orgID string) (int, error)
}

// TransactionManager описывает запуск функции внутри транзакции.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// MemberService содержит бизнес-логику roster API: список участников,
// изменение имени и роли, удаление с защитой последнего администратора.
type MemberService struct {
	repo  MemberRepository
	tx    TransactionManager
	newID func() string
}

// NewMemberService создаёт новый сервис для операций над участниками организации.
func NewMemberService(repo MemberRepository, tx TransactionManager) *MemberService {
	return &MemberService{
		repo:  repo,
		tx:    tx,
		newID: uuid.NewString,
	}
}

// ListOrgUsers возвращает участников организации в порядке вступления.
func (s *MemberService) ListOrgUsers(ctx context.Context, orgID string) ([]model.OrgUser, error) {
	if orgID == "" {
		return nil, ErrBadRequest("orgId is required")
	}
	users, err := s.repo.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, ErrInternal("failed to list members", err)
	}
	return users, nil
}

// InviteMember добавляет участника в организацию и присваивает ему новый id.
func (s *MemberService) InviteMember(ctx context.Context, orgID, name, email string, role model.Role) (model.OrgUser, error) {
	if orgID == "" {
		return model.OrgUser{}, ErrBadRequest("orgId is required")
	}
	if strings.TrimSpace(email) == "" {
		return model.OrgUser{}, ErrBadRequest("email is required")
	}
	if !role.Valid() {
		return model.OrgUser{}, ErrBadRequest("unknown role " + role.String())
	}

	u, err := s.repo.Create(ctx, model.OrgUser{
		ID:    s.newID(),
		OrgID: orgID,
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
		Role:  role,
	})
	if err != nil {
		if errors.Is(err, repository.ErrMemberExists) {
			return model.OrgUser{}, ErrDomain("MEMBER_EXISTS", "member with this email already exists")
		}
		return model.OrgUser{}, ErrInternal("failed to invite member", err)
	}
	return u, nil
}

// EditUser меняет имя участника.
func (s *MemberService) EditUser(ctx context.Context, id, name string) (model.OrgUser, error) {
	if id == "" {
		return model.OrgUser{}, ErrBadRequest("userId is required")
	}
	if strings.TrimSpace(name) == "" {
		return model.OrgUser{}, ErrBadRequest("name must not be empty")
	}
	u, err := s.repo.UpdateName(ctx, id, strings.TrimSpace(name))
	if err != nil {
		return model.OrgUser{}, mapMemberErr(err, "failed to update member")
	}
	return u, nil
}

// UpdateRole меняет роль участника. Понижение единственного администратора
// организации отклоняется с кодом LAST_ADMIN.
func (s *MemberService) UpdateRole(ctx context.Context, id string, role model.Role) (model.OrgUser, error) {
	if id == "" {
		return model.OrgUser{}, ErrBadRequest("userId is required")
	}
	if !role.Valid() {
		return model.OrgUser{}, ErrBadRequest("unknown role " + role.String())
	}

	var updated model.OrgUser
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current.IsAdmin() && role != model.RoleAdmin {
			if err := s.ensureNotLastAdmin(ctx, current.OrgID); err != nil {
				return err
			}
		}
		updated, err = s.repo.UpdateRole(ctx, id, role)
		return err
	})
	if err != nil {
		return model.OrgUser{}, mapMemberErr(err, "failed to update role")
	}
	return updated, nil
}

// DeleteUser удаляет участника. Удаление единственного администратора отклоняется.
func (s *MemberService) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return ErrBadRequest("userId is required")
	}

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current.IsAdmin() {
			if err := s.ensureNotLastAdmin(ctx, current.OrgID); err != nil {
				return err
			}
		}
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return mapMemberErr(err, "failed to delete member")
	}
	return nil
}

func (s *MemberService) ensureNotLastAdmin(ctx context.Context, orgID string) error {
	admins, err := s.repo.LockAdmins(ctx, orgID)
	if err != nil {
		return err
	}
	if admins <= 1 {
		return ErrDomain("LAST_ADMIN", MsgLastAdmin)
	}
	return nil
}

func mapMemberErr(err error, msg string) error {
	var app *AppError
	if errors.As(err, &app) {
		return app
	}
	if errors.Is(err, repository.ErrMemberNotFound) {
		return ErrNotFound("member not found")
	}
	return ErrInternal(msg, err)
}
