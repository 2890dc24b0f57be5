package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"members-service/internal/model"
	"members-service/internal/repository"
	"members-service/internal/service"
	"members-service/internal/service/mocks"
)

func passThroughTx(tm *mocks.TransactionManager) {
	tm.On("RunInTransaction", mock.Anything, mock.Anything).Return(func(ctx context.Context, fn func(context.Context) error) error {
		return fn(ctx)
	})
}

func TestMemberService_ListOrgUsers(t *testing.T) {
	alice := model.OrgUser{ID: "1", OrgID: "org-1", Name: "Alice", Email: "a@x.com", Role: model.RoleAdmin, CreatedAt: 1700000000}

	tests := []struct {
		name       string
		orgID      string
		setupMocks func(mr *mocks.MemberRepository)
		wantLen    int
		wantStatus int
	}{
		{
			name:  "Success",
			orgID: "org-1",
			setupMocks: func(mr *mocks.MemberRepository) {
				mr.On("ListByOrg", mock.Anything, "org-1").Return([]model.OrgUser{alice}, nil)
			},
			wantLen: 1,
		},
		{
			name:       "Fail: Empty org",
			orgID:      "",
			setupMocks: func(mr *mocks.MemberRepository) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:  "Fail: DB error",
			orgID: "org-1",
			setupMocks: func(mr *mocks.MemberRepository) {
				mr.On("ListByOrg", mock.Anything, "org-1").Return(nil, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mr := new(mocks.MemberRepository)
			tm := new(mocks.TransactionManager)
			tt.setupMocks(mr)

			svc := service.NewMemberService(mr, tm)
			got, err := svc.ListOrgUsers(context.Background(), tt.orgID)

			if tt.wantStatus != 0 {
				var appErr *service.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantStatus, appErr.Status)
			} else {
				assert.NoError(t, err)
				assert.Len(t, got, tt.wantLen)
			}
			mr.AssertExpectations(t)
		})
	}
}

func TestMemberService_EditUser(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		newName    string
		setupMocks func(mr *mocks.MemberRepository)
		wantCode   string
	}{
		{
			name:    "Success: trims name",
			id:      "1",
			newName: "  Alicia ",
			setupMocks: func(mr *mocks.MemberRepository) {
				mr.On("UpdateName", mock.Anything, "1", "Alicia").
					Return(model.OrgUser{ID: "1", Name: "Alicia"}, nil)
			},
		},
		{
			name:       "Fail: Empty name",
			id:         "1",
			newName:    "   ",
			setupMocks: func(mr *mocks.MemberRepository) {},
			wantCode:   "BAD_REQUEST",
		},
		{
			name:    "Fail: Not found",
			id:      "404",
			newName: "Ghost",
			setupMocks: func(mr *mocks.MemberRepository) {
				mr.On("UpdateName", mock.Anything, "404", "Ghost").
					Return(model.OrgUser{}, repository.ErrMemberNotFound)
			},
			wantCode: "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mr := new(mocks.MemberRepository)
			tm := new(mocks.TransactionManager)
			tt.setupMocks(mr)

			svc := service.NewMemberService(mr, tm)
			got, err := svc.EditUser(context.Background(), tt.id, tt.newName)

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, service.CodeOf(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, "Alicia", got.Name)
			}
			mr.AssertExpectations(t)
		})
	}
}

func TestMemberService_UpdateRole(t *testing.T) {
	admin := model.OrgUser{ID: "1", OrgID: "org-1", Role: model.RoleAdmin}
	viewer := model.OrgUser{ID: "2", OrgID: "org-1", Role: model.RoleViewer}

	tests := []struct {
		name       string
		id         string
		role       model.Role
		setupMocks func(mr *mocks.MemberRepository, tm *mocks.TransactionManager)
		wantCode   string
	}{
		{
			name: "Success: promote viewer",
			id:   "2",
			role: model.RoleEditor,
			setupMocks: func(mr *mocks.MemberRepository, tm *mocks.TransactionManager) {
				passThroughTx(tm)
				mr.On("GetByID", mock.Anything, "2").Return(viewer, nil)
				mr.On("UpdateRole", mock.Anything, "2", model.RoleEditor).
					Return(model.OrgUser{ID: "2", Role: model.RoleEditor}, nil)
			},
		},
		{
			name: "Success: demote one of two admins",
			id:   "1",
			role: model.RoleViewer,
			setupMocks: func(mr *mocks.MemberRepository, tm *mocks.TransactionManager) {
				passThroughTx(tm)
				mr.On("GetByID", mock.Anything, "1").Return(admin, nil)
				mr.On("LockAdmins", mock.Anything, "org-1").Return(2, nil)
				mr.On("UpdateRole", mock.Anything, "1", model.RoleViewer).
					Return(model.OrgUser{ID: "1", Role: model.RoleViewer}, nil)
			},
		},
		{
			name: "Fail: demote last admin",
			id:   "1",
			role: model.RoleViewer,
			setupMocks: func(mr *mocks.MemberRepository, tm *mocks.TransactionManager) {
				passThroughTx(tm)
				mr.On("GetByID", mock.Anything, "1").Return(admin, nil)
				mr.On("LockAdmins", mock.Anything, "org-1").Return(1, nil)
			},
			wantCode: "LAST_ADMIN",
		},
		{
			name:       "Fail: unknown role",
			id:         "1",
			role:       model.Role("OWNER"),
			setupMocks: func(mr *mocks.MemberRepository, tm *mocks.TransactionManager) {},
			wantCode:   "BAD_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mr := new(mocks.MemberRepository)
			tm := new(mocks.TransactionManager)
			tt.setupMocks(mr, tm)

			svc := service.NewMemberService(mr, tm)
			got, err := svc.UpdateRole(context.Background(), tt.id, tt.role)

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, service.CodeOf(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.role, got.Role)
			}
			mr.AssertExpectations(t)
			tm.AssertExpectations(t)
		})
	}
}

func TestMemberService_DeleteUser(t *testing.T) {
	admin := model.OrgUser{ID: "1", OrgID: "org-1", Role: model.RoleAdmin}
	editor := model.OrgUser{ID: "3", OrgID: "org-1", Role: model.RoleEditor}

	tests := []struct {
		name       string
		id         string
		setupMocks func(mr *mocks.MemberRepository, tm *mocks.TransactionManager)
		wantErr    error
		wantCode   string
	}{
		{
			name: "Success: delete editor",
			id:   "3",
			setupMocks: func(mr *mocks.MemberRepository, tm *mocks.TransactionManager) {
				passThroughTx(tm)
				mr.On("GetByID", mock.Anything, "3").Return(editor, nil)
				mr.On("Delete", mock.Anything, "3").Return(nil)
			},
		},
		{
			name: "Fail: last admin",
			id:   "1",
			setupMocks: func(mr *mocks.MemberRepository, tm *mocks.TransactionManager) {
				passThroughTx(tm)
				mr.On("GetByID", mock.Anything, "1").Return(admin, nil)
				mr.On("LockAdmins", mock.Anything, "org-1").Return(1, nil)
			},
			wantCode: "LAST_ADMIN",
		},
		{
			name: "Fail: missing member",
			id:   "9",
			setupMocks: func(mr *mocks.MemberRepository, tm *mocks.TransactionManager) {
				passThroughTx(tm)
				mr.On("GetByID", mock.Anything, "9").Return(model.OrgUser{}, repository.ErrMemberNotFound)
			},
			wantCode: "NOT_FOUND",
		},
		{
			name: "Fail: tx error",
			id:   "3",
			setupMocks: func(mr *mocks.MemberRepository, tm *mocks.TransactionManager) {
				tm.On("RunInTransaction", mock.Anything, mock.Anything).Return(errors.New("begin tx: boom"))
			},
			wantCode: "INTERNAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mr := new(mocks.MemberRepository)
			tm := new(mocks.TransactionManager)
			tt.setupMocks(mr, tm)

			svc := service.NewMemberService(mr, tm)
			err := svc.DeleteUser(context.Background(), tt.id)

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, service.CodeOf(err))
				if tt.wantCode == "LAST_ADMIN" {
					assert.EqualError(t, err, service.MsgLastAdmin)
				}
			} else {
				assert.NoError(t, err)
			}
			mr.AssertExpectations(t)
		})
	}
}

func TestMemberService_InviteMember(t *testing.T) {
	mr := new(mocks.MemberRepository)
	tm := new(mocks.TransactionManager)

	mr.On("Create", mock.Anything, mock.MatchedBy(func(u model.OrgUser) bool {
		return u.ID != "" && u.OrgID == "org-1" && u.Email == "b@x.com" && u.Role == model.RoleViewer
	})).Return(func(ctx context.Context, u model.OrgUser) (model.OrgUser, error) {
		u.CreatedAt = 1700000100
		return u, nil
	})
	mr.On("Create", mock.Anything, mock.MatchedBy(func(u model.OrgUser) bool {
		return u.Email == "dup@x.com"
	})).Return(model.OrgUser{}, repository.ErrMemberExists)

	svc := service.NewMemberService(mr, tm)

	created, err := svc.InviteMember(context.Background(), "org-1", "Bob", "b@x.com", model.RoleViewer)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, int64(1700000100), created.CreatedAt)

	_, err = svc.InviteMember(context.Background(), "org-1", "Dup", "dup@x.com", model.RoleViewer)
	assert.Equal(t, "MEMBER_EXISTS", service.CodeOf(err))

	_, err = svc.InviteMember(context.Background(), "org-1", "Bad", "c@x.com", model.Role("ROOT"))
	assert.Equal(t, "BAD_REQUEST", service.CodeOf(err))

	mr.AssertExpectations(t)
}
