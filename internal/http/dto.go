// Package http реализует HTTP-обработчики roster API поверх MemberService.
package http

import "members-service/internal/model"

type inviteMemberRequest struct {
	Name  string `json:"name" validate:"max=255"`
	Email string `json:"email" validate:"required,email,max=320"`
	Role  string `json:"role" validate:"required,oneof=ADMIN EDITOR VIEWER"`
}

type editUserRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type updateRoleRequest struct {
	GroupName string `json:"group_name" validate:"required,oneof=ADMIN EDITOR VIEWER"`
}

type userResponse struct {
	User model.OrgUser `json:"user"`
}

type statusResponse struct {
	Status string `json:"status"`
}
