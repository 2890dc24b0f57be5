package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"members-service/internal/httpkit"
	"members-service/internal/model"
	"members-service/internal/service"
)

func (h *Handler) handleOrgUsersList(w http.ResponseWriter, r *http.Request) {
	const handlerName = "org_users_list"

	orgID := chi.URLParam(r, "orgId")
	if err := ValidatePathID("orgId", orgID); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	users, err := h.Members.ListOrgUsers(r.Context(), orgID)
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	// Клиенты ожидают именно JSON-массив, даже пустой
	if users == nil {
		users = []model.OrgUser{}
	}
	httpkit.WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) handleOrgUserInvite(w http.ResponseWriter, r *http.Request) {
	const handlerName = "org_user_invite"

	orgID := chi.URLParam(r, "orgId")
	if err := ValidatePathID("orgId", orgID); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	var req inviteMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, handlerName, service.ErrBadRequest("invalid JSON"))
		return
	}
	if err := ValidateRequest(req); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	user, err := h.Members.InviteMember(r.Context(), orgID, req.Name, req.Email, model.Role(req.Role))
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	httpkit.WriteJSON(w, http.StatusCreated, userResponse{User: user})
}

func (h *Handler) handleUserEdit(w http.ResponseWriter, r *http.Request) {
	const handlerName = "user_edit"

	userID := chi.URLParam(r, "userId")
	if err := ValidatePathID("userId", userID); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	var req editUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, handlerName, service.ErrBadRequest("invalid JSON"))
		return
	}
	if err := ValidateRequest(req); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	user, err := h.Members.EditUser(r.Context(), userID, req.Name)
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	httpkit.WriteJSON(w, http.StatusOK, userResponse{User: user})
}

func (h *Handler) handleRoleUpdate(w http.ResponseWriter, r *http.Request) {
	const handlerName = "role_update"

	userID := chi.URLParam(r, "userId")
	if err := ValidatePathID("userId", userID); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	var req updateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, handlerName, service.ErrBadRequest("invalid JSON"))
		return
	}
	if err := ValidateRequest(req); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	user, err := h.Members.UpdateRole(r.Context(), userID, model.Role(req.GroupName))
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	httpkit.WriteJSON(w, http.StatusOK, userResponse{User: user})
}

func (h *Handler) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	const handlerName = "user_delete"

	userID := chi.URLParam(r, "userId")
	if err := ValidatePathID("userId", userID); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	if err := h.Members.DeleteUser(r.Context(), userID); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	httpkit.WriteJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}
