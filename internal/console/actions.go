package console

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"members-service/internal/httpkit"
	"members-service/internal/i18n"
	"members-service/internal/members"
	"members-service/internal/model"
	"members-service/internal/page"
)

type action func(r *http.Request, id string) error

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	h.mount(r)
	h.renderPage(w, r, http.StatusOK)
}

func (h *Handler) handleView(w http.ResponseWriter, r *http.Request) {
	h.mount(r)
	httpkit.WriteJSON(w, http.StatusOK, h.view(r))
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := page.RenderHTML(w, h.view(r)); err != nil {
		h.Log.Error("render page failed", slog.Any("err", err))
	}
}

// pageAction выполняет действие из HTML-формы и возвращает пользователя на страницу.
// Ошибку действия страница показывает с соответствующим статусом.
func (h *Handler) pageAction(fn action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(r, chi.URLParam(r, "memberId")); err != nil {
			ae := toActionError(err)
			httpkit.LogFailure(h.Log, failure("members_page", ae))
			if ae.Status == http.StatusBadRequest {
				h.WS.Notify(members.ErrorToast(ae.Message))
			}
			h.renderPage(w, r, ae.Status)
			return
		}

		target := "/settings/members"
		if lang := r.URL.Query().Get(i18n.LangParam); lang != "" {
			target += "?" + url.Values{i18n.LangParam: {lang}}.Encode()
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

// apiAction выполняет действие и отвечает новым представлением страницы.
func (h *Handler) apiAction(handlerName string, fn action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(r, chi.URLParam(r, "memberId")); err != nil {
			h.writeError(w, handlerName, err)
			return
		}
		httpkit.WriteJSON(w, http.StatusOK, h.view(r))
	}
}

func (h *Handler) openEdit(r *http.Request, id string) error {
	return h.WS.OpenEdit(id)
}

func (h *Handler) openDelete(r *http.Request, id string) error {
	return h.WS.OpenDelete(id)
}

func (h *Handler) closeModal(r *http.Request, id string) error {
	return h.WS.Close(id)
}

func (h *Handler) confirmEdit(r *http.Request, id string) error {
	_, err := h.WS.ConfirmEdit(r.Context(), id)
	return err
}

func (h *Handler) confirmDelete(r *http.Request, id string) error {
	_, err := h.WS.ConfirmDelete(r.Context(), id)
	return err
}

func (h *Handler) setDraftForm(r *http.Request, id string) error {
	d, err := h.draftFromForm(r, id)
	if err != nil {
		return err
	}
	return h.WS.SetDraft(id, d)
}

// confirmEditForm сохраняет поля формы в черновик и сразу подтверждает редактирование.
func (h *Handler) confirmEditForm(r *http.Request, id string) error {
	if err := h.setDraftForm(r, id); err != nil {
		return err
	}
	return h.confirmEdit(r, id)
}

func (h *Handler) draftFromForm(r *http.Request, id string) (members.Draft, error) {
	if err := r.ParseForm(); err != nil {
		return members.Draft{}, badRequest("invalid form")
	}
	current, err := h.WS.Draft(id)
	if err != nil {
		return members.Draft{}, err
	}

	req := draftRequest{}
	if r.PostForm.Has("name") {
		v := r.PostForm.Get("name")
		req.Name = &v
	}
	if r.PostForm.Has("email") {
		v := r.PostForm.Get("email")
		req.Email = &v
	}
	if r.PostForm.Has("role") {
		v := r.PostForm.Get("role")
		req.Role = &v
	}
	return req.merge(current)
}

func (h *Handler) setDraftJSON(r *http.Request, id string) error {
	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("invalid JSON")
	}
	current, err := h.WS.Draft(id)
	if err != nil {
		return err
	}
	d, err := req.merge(current)
	if err != nil {
		return err
	}
	return h.WS.SetDraft(id, d)
}

// merge накладывает заданные поля на текущий черновик и проверяет результат.
func (req draftRequest) merge(current members.Draft) (members.Draft, error) {
	if msg := httpkit.ValidationMessage(req); msg != "" {
		return members.Draft{}, badRequest(msg)
	}
	d := current
	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.Email != nil {
		d.Email = *req.Email
	}
	if req.Role != nil {
		d.Role = model.Role(*req.Role)
	}
	return d, nil
}
