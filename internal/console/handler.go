// Package console отдаёт страницу участников организации в HTML и JSON
// и принимает действия над строками таблицы.
package console

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"members-service/internal/httpkit"
	"members-service/internal/i18n"
	"members-service/internal/members"
	"members-service/internal/page"
)

type Handler struct {
	WS       *members.Workspace
	Views    *page.Builder
	Lang     *i18n.Translator
	Log      *slog.Logger
	Registry *prometheus.Registry

	metrics *httpkit.RequestMetrics
}

// NewHandler создаёт обработчики страницы. Метрики HTTP регистрируются в reg.
func NewHandler(ws *members.Workspace, views *page.Builder, lang *i18n.Translator, log *slog.Logger, reg *prometheus.Registry) *Handler {
	return &Handler{
		WS:       ws,
		Views:    views,
		Lang:     lang,
		Log:      log,
		Registry: reg,
		metrics:  httpkit.NewRequestMetrics(reg, "members_console", "Members console"),
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.metrics.Middleware)

	r.Get("/health", h.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(h.Registry, promhttp.HandlerOpts{}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/settings/members", http.StatusFound)
	})

	r.Route("/settings/members", func(r chi.Router) {
		r.Get("/", h.handlePage)
		r.Post("/{memberId}/edit", h.pageAction(h.openEdit))
		r.Post("/{memberId}/draft", h.pageAction(h.setDraftForm))
		r.Post("/{memberId}/confirm-edit", h.pageAction(h.confirmEditForm))
		r.Post("/{memberId}/delete", h.pageAction(h.openDelete))
		r.Post("/{memberId}/confirm-delete", h.pageAction(h.confirmDelete))
		r.Post("/{memberId}/close", h.pageAction(h.closeModal))
	})

	r.Route("/api/members", func(r chi.Router) {
		r.Get("/", h.handleView)
		r.Post("/{memberId}/edit", h.apiAction("member_open_edit", h.openEdit))
		r.Patch("/{memberId}/draft", h.apiAction("member_draft", h.setDraftJSON))
		r.Post("/{memberId}/edit/confirm", h.apiAction("member_confirm_edit", h.confirmEdit))
		r.Post("/{memberId}/delete", h.apiAction("member_open_delete", h.openDelete))
		r.Post("/{memberId}/delete/confirm", h.apiAction("member_confirm_delete", h.confirmDelete))
		r.Post("/{memberId}/close", h.apiAction("member_close", h.closeModal))
	})

	return r
}

// mount запускает загрузку списка при первом открытии страницы.
// Загрузка не привязана к запросу: отмена запроса её не прерывает.
func (h *Handler) mount(r *http.Request) {
	h.WS.Mount(context.WithoutCancel(r.Context()))
}

func (h *Handler) view(r *http.Request) page.View {
	return h.Views.Build(h.Lang.ResolveRequest(r), page.Snapshot(h.WS))
}

func failure(handlerName string, ae *actionError) httpkit.Failure {
	return httpkit.Failure{
		Handler: handlerName,
		Status:  ae.Status,
		Code:    ae.Code,
		Message: ae.Message,
		Err:     ae.Err,
	}
}

func (h *Handler) writeError(w http.ResponseWriter, handlerName string, err error) {
	httpkit.WriteFailure(w, h.Log, failure(handlerName, toActionError(err)))
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	httpkit.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"roster": string(h.WS.Status()),
	})
}
