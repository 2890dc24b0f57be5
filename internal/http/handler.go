package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"members-service/internal/httpkit"
	"members-service/internal/model"
	"members-service/internal/service"
)

// MemberService описывает операции roster API, которые нужны обработчикам.
type MemberService interface {
	ListOrgUsers(ctx context.Context, orgID string) ([]model.OrgUser, error)
	InviteMember(ctx context.Context, orgID, name, email string, role model.Role) (model.OrgUser, error)
	EditUser(ctx context.Context, id, name string) (model.OrgUser, error)
	UpdateRole(ctx context.Context, id string, role model.Role) (model.OrgUser, error)
	DeleteUser(ctx context.Context, id string) error
}

type Handler struct {
	Members     MemberService
	Log         *slog.Logger
	CORSOrigins []string
	Registry    *prometheus.Registry

	metrics *httpkit.RequestMetrics
}

func NewHandler(members MemberService, log *slog.Logger) *Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	return &Handler{
		Members:     members,
		Log:         log,
		CORSOrigins: []string{"*"},
		Registry:    reg,
		metrics:     httpkit.NewRequestMetrics(reg, "roster_api", "Roster API"),
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(h.metrics.Middleware)

	r.Get("/health", h.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(h.Registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/orgUsers/{orgId}", h.handleOrgUsersList)
		r.Post("/orgUsers/{orgId}", h.handleOrgUserInvite)
		r.Put("/user/{userId}", h.handleUserEdit)
		r.Delete("/user/{userId}", h.handleUserDelete)
		r.Put("/rbac/role/{userId}", h.handleRoleUpdate)
	})

	return r
}

func (h *Handler) writeError(w http.ResponseWriter, handlerName string, err error) {
	var appErr *service.AppError
	if !errors.As(err, &appErr) {
		appErr = service.ErrInternal("internal error", err)
	}
	httpkit.WriteFailure(w, h.Log, httpkit.Failure{
		Handler: handlerName,
		Status:  appErr.Status,
		Code:    appErr.Code,
		Message: appErr.Message,
		Err:     appErr.Err,
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
