package console

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"members-service/internal/config"
	"members-service/internal/i18n"
	"members-service/internal/members"
	"members-service/internal/page"
	"members-service/internal/rosterclient"
)

// App собирает страницу участников из настроек: клиент roster API, рабочее пространство,
// переводы и метрики. Используется и HTTP-консолью, и membersctl.
type App struct {
	Workspace *members.Workspace
	Views     *page.Builder
	Lang      *i18n.Translator
	Registry  *prometheus.Registry
}

// NewApp проверяет cfg и создаёт App.
func NewApp(cfg config.Console, logger *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := rosterclient.New(cfg.RosterAPIURL, rosterclient.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	bundle, err := i18n.LoadEmbedded()
	if err != nil {
		return nil, fmt.Errorf("load catalogs: %w", err)
	}
	lang, err := i18n.NewTranslator(bundle, cfg.DefaultLang)
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	ws := members.NewWorkspace(client, members.StaticOrg(cfg.OrgID), logger, members.NewMetrics(reg))

	return &App{
		Workspace: ws,
		Views:     page.NewBuilder(lang, loc),
		Lang:      lang,
		Registry:  reg,
	}, nil
}

// Handler создаёт HTTP-обработчики поверх App.
func (a *App) Handler(logger *slog.Logger) *Handler {
	return NewHandler(a.Workspace, a.Views, a.Lang, logger, a.Registry)
}
