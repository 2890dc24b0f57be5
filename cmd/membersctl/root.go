package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"members-service/internal/config"
	"members-service/internal/console"
	"members-service/internal/members"
	"members-service/internal/page"
)

type options struct {
	cfg  config.Console
	lang string
	json bool

	apiURL   string
	orgID    string
	timezone string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "membersctl",
		Short:         "Manage organization members from the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.apiURL, "api-url", "", "Roster API base URL (overrides ROSTER_API_URL)")
	flags.StringVar(&opts.orgID, "org", "", "Organization id (overrides MEMBERS_ORG_ID)")
	flags.StringVar(&opts.timezone, "timezone", "", "Time zone for dates (overrides DISPLAY_TIMEZONE)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")
	flags.StringVar(&opts.lang, "lang", "", "Output language, e.g. en-US or ru-RU")
	flags.BoolVar(&opts.json, "json", false, "Print the page view as JSON")

	cmd.AddCommand(newListCmd(opts), newEditCmd(opts), newDeleteCmd(opts))
	return cmd
}

// load читает .env и окружение, затем применяет заданные флаги.
func (o *options) load(cmd *cobra.Command) error {
	if _, err := config.LoadEnvFiles(config.DefaultEnvFiles...); err != nil {
		return err
	}
	cfg, err := config.LoadConsole()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.RosterAPIURL = o.apiURL
	}
	if flags.Changed("org") {
		cfg.OrgID = o.orgID
	}
	if flags.Changed("timezone") {
		cfg.DisplayTimezone = o.timezone
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	o.cfg = cfg
	return nil
}

// open собирает страницу и загружает список участников.
// Ошибка загрузки только пишется в журнал: страница остаётся пустой.
func (o *options) open(cmd *cobra.Command) (*console.App, error) {
	logger := config.NewLogger(cmd.ErrOrStderr(), o.cfg.LogLevel)

	app, err := console.NewApp(o.cfg, logger)
	if err != nil {
		return nil, err
	}

	app.Workspace.Mount(cmd.Context())
	return app, nil
}

// render печатает уведомления и таблицу в выбранном формате.
func (o *options) render(cmd *cobra.Command, app *console.App) error {
	v := app.Views.Build(app.Lang.Parse(o.lang), page.Snapshot(app.Workspace))
	if o.json {
		return page.RenderJSON(cmd.OutOrStdout(), v)
	}
	return page.RenderText(cmd.OutOrStdout(), v)
}

// finish печатает страницу и превращает уведомление об ошибке в ненулевой код выхода.
func (o *options) finish(cmd *cobra.Command, app *console.App, toast members.Toast) error {
	if err := o.render(cmd, app); err != nil {
		return err
	}
	if toast.Kind == members.ToastError {
		msg := toast.Text
		if msg == "" {
			msg = app.Lang.Text(app.Lang.Parse(o.lang), toast.Key)
		}
		return fmt.Errorf("%s", msg)
	}
	return nil
}
