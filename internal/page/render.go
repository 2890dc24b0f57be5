package page

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"text/tabwriter"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/members.html"))

// RenderHTML выводит страницу в HTML.
func RenderHTML(w io.Writer, v View) error {
	if err := pageTemplate.ExecuteTemplate(w, "members.html", v); err != nil {
		return fmt.Errorf("render members page: %w", err)
	}
	return nil
}

// RenderJSON выводит представление в JSON.
func RenderJSON(w io.Writer, v View) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// RenderText выводит уведомления и таблицу участников для терминала.
// Колонка действий в тексте не выводится.
func RenderText(w io.Writer, v View) error {
	for _, t := range v.Toasts {
		if _, err := fmt.Fprintf(w, "[%s] %s\n", t.Kind, t.Message); err != nil {
			return err
		}
	}

	if v.Loading {
		_, err := fmt.Fprintln(w, v.Labels.Loading)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\t%s\t%s\t%s\n",
		v.Columns[0].Label, v.Columns[1].Label, v.Columns[2].Label, v.Columns[3].Label)
	for _, r := range v.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Email, r.AccessLevel, r.JoinedOn)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if v.Empty != "" {
		_, err := fmt.Fprintln(w, v.Empty)
		return err
	}
	return nil
}
