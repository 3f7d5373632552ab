package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-scoutforms/pkg/formbuilder"
	"github.com/goliatone/go-scoutforms/pkg/renderers/bootstrap"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		output   string
		title    string
		path     string
		action   string
		method   string
		readOnly bool
		fragment bool
	)
	cmd := &cobra.Command{
		Use:   "render <definitions>",
		Short: "Render the record page, or only the form, for a definition document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.loadDocument(cmd, args[0])
			if err != nil {
				return err
			}

			l := a.localizer()
			ro := doc.RenderOptions(l)
			ro.Action = action
			ro.Method = method
			ro.ReadOnly = readOnly

			if fragment {
				out, err := formbuilder.RenderForm(cmd.Context(), doc.Fields, ro, formbuilder.WithLogger(a.logger))
				if err != nil {
					return err
				}
				return writeOutput(cmd, output, out)
			}

			renderer, err := bootstrap.New(bootstrap.WithLogger(a.logger))
			if err != nil {
				return err
			}
			if title == "" {
				title = doc.Title()
			}
			out, err := renderer.Render(cmd.Context(), bootstrap.Page{
				Title:       title,
				Path:        path,
				Definitions: doc.Fields,
				Preferences: a.cfg.Preferences(),
			}, ro)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, out)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	flags.StringVar(&title, "title", "", "page title (document display name if empty)")
	flags.StringVar(&path, "path", "/tables", "current path, used to highlight the navbar")
	flags.StringVar(&action, "action", "", "form action")
	flags.StringVar(&method, "method", "POST", "form method")
	flags.BoolVar(&readOnly, "read-only", false, "disable every control and omit the actions")
	flags.BoolVar(&fragment, "fragment", false, "render only the <form>")
	return cmd
}
