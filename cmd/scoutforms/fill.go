package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-scoutforms/pkg/renderers/tui"
)

func newFillCmd(a *app) *cobra.Command {
	var (
		output  string
		format  string
		confirm bool
	)
	cmd := &cobra.Command{
		Use:   "fill <definitions>",
		Short: "Enter a record in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.loadDocument(cmd, args[0])
			if err != nil {
				return err
			}
			collector := tui.New(
				tui.WithPromptDriver(tui.NewSurveyDriver(cmd.ErrOrStderr())),
				tui.WithOutputFormat(tui.OutputFormat(format)),
				tui.WithLocalizer(a.localizer()),
				tui.WithConfirm(confirm),
				tui.WithLogger(a.logger),
			)
			values, err := collector.Collect(cmd.Context(), doc.Fields, doc.Values)
			if err != nil {
				return err
			}
			data, err := collector.Encode(doc.Fields, values)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, append(data, '\n'))
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	flags.StringVarP(&format, "format", "f", string(tui.OutputFormatJSON), "output format: json, form or pretty")
	flags.BoolVar(&confirm, "confirm", true, "ask before returning the values")
	return cmd
}
