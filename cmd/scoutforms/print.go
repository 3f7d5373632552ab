package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-scoutforms/pkg/printing"
)

func newPrintCmd(a *app) *cobra.Command {
	var (
		output    string
		title     string
		noPrint   bool
		dateParam string
	)
	cmd := &cobra.Command{
		Use:   "print <template> <content.html>",
		Short: "Wrap record content in a printable page using a print template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var tmpl printing.Template
			if err := yaml.Unmarshal(raw, &tmpl); err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}
			content, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}

			now := time.Now()
			if dateParam != "" {
				if now, err = time.Parse(time.DateOnly, dateParam); err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
			}
			if title == "" {
				title = tmpl.Name
			}

			printer, err := printing.New(
				printing.WithLanguage(a.cfg.Locale),
				printing.WithAutoPrint(!noPrint),
				printing.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			page, err := printer.Document(cmd.Context(), tmpl, title, string(content), now)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, []byte(page))
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	flags.StringVar(&title, "title", "", "document title (template name if empty)")
	flags.BoolVar(&noPrint, "no-auto-print", false, "do not open the print dialog on load")
	flags.StringVar(&dateParam, "date", "", "date printed in the footer, yyyy-mm-dd (today if empty)")
	return cmd
}
