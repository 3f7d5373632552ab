package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-scoutforms/pkg/charts"
	"github.com/goliatone/go-scoutforms/pkg/dom"
)

func newChartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Build dashboard and table chart configurations",
	}
	cmd.AddCommand(newChartStatsCmd(a), newChartTableCmd(a))
	return cmd
}

func newChartStatsCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "stats <stats.json>",
		Short: "Build the dashboard pie from per-table record counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			cfg, ok := charts.TableStatsPie(charts.ParseStats(data, a.logger))
			if !ok {
				return errors.New("no table statistics to chart")
			}
			return writeJSON(cmd, output, cfg)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func newChartTableCmd(a *app) *cobra.Command {
	var (
		output string
		asHTML bool
	)
	cmd := &cobra.Command{
		Use:   "table <definitions> <records.json>",
		Short: "Build the analytics panels of a table from its records",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.loadDocument(cmd, args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			var records []charts.Record
			if err := json.Unmarshal(data, &records); err != nil {
				return fmt.Errorf("decode %s: %w", args[1], err)
			}

			l := a.localizer()
			analytics := charts.TableAnalytics(records, doc.Fields, l)
			if !asHTML {
				return writeJSON(cmd, output, analytics)
			}

			container := dom.Element("div", "id", "tableCharts")
			if err := charts.Render(container, analytics, l); err != nil {
				return err
			}
			markup, err := dom.Render(container)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, []byte(markup+"\n"))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&asHTML, "html", false, "emit the panels as HTML instead of JSON")
	return cmd
}

func writeJSON(cmd *cobra.Command, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return writeOutput(cmd, path, append(data, '\n'))
}
