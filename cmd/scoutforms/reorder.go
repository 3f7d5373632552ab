package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-scoutforms/pkg/render"
	"github.com/goliatone/go-scoutforms/pkg/tableconfig"
)

func newReorderCmd(a *app) *cobra.Command {
	var baseURL string
	cmd := &cobra.Command{
		Use:   "reorder <table-id> <field-id=position> ...",
		Short: "Send a new field order for a table to the application",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := parseOrder(args[1:])
			if err != nil {
				return err
			}
			if baseURL == "" {
				baseURL = a.cfg.OrderEndpointBase
			}
			client := tableconfig.NewOrderClient(baseURL,
				tableconfig.WithTimeout(httpTimeout),
				tableconfig.WithClientLogger(a.logger),
			)
			if err := client.SaveOrder(cmd.Context(), args[0], order); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), a.localizer().Text(render.MsgReorderSaved))
			return err
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", "", "application base URL (config order_endpoint_base if empty)")
	return cmd
}

func parseOrder(pairs []string) (map[string]int, error) {
	order := make(map[string]int, len(pairs))
	for _, pair := range pairs {
		id, raw, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("invalid order %q, want field-id=position", pair)
		}
		position, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid position in %q: %w", pair, err)
		}
		order[strings.TrimSpace(id)] = position
	}
	return order, nil
}
