package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-scoutforms/pkg/tableconfig"
)

func newSlugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slug <display name>",
		Short: "Print the technical name derived from a display name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), tableconfig.TechnicalName(strings.Join(args, " ")))
			return err
		},
	}
}
