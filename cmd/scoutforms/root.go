package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-scoutforms/internal/config"
	"github.com/goliatone/go-scoutforms/internal/logging"
	"github.com/goliatone/go-scoutforms/pkg/fieldsource"
	"github.com/goliatone/go-scoutforms/pkg/render"
)

const httpTimeout = 10 * time.Second

// app carries the state shared by every command once flags are parsed.
type app struct {
	configPath string
	locale     string
	theme      string
	schema     string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:               "scoutforms",
		Short:             "Render, validate and fill scout record forms",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file (yaml or json)")
	flags.StringVar(&a.locale, "locale", "", "message locale (fr, en)")
	flags.StringVar(&a.theme, "theme", "", "page theme (dark, light)")
	flags.StringVar(&a.schema, "schema", "", "component schema to read from OpenAPI documents")

	root.AddCommand(
		newRenderCmd(a),
		newValidateCmd(a),
		newFillCmd(a),
		newSlugCmd(),
		newChartCmd(a),
		newPrintCmd(a),
		newPreviewCmd(a),
		newReorderCmd(a),
	)
	return root
}

func (a *app) setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.locale != "" {
		cfg.Locale = a.locale
	}
	if a.theme != "" {
		cfg.Theme = a.theme
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func (a *app) localizer() render.Localizer {
	return a.cfg.Localizer()
}

func (a *app) loadDocument(cmd *cobra.Command, location string) (fieldsource.Document, error) {
	loader := fieldsource.NewLoader(
		fieldsource.WithHTTP(nil, httpTimeout),
		fieldsource.WithSchema(a.schema),
		fieldsource.WithLogger(a.logger),
	)
	return loader.Load(cmd.Context(), location)
}

// writeOutput writes data to path, or to the command output when path is
// empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "written to %s\n", path)
	return nil
}
