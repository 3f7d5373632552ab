package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/goliatone/go-scoutforms/pkg/dom"
	"github.com/goliatone/go-scoutforms/pkg/field"
	"github.com/goliatone/go-scoutforms/pkg/validation"
)

var errInvalid = errors.New("validation failed")

func newValidateCmd(a *app) *cobra.Command {
	var (
		htmlPath string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "validate [definitions] [name=value ...]",
		Short: "Validate record values, or the forms of an HTML page with --html",
		Long: `Validate checks values against a definition document. Values come from the
document record and from name=value arguments, where name is the technical
name or the control name (field_<id>). With --html the forms of a saved page
are checked the way the browser would on submit; results are reported as
<form id>.<control>, or form<N>.<control> for forms without an id.`,
		Args: func(_ *cobra.Command, args []string) error {
			if htmlPath == "" && len(args) == 0 {
				return errors.New("requires a definition document or --html")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				results validation.Results
				err     error
			)
			if htmlPath != "" {
				results, err = a.validatePage(htmlPath)
			} else {
				results, err = a.validateValues(cmd, args[0], args[1:])
			}
			if err != nil {
				return err
			}
			if err := printResults(cmd, results, asJSON); err != nil {
				return err
			}
			if !results.Valid() {
				return errInvalid
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&htmlPath, "html", "", "validate the forms of an HTML page instead")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}

func (a *app) validateValues(cmd *cobra.Command, location string, assignments []string) (validation.Results, error) {
	doc, err := a.loadDocument(cmd, location)
	if err != nil {
		return nil, err
	}
	values, err := submittedValues(doc.Fields, doc.Values, assignments)
	if err != nil {
		return nil, err
	}
	l := a.localizer()
	return validation.ValidateValues(doc.Fields, values,
		validation.WithTranslator(l.Translator),
		validation.WithLocale(l.Locale),
		validation.WithLogger(a.logger),
	), nil
}

func (a *app) validatePage(path string) (validation.Results, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := dom.ParseDocument(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	l := a.localizer()
	gate := validation.InitFormValidation(doc,
		validation.WithTranslator(l.Translator),
		validation.WithLocale(l.Locale),
		validation.WithExcludeClass(a.cfg.ExcludeClass),
		validation.WithLogger(a.logger),
	)
	// Generated forms reuse field_<id> names, so results are keyed per form.
	results := validation.Results{}
	for i, form := range gate.Forms() {
		label := formLabel(form, i)
		for name, result := range gate.Submit(form).Results {
			results[label+"."+name] = result
		}
	}
	return results, nil
}

// formLabel names a form by its id, or by its position on the page.
func formLabel(form *html.Node, index int) string {
	if id := strings.TrimSpace(dom.ID(form)); id != "" {
		return id
	}
	return fmt.Sprintf("form%d", index+1)
}

// submittedValues builds the posted payload from the record and the
// name=value assignments.
func submittedValues(defs []field.Definition, record field.ValueMap, assignments []string) (url.Values, error) {
	controls := make(map[string]string, len(defs)*2)
	values := url.Values{}
	for _, def := range defs {
		controls[def.Name] = def.ControlName()
		controls[def.ControlName()] = def.ControlName()
		if value, ok := record.StringValue(def.Name); ok {
			values.Set(def.ControlName(), value)
		}
	}
	for _, assignment := range assignments {
		name, value, ok := strings.Cut(assignment, "=")
		if !ok {
			return nil, fmt.Errorf("invalid assignment %q, want name=value", assignment)
		}
		control, known := controls[strings.TrimSpace(name)]
		if !known {
			return nil, fmt.Errorf("unknown field %q", name)
		}
		values.Set(control, value)
	}
	return values, nil
}

func printResults(cmd *cobra.Command, results validation.Results, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	invalid := results.Invalid()
	if len(invalid) == 0 {
		_, err := fmt.Fprintln(out, "ok")
		return err
	}
	for _, name := range invalid {
		if _, err := fmt.Fprintf(out, "%s: %s\n", name, results[name].Message); err != nil {
			return err
		}
	}
	return nil
}
