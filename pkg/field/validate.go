package field

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

// TechnicalNamePattern is the accepted shape of table and field technical
// names.
var TechnicalNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

var (
	// ErrNameRequired is returned when a technical name is blank.
	ErrNameRequired = errors.New("Le nom technique est requis.")
	// ErrDisplayNameRequired is returned when a display name is blank.
	ErrDisplayNameRequired = errors.New("Le nom d'affichage est requis.")
	// ErrNameFormat is returned when a technical name does not match
	// TechnicalNamePattern.
	ErrNameFormat = errors.New("Le nom technique doit commencer par une lettre et ne contenir que des lettres minuscules, des chiffres et des underscores.")
	// ErrOptionsRequired is returned for dropdowns without options.
	ErrOptionsRequired = errors.New("Vous devez spécifier au moins une option pour les listes déroulantes.")
	// ErrPatternInvalid is returned when a pattern does not compile as an
	// ECMAScript regular expression.
	ErrPatternInvalid = errors.New("Le format de validation est invalide.")
)

// DefinitionError reports which attribute of a definition failed validation.
type DefinitionError struct {
	Attribute string
	Err       error
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("field: %s: %v", e.Attribute, e.Err)
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}

// CheckNames applies the shared technical/display name rules in the order
// the configuration screens report them.
func CheckNames(name, displayName string) error {
	if strings.TrimSpace(name) == "" {
		return &DefinitionError{Attribute: "name", Err: ErrNameRequired}
	}
	if strings.TrimSpace(displayName) == "" {
		return &DefinitionError{Attribute: "display_name", Err: ErrDisplayNameRequired}
	}
	if !TechnicalNamePattern.MatchString(name) {
		return &DefinitionError{Attribute: "name", Err: ErrNameFormat}
	}
	return nil
}

// Validate checks the definition is renderable.
func (d Definition) Validate() error {
	if err := CheckNames(d.Name, d.DisplayName); err != nil {
		return err
	}
	if d.Pattern != "" {
		if _, err := regexp2.Compile(d.Pattern, regexp2.ECMAScript); err != nil {
			return &DefinitionError{Attribute: "pattern", Err: fmt.Errorf("%w: %v", ErrPatternInvalid, err)}
		}
	}
	if d.Kind == KindDropdown {
		for _, option := range d.Options {
			if strings.TrimSpace(option) != "" {
				return nil
			}
		}
		return &DefinitionError{Attribute: "options", Err: ErrOptionsRequired}
	}
	return nil
}

// ValidateAll validates every definition and rejects duplicate ids or names.
func ValidateAll(defs []Definition) error {
	ids := make(map[int64]struct{}, len(defs))
	names := make(map[string]struct{}, len(defs))
	var errs []error
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", def.ControlName(), err))
		}
		if _, dup := ids[def.ID]; dup {
			errs = append(errs, fmt.Errorf("field: duplicate id %d", def.ID))
		}
		ids[def.ID] = struct{}{}
		if _, dup := names[def.Name]; dup && def.Name != "" {
			errs = append(errs, fmt.Errorf("field: duplicate name %q", def.Name))
		}
		names[def.Name] = struct{}{}
	}
	return errors.Join(errs...)
}
