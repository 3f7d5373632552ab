package prefs

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/goliatone/go-scoutforms/pkg/dom"
)

// ManifestName is the theme the built-in selector serves.
const ManifestName = "scout"

// variantTokens are the design tokens of the built-in light and dark variants.
var variantTokens = map[string]map[string]string{
	ThemeDark: {
		"body-bg":    "#212529",
		"body-color": "#dee2e6",
		"chart-text": "#ffffff",
		"chart-grid": "rgba(255, 255, 255, 0.1)",
	},
	ThemeLight: {
		"body-bg":    "#ffffff",
		"body-color": "#212529",
		"chart-text": "#212529",
		"chart-grid": "rgba(0, 0, 0, 0.1)",
	},
}

// builtinSelector serves the scout manifest with one token set per variant.
type builtinSelector struct{}

func (builtinSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name == "" {
		name = ManifestName
	}
	if name != ManifestName {
		return nil, fmt.Errorf("prefs: theme %q not found", name)
	}
	if variant == "" {
		variant = DefaultTheme
	}
	tokens, ok := variantTokens[variant]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, variant)
	}
	return &theme.Selection{
		Theme:   ManifestName,
		Variant: variant,
		Manifest: &theme.Manifest{
			Name:    ManifestName,
			Version: "1.0.0",
			Tokens:  copyTokens(tokens),
		},
	}, nil
}

// ResolverOption configures a ThemeResolver.
type ResolverOption func(*ThemeResolver)

// WithSelector replaces the built-in selector.
func WithSelector(selector theme.ThemeSelector) ResolverOption {
	return func(r *ThemeResolver) {
		if selector != nil {
			r.selector = selector
		}
	}
}

// WithThemeName selects a manifest other than scout.
func WithThemeName(name string) ResolverOption {
	return func(r *ThemeResolver) {
		if name = strings.TrimSpace(name); name != "" {
			r.name = name
		}
	}
}

// WithLogger sets the logger used for selection failures.
func WithLogger(logger *zap.Logger) ResolverOption {
	return func(r *ThemeResolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// ThemeResolver maps preferences to a go-theme selection. The preference
// theme is the selection variant.
type ThemeResolver struct {
	selector theme.ThemeSelector
	name     string
	logger   *zap.Logger
}

// NewThemeResolver returns a resolver over the built-in scout manifest unless
// WithSelector says otherwise.
func NewThemeResolver(opts ...ResolverOption) *ThemeResolver {
	r := &ThemeResolver{
		selector: builtinSelector{},
		name:     ManifestName,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Resolve selects the variant named by p.Theme.
func (r *ThemeResolver) Resolve(p Preferences) (*theme.Selection, error) {
	selection, err := r.selector.Select(r.name, p.Theme)
	if err != nil {
		return nil, fmt.Errorf("prefs: select %s/%s: %w", r.name, p.Theme, err)
	}
	if selection == nil {
		return nil, fmt.Errorf("prefs: select %s/%s: empty selection", r.name, p.Theme)
	}
	return selection, nil
}

// RendererConfig resolves p into the configuration handed to page renderers.
// Tokens are exposed both as-is and as --scout-* CSS variables.
func (r *ThemeResolver) RendererConfig(p Preferences) (*theme.RendererConfig, error) {
	selection, err := r.Resolve(p)
	if err != nil {
		return nil, err
	}
	var tokens map[string]string
	if selection.Manifest != nil {
		tokens = copyTokens(selection.Manifest.Tokens)
	}
	return &theme.RendererConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
		Tokens:  tokens,
		CSSVars: cssVars(tokens),
	}, nil
}

// Apply resolves p and writes it onto root. A variant the selector does not
// know leaves the page untouched.
func (r *ThemeResolver) Apply(root *html.Node, p Preferences) error {
	cfg, err := r.RendererConfig(p)
	if err != nil {
		r.logger.Warn("theme not applied", zap.String("theme", p.Theme), zap.Error(err))
		return err
	}
	Apply(root, Preferences{Theme: cfg.Variant})
	if style := InlineVars(cfg.CSSVars); style != "" {
		if doc := dom.FindOne(root, "descendant-or-self::html"); doc != nil {
			dom.SetAttr(doc, "style", style)
		}
	}
	return nil
}

// InlineVars renders CSS variables as a style attribute value, sorted by name.
func InlineVars(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	var sb strings.Builder
	for i, name := range names {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(name + ": " + vars[name] + ";")
	}
	return sb.String()
}

func cssVars(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	out := make(map[string]string, len(tokens))
	for key, value := range tokens {
		out["--scout-"+key] = value
	}
	return out
}

func copyTokens(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
