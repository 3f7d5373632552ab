// Package bootstrap renders complete Bootstrap pages around a generated
// record form: navbar, theme, date and counter decorations, and the
// notification container.
package bootstrap

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-scoutforms/pkg/dom"
	"github.com/goliatone/go-scoutforms/pkg/enhance"
	"github.com/goliatone/go-scoutforms/pkg/field"
	"github.com/goliatone/go-scoutforms/pkg/formbuilder"
	"github.com/goliatone/go-scoutforms/pkg/kinds"
	"github.com/goliatone/go-scoutforms/pkg/notify"
	"github.com/goliatone/go-scoutforms/pkg/prefs"
	"github.com/goliatone/go-scoutforms/pkg/render"
	rendertemplate "github.com/goliatone/go-scoutforms/pkg/render/template"
	gotemplate "github.com/goliatone/go-scoutforms/pkg/render/template/gotemplate"
)

const (
	// ContainerID is the id of the element receiving the form.
	ContainerID = "dynamicFormContainer"

	pageTemplate = "templates/page"

	defaultBrand        = "Scout Management"
	defaultBootstrapCSS = "https://cdn.jsdelivr.net/npm/bootstrap@5.3.2/dist/css/bootstrap.min.css"
	defaultIconsCSS     = "https://cdn.jsdelivr.net/npm/bootstrap-icons@1.11.1/font/bootstrap-icons.css"
)

// NavLink is one navbar entry.
type NavLink struct {
	Href  string `json:"href"`
	Label string `json:"label"`
}

// DefaultNav lists the application sections.
func DefaultNav() []NavLink {
	return []NavLink{
		{Href: "/", Label: "Accueil"},
		{Href: "/tables", Label: "Tables"},
		{Href: "/manage_tables", Label: "Gérer les tables"},
	}
}

// Page describes one rendered record page.
type Page struct {
	Title       string
	Path        string
	Definitions []field.Definition
	Preferences prefs.Preferences
	// Nav replaces DefaultNav when set.
	Nav           []NavLink
	Notifications []notify.Notification
}

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	themes           *prefs.ThemeResolver
	registry         *kinds.Registry
	brand            string
	bootstrapCSS     string
	iconsCSS         string
	translator       render.Translator
	logger           *zap.Logger
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTranslator sets the catalog used by the page shell. Form messages
// follow RenderOptions.Translator.
func WithTranslator(t render.Translator) Option {
	return func(cfg *config) {
		cfg.translator = t
	}
}

// WithThemeResolver replaces the built-in dark/light resolver.
func WithThemeResolver(resolver *prefs.ThemeResolver) Option {
	return func(cfg *config) {
		if resolver != nil {
			cfg.themes = resolver
		}
	}
}

func WithRegistry(registry *kinds.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithBrand sets the navbar brand text.
func WithBrand(brand string) Option {
	return func(cfg *config) {
		if brand != "" {
			cfg.brand = brand
		}
	}
}

// WithStylesheets overrides the Bootstrap and icon stylesheet URLs.
func WithStylesheets(bootstrapCSS, iconsCSS string) Option {
	return func(cfg *config) {
		if bootstrapCSS != "" {
			cfg.bootstrapCSS = bootstrapCSS
		}
		if iconsCSS != "" {
			cfg.iconsCSS = iconsCSS
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
	cfg       config
}

// New constructs the bootstrap renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:   TemplatesFS(),
		brand:        defaultBrand,
		bootstrapCSS: defaultBootstrapCSS,
		iconsCSS:     defaultIconsCSS,
		logger:       zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.themes == nil {
		cfg.themes = prefs.NewThemeResolver(prefs.WithLogger(cfg.logger))
	}
	if cfg.registry == nil {
		cfg.registry = kinds.Default()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		if cfg.templateFS == nil {
			return nil, fmt.Errorf("bootstrap: template filesystem is nil")
		}
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithLogger(cfg.logger),
			gotemplate.WithTemplateFunc(render.TemplateI18nFuncs(cfg.translator, render.TemplateI18nConfig{})),
		)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: configure template renderer: %w", err)
		}
		renderer = engine
	}
	return &Renderer{templates: renderer, cfg: cfg}, nil
}

func (r *Renderer) Name() string {
	return "bootstrap"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the full HTML page for page. ro carries the form data:
// values, errors, action and locale.
func (r *Renderer) Render(ctx context.Context, page Page, ro render.RenderOptions) ([]byte, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("bootstrap: render: %w", err)
		}
	}

	locale := ro.Locale
	if locale == "" {
		locale = render.DefaultLocale
	}
	nav := page.Nav
	if len(nav) == 0 {
		nav = DefaultNav()
	}
	links := make([]map[string]any, len(nav))
	for i, link := range nav {
		links[i] = map[string]any{"href": link.Href, "label": link.Label}
	}

	shell, err := r.templates.RenderTemplate(pageTemplate, map[string]any{
		"lang":          locale,
		"title":         page.Title,
		"brand":         r.cfg.brand,
		"nav":           links,
		"stylesheet":    defaultStylesheet(),
		"bootstrap_css": r.cfg.bootstrapCSS,
		"icons_css":     r.cfg.iconsCSS,
		"container_id":  ContainerID,
	})
	if err != nil {
		return nil, fmt.Errorf("bootstrap: render page shell: %w", err)
	}

	doc, err := dom.ParseDocument(strings.NewReader(shell))
	if err != nil {
		return nil, fmt.Errorf("bootstrap: parse page shell: %w", err)
	}
	container := dom.ByID(doc, ContainerID)
	if container == nil {
		return nil, fmt.Errorf("bootstrap: page template has no #%s", ContainerID)
	}

	dom.Append(container, formbuilder.BuildForm(page.Definitions, ro,
		formbuilder.WithRegistry(r.cfg.registry),
		formbuilder.WithLogger(r.cfg.logger),
	))
	enhance.InitDynamicFields(doc,
		enhance.WithTranslator(ro.Translator),
		enhance.WithLocale(ro.Locale),
		enhance.WithLogger(r.cfg.logger),
	)
	enhance.FormatDateCells(doc)
	enhance.MarkActiveNav(doc, page.Path)

	preferences := page.Preferences
	if preferences.Theme == "" {
		preferences = prefs.Default()
	}
	if err := r.cfg.themes.Apply(doc, preferences); err != nil {
		prefs.Apply(doc, prefs.Default())
	}

	alerts := notify.Container(doc)
	for _, n := range page.Notifications {
		dom.Append(alerts, notify.Render(n))
	}

	out, err := dom.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: render document: %w", err)
	}
	r.cfg.logger.Debug("page rendered",
		zap.String("title", page.Title),
		zap.Int("fields", len(page.Definitions)),
		zap.String("theme", preferences.Theme),
	)
	return []byte(out), nil
}
