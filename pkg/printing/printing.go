// Package printing renders standalone printable pages from a print template
// (header, footer, CSS and logo) and a content fragment.
package printing

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"regexp"
	"strings"
	"time"

	gotemplatepkg "github.com/goliatone/go-template"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-scoutforms/pkg/enhance"
	"github.com/goliatone/go-scoutforms/pkg/notify"
	"github.com/goliatone/go-scoutforms/pkg/render"
	"github.com/goliatone/go-scoutforms/pkg/render/template"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

const documentTemplate = "print"

var _ template.TemplateRenderer = (*gotemplatepkg.Engine)(nil)

// Templates returns the embedded print templates, rooted at the template
// directory. Alternate engines passed through WithRenderer load from it.
func Templates() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return templatesFS
	}
	return sub
}

// DatePlaceholder is replaced in the footer with the print date.
const DatePlaceholder = "${date}"

// Template is a stored print template.
type Template struct {
	Name       string `json:"name" yaml:"name"`
	HeaderHTML string `json:"header_html" yaml:"header_html"`
	FooterHTML string `json:"footer_html" yaml:"footer_html"`
	CSS        string `json:"css" yaml:"css"`
	LogoURL    string `json:"logo_url" yaml:"logo_url"`
}

// Option configures a Printer.
type Option func(*Printer)

// WithRenderer replaces the go-template engine. The renderer must provide
// a "print" template.
func WithRenderer(renderer template.TemplateRenderer) Option {
	return func(p *Printer) {
		if renderer != nil {
			p.renderer = renderer
		}
	}
}

// WithPolicy replaces the bluemonday UGC policy applied to HTML fragments.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(p *Printer) {
		if policy != nil {
			p.policy = policy
		}
	}
}

// WithAutoPrint controls the onload print script. It is on by default.
func WithAutoPrint(enabled bool) Option {
	return func(p *Printer) {
		p.autoPrint = enabled
	}
}

// WithLanguage sets the lang attribute of the document.
func WithLanguage(lang string) Option {
	return func(p *Printer) {
		if lang = strings.TrimSpace(lang); lang != "" {
			p.lang = lang
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(p *Printer) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Printer renders print documents. It is safe for concurrent use.
type Printer struct {
	renderer  template.TemplateRenderer
	policy    *bluemonday.Policy
	autoPrint bool
	lang      string
	logger    *zap.Logger
}

// New returns a Printer backed by the embedded template.
func New(opts ...Option) (*Printer, error) {
	p := &Printer{
		policy:    bluemonday.UGCPolicy(),
		autoPrint: true,
		lang:      render.DefaultLocale,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if p.renderer == nil {
		engine, err := gotemplatepkg.NewRenderer(
			gotemplatepkg.WithFS(Templates()),
			gotemplatepkg.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("printing: engine: %w", err)
		}
		p.renderer = engine
	}
	return p, nil
}

// Document renders a printable page. Header, footer and content are
// sanitised; the footer's ${date} placeholder becomes now as dd/mm/yyyy.
func (p *Printer) Document(ctx context.Context, tmpl Template, title, content string, now time.Time) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	footer := tmpl.FooterHTML
	if strings.Contains(footer, DatePlaceholder) {
		footer = strings.Replace(footer, DatePlaceholder, now.Format(enhance.LayoutDisplay), 1)
	}

	logo, ok := SafeURL(tmpl.LogoURL)
	if !ok {
		p.logger.Warn("print logo dropped", zap.String("template", tmpl.Name), zap.String("url", tmpl.LogoURL))
	}

	out, err := p.renderer.RenderTemplate(documentTemplate, map[string]any{
		"lang":       p.lang,
		"title":      title,
		"css":        SanitizeCSS(tmpl.CSS),
		"auto_print": p.autoPrint,
		"logo_url":   logo,
		"header":     p.policy.Sanitize(tmpl.HeaderHTML),
		"content":    p.policy.Sanitize(content),
		"footer":     p.policy.Sanitize(footer),
	})
	if err != nil {
		return "", fmt.Errorf("printing: render %q: %w", tmpl.Name, err)
	}
	return out, nil
}

var styleClose = regexp.MustCompile(`(?i)</style`)

// SanitizeCSS keeps style sheets from closing the style element they are
// embedded in. Matching runs on the original bytes; removals repeat until
// no closing tag is left.
func SanitizeCSS(css string) string {
	for styleClose.MatchString(css) {
		css = styleClose.ReplaceAllString(css, "")
	}
	return css
}

// SafeURL accepts relative, http and https URLs. ok is false when a non-empty
// URL was rejected.
func SafeURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https":
		return u.String(), true
	default:
		return "", false
	}
}

// RecordURL is the server route producing a record's printable page.
func RecordURL(tableID, recordID int64) string {
	return fmt.Sprintf("/tables/%d/records/%d/pdf", tableID, recordID)
}

// ErrWindowBlocked is returned when the print window could not be opened.
var ErrWindowBlocked = errors.New("printing: print window blocked")

// Opener opens url in a new window and reports whether it succeeded.
type Opener interface {
	Open(url string) bool
}

// OpenRecord opens a record's printable page. A blocked window is reported
// through notifier as a warning.
func OpenRecord(opener Opener, notifier notify.Notifier, localizer render.Localizer, tableID, recordID int64) error {
	if opener != nil && opener.Open(RecordURL(tableID, recordID)) {
		return nil
	}
	if notifier != nil {
		notifier.Notify(notify.LevelWarning, localizer.Text(render.MsgPrintBlocked))
	}
	return ErrWindowBlocked
}
