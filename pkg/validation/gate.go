package validation

import (
	"sync"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/goliatone/go-scoutforms/pkg/dom"
	"github.com/goliatone/go-scoutforms/pkg/notify"
	"github.com/goliatone/go-scoutforms/pkg/render"
)

// Outcome is the verdict of a submit attempt.
type Outcome struct {
	// Allowed is false when submission must be cancelled.
	Allowed bool
	Results Results
	// Notification is the aggregate message of a blocked submission.
	Notification *notify.Notification
}

// Gate validates the forms of a document on submit and blur.
type Gate struct {
	cfg   config
	forms []*html.Node

	mu   sync.Mutex
	last map[*html.Node]Results
}

// InitFormValidation collects every form of doc that does not carry the
// exclusion class. A nil doc yields a gate that manages nothing.
func InitFormValidation(doc *html.Node, opts ...Option) *Gate {
	g := &Gate{
		cfg:  newConfig(opts),
		last: make(map[*html.Node]Results),
	}
	for _, form := range dom.Find(doc, "descendant-or-self::form") {
		if dom.HasClass(form, g.cfg.excludeClass) {
			continue
		}
		g.forms = append(g.forms, form)
	}
	g.cfg.logger.Debug("form validation initialised", zap.Int("forms", len(g.forms)))
	return g
}

// Forms returns the managed forms in document order.
func (g *Gate) Forms() []*html.Node {
	return append([]*html.Node(nil), g.forms...)
}

// Manages reports whether form is validated by the gate.
func (g *Gate) Manages(form *html.Node) bool {
	for _, managed := range g.forms {
		if managed == form {
			return true
		}
	}
	return false
}

// Submit runs the required checks on every [required] control, then the
// pattern checks on every non-empty [pattern] control. Any failure blocks
// the submission with a single aggregate notification; the inline feedback of
// every failing control stays in place. Unmanaged forms always submit.
func (g *Gate) Submit(form *html.Node) Outcome {
	if !g.Manages(form) {
		return Outcome{Allowed: true}
	}

	results := make(Results)
	for _, input := range dom.Find(form, ".//*[@required]") {
		results.record(g.cfg.checkRequired(input))
	}
	for _, input := range dom.Find(form, ".//*[@pattern]") {
		if dom.Value(input) == "" {
			continue
		}
		results.record(g.cfg.checkPattern(input))
	}

	g.mu.Lock()
	g.last[form] = results
	g.mu.Unlock()

	if results.Valid() {
		return Outcome{Allowed: true, Results: results}
	}

	message := g.cfg.localizer().Text(render.MsgFormInvalid)
	var n notify.Notification
	if g.cfg.notifier != nil {
		n = g.cfg.notifier.Notify(notify.LevelDanger, message)
	} else {
		n = notify.Notification{Level: notify.LevelDanger, Message: message, Duration: notify.DefaultDuration, Visible: true}
	}
	g.cfg.logger.Debug("submission blocked", zap.Strings("invalid", results.Invalid()))
	return Outcome{Allowed: false, Results: results, Notification: &n}
}

// Blur re-runs the checks of a single control of a managed form: required
// when it is required, pattern when it has a pattern and a value.
func (g *Gate) Blur(input *html.Node) Results {
	form := dom.Closest(input, "form")
	if input == nil || !g.Manages(form) {
		return nil
	}
	if !dom.IsElement(input, "input", "select", "textarea") {
		return nil
	}

	results := make(Results)
	if dom.HasAttr(input, "required") {
		results.record(g.cfg.checkRequired(input))
	}
	if dom.HasAttr(input, "pattern") && dom.Value(input) != "" {
		results.record(g.cfg.checkPattern(input))
	}

	g.mu.Lock()
	merged := g.last[form]
	if merged == nil {
		merged = make(Results)
		g.last[form] = merged
	}
	for name, result := range results {
		merged[name] = result
	}
	g.mu.Unlock()
	return results
}

// Results returns a copy of the latest results recorded for form.
func (g *Gate) Results(form *html.Node) Results {
	g.mu.Lock()
	defer g.mu.Unlock()

	recorded := g.last[form]
	if recorded == nil {
		return nil
	}
	out := make(Results, len(recorded))
	for name, result := range recorded {
		out[name] = result
	}
	return out
}
