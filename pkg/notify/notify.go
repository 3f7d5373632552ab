// Package notify implements the transient Bootstrap alerts shown in the
// bottom-right corner of every page.
package notify

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/goliatone/go-scoutforms/pkg/dom"
)

// Level is the Bootstrap contextual class of an alert.
type Level string

const (
	LevelSuccess Level = "success"
	LevelDanger  Level = "danger"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// ParseLevel maps a raw level onto a Level, defaulting to LevelInfo.
func ParseLevel(raw string) Level {
	switch Level(strings.ToLower(strings.TrimSpace(raw))) {
	case LevelSuccess:
		return LevelSuccess
	case LevelDanger, "error":
		return LevelDanger
	case LevelWarning:
		return LevelWarning
	default:
		return LevelInfo
	}
}

const (
	// DefaultDuration is how long an alert stays visible.
	DefaultDuration = 5 * time.Second
	// FadeDuration is the delay between hiding an alert and removing it,
	// matching the Bootstrap fade transition.
	FadeDuration = 150 * time.Millisecond

	containerID = "alerts-container"
)

// Notification is one alert.
type Notification struct {
	ID       string        `json:"id"`
	Level    Level         `json:"level"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"duration"`
	Visible  bool          `json:"visible"`
}

// Notifier receives user-facing messages. Center implements it; callers that
// only need to collect messages can use a Recorder.
type Notifier interface {
	Notify(level Level, message string) Notification
}

// AfterFunc schedules f after d. It matches time.AfterFunc minus the timer,
// since removals are never cancelled.
type AfterFunc func(d time.Duration, f func())

// Option configures a Center.
type Option func(*Center)

// WithDocument mounts alerts into doc as they are shown and detaches them as
// they expire.
func WithDocument(doc *html.Node) Option {
	return func(c *Center) {
		c.doc = doc
	}
}

// WithDuration overrides DefaultDuration.
func WithDuration(d time.Duration) Option {
	return func(c *Center) {
		if d > 0 {
			c.duration = d
		}
	}
}

// WithAfterFunc replaces time.AfterFunc, mainly for tests.
func WithAfterFunc(fn AfterFunc) Option {
	return func(c *Center) {
		if fn != nil {
			c.afterFunc = fn
		}
	}
}

// WithLogger logs every alert shown.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Center) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Center keeps the active alerts. Each Show schedules its own removal; a new
// alert never cancels or delays the removal of an older one.
type Center struct {
	mu        sync.Mutex
	active    []*entry
	doc       *html.Node
	duration  time.Duration
	afterFunc AfterFunc
	logger    *zap.Logger
}

type entry struct {
	notification Notification
	node         *html.Node
}

var _ Notifier = (*Center)(nil)

// NewCenter constructs a Center.
func NewCenter(opts ...Option) *Center {
	c := &Center{
		duration: DefaultDuration,
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Notify shows message with the default duration.
func (c *Center) Notify(level Level, message string) Notification {
	return c.Show(message, level, 0)
}

// Show appends an alert and schedules its removal after duration (the
// default when duration <= 0).
func (c *Center) Show(message string, level Level, duration time.Duration) Notification {
	if duration <= 0 {
		duration = c.duration
	}
	n := Notification{
		ID:       uuid.NewString(),
		Level:    ParseLevel(string(level)),
		Message:  message,
		Duration: duration,
		Visible:  true,
	}

	c.mu.Lock()
	e := &entry{notification: n}
	if c.doc != nil {
		e.node = Render(n)
		dom.Append(ensureContainer(c.doc), e.node)
	}
	c.active = append(c.active, e)
	c.mu.Unlock()

	c.logger.Debug("notification shown",
		zap.String("id", n.ID),
		zap.String("level", string(n.Level)),
		zap.String("message", n.Message),
	)

	c.afterFunc(duration, func() {
		c.hide(n.ID)
		c.afterFunc(FadeDuration, func() {
			c.remove(n.ID)
		})
	})
	return n
}

// Active returns a snapshot of the alerts still attached, oldest first.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Notification, 0, len(c.active))
	for _, e := range c.active {
		out = append(out, e.notification)
	}
	return out
}

// Dismiss removes an alert immediately, as the close button does.
func (c *Center) Dismiss(id string) {
	c.remove(id)
}

func (c *Center) hide(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.active {
		if e.notification.ID != id {
			continue
		}
		e.notification.Visible = false
		dom.RemoveClass(e.node, "show")
		return
	}
}

func (c *Center) remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, e := range c.active {
		if e.notification.ID != id {
			continue
		}
		dom.Remove(e.node)
		c.active = append(c.active[:i], c.active[i+1:]...)
		return
	}
}

// Render builds the alert element for n. The message is inserted as text.
func Render(n Notification) *html.Node {
	classes := []string{"alert", "alert-" + string(ParseLevel(string(n.Level))), "alert-dismissible", "fade"}
	if n.Visible {
		classes = append(classes, "show")
	}
	classes = append(classes, "notification-alert")
	alert := dom.Element("div", "class", strings.Join(classes, " "), "role", "alert")
	if n.ID != "" {
		dom.SetAttr(alert, "data-notification-id", n.ID)
	}
	dom.Append(alert,
		dom.Text(n.Message),
		dom.Element("button", "type", "button", "class", "btn-close", "data-bs-dismiss", "alert", "aria-label", "Close"),
	)
	return alert
}

// Container returns the #alerts-container of doc, creating it at the end of
// <body> (or of doc when there is no body) when missing.
func Container(doc *html.Node) *html.Node {
	return ensureContainer(doc)
}

func ensureContainer(doc *html.Node) *html.Node {
	if doc == nil {
		return nil
	}
	if existing := dom.ByID(doc, containerID); existing != nil {
		return existing
	}
	container := dom.Element("div",
		"id", containerID,
		"class", "position-fixed bottom-0 end-0 p-3",
		"style", "z-index: 1050;",
	)
	parent := dom.FindOne(doc, "//body")
	if parent == nil {
		parent = doc
	}
	dom.Append(parent, container)
	return container
}

// Recorder is a Notifier that only records messages.
type Recorder struct {
	mu       sync.Mutex
	messages []Notification
}

// Notify implements Notifier.
func (r *Recorder) Notify(level Level, message string) Notification {
	n := Notification{Level: ParseLevel(string(level)), Message: message, Duration: DefaultDuration, Visible: true}
	r.mu.Lock()
	r.messages = append(r.messages, n)
	r.mu.Unlock()
	return n
}

// Messages returns the recorded notifications in order.
func (r *Recorder) Messages() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.messages...)
}
