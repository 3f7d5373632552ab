// Package preview serves a definition document as a live record page: the
// generated form, server-side validation of submissions, theme switching and
// the analytics of the records entered so far.
package preview

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-scoutforms/pkg/charts"
	"github.com/goliatone/go-scoutforms/pkg/field"
	"github.com/goliatone/go-scoutforms/pkg/fieldsource"
	"github.com/goliatone/go-scoutforms/pkg/notify"
	"github.com/goliatone/go-scoutforms/pkg/prefs"
	"github.com/goliatone/go-scoutforms/pkg/render"
	"github.com/goliatone/go-scoutforms/pkg/renderers/bootstrap"
	"github.com/goliatone/go-scoutforms/pkg/validation"
)

type Option func(*Server)

// WithRenderer replaces the default bootstrap renderer.
func WithRenderer(renderer *bootstrap.Renderer) Option {
	return func(s *Server) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

func WithLocalizer(l render.Localizer) Option {
	return func(s *Server) {
		s.localizer = l
	}
}

// WithStore sets where the chosen theme is remembered between requests.
func WithStore(store prefs.Store) Option {
	return func(s *Server) {
		if store != nil {
			s.store = store
		}
	}
}

// WithNotificationDuration sets how long notifications stay visible.
func WithNotificationDuration(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.duration = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Server holds the document being previewed and the records submitted.
type Server struct {
	doc       fieldsource.Document
	renderer  *bootstrap.Renderer
	localizer render.Localizer
	store     prefs.Store
	duration  time.Duration
	now       func() time.Time
	logger    *zap.Logger
	center    *notify.Center

	mu      sync.Mutex
	records []charts.Record
	nextID  int64
}

// New returns a Server for doc.
func New(doc fieldsource.Document, opts ...Option) (*Server, error) {
	s := &Server{
		doc:      doc,
		store:    prefs.NewMemoryStore(),
		duration: 5 * time.Second,
		now:      time.Now,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.renderer == nil {
		renderer, err := bootstrap.New(bootstrap.WithLogger(s.logger))
		if err != nil {
			return nil, fmt.Errorf("preview: %w", err)
		}
		s.renderer = renderer
	}
	s.center = notify.NewCenter(notify.WithDuration(s.duration), notify.WithLogger(s.logger))
	return s, nil
}

// Handler routes the preview endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.page)
	mux.HandleFunc("POST /{$}", s.submit)
	mux.HandleFunc("GET /theme", s.theme)
	mux.HandleFunc("GET /charts", s.analytics)
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(bootstrap.AssetsFS())))
	return mux
}

// Records returns the records accepted so far, newest first.
func (s *Server) Records() []charts.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]charts.Record, len(s.records))
	for i, record := range s.records {
		out[len(s.records)-1-i] = record
	}
	return out
}

func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	p := prefs.Load(s.store, r, w)
	s.write(w, r, p, s.renderOptions(s.doc.Values), nil, http.StatusOK)
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p := prefs.Load(s.store, r, w)
	results := validation.ValidateValues(s.doc.Fields, r.PostForm,
		validation.WithTranslator(s.localizer.Translator),
		validation.WithLocale(s.localizer.Locale),
		validation.WithLogger(s.logger),
	)

	values := formValues(s.doc.Fields, r.PostForm)
	if !results.Valid() {
		ro := s.renderOptions(values)
		ro.Errors = results.Errors()
		n := s.center.Notify(notify.LevelDanger, s.localizer.Text(render.MsgFormInvalid))
		s.logger.Info("submission rejected", zap.Strings("fields", results.Invalid()))
		s.write(w, r, p, ro, []notify.Notification{n}, http.StatusUnprocessableEntity)
		return
	}

	s.mu.Lock()
	s.nextID++
	s.records = append(s.records, charts.Record{
		ID:        s.nextID,
		CreatedAt: s.now().Format("2006-01-02"),
		Values:    values,
	})
	s.mu.Unlock()

	n := s.center.Notify(notify.LevelSuccess, s.localizer.Text(render.MsgRecordSaved))
	s.write(w, r, p, s.renderOptions(s.doc.Values), []notify.Notification{n}, http.StatusOK)
}

func (s *Server) theme(w http.ResponseWriter, r *http.Request) {
	theme, err := prefs.ParseTheme(r.URL.Query().Get("theme"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.store.SetTheme(theme)
	prefs.WriteCookie(w, prefs.Preferences{Theme: theme})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) analytics(w http.ResponseWriter, _ *http.Request) {
	a := charts.TableAnalytics(s.Records(), s.doc.Fields, s.localizer)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a); err != nil {
		s.logger.Warn("encode analytics", zap.Error(err))
	}
}

func (s *Server) renderOptions(values field.ValueMap) render.RenderOptions {
	ro := s.doc.RenderOptions(s.localizer)
	ro.Method = http.MethodPost
	ro.Action = "/"
	ro.Values = values
	return ro
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, p prefs.Preferences, ro render.RenderOptions, notifications []notify.Notification, status int) {
	out, err := s.renderer.Render(r.Context(), bootstrap.Page{
		Title:         s.title(),
		Path:          r.URL.Path,
		Definitions:   s.doc.Fields,
		Preferences:   p,
		Notifications: notifications,
	}, ro)
	if err != nil {
		s.logger.Error("render page", zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", s.renderer.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(out)
}

func (s *Server) title() string {
	if title := s.doc.Title(); title != "" {
		return title
	}
	return "Formulaire"
}

// formValues maps submitted controls back to technical names. Numbers are
// stored as float64 and empty values are dropped.
func formValues(defs []field.Definition, form url.Values) field.ValueMap {
	values := make(field.ValueMap, len(defs))
	for _, def := range defs {
		raw := form.Get(def.ControlName())
		if strings.TrimSpace(raw) == "" {
			continue
		}
		if def.Kind == field.KindNumber {
			if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
				values[def.Name] = f
				continue
			}
		}
		values[def.Name] = raw
	}
	return values
}
