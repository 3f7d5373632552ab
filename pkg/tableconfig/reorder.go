package tableconfig

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/goliatone/go-scoutforms/pkg/dom"
	"github.com/goliatone/go-scoutforms/pkg/notify"
	"github.com/goliatone/go-scoutforms/pkg/render"
)

// HighlightDuration is how long the rows keep the border-success class after
// a save attempt.
const HighlightDuration = time.Second

// TableIDFromPath returns the path segment that follows "tables" or
// "manage_tables": "/manage_tables/7/fields" gives "7".
func TableIDFromPath(path string) (string, bool) {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if (part == "tables" || part == "manage_tables") && i+1 < len(parts) && parts[i+1] != "" {
			return parts[i+1], true
		}
	}
	return "", false
}

// ReorderOption configures a ReorderSession.
type ReorderOption func(*ReorderSession)

// WithNotifier receives the instructions and the save outcome.
func WithNotifier(n notify.Notifier) ReorderOption {
	return func(s *ReorderSession) {
		s.notifier = n
	}
}

// WithLocalizer sets the localizer for button captions and messages.
func WithLocalizer(l render.Localizer) ReorderOption {
	return func(s *ReorderSession) {
		s.localizer = l
	}
}

// WithAfterFunc replaces time.AfterFunc for the highlight removal.
func WithAfterFunc(fn notify.AfterFunc) ReorderOption {
	return func(s *ReorderSession) {
		if fn != nil {
			s.afterFunc = fn
		}
	}
}

// WithReorderLogger attaches a logger.
func WithReorderLogger(logger *zap.Logger) ReorderOption {
	return func(s *ReorderSession) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// ReorderSession drives the #reorderBtn toggle over the #sortableFields rows.
// The first click enables sorting; the next one saves the order and, whatever
// the outcome, disables sorting again.
type ReorderSession struct {
	mu        sync.Mutex
	rows      *html.Node
	button    *html.Node
	tableID   string
	saver     OrderSaver
	notifier  notify.Notifier
	localizer render.Localizer
	afterFunc notify.AfterFunc
	logger    *zap.Logger
	enabled   bool
}

// NewReorderSession binds the session to root. It returns nil when the rows
// container or the button is missing.
func NewReorderSession(root *html.Node, tableID string, saver OrderSaver, opts ...ReorderOption) *ReorderSession {
	rows := dom.ByID(root, "sortableFields")
	button := dom.ByID(root, "reorderBtn")
	if rows == nil || button == nil {
		return nil
	}
	s := &ReorderSession{
		rows:    rows,
		button:  button,
		tableID: tableID,
		saver:   saver,
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Enabled reports whether rows can currently be dragged.
func (s *ReorderSession) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Click handles a press on the reorder button.
func (s *ReorderSession) Click(ctx context.Context) error {
	if s.Enabled() {
		return s.Save(ctx)
	}
	s.Enable()
	return nil
}

// Enable turns sorting on, switches the button to its save state and shows
// the drag-and-drop instructions.
func (s *ReorderSession) Enable() {
	s.mu.Lock()
	if s.enabled {
		s.mu.Unlock()
		return
	}
	s.enabled = true
	dom.SetAttr(s.rows, "data-sortable", "enabled")
	s.setButton("fas fa-save me-1", s.localizer.Text(render.MsgReorderSave))
	dom.RemoveClass(s.button, "btn-outline-light")
	dom.AddClass(s.button, "btn-warning")
	s.mu.Unlock()

	s.notify(notify.LevelInfo, s.localizer.Text(render.MsgReorderHelp))
}

// Order returns the position of every row carrying data-id. Positions are the
// 1-based index among all rows.
func (s *ReorderSession) Order() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := make(map[string]int)
	for i, row := range dom.Find(s.rows, ".//tr") {
		if id := dom.AttrOr(row, "data-id", ""); id != "" {
			order[id] = i + 1
		}
	}
	return order
}

// MoveRow moves the row with data-id id before the row with data-id before,
// or to the end when before is empty. It is the drop half of a drag.
func (s *ReorderSession) MoveRow(id, before string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return false
	}
	row := dom.FindOne(s.rows, ".//tr[@data-id="+dom.Literal(id)+"]")
	if row == nil {
		return false
	}
	if before == "" {
		dom.Append(row.Parent, row)
		return true
	}
	target := dom.FindOne(s.rows, ".//tr[@data-id="+dom.Literal(before)+"]")
	if target == nil || target == row {
		return false
	}
	dom.Remove(row)
	target.Parent.InsertBefore(row, target)
	return true
}

// Save sends the current order. Success and failure are both reported
// through the notifier, and sorting is always switched off afterwards.
func (s *ReorderSession) Save(ctx context.Context) (err error) {
	order := s.Order()
	defer s.restore()

	if s.saver == nil {
		err = ErrOrderRejected
	} else {
		err = s.saver.SaveOrder(ctx, s.tableID, order)
	}
	if err != nil {
		s.logger.Warn("field order not saved", zap.String("table", s.tableID), zap.Error(err))
		s.notify(notify.LevelDanger, s.localizer.Text(render.MsgReorderFailed))
		return err
	}
	s.notify(notify.LevelSuccess, s.localizer.Text(render.MsgReorderSaved))
	return nil
}

func (s *ReorderSession) restore() {
	s.mu.Lock()
	s.enabled = false
	dom.SetAttr(s.rows, "data-sortable", "disabled")
	s.setButton("fas fa-sort me-1", s.localizer.Text(render.MsgReorder))
	dom.RemoveClass(s.button, "btn-warning")
	dom.AddClass(s.button, "btn-outline-light")
	dom.AddClass(s.rows, "border-success")
	s.mu.Unlock()

	s.afterFunc(HighlightDuration, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		dom.RemoveClass(s.rows, "border-success")
	})
}

func (s *ReorderSession) setButton(icon, caption string) {
	dom.Clear(s.button)
	dom.Append(s.button, dom.Element("i", "class", icon), dom.Text(caption))
}

func (s *ReorderSession) notify(level notify.Level, message string) {
	if s.notifier != nil {
		s.notifier.Notify(level, message)
	}
}
