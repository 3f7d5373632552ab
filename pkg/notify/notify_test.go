package notify_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-scoutforms/pkg/dom"
	"github.com/goliatone/go-scoutforms/pkg/notify"
	"github.com/goliatone/go-scoutforms/pkg/testsupport"
)

type scheduled struct {
	delay time.Duration
	fn    func()
}

type fakeClock struct {
	pending []scheduled
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) {
	c.pending = append(c.pending, scheduled{delay: d, fn: fn})
}

// fire runs the i-th scheduled callback.
func (c *fakeClock) fire(t *testing.T, i int) time.Duration {
	t.Helper()
	if i >= len(c.pending) {
		t.Fatalf("no scheduled callback %d (have %d)", i, len(c.pending))
	}
	c.pending[i].fn()
	return c.pending[i].delay
}

func TestRender(t *testing.T) {
	node := notify.Render(notify.Notification{Level: "danger", Message: "Veuillez corriger <b>les erreurs</b>", Visible: true})
	got := testsupport.MustRender(t, node)
	want := `<div class="alert alert-danger alert-dismissible fade show notification-alert" role="alert">` +
		`Veuillez corriger &lt;b&gt;les erreurs&lt;/b&gt;` +
		`<button type="button" class="btn-close" data-bs-dismiss="alert" aria-label="Close"></button></div>`
	if got != want {
		t.Fatalf("render mismatch\nwant: %s\n got: %s", want, got)
	}
}

func TestCenter_ShowMountsAndExpires(t *testing.T) {
	doc := testsupport.MustParseDocument(t, `<html><body><main></main></body></html>`)
	clock := &fakeClock{}
	center := notify.NewCenter(notify.WithDocument(doc), notify.WithAfterFunc(clock.AfterFunc))

	first := center.Show("Premier", notify.LevelSuccess, 0)
	second := center.Show("Second", notify.LevelWarning, 2*time.Second)

	container := dom.ByID(doc, "alerts-container")
	if container == nil {
		t.Fatalf("expected alerts container")
	}
	if container.Parent == nil || container.Parent.Data != "body" {
		t.Fatalf("container should be appended to body")
	}
	if got := len(dom.ChildrenWithClass(container, "notification-alert")); got != 2 {
		t.Fatalf("expected 2 alerts, got %d", got)
	}

	if d := clock.fire(t, 0); d != notify.DefaultDuration {
		t.Fatalf("first removal scheduled after %s", d)
	}
	alerts := dom.ChildrenWithClass(container, "notification-alert")
	if dom.HasClass(alerts[0], "show") {
		t.Fatalf("first alert should be hidden before removal")
	}

	// fading the first alert scheduled its removal at index 2
	if d := clock.fire(t, 2); d != notify.FadeDuration {
		t.Fatalf("fade removal scheduled after %s", d)
	}

	active := center.Active()
	if len(active) != 1 || active[0].ID != second.ID {
		t.Fatalf("expected only the second notification to remain, got %+v", active)
	}
	if active[0].ID == first.ID {
		t.Fatalf("first notification should be gone")
	}
	if got := len(dom.ChildrenWithClass(container, "notification-alert")); got != 1 {
		t.Fatalf("expected 1 mounted alert, got %d", got)
	}

	if d := clock.fire(t, 1); d != 2*time.Second {
		t.Fatalf("second removal scheduled after %s", d)
	}
}

func TestCenter_DismissAndLevels(t *testing.T) {
	clock := &fakeClock{}
	center := notify.NewCenter(notify.WithAfterFunc(clock.AfterFunc), notify.WithDuration(time.Second))

	n := center.Notify("bogus", "Info")
	if n.Level != notify.LevelInfo || n.Duration != time.Second {
		t.Fatalf("unexpected notification %+v", n)
	}
	center.Dismiss(n.ID)
	if len(center.Active()) != 0 {
		t.Fatalf("expected no active notifications")
	}

	// expiring an already dismissed alert is harmless
	clock.fire(t, 0)
	clock.fire(t, 1)
}

func TestRecorder(t *testing.T) {
	var rec notify.Recorder
	rec.Notify(notify.LevelDanger, "a")
	rec.Notify("error", "b")

	var levels []notify.Level
	for _, msg := range rec.Messages() {
		levels = append(levels, msg.Level)
	}
	if diff := cmp.Diff([]notify.Level{notify.LevelDanger, notify.LevelDanger}, levels); diff != "" {
		t.Fatalf("levels mismatch (-want +got):\n%s", diff)
	}
}
