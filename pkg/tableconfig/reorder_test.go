package tableconfig_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-scoutforms/pkg/dom"
	"github.com/goliatone/go-scoutforms/pkg/notify"
	"github.com/goliatone/go-scoutforms/pkg/tableconfig"
	"github.com/goliatone/go-scoutforms/pkg/testsupport"
)

const fieldsPage = `<div>
<button id="reorderBtn" class="btn btn-sm btn-outline-light"><i class="fas fa-sort me-1"></i>Réorganiser</button>
<table class="table"><tbody id="sortableFields">
<tr data-id="11"><td>Nom</td></tr>
<tr data-id="12"><td>Âge</td></tr>
<tr data-id="13"><td>Unité</td></tr>
</tbody></table>
</div>`

type orderServer struct {
	srv      *httptest.Server
	received map[string]int
	path     string
}

func newOrderServer(t *testing.T, status int, body string) *orderServer {
	t.Helper()
	s := &orderServer{}
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.path = r.URL.Path
		var payload struct {
			Fields map[string]int `json:"fields"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.received = payload.Fields
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(s.srv.Close)
	return s
}

func TestTableIDFromPath(t *testing.T) {
	cases := map[string]string{
		"/manage_tables/7/fields": "7",
		"/tables/42/records":      "42",
		"/tables/":                "",
		"/records/3":              "",
	}
	for path, want := range cases {
		got, ok := tableconfig.TableIDFromPath(path)
		if got != want || ok != (want != "") {
			t.Errorf("TableIDFromPath(%q) = %q, %v; want %q", path, got, ok, want)
		}
	}
}

func TestOrderClient_SaveOrder(t *testing.T) {
	server := newOrderServer(t, http.StatusOK, `{"success": true}`)
	client := tableconfig.NewOrderClient(server.srv.URL+"/", tableconfig.WithTimeout(2*time.Second))

	if err := client.SaveOrder(context.Background(), "7", map[string]int{"11": 2, "12": 1}); err != nil {
		t.Fatalf("save order: %v", err)
	}
	if server.path != "/manage_tables/7/fields/order" {
		t.Fatalf("unexpected path %q", server.path)
	}
	if diff := cmp.Diff(map[string]int{"11": 2, "12": 1}, server.received); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestOrderClient_Failures(t *testing.T) {
	rejected := newOrderServer(t, http.StatusOK, `{"success": false}`)
	err := tableconfig.NewOrderClient(rejected.srv.URL).SaveOrder(context.Background(), "7", map[string]int{"1": 1})
	if !errors.Is(err, tableconfig.ErrOrderRejected) {
		t.Fatalf("expected ErrOrderRejected, got %v", err)
	}

	broken := newOrderServer(t, http.StatusInternalServerError, `{"success": true}`)
	err = tableconfig.NewOrderClient(broken.srv.URL).SaveOrder(context.Background(), "7", map[string]int{"1": 1})
	if err == nil || !strings.Contains(err.Error(), "unexpected status") {
		t.Fatalf("expected status error, got %v", err)
	}

	garbled := newOrderServer(t, http.StatusOK, `<html>`)
	err = tableconfig.NewOrderClient(garbled.srv.URL).SaveOrder(context.Background(), "7", map[string]int{"1": 1})
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("expected decode error, got %v", err)
	}

	if err = tableconfig.NewOrderClient(garbled.srv.URL).SaveOrder(context.Background(), " ", nil); err == nil {
		t.Fatal("expected error for a blank table id")
	}
}

type highlightClock struct {
	pending []func()
}

func (c *highlightClock) AfterFunc(_ time.Duration, fn func()) {
	c.pending = append(c.pending, fn)
}

func TestReorderSession_SaveSuccess(t *testing.T) {
	server := newOrderServer(t, http.StatusOK, `{"success": true}`)
	root := testsupport.MustParseFragment(t, fieldsPage)
	var rec notify.Recorder
	clock := &highlightClock{}

	session := tableconfig.NewReorderSession(root, "7", tableconfig.NewOrderClient(server.srv.URL),
		tableconfig.WithNotifier(&rec),
		tableconfig.WithAfterFunc(clock.AfterFunc),
	)
	if session == nil {
		t.Fatal("expected a session")
	}
	button := dom.ByID(root, "reorderBtn")
	rows := dom.ByID(root, "sortableFields")

	if err := session.Click(context.Background()); err != nil {
		t.Fatalf("enable: %v", err)
	}
	if !session.Enabled() || dom.TextContent(button) != "Enregistrer l'ordre" {
		t.Fatalf("expected save mode, got %q", dom.TextContent(button))
	}
	if !dom.HasClass(button, "btn-warning") || dom.HasClass(button, "btn-outline-light") {
		t.Fatal("expected warning button style")
	}

	if !session.MoveRow("13", "11") {
		t.Fatal("move row failed")
	}
	if err := session.Click(context.Background()); err != nil {
		t.Fatalf("save: %v", err)
	}

	if diff := cmp.Diff(map[string]int{"13": 1, "11": 2, "12": 3}, server.received); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if session.Enabled() || dom.TextContent(button) != "Réorganiser" || !dom.HasClass(button, "btn-outline-light") {
		t.Fatal("expected button restored")
	}
	if !dom.HasClass(rows, "border-success") {
		t.Fatal("expected success highlight")
	}

	if len(clock.pending) != 1 {
		t.Fatalf("expected one scheduled callback, got %d", len(clock.pending))
	}
	clock.pending[0]()
	if dom.HasClass(rows, "border-success") {
		t.Fatal("expected highlight cleared")
	}

	levels := []notify.Level{}
	for _, msg := range rec.Messages() {
		levels = append(levels, msg.Level)
	}
	if diff := cmp.Diff([]notify.Level{notify.LevelInfo, notify.LevelSuccess}, levels); diff != "" {
		t.Fatalf("levels mismatch (-want +got):\n%s", diff)
	}
}

func TestReorderSession_FailureStillRestores(t *testing.T) {
	root := testsupport.MustParseFragment(t, fieldsPage)
	var rec notify.Recorder
	session := tableconfig.NewReorderSession(root, "7", failingSaver{},
		tableconfig.WithNotifier(&rec),
		tableconfig.WithAfterFunc((&highlightClock{}).AfterFunc),
	)
	if session == nil {
		t.Fatal("expected a session")
	}

	session.Enable()
	if err := session.Save(context.Background()); err == nil {
		t.Fatal("expected save error")
	}
	if session.Enabled() || dom.TextContent(dom.ByID(root, "reorderBtn")) != "Réorganiser" {
		t.Fatal("expected button restored after failure")
	}

	messages := rec.Messages()
	if len(messages) != 2 {
		t.Fatalf("expected two notifications, got %d", len(messages))
	}
	if messages[1].Level != notify.LevelDanger || messages[1].Message != "Une erreur est survenue lors de la mise à jour de l'ordre." {
		t.Fatalf("unexpected notification %+v", messages[1])
	}
}

func TestReorderSession_MissingElements(t *testing.T) {
	root := testsupport.MustParseFragment(t, `<div><table><tbody id="sortableFields"></tbody></table></div>`)
	if tableconfig.NewReorderSession(root, "7", failingSaver{}) != nil {
		t.Fatal("expected nil session without a reorder button")
	}
}

type failingSaver struct{}

func (failingSaver) SaveOrder(context.Context, string, map[string]int) error {
	return errors.New("network down")
}
