package dashboard

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-agenda/pkg/api"
	"github.com/goliatone/go-agenda/pkg/appointment"
	"github.com/goliatone/go-agenda/pkg/testsupport/fakeapi"
)

var lima = time.FixedZone("America/Lima", -5*60*60)

// recorder implements every view port and remembers what it was told.
type recorder struct {
	mu sync.Mutex

	events        [][]appointment.Event
	shown         []ModalView
	hidden        int
	saving        []bool
	clientOptions []SelectOption
	notes         []Notification

	confirmAnswer bool
	promptAnswer  string
	promptOK      bool
	confirms      []string
	prompts       []string

	listState []string
	rows      []ListRow
	cards     []StatCard
}

func (r *recorder) SetEvents(events []appointment.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events)
}

func (r *recorder) Show(view ModalView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shown = append(r.shown, view)
}

func (r *recorder) Hide() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hidden++
}

func (r *recorder) SetSaving(saving bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saving = append(r.saving, saving)
}

func (r *recorder) SetClientOptions(options []SelectOption) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clientOptions = options
}

func (r *recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

func (r *recorder) Confirm(_ context.Context, message string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.confirms = append(r.confirms, message)
	return r.confirmAnswer, nil
}

func (r *recorder) Prompt(_ context.Context, message string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prompts = append(r.prompts, message)
	return r.promptAnswer, r.promptOK, nil
}

func (r *recorder) ShowLoading(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listState = append(r.listState, "loading")
}

func (r *recorder) ShowRows(rows []ListRow) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listState = append(r.listState, "rows")
	r.rows = rows
}

func (r *recorder) ShowEmpty(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listState = append(r.listState, "empty:"+message)
}

func (r *recorder) ShowError(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listState = append(r.listState, "error:"+message)
}

func (r *recorder) ShowStats(cards []StatCard) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cards = cards
}

func (r *recorder) lastNote() Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notes) == 0 {
		return Notification{}
	}
	return r.notes[len(r.notes)-1]
}

func (r *recorder) lastEvents() []appointment.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

// history is a separate port so its visibility can be toggled.
type historyRecorder struct {
	mu      sync.Mutex
	visible bool
	states  []string
	rows    []HistoryRow
}

func (h *historyRecorder) Visible() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.visible
}

func (h *historyRecorder) ShowLoading(string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.states = append(h.states, "loading")
}

func (h *historyRecorder) ShowRows(rows []HistoryRow) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.states = append(h.states, "rows")
	h.rows = rows
}

func (h *historyRecorder) ShowEmpty(message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.states = append(h.states, "empty:"+message)
}

func (h *historyRecorder) ShowError(message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.states = append(h.states, "error:"+message)
}

type fixture struct {
	backend *fakeapi.Server
	client  *api.Client
	ui      *recorder
	history *historyRecorder
	ctrl    *Controller
}

func newFixture(t *testing.T, role appointment.Role, opts ...Option) *fixture {
	t.Helper()
	backend := fakeapi.New(
		fakeapi.WithRole(role),
		fakeapi.WithClients(appointment.Client{ID: 7, Username: "maria", Email: "maria@example.com"}),
	)
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)

	client, err := api.New(api.Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("api client: %v", err)
	}

	ui := &recorder{confirmAnswer: true, promptOK: true}
	history := &historyRecorder{}
	ctrl, err := New(client, role, append(uiOptions(ui, history), opts...)...)
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	return &fixture{backend: backend, client: client, ui: ui, history: history, ctrl: ctrl}
}

func uiOptions(ui *recorder, history *historyRecorder) []Option {
	return []Option{
		WithCalendar(ui),
		WithModal(ui),
		WithNotifier(ui),
		WithPrompter(ui),
		WithListView(ui),
		WithHistoryView(history),
		WithStatsView(ui),
		WithLocation(lima),
	}
}

func (f *fixture) seed(id int64, name, start, end string) int64 {
	return f.backend.Seed(fakeapi.Record{ID: id, PatientName: name, Start: start, End: end})
}
