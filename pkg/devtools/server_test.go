package devtools

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/tessel"
	"github.com/vango-dev/tessel/internal/logging"
	"github.com/vango-dev/tessel/pkg/backend"
	"github.com/vango-dev/tessel/pkg/dom"
	"github.com/vango-dev/tessel/pkg/event"
	"github.com/vango-dev/tessel/pkg/telemetry"
)

type fixture struct {
	app   *tessel.App
	mem   *backend.MemoryBackend
	srv   *httptest.Server
	label *tessel.Signal[string]
}

func setup(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		app: tessel.New(tessel.Config{
			Logger:  logging.Discard(),
			Metrics: telemetry.NewMetrics(),
		}),
		mem:   backend.Memory(16, 2),
		label: tessel.NewSignal("first"),
	}
	dt := New(f.app)
	f.srv = httptest.NewServer(dt.Handler())

	done := make(chan error, 1)
	go func() {
		done <- f.app.Run(context.Background(), f.mem, tessel.Col(
			tessel.Dyn(func() *tessel.View { return tessel.Text(f.label.Get()) }),
			tessel.Text("[btn]", tessel.ID("btn"), tessel.Focusable()),
		))
	}()
	t.Cleanup(func() {
		dt.Close()
		f.srv.Close()
		f.app.Quit()
		<-done
	})
	f.waitText(t, "first")
	return f
}

func (f *fixture) waitText(t *testing.T, want string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := f.mem.WaitFor(ctx, func(s string) bool { return strings.Contains(s, want) }); err != nil {
		t.Fatalf("frame never contained %q", want)
	}
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestTreeEndpoint(t *testing.T) {
	f := setup(t)

	code, body := get(t, f.srv.URL+"/tree")
	if code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", code, body)
	}
	var snap dom.Snapshot
	if err := json.Unmarshal([]byte(body), &snap); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if snap.Name != "root" || len(snap.Children) != 1 {
		t.Fatalf("root = %+v", snap)
	}
	col := snap.Children[0]
	if len(col.Children) != 3 {
		t.Fatalf("col children = %d, want text, placeholder, button", len(col.Children))
	}
	if col.Children[0].Text != "first" || col.Children[2].ID != "btn" || !col.Children[2].Focusable {
		t.Errorf("children = %+v", col.Children)
	}
}

func TestFocusEndpoint(t *testing.T) {
	f := setup(t)

	_, body := get(t, f.srv.URL+"/focus")
	var info FocusInfo
	if err := json.Unmarshal([]byte(body), &info); err != nil {
		t.Fatal(err)
	}
	if info.Focused != "" || len(info.Registry) != 1 || info.Registry[0] != "widget#btn" {
		t.Errorf("before Tab: %+v", info)
	}

	f.mem.Send(event.Special(event.KeyTab))
	deadline := time.Now().Add(2 * time.Second)
	for info.Focused != "btn" && time.Now().Before(deadline) {
		_, body = get(t, f.srv.URL+"/focus")
		json.Unmarshal([]byte(body), &info)
	}
	if info.Focused != "btn" || info.FocusedKey == "" {
		t.Errorf("after Tab: %+v", info)
	}
}

func TestFrameEndpoint(t *testing.T) {
	f := setup(t)

	code, body := get(t, f.srv.URL+"/frame")
	if code != http.StatusOK || !strings.HasPrefix(body, "first") {
		t.Errorf("GET /frame = %d %q", code, body)
	}
	if strings.Contains(body, "\x1b[") {
		t.Error("frame should be plain text")
	}
}

func TestStatsAndMetricsEndpoints(t *testing.T) {
	f := setup(t)

	_, body := get(t, f.srv.URL+"/stats")
	var stats tessel.Stats
	if err := json.Unmarshal([]byte(body), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.Frames == 0 || stats.Redraws == 0 {
		t.Errorf("stats = %+v", stats)
	}

	code, body := get(t, f.srv.URL+"/metrics")
	if code != http.StatusOK || !strings.Contains(body, "tessel_redraws_total") {
		t.Errorf("GET /metrics = %d, missing redraws", code)
	}
}

func TestInspectFailsAfterStop(t *testing.T) {
	f := setup(t)
	f.app.Quit()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for f.app.QueueUpdate(func() {}) && ctx.Err() == nil {
		time.Sleep(5 * time.Millisecond)
	}

	if code, _ := get(t, f.srv.URL+"/tree"); code != http.StatusServiceUnavailable {
		t.Errorf("GET /tree after stop = %d, want 503", code)
	}
}

func TestWebsocketStreamsFrames(t *testing.T) {
	f := setup(t)

	url := "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var first tessel.Frame
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(first.Text, "first") {
		t.Errorf("initial frame = %q", first.Text)
	}

	f.label.Set("second")
	for {
		var next tessel.Frame
		if err := conn.ReadJSON(&next); err != nil {
			t.Fatalf("no frame with the new label: %v", err)
		}
		if strings.HasPrefix(next.Text, "second") {
			if next.Seq == 0 || next.Width != 16 {
				t.Errorf("frame = %+v", next)
			}
			return
		}
	}
}
