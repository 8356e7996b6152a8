package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"

	"commas/internal/completion"
	"commas/internal/settings"
)

func init() { gin.SetMode(gin.TestMode) }

func testServer(p completion.Provider) *httptest.Server {
	st := settings.Default()
	st.ShellPath = "/bin/sh"
	st.ShellArgs = nil
	st.Integration = false
	return httptest.NewServer((&Server{Settings: settings.NewStore(st), Provider: p}).Handler())
}

func getJSON(t *testing.T, url string, v any) {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestHealthAndVersion(t *testing.T) {
	ts := testServer(nil)
	defer ts.Close()
	var health map[string]string
	getJSON(t, ts.URL+"/api/health", &health)
	if health["status"] != "ok" {
		t.Fatalf("health = %v", health)
	}
	var ver map[string]string
	getJSON(t, ts.URL+"/api/version", &ver)
	if ver["version"] == "" {
		t.Fatalf("empty version")
	}
}

func TestCompletionsRanked(t *testing.T) {
	p := completion.ProviderFunc(func(ctx context.Context, input, cwd string) ([]completion.Candidate, error) {
		return []completion.Candidate{
			{Query: input, Value: "make"},
			{Query: input, Value: "man"},
			{Query: input, Value: "zzz"},
		}, nil
	})
	ts := testServer(p)
	defer ts.Close()
	var out struct {
		Candidates []completion.Candidate `json:"candidates"`
	}
	getJSON(t, ts.URL+"/api/completions?input=ma", &out)
	var values []string
	for _, c := range out.Candidates {
		values = append(values, c.Value)
	}
	if diff := cmp.Diff([]string{"man", "make"}, values); diff != "" {
		t.Fatalf("candidates (-want +got):\n%s", diff)
	}
}

func TestCompletionsWithoutProvider(t *testing.T) {
	ts := testServer(nil)
	defer ts.Close()
	var out struct {
		Candidates []completion.Candidate `json:"candidates"`
	}
	getJSON(t, ts.URL+"/api/completions?input=x", &out)
	if out.Candidates == nil || len(out.Candidates) != 0 {
		t.Fatalf("want empty list, got %#v", out.Candidates)
	}
}

func TestQuickFix(t *testing.T) {
	ts := testServer(nil)
	defer ts.Close()
	body := `{"command":"git push","output":"fatal: The current branch feat has no upstream branch.\nTo push the current branch and set the remote as upstream, use\n\n    git push --set-upstream origin feat\n"}`
	res, err := http.Post(ts.URL+"/api/quickfix", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	var out struct {
		Actions []struct {
			Command string `json:"command"`
		} `json:"actions"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Actions) != 1 || out.Actions[0].Command != "git push --set-upstream origin feat" {
		t.Fatalf("actions = %+v", out.Actions)
	}

	bad, err := http.Post(ts.URL+"/api/quickfix", "application/json", strings.NewReader(`{"nope":1}`))
	if err != nil {
		t.Fatal(err)
	}
	bad.Body.Close()
	if bad.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", bad.StatusCode)
	}
}

func TestIndexServed(t *testing.T) {
	ts := testServer(nil)
	defer ts.Close()
	res, err := http.Get(ts.URL + "/some/route")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK || !strings.HasPrefix(res.Header.Get("Content-Type"), "text/html") {
		t.Fatalf("status %d type %q", res.StatusCode, res.Header.Get("Content-Type"))
	}
	api, err := http.Get(ts.URL + "/api/missing")
	if err != nil {
		t.Fatal(err)
	}
	api.Body.Close()
	if api.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown api route status = %d", api.StatusCode)
	}
}

func TestTerminalEchoesOverWebSocket(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}
	ts := testServer(nil)
	defer ts.Close()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/term/ws?cols=80&rows=24"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if err := conn.WriteJSON(clientMsg{Type: "input", Data: "echo commas-$((40+2))\n"}); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(5 * time.Second)
	var seen strings.Builder
	for time.Now().Before(deadline) {
		_ = conn.SetReadDeadline(deadline)
		mt, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if mt == websocket.BinaryMessage {
			seen.Write(data)
			if strings.Contains(seen.String(), "commas-42") {
				return
			}
		}
	}
	t.Fatalf("no echo in output %q", seen.String())
}

// wsPair returns the server and client ends of a WebSocket connection.
func wsPair(t *testing.T) (*websocket.Conn, *websocket.Conn) {
	t.Helper()
	conns := make(chan *websocket.Conn, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := wsUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		conns <- c
	}))
	t.Cleanup(ts.Close)
	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	server := <-conns
	t.Cleanup(func() {
		_ = client.Close()
		_ = server.Close()
	})
	return server, client
}

func TestTerminalSessionReadsSettingsLive(t *testing.T) {
	cfg := settings.Default()
	cfg.AutoCompletion = false
	store := settings.NewStore(cfg)
	prompts := 0
	srv := &Server{
		Settings: store,
		Provider: completion.ProviderFunc(func(_ context.Context, input, _ string) ([]completion.Candidate, error) {
			return []completion.Candidate{{Query: input, Value: "git"}}, nil
		}),
		OnPromptEnd: func() { prompts++ },
	}
	conn, _ := wsPair(t)
	sess := srv.newTermSession(conn, nil, 40, 10)
	defer sess.addon.Dispose()

	_, _ = sess.screen.Write([]byte("$ \x1b]633;B\x07g"))
	if prompts != 1 {
		t.Fatalf("prompt hook calls = %d, want 1", prompts)
	}
	if len(sess.addon.Tab.Completions) != 0 {
		t.Fatalf("completion shown while disabled")
	}

	cfg.AutoCompletion = true
	store.Set(cfg)
	_, _ = sess.screen.Write([]byte("i"))
	select {
	case fn := <-sess.events:
		fn()
	case <-time.After(3 * time.Second):
		t.Fatalf("no completion round after enabling")
	}
	if len(sess.addon.Tab.Completions) != 1 || sess.addon.Tab.Completions[0].Value != "git" {
		t.Fatalf("completions = %+v", sess.addon.Tab.Completions)
	}
}

func TestNilSettingsUseDefaults(t *testing.T) {
	srv := &Server{}
	if srv.store() != srv.store() {
		t.Fatalf("default store should be reused")
	}
	if !srv.store().AutoCompletion() {
		t.Fatalf("defaults should enable completion")
	}
}
