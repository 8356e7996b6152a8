package settings

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"commas/internal/config"
	"commas/internal/testutil"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	testutil.UseTempConfig(t)
	path, err := config.SettingsPath()
	if err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	data := `{"terminal.shell.highlightErrors": true, "terminal.shell.path": "/bin/zsh"}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.HighlightErrors || !got.AutoCompletion || got.Scrollback != 1000 {
		t.Fatalf("unexpected settings: %+v", got)
	}
	sh, args := got.Shell()
	if sh != "/bin/zsh" || len(args) != 1 || args[0] != "-l" {
		t.Fatalf("shell = %q %v", sh, args)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Fatalf("invalid file should yield defaults:\n%s", diff)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	testutil.UseTempConfig(t)
	path, err := config.SettingsPath()
	if err != nil {
		t.Fatal(err)
	}
	s := Default()
	s.AutoCompletion = false
	s.ShellArgs = []string{"-i"}
	if err := Save(path, s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(s, got); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}
}

func TestTimeoutFloor(t *testing.T) {
	s := Default()
	if s.Timeout() != 800*time.Millisecond {
		t.Fatalf("timeout = %v", s.Timeout())
	}
	s.CompletionTimeout = 0
	if s.Timeout() != 50*time.Millisecond {
		t.Fatalf("timeout floor = %v", s.Timeout())
	}
}

func TestSchemaListsDottedKeys(t *testing.T) {
	b, err := MarshalSchema(Schema())
	if err != nil {
		t.Fatalf("MarshalSchema: %v", err)
	}
	var doc struct {
		Properties map[string]json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("schema json: %v", err)
	}
	for _, k := range []string{"terminal.shell.autoCompletion", "terminal.shell.highlightErrors", "terminal.view.scrollback"} {
		if _, ok := doc.Properties[k]; !ok {
			t.Fatalf("schema missing %q", k)
		}
	}
}

func TestStoreReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !st.AutoCompletion() || st.HighlightErrors() {
		t.Fatalf("defaults not served")
	}
	s := Default()
	s.HighlightErrors = true
	if err := Save(path, s); err != nil {
		t.Fatal(err)
	}
	if err := st.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if !st.HighlightErrors() {
		t.Fatalf("reload not applied")
	}
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := st.Reload(); !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v", err)
	}
	if !st.HighlightErrors() {
		t.Fatalf("bad reload should keep previous settings")
	}
}

func TestStoreWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	st, _ := Open(path)
	ch, closer, err := st.Watch()
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer closer.Close()
	s := Default()
	s.AutoCompletion = false
	if err := Save(path, s); err != nil {
		t.Fatal(err)
	}
	select {
	case <-ch:
	case <-time.After(3 * time.Second):
		t.Fatal("no reload notification")
	}
	if st.AutoCompletion() {
		t.Fatalf("watch did not reload")
	}
}
