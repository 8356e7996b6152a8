package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
)

// ErrInvalid marks a settings file that cannot be decoded.
var ErrInvalid = errors.New("invalid settings file")

// Settings mirrors settings.json. Keys keep their dotted names.
type Settings struct {
	AutoCompletion    bool     `json:"terminal.shell.autoCompletion" jsonschema:"description=Show completions while typing,default=true"`
	HighlightErrors   bool     `json:"terminal.shell.highlightErrors" jsonschema:"description=Highlight the output rows of failed commands"`
	Integration       bool     `json:"terminal.shell.integration" jsonschema:"description=Inject the shell integration script,default=true"`
	ShellPath         string   `json:"terminal.shell.path,omitempty" jsonschema:"description=Shell executable; defaults to $SHELL"`
	ShellArgs         []string `json:"terminal.shell.args,omitempty" jsonschema:"description=Arguments passed to the shell"`
	Scrollback        int      `json:"terminal.view.scrollback" jsonschema:"description=Lines kept above the viewport,minimum=0,default=1000"`
	CompletionTimeout int      `json:"terminal.shell.completionTimeout" jsonschema:"description=Completion provider timeout in milliseconds,minimum=50,default=800"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		AutoCompletion:    true,
		Integration:       true,
		ShellArgs:         []string{"-l"},
		Scrollback:        1000,
		CompletionTimeout: 800,
	}
}

// Shell resolves the shell executable and arguments.
func (s Settings) Shell() (string, []string) {
	path := strings.TrimSpace(s.ShellPath)
	if path == "" {
		path = os.Getenv("SHELL")
	}
	if path == "" {
		path = "/bin/bash"
	}
	return path, append([]string(nil), s.ShellArgs...)
}

// Timeout is the completion provider deadline.
func (s Settings) Timeout() time.Duration {
	if s.CompletionTimeout < 50 {
		return 50 * time.Millisecond
	}
	return time.Duration(s.CompletionTimeout) * time.Millisecond
}

// Load reads settings from path over the defaults.
// A missing file yields defaults without error. A malformed file yields
// defaults and an error wrapping ErrInvalid.
func Load(path string) (Settings, error) {
	s := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}
	if strings.TrimSpace(string(b)) == "" {
		return s, nil
	}
	if err := json.Unmarshal(b, &s); err != nil {
		return Default(), fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	if s.Scrollback < 0 {
		s.Scrollback = 0
	}
	return s, nil
}

// Save writes s to path, creating parent dirs.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

// Schema returns the JSON Schema of settings.json.
func Schema() *jsonschema.Schema {
	r := jsonschema.Reflector{ExpandedStruct: true, DoNotReference: true}
	sch := r.Reflect(&Settings{})
	sch.Title = "commas settings"
	sch.Description = "Terminal and shell integration settings (settings.json)."
	return sch
}

// MarshalSchema indents the schema to JSON bytes.
func MarshalSchema(sch *jsonschema.Schema) ([]byte, error) {
	return json.MarshalIndent(sch, "", "  ")
}
