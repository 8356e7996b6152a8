package shellscript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScript(t *testing.T) {
	for _, sh := range Shells {
		s, err := Script(sh)
		if err != nil {
			t.Fatalf("Script(%s): %v", sh, err)
		}
		for _, code := range []string{"633;A", "633;B", "633;C", "633;D", "633;E", "633;P;Cwd="} {
			if !strings.Contains(s, code) {
				t.Fatalf("%s script lacks %q", sh, code)
			}
		}
	}
	if _, err := Script("fish"); err == nil {
		t.Fatalf("fish should be unsupported")
	}
}

func TestBashPromptCommandDisarmsTrap(t *testing.T) {
	s, err := Script("bash")
	if err != nil {
		t.Fatalf("Script: %v", err)
	}
	// Nothing may run between the status capture and the disarm, and the
	// disarm itself must not be reported as a command.
	if !strings.Contains(s, "PROMPT_COMMAND='__commas_status=$?;__commas_ready=0;'") {
		t.Fatalf("PROMPT_COMMAND does not disarm the preexec trap")
	}
	if !strings.Contains(s, "__commas_ready=*") {
		t.Fatalf("preexec does not skip the disarm")
	}
}

func TestInstall(t *testing.T) {
	dir := t.TempDir()
	if err := Install(dir); err != nil {
		t.Fatalf("Install: %v", err)
	}
	for _, f := range []string{"commas.bash", "zsh/.zshenv", "zsh/.zprofile", "zsh/.zshrc"} {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			t.Fatalf("missing %s: %v", f, err)
		}
	}
}

func TestIntegrateBash(t *testing.T) {
	l := Integrate("/bin/bash", []string{"-l", "-x"}, []string{"HOME=/h"}, "/d")
	want := Launch{
		Path:       "/bin/bash",
		Args:       []string{"--rcfile", filepath.Join("/d", "commas.bash"), "-x"},
		Env:        []string{"HOME=/h", "COMMAS_INJECT=1", "COMMAS_LOGIN=1"},
		Integrated: true,
	}
	if diff := cmp.Diff(want, l); diff != "" {
		t.Fatalf("bash launch (-want +got):\n%s", diff)
	}
}

func TestIntegrateZsh(t *testing.T) {
	l := Integrate("/usr/bin/zsh", []string{"-l"}, []string{"HOME=/h", "ZDOTDIR=/z"}, "/d")
	want := Launch{
		Path:       "/usr/bin/zsh",
		Args:       []string{"-l"},
		Env:        []string{"HOME=/h", "ZDOTDIR=" + filepath.Join("/d", "zsh"), "COMMAS_USER_ZDOTDIR=/z", "COMMAS_INJECT=1"},
		Integrated: true,
	}
	if diff := cmp.Diff(want, l); diff != "" {
		t.Fatalf("zsh launch (-want +got):\n%s", diff)
	}
}

func TestIntegrateOtherShellUnchanged(t *testing.T) {
	l := Integrate("/usr/bin/fish", []string{"-l"}, nil, "/d")
	if l.Integrated || len(l.Args) != 1 || len(l.Env) != 0 {
		t.Fatalf("fish launch = %+v", l)
	}
}
