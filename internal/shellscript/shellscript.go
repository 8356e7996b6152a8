// Package shellscript ships the bash and zsh integration scripts that emit
// OSC 633 sequences, and rewrites shell launch arguments to load them.
package shellscript

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed scripts
var scripts embed.FS

// Shells lists the shells with an integration script.
var Shells = []string{"bash", "zsh"}

// Script returns the integration script for shell ("bash" or "zsh").
func Script(shell string) (string, error) {
	switch shell {
	case "bash", "zsh":
		b, err := scripts.ReadFile("scripts/commas." + shell)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return "", fmt.Errorf("unsupported shell %q (want %s)", shell, strings.Join(Shells, " or "))
}

// Install writes the scripts below dir:
//
//	dir/commas.bash
//	dir/zsh/.zshenv .zprofile .zshrc
func Install(dir string) error {
	files := map[string]string{
		"commas.bash":   "scripts/commas.bash",
		"zsh/.zshenv":   "scripts/zshenv",
		"zsh/.zprofile": "scripts/zprofile",
		"zsh/.zshrc":    "scripts/commas.zsh",
	}
	for dst, src := range files {
		b, err := scripts.ReadFile(src)
		if err != nil {
			return err
		}
		p := filepath.Join(dir, dst)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(p, b, 0o644); err != nil {
			return fmt.Errorf("install %s: %w", dst, err)
		}
	}
	return nil
}

// Launch is a shell command line ready to start.
type Launch struct {
	Path       string
	Args       []string
	Env        []string
	Integrated bool
}

// Integrate rewrites a shell launch so the integration script from dir is
// loaded. Shells without a script are returned unchanged.
//
// bash loads the script through --rcfile; since login shells ignore it, a
// login flag is dropped and the script sources the profile itself. zsh reads
// its startup files from ZDOTDIR, which points at dir/zsh until .zshrc
// restores the user's value.
func Integrate(path string, args, env []string, dir string) Launch {
	l := Launch{Path: path, Args: append([]string(nil), args...), Env: append([]string(nil), env...)}
	switch strings.TrimSuffix(filepath.Base(path), ".exe") {
	case "bash":
		var rest []string
		login := false
		for _, a := range l.Args {
			if a == "-l" || a == "--login" {
				login = true
				continue
			}
			rest = append(rest, a)
		}
		l.Args = append([]string{"--rcfile", filepath.Join(dir, "commas.bash")}, rest...)
		l.Env = append(l.Env, "COMMAS_INJECT=1")
		if login {
			l.Env = append(l.Env, "COMMAS_LOGIN=1")
		}
		l.Integrated = true
	case "zsh":
		user := lookup(env, "ZDOTDIR")
		if user == "" {
			user = lookup(env, "HOME")
		}
		l.Env = setEnv(l.Env, "ZDOTDIR", filepath.Join(dir, "zsh"))
		l.Env = append(l.Env, "COMMAS_USER_ZDOTDIR="+user, "COMMAS_INJECT=1")
		l.Integrated = true
	}
	return l
}

func lookup(env []string, key string) string {
	for i := len(env) - 1; i >= 0; i-- {
		if k, v, ok := strings.Cut(env[i], "="); ok && k == key {
			return v
		}
	}
	return ""
}

func setEnv(env []string, key, val string) []string {
	out := env[:0]
	for _, kv := range env {
		if k, _, _ := strings.Cut(kv, "="); k != key {
			out = append(out, kv)
		}
	}
	return append(out, key+"="+val)
}
