package completion

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode"

	"commas/internal/store"
	"commas/internal/system"
)

const maxDirEntries = 200

var branchSubcommands = map[string]bool{
	"checkout": true,
	"switch":   true,
	"merge":    true,
	"rebase":   true,
}

// Local completes from the machine itself: executables on PATH for the
// first word, file names for later words, git branches after the branch
// taking git subcommands, and user snippets for the whole line.
type Local struct {
	snippetsPath string

	mu       sync.RWMutex
	commands []string
	snippets []store.Snippet
}

// NewLocal builds the index immediately. snippetsPath may be empty.
func NewLocal(snippetsPath string) *Local {
	l := &Local{snippetsPath: snippetsPath}
	l.Refresh()
	return l
}

// Refresh rebuilds the PATH index and reloads snippets. It runs whenever
// the shell reaches a new prompt.
func (l *Local) Refresh() {
	cmds := scanPath(os.Getenv("PATH"))
	var snips []store.Snippet
	if l.snippetsPath != "" {
		var err error
		if snips, err = store.LoadSnippets(l.snippetsPath); err != nil {
			system.Logger.Warn("load snippets", "path", l.snippetsPath, "err", err)
		}
	}
	l.mu.Lock()
	l.commands = cmds
	l.snippets = snips
	l.mu.Unlock()
}

func scanPath(pathEnv string) []string {
	seen := map[string]bool{}
	var out []string
	for _, dir := range filepath.SplitList(pathEnv) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			name := e.Name()
			if seen[name] || e.IsDir() {
				continue
			}
			info, err := e.Info()
			if err != nil || info.Mode()&0o111 == 0 {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// splitInput returns the completed words and the word under the cursor.
func splitInput(input string) (words []string, current string) {
	words = strings.Fields(input)
	if input == "" || unicode.IsSpace(rune(input[len(input)-1])) {
		return words, ""
	}
	return words[:len(words)-1], words[len(words)-1]
}

func (l *Local) Complete(ctx context.Context, input, cwd string) ([]Candidate, error) {
	words, current := splitInput(input)
	var out []Candidate

	if len(words) == 0 && current != "" && !strings.ContainsRune(current, '/') {
		out = append(out, l.commandCandidates(current)...)
	} else {
		out = append(out, fileCandidates(cwd, current)...)
	}

	if len(words) >= 2 && words[0] == "git" && branchSubcommands[words[1]] {
		branches, err := system.GitBranches(ctx, cwd)
		if err == nil {
			for _, b := range branches {
				out = append(out, Candidate{Type: TypeDefault, Query: current, Value: b, Description: "branch"})
			}
		}
	}

	if strings.TrimSpace(input) != "" {
		l.mu.RLock()
		for _, s := range l.snippets {
			desc := s.Description
			if desc == "" {
				desc = "snippet"
			}
			out = append(out, Candidate{Type: TypeRecommendation, Query: input, Value: s.Value, Description: desc})
		}
		l.mu.RUnlock()
	}
	return out, ctx.Err()
}

func (l *Local) commandCandidates(word string) []Candidate {
	first := unicode.ToLower([]rune(word)[0])
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []Candidate
	for _, name := range l.commands {
		// The first letter has to match; fuzzy ranking handles the rest.
		if unicode.ToLower([]rune(name)[0]) != first {
			continue
		}
		out = append(out, Candidate{Type: TypeDefault, Query: word, Value: name, Description: "command"})
	}
	return out
}

func fileCandidates(cwd, word string) []Candidate {
	dirPart, base := filepath.Split(word)
	dir := dirPart
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		dir = filepath.Join(home, dir[2:])
	}
	if !filepath.IsAbs(dir) {
		if cwd == "" {
			return nil
		}
		dir = filepath.Join(cwd, dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []Candidate
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(base, ".") {
			continue
		}
		c := Candidate{Type: TypeDefault, Query: base, Value: name, Description: "file"}
		if e.IsDir() {
			c.Value += "/"
			c.Description = "directory"
		}
		out = append(out, c)
		if len(out) >= maxDirEntries {
			break
		}
	}
	return out
}
