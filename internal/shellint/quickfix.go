package shellint

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	upstreamRe = regexp.MustCompile(`git push --set-upstream origin (\S+)`)
	gitWordRe  = regexp.MustCompile(`\bgit\b`)
	portRe     = regexp.MustCompile(`address already in use (?:0\.0\.0\.0|127\.0\.0\.1|localhost|::):(\d{4,5})|Unable to bind \S*:(\d{4,5})|can't listen on port (\d{4,5})|listen EADDRINUSE \S*:(\d{4,5})`)
	similarRe  = regexp.MustCompile(`(?:most similar command is|most similar commands are|最相似的命令是)((?:\n\s*\S+)+)`)
	programRe  = regexp.MustCompile(`^([^\s:]+)[:：]`)
	npmRe      = regexp.MustCompile(`Did you mean (?:this|one of these)\?((?:\n\s*.+)+)\n+[A-Z]`)
)

// FreePortCommand is the command proposed when a port is taken.
const FreePortCommand = "commas free"

// QuickFixActions inspects the output of a failed command. Rules run in a
// fixed order and the first one producing actions wins: git upstream, busy
// port, git-style "most similar", npm-style "did you mean".
func QuickFixActions(command, output string) []QuickFixAction {
	if m := upstreamRe.FindString(output); m != "" && gitWordRe.MatchString(command) {
		return []QuickFixAction{{Command: m}}
	}
	if m := portRe.FindStringSubmatch(output); m != nil {
		for _, port := range m[1:] {
			if port != "" {
				return []QuickFixAction{{Command: fmt.Sprintf("%s %s", FreePortCommand, port)}}
			}
		}
	}
	if m := similarRe.FindStringSubmatch(output); m != nil {
		name := leadingToken(command, output)
		var actions []QuickFixAction
		for _, l := range strings.Split(m[1], "\n") {
			if l = strings.TrimSpace(l); l != "" {
				actions = append(actions, QuickFixAction{Command: name + " " + l})
			}
		}
		if len(actions) > 0 {
			return actions
		}
	}
	if m := npmRe.FindStringSubmatch(output); m != nil {
		var actions []QuickFixAction
		for _, l := range strings.Split(m[1], "\n") {
			l = strings.TrimSpace(l)
			if i := strings.Index(l, " # "); i >= 0 {
				l = l[:i]
			}
			if l != "" {
				actions = append(actions, QuickFixAction{Command: l})
			}
		}
		if len(actions) > 0 {
			return actions
		}
	}
	return nil
}

// leadingToken picks the program name for "most similar" suggestions.
func leadingToken(command, output string) string {
	if f := strings.Fields(command); len(f) > 0 {
		return f[0]
	}
	if m := programRe.FindStringSubmatch(output); m != nil {
		return m[1]
	}
	return "git"
}

// commandOutput joins the rows strictly between a command's prompt row and
// the next prompt row. Wrapped rows continue the previous line.
func commandOutput(g Grid, from, to int) string {
	var b strings.Builder
	for row := from + 1; row < to; row++ {
		if !g.IsWrapped(row) && b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(g.LineText(row, true, 0, -1))
	}
	return b.String()
}
