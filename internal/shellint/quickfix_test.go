package shellint

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func commands(actions []QuickFixAction) []string {
	var out []string
	for _, a := range actions {
		out = append(out, a.Command)
	}
	return out
}

func TestQuickFixUpstream(t *testing.T) {
	out := "fatal: The current branch main has no upstream branch.\n" +
		"To push the current branch and set the remote as upstream, use\n\n" +
		"    git push --set-upstream origin main\n"
	got := commands(QuickFixActions("git pus origin main", out))
	if diff := cmp.Diff([]string{"git push --set-upstream origin main"}, got); diff != "" {
		t.Fatalf("upstream (-want +got):\n%s", diff)
	}
	if got := QuickFixActions("legit push", out); got != nil {
		t.Fatalf("command without git word gave %v", got)
	}
}

func TestQuickFixPort(t *testing.T) {
	cases := []struct{ out, want string }{
		{"Error: listen EADDRINUSE 127.0.0.1:4000", "commas free 4000"},
		{"Error: listen EADDRINUSE: address already in use :::3000", "commas free 3000"},
		{"OSError: address already in use 0.0.0.0:8080", "commas free 8080"},
		{"Unable to bind 127.0.0.1:5173", "commas free 5173"},
		{"can't listen on port 25565", "commas free 25565"},
	}
	for _, c := range cases {
		got := commands(QuickFixActions("npm start", c.out))
		if diff := cmp.Diff([]string{c.want}, got); diff != "" {
			t.Fatalf("%q (-want +got):\n%s", c.out, diff)
		}
	}
	if got := QuickFixActions("npm start", "listen EADDRINUSE 127.0.0.1:80"); got != nil {
		t.Fatalf("two digit port matched: %v", got)
	}
}

func TestQuickFixMostSimilar(t *testing.T) {
	out := "git: 'stats' is not a git command. See 'git --help'.\n\n" +
		"The most similar commands are\n\tstatus\n\tstash\n"
	got := commands(QuickFixActions("git stats", out))
	if diff := cmp.Diff([]string{"git status", "git stash"}, got); diff != "" {
		t.Fatalf("english (-want +got):\n%s", diff)
	}

	zh := "git：'pus' 不是一个 git 命令。参见 'git --help'。\n\n最相似的命令是\n\tpush\n"
	got = commands(QuickFixActions("", zh))
	if diff := cmp.Diff([]string{"git push"}, got); diff != "" {
		t.Fatalf("chinese (-want +got):\n%s", diff)
	}

	got = commands(QuickFixActions("", "The most similar command is\n\tpush"))
	if diff := cmp.Diff([]string{"git push"}, got); diff != "" {
		t.Fatalf("default prefix (-want +got):\n%s", diff)
	}
}

func TestQuickFixNpm(t *testing.T) {
	out := "Unknown command: \"tset\"\n\n" +
		"Did you mean this?\n" +
		"    npm test # Test a package\n" +
		"To see a list of supported npm commands, run:\n" +
		"  npm help\n"
	got := commands(QuickFixActions("npm tset", out))
	if diff := cmp.Diff([]string{"npm test"}, got); diff != "" {
		t.Fatalf("npm (-want +got):\n%s", diff)
	}
}

func TestQuickFixNothing(t *testing.T) {
	for _, out := range []string{"", "command not found: foo", "Did you mean this?"} {
		if got := QuickFixActions("foo", out); got != nil {
			t.Fatalf("%q gave %v", out, got)
		}
	}
}
