package system

import (
    "context"
    "os/exec"
    "sort"
    "strings"
    "time"
)

// GitInfo is what the status bar shows for the shell's cwd.
type GitInfo struct {
    InRepo bool
    Branch string
    Dirty  bool
}

const gitTimeout = 800 * time.Millisecond

func git(ctx context.Context, dir string, args ...string) (string, error) {
    cctx, cancel := context.WithTimeout(ctx, gitTimeout)
    defer cancel()
    out, err := RunCmd(cctx, dir, "git", args...)
    return strings.TrimSpace(out), err
}

// GetGitInfo inspects the repository at dir. A missing git binary or a
// directory outside any work tree yields the zero value without error.
func GetGitInfo(ctx context.Context, dir string) (GitInfo, error) {
    gi := GitInfo{}
    if _, err := exec.LookPath("git"); err != nil || dir == "" {
        return gi, nil
    }
    if out, err := git(ctx, dir, "rev-parse", "--is-inside-work-tree"); err != nil || out != "true" {
        return gi, nil
    }
    gi.InRepo = true

    if out, err := git(ctx, dir, "symbolic-ref", "--quiet", "--short", "HEAD"); err == nil {
        gi.Branch = out
    } else if out, err := git(ctx, dir, "rev-parse", "--short", "HEAD"); err == nil {
        // Detached head
        gi.Branch = out
    }
    if out, err := git(ctx, dir, "status", "--porcelain"); err == nil {
        gi.Dirty = out != ""
    }
    return gi, nil
}

// GitBranches lists local branch names at dir, sorted.
func GitBranches(ctx context.Context, dir string) ([]string, error) {
    if _, err := exec.LookPath("git"); err != nil {
        return nil, err
    }
    out, err := git(ctx, dir, "for-each-ref", "--format=%(refname:short)", "refs/heads")
    if err != nil {
        return nil, err
    }
    var names []string
    for _, l := range strings.Split(out, "\n") {
        if l = strings.TrimSpace(l); l != "" {
            names = append(names, l)
        }
    }
    sort.Strings(names)
    return names, nil
}
