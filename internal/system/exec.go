package system

import (
    "context"
    "os"
    "os/exec"
)

// RunCmd executes a command and returns combined output as string.
func RunCmd(ctx context.Context, dir, name string, args ...string) (string, error) {
    cmd := exec.CommandContext(ctx, name, args...)
    cmd.Dir = dir
    // Avoid opening pager or interactive prompts
    cmd.Env = append(os.Environ(), "NO_COLOR=1", "GIT_PAGER=cat")
    out, err := cmd.CombinedOutput()
    if ctx.Err() == context.DeadlineExceeded {
        return "", ctx.Err()
    }
    return string(out), err
}
