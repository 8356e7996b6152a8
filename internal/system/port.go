package system

import (
    "context"
    "errors"
    "fmt"
    "os"
    "os/exec"
    "strconv"
    "strings"
    "syscall"
    "time"
)

// ErrNoListener is returned by FreePort when nothing listens on the port.
var ErrNoListener = errors.New("no process is listening on that port")

// ListenerPIDs returns the pids listening on a TCP port, using lsof.
func ListenerPIDs(ctx context.Context, port int) ([]int, error) {
    if port <= 0 || port > 65535 {
        return nil, fmt.Errorf("invalid port %d", port)
    }
    cctx, cancel := context.WithTimeout(ctx, 3*time.Second)
    defer cancel()
    out, err := RunCmd(cctx, "", "lsof", "-nP", "-t", fmt.Sprintf("-iTCP:%d", port), "-sTCP:LISTEN")
    if err != nil {
        // lsof exits 1 with no output when nothing matches
        if errors.Is(err, exec.ErrNotFound) || errors.Is(err, context.DeadlineExceeded) || !isDigits(out) {
            return nil, fmt.Errorf("lsof: %w", err)
        }
    }
    var pids []int
    for _, f := range strings.Fields(out) {
        if pid, err := strconv.Atoi(f); err == nil && pid > 0 {
            pids = append(pids, pid)
        }
    }
    return pids, nil
}

func isDigits(s string) bool {
    for _, f := range strings.Fields(s) {
        if _, err := strconv.Atoi(f); err != nil {
            return false
        }
    }
    return true
}

// FreePort sends SIGTERM to every process listening on port and returns the
// pids it signalled.
func FreePort(ctx context.Context, port int) ([]int, error) {
    pids, err := ListenerPIDs(ctx, port)
    if err != nil {
        return nil, err
    }
    if len(pids) == 0 {
        return nil, ErrNoListener
    }
    var done []int
    for _, pid := range pids {
        if pid == os.Getpid() {
            continue
        }
        proc, err := os.FindProcess(pid)
        if err == nil {
            err = proc.Signal(syscall.SIGTERM)
        }
        if err != nil {
            Logger.Warn("kill failed", "pid", pid, "err", err)
            continue
        }
        done = append(done, pid)
    }
    return done, nil
}
