package system

import (
    "context"
    "testing"
)

func TestListenerPIDsRejectsBadPort(t *testing.T) {
    for _, p := range []int{0, -1, 70000} {
        if _, err := ListenerPIDs(context.Background(), p); err == nil {
            t.Fatalf("port %d: expected error", p)
        }
    }
}

func TestIsDigits(t *testing.T) {
    if !isDigits("123\n456\n") {
        t.Fatalf("pid list should be digits")
    }
    if isDigits("lsof: unknown option") {
        t.Fatalf("error text is not digits")
    }
}
