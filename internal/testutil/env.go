package testutil

import (
    "os"
    "testing"
)

// SetEnv sets key to val for the rest of the test. An empty val unsets it.
func SetEnv(t *testing.T, key, val string) {
    t.Helper()
    old, had := os.LookupEnv(key)
    if val == "" {
        _ = os.Unsetenv(key)
    } else {
        _ = os.Setenv(key, val)
    }
    t.Cleanup(func() {
        if had {
            _ = os.Setenv(key, old)
        } else {
            _ = os.Unsetenv(key)
        }
    })
}

// UseTempConfig points the user config and home dirs at a fresh temp dir
// and returns it.
func UseTempConfig(t *testing.T) string {
    t.Helper()
    tmp := t.TempDir()
    SetEnv(t, "XDG_CONFIG_HOME", tmp)
    SetEnv(t, "HOME", tmp)
    return tmp
}
