package config

import (
    "path/filepath"
    "strings"
    "testing"

    "commas/internal/testutil"
)

func TestPathsUnderConfigHome(t *testing.T) {
    tmp := testutil.UseTempConfig(t)
    dir, err := Dir()
    if err != nil {
        t.Fatalf("Dir error: %v", err)
    }
    if !strings.HasPrefix(dir, tmp) || filepath.Base(dir) != "commas" {
        t.Fatalf("Dir = %q", dir)
    }
    p, err := SettingsPath()
    if err != nil {
        t.Fatalf("SettingsPath error: %v", err)
    }
    if filepath.Base(p) != "settings.json" || filepath.Dir(p) != dir {
        t.Fatalf("SettingsPath = %q", p)
    }
}
