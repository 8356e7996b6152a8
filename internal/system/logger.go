package system

import (
    "io"
    "os"
    "strings"

    clog "github.com/charmbracelet/log"

    "commas/internal/config"
)

// Logger is the shared application logger.
// It prints to stderr with timestamps until LogToFile redirects it.
var Logger = clog.NewWithOptions(os.Stderr, clog.Options{
    ReportTimestamp: true,
    Level:           levelFromEnv(),
})

func levelFromEnv() clog.Level {
    lvl, err := clog.ParseLevel(strings.TrimSpace(os.Getenv("COMMAS_LOG_LEVEL")))
    if err != nil {
        return clog.InfoLevel
    }
    return lvl
}

// LogToFile sends log output to commas.log in the config dir. The TUI calls
// it before taking over the terminal. The returned closer restores stderr.
func LogToFile() (io.Closer, error) {
    p, err := config.LogPath()
    if err != nil {
        return nil, err
    }
    dir, _ := config.Dir()
    if err := os.MkdirAll(dir, 0o755); err != nil {
        return nil, err
    }
    f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
    if err != nil {
        return nil, err
    }
    Logger.SetOutput(f)
    return restoreCloser{f}, nil
}

type restoreCloser struct{ f *os.File }

func (r restoreCloser) Close() error {
    Logger.SetOutput(os.Stderr)
    return r.f.Close()
}
