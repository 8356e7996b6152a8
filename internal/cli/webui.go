package cli

import (
    "context"
    "errors"
    "fmt"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

	"github.com/spf13/cobra"

	"commas/internal/completion"
	cfg "commas/internal/config"
	"commas/internal/settings"
	"commas/internal/shellscript"
	"commas/internal/system"
	"commas/internal/webui/server"
)

func init() {
	rootCmd.AddCommand(webuiCmd)
	webuiCmd.Flags().StringP("addr", "a", "127.0.0.1:8787", "address to bind (host:port)")
	webuiCmd.Flags().BoolP("open", "o", false, "open the browser after start")
}

var webuiCmd = &cobra.Command{
	Use:   "webui",
	Short: "Start the browser terminal server",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		open, _ := cmd.Flags().GetBool("open")

		srv, closeWatch, err := newWebServer(addr)
		if err != nil {
			return err
		}
		defer closeWatch()

		// Handle Ctrl+C
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

        url := fmt.Sprintf("http://%s/", addr)
        system.Logger.Info("starting webui", "url", url)
		if open {
			if err := server.OpenBrowser(url); err != nil {
				system.Logger.Warn("failed to open browser", "err", err)
			}
		}
        if err := srv.Start(ctx); err != nil {
            if errors.Is(err, http.ErrServerClosed) {
                return nil
            }
            return err
        }
        return nil
    },
}

// newWebServer wires settings, the local completion provider and the shell
// scripts into a server.
func newWebServer(addr string) (*server.Server, func(), error) {
	setPath, err := cfg.SettingsPath()
	if err != nil {
		return nil, nil, err
	}
	st, err := settings.Open(setPath)
	if errors.Is(err, settings.ErrInvalid) {
		system.Logger.Warn("using default settings", "err", err)
	} else if err != nil {
		return nil, nil, err
	}
	closeWatch := func() {}
	if _, w, err := st.Watch(); err == nil {
		closeWatch = func() { _ = w.Close() }
	}

	snip, err := cfg.SnippetsPath()
	if err != nil {
		return nil, nil, err
	}
	local := completion.NewLocal(snip)
	cache := completion.NewCache(local, 3*time.Second, 256)

	intDir, err := cfg.IntegrationDir()
	if err == nil {
		err = shellscript.Install(intDir)
	}
	if err != nil {
		system.Logger.Warn("shell integration unavailable", "err", err)
		intDir = ""
	}
	return &server.Server{
		Addr:           addr,
		Settings:       st,
		Provider:       cache,
		IntegrationDir: intDir,
		OnPromptEnd: func() {
			go func() {
				local.Refresh()
				cache.Clear()
			}()
		},
	}, closeWatch, nil
}
