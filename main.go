// Outboundly - outreach campaign workspace for the terminal.
// A TUI for drafting, generating, and exporting outbound campaigns.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/outboundly/outboundly/internal/api"
	"github.com/outboundly/outboundly/internal/app"
	"github.com/outboundly/outboundly/internal/clipboard"
	"github.com/outboundly/outboundly/internal/export"
	"github.com/outboundly/outboundly/internal/generate"
	"github.com/outboundly/outboundly/internal/logging"
	"github.com/outboundly/outboundly/internal/notify"
	"github.com/outboundly/outboundly/internal/store"
	"github.com/outboundly/outboundly/internal/surface"
	"github.com/outboundly/outboundly/internal/ui"
)

const (
	appName    = "Outboundly"
	appVersion = "0.1.0"
)

func main() {
	configDir, err := getConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting config directory: %v\n", err)
		os.Exit(1)
	}

	config, err := app.LoadConfig(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(configDir, config.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	s, err := store.NewJSONDraftStore(configDir, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing draft store: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = s.Close() }()

	client := api.NewClient(config.APIBaseURL, config.RequestTimeout(), log)

	queue := notify.NewQueue()
	defer queue.Close()
	queue.SetMirror(notify.NewDispatcher(config.Notifications, log))

	opener := surface.NewOpener(log)
	orch := generate.NewOrchestrator(s, client, log)
	disp := export.NewDispatcher(client, opener, queue, clipboard.Copy, log)

	application := ui.New(config, s, client, queue, orch, disp, opener, clipboard.Copy, log)

	p := tea.NewProgram(
		application,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

// getConfigDir returns the Outboundly configuration directory.
func getConfigDir() (string, error) {
	// Use XDG_CONFIG_HOME if available, otherwise default to ~/.config
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, "outboundly"), nil
}
