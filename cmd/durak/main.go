package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/auth"
	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/config"
	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/logger"
	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (defaults to offline mode)")
	flag.Parse()

	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
	}
	defer logger.Close()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	identity, err := auth.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "identity: %v\n", err)
		os.Exit(1)
	}
	logger.For("app").Infof("starting as %s (%s)", identity.Name, identity.PlayerID)

	p := tea.NewProgram(ui.NewModel(cfg, identity), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "durak: %v\n", err)
		os.Exit(1)
	}
}
