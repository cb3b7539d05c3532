package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/benbeisheim/chess-engine/internal/config"
	"github.com/benbeisheim/chess-engine/internal/server"
	"github.com/benbeisheim/chess-engine/internal/service"
	"github.com/benbeisheim/chess-engine/internal/storage"
	"github.com/benbeisheim/chess-engine/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		dataDir    string
	)

	cmd := &cobra.Command{
		Use:          "chess-server",
		Short:        "Serve chess games over HTTP and websockets",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("data-dir") {
				cfg.Storage.Dir = dataDir
			}
			return run(cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	cmd.Flags().StringVar(&addr, "addr", ":3000", "listen address")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "badger directory for the game archive (empty: in memory)")
	return cmd
}

func run(cfg *config.Config) error {
	cfg.ApplyLogLevel()

	archive, err := storage.Open(cfg.Storage.Dir)
	if err != nil {
		return err
	}
	defer archive.Close()

	gameManager := service.NewGameManager(service.ManagerConfig{
		Game:                cfg.GameSettings(),
		MatchmakingInterval: cfg.Game.MatchmakingInterval,
		Hub:                 ws.NewHub(),
		Archive:             archive,
	})
	defer gameManager.Close()
	gameService := service.NewGameService(gameManager)

	app := server.NewApp(cfg, gameService)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}()

	log.Infow("listening", "addr", cfg.Server.Addr, "checkmate_mode", cfg.Game.CheckmateMode)
	return app.Listen(cfg.Server.Addr)
}
