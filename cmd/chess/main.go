package main

import (
	"os"

	"github.com/benbeisheim/chess-engine/internal/config"
	"github.com/benbeisheim/chess-engine/internal/console"
	"github.com/benbeisheim/chess-engine/internal/model"
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
		strict     bool
	)

	cmd := &cobra.Command{
		Use:          "chess",
		Short:        "Play chess on the console",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			evaluator := model.Evaluator{Mode: cfg.GameSettings().CheckmateMode}
			if strict {
				evaluator.Mode = model.CheckmateStrict
			}
			return console.NewSession(cmd.InOrStdin(), cmd.OutOrStdout(), evaluator).Run()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	cmd.Flags().BoolVar(&strict, "strict", false, "require full check resolution for checkmate")
	return cmd
}
