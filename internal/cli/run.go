package cli

import (
	"github.com/spf13/cobra"

	corecmd "github.com/m3rciful/swapstream/core/cmd"
	coreconfig "github.com/m3rciful/swapstream/core/config"
	"github.com/m3rciful/swapstream/internal/app"
)

func newRunCommand(configPath func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the bot and serve updates until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := coreconfig.Load(configPath())
			if err != nil {
				return err
			}
			return corecmd.Run(cmd.Context(), corecmd.Options{
				Config:    cfg,
				Bootstrap: app.Bootstrap,
			})
		},
	}
}
