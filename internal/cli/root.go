// Package cli defines the swapbot command line.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/m3rciful/swapstream/core/buildinfo"
)

const (
	defaultConfigPath = "configs/config.yaml"
	configEnvVar      = "CONFIG_PATH"
)

// NewRootCommand builds the swapbot command tree.
func NewRootCommand() *cobra.Command {
	var (
		configPath string
		envFile    string
	)
	root := &cobra.Command{
		Use:   "swapbot",
		Short: "swapStream Telegram bot",
		Long: `swapbot runs the swapStream Telegram bot: a menu-driven any-to-any
crypto swap wizard with live prices, reviews and deposit instructions.

Examples:
  swapbot run --config configs/config.yaml
  swapbot migrate
  swapbot prices`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadEnvFile(envFile, cmd.Flags().Changed("env-file"))
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the YAML config (default $"+configEnvVar+" or "+defaultConfigPath+")")
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	resolve := func() string { return resolveConfigPath(configPath) }
	root.AddCommand(
		newRunCommand(resolve),
		newMigrateCommand(resolve),
		newPricesCommand(resolve),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command tree and reports errors on stderr.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		printError(os.Stderr, err)
		return 1
	}
	return 0
}

func resolveConfigPath(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(configEnvVar); env != "" {
		return env
	}
	return defaultConfigPath
}

// loadEnvFile loads the dotenv file. A missing default file is fine; a file
// named explicitly must exist.
func loadEnvFile(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if !explicit && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("env file: %w", err)
	}
	return nil
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "\nError: %v\n\n", err)
}
