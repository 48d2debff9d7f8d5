package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	coreconfig "github.com/m3rciful/swapstream/core/config"
	"github.com/m3rciful/swapstream/core/telegram/format"
	"github.com/m3rciful/swapstream/internal/app"
	"github.com/m3rciful/swapstream/internal/catalog"
	"github.com/m3rciful/swapstream/internal/prices"
)

func newPricesCommand(configPath func() string) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "prices",
		Short: "Print the live price table",
		Long: `Fetch USD prices and 24h changes for every supported coin and print
them the way the Prices screen shows them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := coreconfig.LoadOffline(configPath())
			if err != nil {
				return err
			}
			pricing, err := app.NewPricing(cfg, nil)
			if err != nil {
				return err
			}

			s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
			if !quiet {
				s.Suffix = " Fetching live prices..."
				s.Start()
			}
			coins, quotes, err := pricing.Board.Rows(cmd.Context())
			if !quiet {
				s.Stop()
			}
			if err != nil {
				return fmt.Errorf("%s: %w", prices.Unavailable, err)
			}
			printPrices(cmd.OutOrStdout(), coins, quotes)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not show a progress spinner")
	return cmd
}

func printPrices(w io.Writer, coins []catalog.Coin, quotes []prices.Price) {
	bold := color.New(color.Bold).SprintFunc()
	up := color.New(color.FgGreen).SprintFunc()
	down := color.New(color.FgRed).SprintFunc()

	fmt.Fprintln(w)
	for i, coin := range coins {
		change := format.Change(quotes[i].Change24h)
		if quotes[i].Change24h > 0 {
			change = up(change)
		} else {
			change = down(change)
		}
		fmt.Fprintf(w, "  %-5s %14s  %s\n", bold(coin.Symbol), format.USD(quotes[i].USD), change)
	}
	fmt.Fprintln(w)
}

