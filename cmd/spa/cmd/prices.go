package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func pricesCmd() *cobra.Command {
	pricesRoot := &cobra.Command{
		Use:   "prices",
		Short: "Query service prices",
	}

	pricesRoot.AddCommand(
		pricesLatestCmd(),
		pricesHistoryCmd(),
	)

	return pricesRoot
}

func pricesLatestCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "latest <service-id>...",
		Short:   "Show the latest price of services",
		Example: `  spa prices latest 2307843 2311502`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseServiceIDs(args)
			if err != nil {
				return err
			}
			points, err := newClient().LatestPrices(cmd.Context(), ids)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), points)
			}
			return printPricesTable(cmd.OutOrStdout(), points)
		},
	}
}

func pricesHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "history <service-id>...",
		Short:   "Show the price history of the cheapest services",
		Example: `  spa prices history 2307843 2311502 --limit 5`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseServiceIDs(args)
			if err != nil {
				return err
			}
			history, err := newClient().PriceHistory(cmd.Context(), ids, limit)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), history)
			}
			return printHistoryTable(cmd.OutOrStdout(), history)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "cheapest services to return (1-100, default 20)")
	return cmd
}

func parseServiceIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, a := range args {
		id, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid service id %q", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
