package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/server-price-alerts/internal/catalog"
)

func servicesCmd() *cobra.Command {
	servicesRoot := &cobra.Command{
		Use:   "services",
		Short: "Browse the server catalog",
	}

	servicesRoot.AddCommand(
		servicesSearchCmd(),
		servicesSuggestCmd(),
	)

	return servicesRoot
}

func addFilterFlags(cmd *cobra.Command, f *catalog.Filter) {
	cmd.Flags().StringVar(&f.CPU, "cpu", "", "exact CPU model")
	cmd.Flags().StringVar(&f.RAM, "ram", "", "exact RAM, e.g. 64-DDR4")
	cmd.Flags().StringVar(&f.Region, "region", "", "datacenter region, e.g. FSN")
	cmd.Flags().StringVar(&f.GPU, "gpu", "", "exact GPU model")
	cmd.Flags().StringSliceVar(&f.Disks, "disk", nil, "disk spec <qty>x-<cap>GB-<type>, repeatable up to 4 times")
}

func servicesSearchCmd() *cobra.Command {
	var f catalog.Filter

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search services by hardware",
		Example: `  spa services search --region FSN --ram 64-DDR4
  spa services search --disk 2x-512GB-nvme --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := newClient().SearchServices(cmd.Context(), f)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), res)
			}
			if res.Total == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matching services.")
				return nil
			}
			return printServicesTable(cmd.OutOrStdout(), res.Services)
		},
	}

	addFilterFlags(cmd, &f)
	return cmd
}

func servicesSuggestCmd() *cobra.Command {
	var (
		f     catalog.Filter
		query string
	)

	cmd := &cobra.Command{
		Use:   "suggest <field>",
		Short: "List values for a field among matching services",
		Long: "List up to 25 distinct values of cpu, ram, region, gpu, storage or service_id\n" +
			"among the services matching the other filters.",
		Example: `  spa services suggest cpu --query ryzen
  spa services suggest storage --region HEL`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			suggestions, err := newClient().Suggest(cmd.Context(), args[0], query, f)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), suggestions)
			}
			return printSuggestionsTable(cmd.OutOrStdout(), suggestions)
		},
	}

	addFilterFlags(cmd, &f)
	cmd.Flags().StringVarP(&query, "query", "q", "", "case-insensitive substring to match")
	return cmd
}
