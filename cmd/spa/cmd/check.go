package cmd

import (
	"net/http"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/server-price-alerts/internal/api/client"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Trigger a price check now",
		Long: "Run a price check cycle on the server and print its report.\n" +
			"Fails if a scheduled check is already running.",
		Example: `  spa check
  spa check --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := newClient().RunPriceCheck(cmd.Context())
			if apiclient.IsStatus(err, http.StatusConflict) {
				cmd.PrintErrln("A price check is already running; try again shortly.")
				return err
			}
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), res)
			}
			return printCycleReport(cmd.OutOrStdout(), res.Report)
		},
	}
}
