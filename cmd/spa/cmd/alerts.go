package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func alertsCmd() *cobra.Command {
	alertsRoot := &cobra.Command{
		Use:   "alerts",
		Short: "Manage price alerts",
		Long: "Manage price alerts. An alert notifies you once when a service's price\n" +
			"drops to or below your threshold, and again after it has risen back above it.",
	}

	alertsRoot.AddCommand(
		alertsListCmd(),
		alertsAddCmd(),
		alertsRemoveCmd(),
	)

	return alertsRoot
}

func alertsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your alerts",
		Example: `  spa alerts list --user 175928847299117063
  SPA_USER=175928847299117063 spa alerts list --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := userID()
			if err != nil {
				return err
			}
			subs, err := newClient().ListUserAlerts(cmd.Context(), user)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), subs)
			}
			if len(subs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No alerts found.")
				return nil
			}
			return printSubscriptionsTable(cmd.OutOrStdout(), subs)
		},
	}
}

func alertsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add <service-id> <price>",
		Short:   "Alert when a service drops to a price",
		Example: `  spa alerts add 2307843 40 --user 175928847299117063`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := userID()
			if err != nil {
				return err
			}
			serviceID, price, err := parseAlertArgs(args)
			if err != nil {
				return err
			}
			res, err := newClient().Subscribe(cmd.Context(), user, serviceID, price)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
}

func alertsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <service-id> <price>",
		Aliases: []string{"rm"},
		Short:   "Remove an alert",
		Example: `  spa alerts remove 2307843 40 --user 175928847299117063`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := userID()
			if err != nil {
				return err
			}
			serviceID, price, err := parseAlertArgs(args)
			if err != nil {
				return err
			}
			res, err := newClient().Unsubscribe(cmd.Context(), user, serviceID, price)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
}

func parseAlertArgs(args []string) (serviceID, price int, err error) {
	serviceID, err = strconv.Atoi(args[0])
	if err != nil || serviceID < 0 {
		return 0, 0, fmt.Errorf("invalid service id %q", args[0])
	}
	price, err = strconv.Atoi(args[1])
	if err != nil || price < 0 {
		return 0, 0, fmt.Errorf("invalid price %q: must be a whole non-negative number", args[1])
	}
	return serviceID, price, nil
}
