package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/malusev998/quote-sheet/fetchers"
)

func update(config *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Fetch the latest quotes and write them into the workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := config.Service.Update(config.Pair, config.LookbackDays)

			var statusErr *fetchers.StatusError
			if errors.As(err, &statusErr) {
				fmt.Fprintf(cmd.OutOrStdout(), "Error while accessing API: %d\n", statusErr.Code)
				return err
			}

			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Quotes updated successfully!")

			return nil
		},
	}
}
