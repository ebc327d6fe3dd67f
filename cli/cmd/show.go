package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/malusev998/quote-sheet/fetchers"
)

func show(config *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the latest quotes without touching the workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			quotes, err := config.Service.Quotes(config.Pair, config.LookbackDays)

			var statusErr *fetchers.StatusError
			if errors.As(err, &statusErr) {
				fmt.Fprintf(cmd.OutOrStdout(), "Error while accessing API: %d\n", statusErr.Code)
				return err
			}

			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "DATE\tBID\tASK\tHIGH\tLOW\t")

			for _, q := range quotes {
				fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.4f\t\n", q.Date.Format("2006-01-02"), q.Bid, q.Ask, q.High, q.Low)
			}

			return w.Flush()
		},
	}
}
