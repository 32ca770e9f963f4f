package main

import (
	"order-console/internal/features/recommendations/view"

	"github.com/spf13/cobra"
)

func recommendationsCmd(c *cli) *cobra.Command {
	var (
		customerID int64
		history    string
	)

	cmd := &cobra.Command{
		Use:     "recommendations",
		Aliases: []string{"recs"},
		Short:   "Show AI product recommendations for a customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.app.Recommendations.FetchRecommendations(cmd.Context(), customerID, history); err != nil {
				return err
			}
			return c.renderRecommendations(cmd, view.List(c.app.Recommendations.State()))
		},
	}

	cmd.Flags().Int64Var(&customerID, "customer", 0, "Customer ID")
	cmd.Flags().StringVar(&history, "history", "", "Order history hint passed to the recommender")
	_ = cmd.MarkFlagRequired("customer")
	return cmd
}
