package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	orderview "order-console/internal/features/orders/view"
	recview "order-console/internal/features/recommendations/view"

	"github.com/spf13/cobra"
)

func (c *cli) renderOrderList(cmd *cobra.Command, v orderview.ListView) error {
	if c.jsonOutput {
		return writeJSON(cmd.OutOrStdout(), v)
	}
	return writeOrderList(cmd.OutOrStdout(), v)
}

func (c *cli) renderOrderDetail(cmd *cobra.Command, v orderview.DetailView) error {
	if c.jsonOutput {
		return writeJSON(cmd.OutOrStdout(), v)
	}
	return writeOrderDetail(cmd.OutOrStdout(), v)
}

func (c *cli) renderRecommendations(cmd *cobra.Command, v recview.ListView) error {
	if c.jsonOutput {
		return writeJSON(cmd.OutOrStdout(), v)
	}
	return writeRecommendations(cmd.OutOrStdout(), v)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeOrderList(w io.Writer, v orderview.ListView) error {
	if len(v.Orders) == 0 {
		_, err := fmt.Fprintln(w, v.Message)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNUMBER\tCUSTOMER\tSTATUS\tITEMS\tTOTAL\tCREATED")
	for _, o := range v.Orders {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\t%s\n",
			o.ID, o.OrderNumber, o.CustomerName, o.Status, o.ItemCount, o.Total, o.CreatedDate)
	}
	return tw.Flush()
}

func writeOrderDetail(w io.Writer, v orderview.DetailView) error {
	if v.Order == nil {
		_, err := fmt.Fprintln(w, v.Message)
		return err
	}

	o := v.Order
	fmt.Fprintf(w, "Order %s (id %d)\n", o.OrderNumber, o.ID)
	fmt.Fprintf(w, "Customer: %s\n", o.CustomerName)
	fmt.Fprintf(w, "Status:   %s\n", o.Status)
	if o.CreatedDate != "" {
		fmt.Fprintf(w, "Created:  %s\n", o.CreatedDate)
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tQTY\tUNIT\tTOTAL")
	for _, it := range v.Items {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", it.ProductName, it.Quantity, it.UnitPrice, it.TotalPrice)
	}
	fmt.Fprintf(tw, "\t\t\t%s\n", o.Total)
	return tw.Flush()
}

func writeRecommendations(w io.Writer, v recview.ListView) error {
	if len(v.Recommendations) == 0 {
		_, err := fmt.Fprintln(w, v.Message)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPRODUCT\tCONFIDENCE\tREASON")
	for _, r := range v.Recommendations {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.Rank, r.ProductName, r.Confidence, r.Reason)
	}
	return tw.Flush()
}
