package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"order-console/internal/features/orders/domain"
	"order-console/internal/features/orders/view"

	"github.com/spf13/cobra"
)

func ordersCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List, place and move orders through their lifecycle",
	}

	cmd.AddCommand(
		ordersListCmd(c),
		ordersGetCmd(c),
		ordersCreateCmd(c),
		transitionCmd(c, "confirm", "Confirm a pending order", func(ctx context.Context, id int64) error {
			_, err := c.app.Orders.ConfirmOrder(ctx, id)
			return err
		}),
		transitionCmd(c, "cancel", "Cancel an order", func(ctx context.Context, id int64) error {
			_, err := c.app.Orders.CancelOrder(ctx, id)
			return err
		}),
		transitionCmd(c, "ship", "Mark an order as shipping", func(ctx context.Context, id int64) error {
			_, err := c.app.Orders.ShipOrder(ctx, id)
			return err
		}),
		transitionCmd(c, "deliver", "Mark an order as delivered", func(ctx context.Context, id int64) error {
			_, err := c.app.Orders.DeliverOrder(ctx, id)
			return err
		}),
	)
	return cmd
}

func ordersListCmd(c *cli) *cobra.Command {
	var customerID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the orders of a customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.app.Orders.FetchOrders(cmd.Context(), customerID); err != nil {
				return err
			}
			return c.renderOrderList(cmd, view.List(c.app.Orders.State()))
		},
	}

	cmd.Flags().Int64Var(&customerID, "customer", 0, "Customer ID")
	_ = cmd.MarkFlagRequired("customer")
	return cmd
}

func ordersGetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseOrderID(args[0])
			if err != nil {
				return err
			}
			if _, err := c.app.Orders.FetchOrder(cmd.Context(), id); err != nil {
				return err
			}
			return c.renderOrderDetail(cmd, view.Detail(c.app.Orders.State()))
		},
	}
}

func ordersCreateCmd(c *cli) *cobra.Command {
	var (
		customerID   int64
		customerName string
		items        []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Place an order",
		Example: `  ordercli orders create --customer 100 --name "Ada Lovelace" \
    --item "7:Notebook:2:4.50" --item "9:Pen:1:1.20"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := domain.CreateOrderRequest{
				CustomerID:   customerID,
				CustomerName: customerName,
				Items:        make([]domain.CreateOrderItemRequest, 0, len(items)),
			}
			for _, raw := range items {
				item, err := parseItem(raw)
				if err != nil {
					return err
				}
				req.Items = append(req.Items, item)
			}

			order, err := c.app.Orders.CreateOrder(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Placed order %s (id %d)\n", order.OrderNumber, order.ID)
			return c.renderOrderDetail(cmd, view.Detail(c.app.Orders.State()))
		},
	}

	cmd.Flags().Int64Var(&customerID, "customer", 0, "Customer ID")
	cmd.Flags().StringVar(&customerName, "name", "", "Customer name")
	cmd.Flags().StringArrayVar(&items, "item", nil, "Order line as productId:productName:quantity:unitPrice (repeatable)")
	_ = cmd.MarkFlagRequired("customer")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func transitionCmd(c *cli, action, short string, call func(ctx context.Context, id int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseOrderID(args[0])
			if err != nil {
				return err
			}
			if err := call(cmd.Context(), id); err != nil {
				return err
			}
			return c.renderOrderDetail(cmd, view.Detail(c.app.Orders.State()))
		},
	}
}

func parseOrderID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid order id %q", raw)
	}
	return id, nil
}

// parseItem reads productId:productName:quantity:unitPrice. The product name may itself
// contain colons.
func parseItem(raw string) (domain.CreateOrderItemRequest, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 4 {
		return domain.CreateOrderItemRequest{}, fmt.Errorf("invalid item %q: want productId:productName:quantity:unitPrice", raw)
	}
	n := len(parts)

	productID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return domain.CreateOrderItemRequest{}, fmt.Errorf("invalid item %q: product id: %w", raw, err)
	}
	quantity, err := strconv.Atoi(parts[n-2])
	if err != nil {
		return domain.CreateOrderItemRequest{}, fmt.Errorf("invalid item %q: quantity: %w", raw, err)
	}
	unitPrice, err := strconv.ParseFloat(parts[n-1], 64)
	if err != nil {
		return domain.CreateOrderItemRequest{}, fmt.Errorf("invalid item %q: unit price: %w", raw, err)
	}

	return domain.CreateOrderItemRequest{
		ProductID:   productID,
		ProductName: strings.Join(parts[1:n-2], ":"),
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	}, nil
}
