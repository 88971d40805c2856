package main

import (
	"errors"
	"fmt"

	"github.com/nikolayk812/cvshop/internal/app"
	"github.com/nikolayk812/cvshop/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/text/currency"
)

var previewOwner string

var checkoutPreviewCmd = &cobra.Command{
	Use:   "checkout-preview",
	Short: "Print the WhatsApp order message and link for a stored cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		if previewOwner == "" {
			return errors.New("--owner is required")
		}

		a, err := app.New(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close(cmd.Context()) }()

		cart, err := a.Carts.Cart(cmd.Context(), previewOwner)
		if err != nil {
			return err
		}

		order, err := a.Checkout.Order(cart)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, order.Message)
		fmt.Fprintln(out)
		for _, line := range order.PaymentInstructions {
			fmt.Fprintln(out, line)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, order.URL)

		return nil
	},
}

func init() {
	checkoutPreviewCmd.Flags().StringVar(&previewOwner, "owner", "", "owner id (value of the cv_cart_owner cookie)")
}

func currencyOf(cfg *config.Config) currency.Unit {
	unit, err := currency.ParseISO(cfg.Shop.Currency)
	if err != nil {
		return currency.MustParseISO("ARS")
	}
	return unit
}
