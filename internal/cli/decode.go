package cli

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/DbIM/qr-code/internal/payment"
	"github.com/DbIM/qr-code/web/components"
)

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "decode <link>",
		Short:   "Show the payment details carried by a link",
		Example: `  payqr decode '/pay?firstName=Ivan&amount=150.5'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := payment.ParseLink(args[0])
			if err != nil {
				return errors.Wrap(err, "not a payment link")
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(components.NewPaymentPage(conf))
		},
	}
}
