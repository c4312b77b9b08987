package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DbIM/qr-code/internal/compose"
	"github.com/DbIM/qr-code/internal/config"
	"github.com/DbIM/qr-code/internal/generator"
	"github.com/DbIM/qr-code/internal/payment"
)

func newGenerateCmd(load func() (*config.Config, error)) *cobra.Command {
	var (
		in      payment.Input
		output  string
		format  string
		backend string
		level   string
		size    int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render a payment QR image",
		Example: `  payqr generate --first-name Ivan --last-name Petrov --amount 150.50 -o qr.png
  payqr generate --first-name Anna --format jpg -o - > qr.jpg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if backend != "" {
				cfg.QR.Backend = backend
			}
			if level != "" {
				cfg.QR.Level = level
			}
			if size > 0 {
				cfg.QR.Size = size
			}
			cfg.Cache.Enabled = false
			if err := cfg.Validate(); err != nil {
				return err
			}

			comp, err := generator.NewCompositor(cfg)
			if err != nil {
				return err
			}
			svc, err := generator.NewFromConfig(generator.Params{Config: cfg, Compositor: comp})
			if err != nil {
				return err
			}

			f := compose.ParseFormat(format)
			res, err := svc.Generate(cmd.Context(), in, f)
			if err != nil {
				return err
			}

			if output == "-" {
				_, err = cmd.OutOrStdout().Write(res.Image)
				return err
			}
			if err := os.WriteFile(output, res.Image, 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Content)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&in.FirstName, "first-name", "", "payer first name")
	fl.StringVar(&in.LastName, "last-name", "", "payer last name")
	fl.StringVar(&in.MiddleName, "middle-name", "", "payer middle name")
	fl.StringVar(&in.BirthDate, "birth-date", "", "date as YYYY-MM-DD")
	fl.StringVar(&in.Amount, "amount", "", "amount, e.g. 150.50")
	fl.StringVarP(&output, "output", "o", "payment-qr.png", `output file, "-" for stdout`)
	fl.StringVarP(&format, "format", "f", "png", "png or jpg")
	fl.StringVar(&backend, "backend", "", "qr encoder: yeqown, skip2, boombuler, zxing")
	fl.StringVar(&level, "level", "", "error correction: L, M, Q, H")
	fl.IntVar(&size, "size", 0, "minimum image side in pixels")
	return cmd
}
