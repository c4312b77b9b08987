package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DbIM/qr-code/internal/config"
)

// NewRootCmd builds the payqr command tree.
func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "payqr",
		Short: "Payment link QR codes",
		Long: `payqr turns payment details into a /pay link, renders it as a branded
QR image and reads such links back for confirmation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")

	load := func() (*config.Config, error) {
		return config.Load(configPath)
	}
	root.AddCommand(newServeCmd(load))
	root.AddCommand(newGenerateCmd(load))
	root.AddCommand(newDecodeCmd())
	return root
}

// Execute runs the root command
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
