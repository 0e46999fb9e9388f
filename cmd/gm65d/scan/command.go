package scan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/mdouchement/gm65d"
	"github.com/mdouchement/gm65d/gm65"
	"github.com/spf13/cobra"
)

func Command(defaultConfig string) *cobra.Command {
	var cpath string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Trigger a single scan directly on the module and print the barcode",
		Long:  "Trigger a single scan directly on the module and print the barcode. The daemon must not be running.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := gm65d.Load(cpath)
			if err != nil {
				return err
			}

			ctrl, err := gm65d.OpenDevice(cfg.Device)
			if err != nil {
				return fmt.Errorf("gm65: %w", err)
			}
			defer ctrl.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			code, err := ctrl.ScanNow(ctx)
			if errors.Is(err, gm65.ErrNoBarcode) {
				fmt.Println("No barcode read")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Println(string(code))
			return nil
		},
	}
	cmd.Flags().StringVarP(&cpath, "config", "c", defaultConfig, "Configfile path")

	return cmd
}
