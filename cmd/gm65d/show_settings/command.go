package showsettings

import (
	"fmt"
	"strconv"

	"github.com/mdouchement/gm65d"
	"github.com/spf13/cobra"
)

func Command(defaultConfig string) *cobra.Command {
	var cpath string

	cmd := &cobra.Command{
		Use:   "show-settings",
		Short: "Show the prefix and the suffix stored in the module",
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

			prefix, err := ctrl.ReadPrefix()
			if err != nil {
				return err
			}

			suffix, err := ctrl.ReadSuffix()
			if err != nil {
				return err
			}

			fmt.Printf("Port:    %s\n", ctrl.Port())
			fmt.Printf("Prefix:  %s (% X)\n", strconv.Quote(string(prefix)), prefix)
			fmt.Printf("Suffix:  %s (% X)\n", strconv.Quote(string(suffix)), suffix)
			return nil
		},
	}
	cmd.Flags().StringVarP(&cpath, "config", "c", defaultConfig, "Configfile path")

	return cmd
}
