package showports

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mdouchement/gm65d/gm65"
	"github.com/spf13/cobra"
)

func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "show-ports",
		Short: "Show the available serial ports and flag the GM65 ones",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			ports, err := gm65.ListPorts()
			if err != nil {
				return err
			}

			slices.SortStableFunc(ports, func(a, b gm65.PortInfo) int {
				return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
			})

			for _, p := range ports {
				mark := " "
				if p.GM65 {
					mark = "*"
				}

				vidpid := "         "
				if p.VID != "" || p.PID != "" {
					vidpid = fmt.Sprintf("%4s:%-4s", p.VID, p.PID)
				}

				fmt.Printf("%s %-20s %s  %s %s\n", mark, p.Name, vidpid, p.SerialNumber, p.Product)
			}

			return nil
		},
	}
}
