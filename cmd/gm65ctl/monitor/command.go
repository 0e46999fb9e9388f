package monitor

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mdouchement/gm65d"
	"github.com/spf13/cobra"
)

func Command(client *http.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "monitor",
		Short: "Start the TUI monitor of scanned barcodes",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			resp, err := client.Get("http://unix/scans")
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
				return fmt.Errorf("sse bad status: %s body=%q", resp.Status, string(b))
			}

			m := newTUI()
			tui := tea.NewProgram(m, tea.WithAltScreen())

			go func() {
				r := bufio.NewReader(resp.Body)

				for {
					event, err := gm65d.ReadSSE(r)
					if err != nil {
						tui.Quit()
						fmt.Println("ERR:", err)
						os.Exit(1)
					}
					if len(event.Data) == 0 {
						continue
					}

					var s gm65d.Scan
					err = json.Unmarshal(event.Data, &s)
					if err != nil {
						tui.Quit()
						fmt.Println("ERR:", err)
						os.Exit(1)
					}

					tui.Send(s)
				}
			}()

			_, err = tui.Run()
			return err
		},
	}
}
