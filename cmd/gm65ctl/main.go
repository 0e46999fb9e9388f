package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mdouchement/gm65d"
	"github.com/mdouchement/gm65d/cmd/gm65ctl/monitor"
	"github.com/mdouchement/gm65d/internal/environment"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v4"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"
)

func main() {
	client := &http.Client{}

	cmd := &cobra.Command{
		Use:     "gm65ctl",
		Short:   "A ctl use to interact with gm65d",
		Version: fmt.Sprintf("%s - build %.7s @ %s - %s", version, revision, date, runtime.Version()),
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}

			socket, err := findSocket()
			if err != nil {
				return err
			}

			client.Transport = gm65d.NewClient(socket).Transport
			return nil
		},
	}
	cmd.AddCommand(monitor.Command(client))
	cmd.AddCommand(&cobra.Command{
		Use:   "scan",
		Short: "Ask gm65d to trigger a scan now",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			resp, err := client.Post("http://unix/scan", "application/json", nil)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			switch {
			case resp.StatusCode == http.StatusNoContent:
				fmt.Println("No barcode read")
				return nil
			case resp.StatusCode < 200 || resp.StatusCode >= 300:
				b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
				return fmt.Errorf("scan: %s: %s", resp.Status, strings.TrimSpace(string(b)))
			}

			var s gm65d.Scan
			if err = json.NewDecoder(resp.Body).Decode(&s); err != nil {
				return err
			}

			fmt.Println(s.Code)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Version for gm65ctl",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(cmd.Version)
		},
	})

	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

//
//
//

type config struct {
	Socket string `yaml:"socket"`
}

func findSocket() (string, error) {
	socket := environment.GetEnvPath(environment.KeyRuntimeDir, "/run/gm65d", "gm65d.sock")
	if _, err := os.Stat(socket); err == nil {
		return socket, nil
	}

	u, err := user.Current()
	if err != nil {
		return "", err
	}

	var cfg config
	cpath := filepath.Join(u.HomeDir, ".config", "gm65ctl", "gm65ctl.yml")
	if p, err := os.ReadFile(cpath); err == nil {
		err = yaml.Unmarshal(p, &cfg)
		if err != nil {
			return "", fmt.Errorf("%s: %w", cpath, err)
		}

		if _, err = os.Stat(cfg.Socket); err == nil {
			return cfg.Socket, nil
		}

		fmt.Println("Invalid socket path:", cfg.Socket)
	}

	fmt.Print("Enter a socket path: ")
	r := bufio.NewReader(os.Stdin)
	socket, err = r.ReadString('\n')
	if err != nil {
		return "", err
	}

	socket = strings.TrimSpace(socket)

	if err = os.MkdirAll(filepath.Dir(cpath), 0o755); err != nil {
		return "", err
	}

	cfg.Socket = socket
	p, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	return socket, os.WriteFile(cpath, p, 0o600)
}
