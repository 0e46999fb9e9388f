package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"regexp"
	"runtime"
	"strconv"
	"syscall"

	"github.com/mdouchement/gm65d"
	"github.com/mdouchement/gm65d/cmd/gm65d/scan"
	showports "github.com/mdouchement/gm65d/cmd/gm65d/show_ports"
	showsettings "github.com/mdouchement/gm65d/cmd/gm65d/show_settings"
	"github.com/mdouchement/gm65d/internal/environment"
	"github.com/mdouchement/logger"
	"github.com/spf13/cobra"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	cpath string
	dummy bool
)

func main() {
	cmd := &cobra.Command{
		Use:     "gm65d",
		Short:   "A daemon streaming barcodes read by a GM65 scanner module",
		Version: fmt.Sprintf("%s - build %.7s @ %s - %s", version, revision, date, runtime.Version()),
		Args:    cobra.NoArgs,
		RunE:    daemon,
	}
	cmd.Flags().StringVarP(&cpath, "config", "c", defaultConfigPath(), "Configfile path")
	cmd.Flags().BoolVarP(&dummy, "dummy", "", false, "Start gm65d with a dummy GM65 controller")
	cmd.AddCommand(showports.Command())
	cmd.AddCommand(showsettings.Command(defaultConfigPath()))
	cmd.AddCommand(scan.Command(defaultConfigPath()))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Version for gm65d",
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

func defaultConfigPath() string {
	return environment.GetEnvPath(environment.KeyConfigDir, "/etc/gm65d", "gm65d.yml")
}

func daemon(_ *cobra.Command, args []string) error {
	cfg, err := gm65d.Load(cpath)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	h := logger.NewSlogTextHandler(os.Stdout, &logger.SlogTextOption{
		Level:            level,
		ForceColors:      true,
		ForceFormatting:  true,
		PrefixRE:         regexp.MustCompile(`^(\[.*?\])\s`),
		DisableTimestamp: true, // Provided by journalctl
	})
	log := logger.WrapSlogHandler(h)
	ctx := logger.WithLogger(context.Background(), log)

	log.Infof("gm65d version %s", version)

	var device gm65d.GM65
	if dummy {
		ctrl := gm65d.NewDummyGM65Controller()
		ctrl.SetLogger(log)
		device = ctrl
	} else {
		ctrl, err := gm65d.OpenDevice(cfg.Device)
		if err != nil {
			return fmt.Errorf("gm65: %w", err)
		}
		if cfg.Debug {
			ctrl.SetLogger(log)
		}
		device = ctrl
	}
	defer device.Close()

	log.Infof("[%s] Scanner port", device.Port())

	if err = gm65d.Apply(cfg.Settings, device, log); err != nil {
		return err
	}

	if cfg.Settings.Prefix != nil {
		prefix, err := device.ReadPrefix()
		if err != nil {
			log.WithError(err).Warn("Could not read back prefix")
		} else {
			log.Infof("[%s] Prefix: %s", device.Port(), strconv.Quote(string(prefix)))
		}
	}

	ctx, cancel := context.WithCancel(ctx)

	controller, err := gm65d.New(cfg, device)
	if err != nil {
		cancel()
		return err
	}
	controller.Launch(ctx)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	cancel()
	<-controller.Done()

	log.Info("Gracefully shutdown")
	return nil
}
