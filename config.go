package gm65d

import (
	"fmt"
	"os"
	"time"

	"github.com/mdouchement/gm65d/gm65"
	"github.com/mdouchement/gm65d/internal/environment"
	"go.yaml.in/yaml/v4"
)

type Config struct {
	Debug    bool     `yaml:"debug"`
	Socket   string   `yaml:"socket"`
	Device   Device   `yaml:"device"`
	Settings Settings `yaml:"settings"`
	ScanLoop ScanLoop `yaml:"scan"`
}

type Device struct {
	Port               string   `yaml:"port"` // Empty means discovery by VID/PID
	ResponseTimeout    Duration `yaml:"response_timeout"`
	Turnaround         Duration `yaml:"turnaround"`
	Retries            *int     `yaml:"retries"`
	AcknowledgedWrites bool     `yaml:"acknowledged_writes"`
}

// Settings are written to the module at startup, nil values are left untouched.
type Settings struct {
	ScanDuration *Duration `yaml:"scan_duration"`
	SoundLevel   *uint8    `yaml:"sound_level"`
	PrefixSuffix *uint8    `yaml:"prefix_suffix"`
	Prefix       *string   `yaml:"prefix"`
	Suffix       *string   `yaml:"suffix"`
	Save         bool      `yaml:"save"`
}

type ScanLoop struct {
	Disabled bool     `yaml:"disabled"`
	Interval Duration `yaml:"interval"`
	Burst    int      `yaml:"burst"`
}

func DefaultConfig() Config {
	return Config{
		Socket: environment.GetEnvPath(environment.KeyRuntimeDir, "/run/gm65d", "gm65d.sock"),
		Device: Device{
			ResponseTimeout: Duration{gm65.DefaultResponseTimeout},
			Turnaround:      Duration{gm65.DefaultTurnaround},
		},
		ScanLoop: ScanLoop{
			Interval: Duration{time.Second},
			Burst:    1,
		},
	}
}

func Load(path string) (Config, error) {
	c := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return c, err
	}
	defer f.Close()

	codec := yaml.NewDecoder(f)
	err = codec.Decode(&c)
	if err != nil {
		return c, err
	}

	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.Socket == "" {
		return fmt.Errorf("socket: must not be empty")
	}

	if c.Device.ResponseTimeout.Duration <= 0 {
		return fmt.Errorf("device.response_timeout: must be positive")
	}
	if c.Device.Turnaround.Duration < 0 {
		return fmt.Errorf("device.turnaround: must not be negative")
	}
	if c.Device.Retries != nil && *c.Device.Retries < 0 {
		return fmt.Errorf("device.retries: must not be negative")
	}

	if d := c.Settings.ScanDuration; d != nil && (d.Duration < 0 || d.Duration > 25500*time.Millisecond) {
		return fmt.Errorf("settings.scan_duration: %s: must be in range [0s,25.5s]", d)
	}
	if p := c.Settings.Prefix; p != nil && len(*p) > gm65.CommMaxPayload {
		return fmt.Errorf("settings.prefix: too long")
	}
	if s := c.Settings.Suffix; s != nil && len(*s) > gm65.CommMaxPayload {
		return fmt.Errorf("settings.suffix: too long")
	}

	if c.ScanLoop.Interval.Duration < 0 {
		return fmt.Errorf("scan.interval: must not be negative")
	}
	if c.ScanLoop.Burst < 1 {
		return fmt.Errorf("scan.burst: must be at least 1")
	}

	return nil
}

// Options translates the device section into controller options.
func (d Device) Options() []gm65.Option {
	opts := []gm65.Option{
		gm65.WithResponseTimeout(d.ResponseTimeout.Duration),
		gm65.WithTurnaround(d.Turnaround.Duration),
		gm65.WithAcknowledgedWrites(d.AcknowledgedWrites),
	}
	if d.Retries != nil {
		opts = append(opts, gm65.WithRetries(*d.Retries))
	}

	return opts
}
