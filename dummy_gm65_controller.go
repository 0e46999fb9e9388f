package gm65d

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mdouchement/gm65d/gm65"
	"github.com/mdouchement/logger"
)

// A DummyGM65Controller should only be used for dev & tests.
// Every third ScanNow decodes a synthetic EAN-13.
type DummyGM65Controller struct {
	sync     sync.Mutex
	log      logger.Logger
	calls    int
	serial   uint64
	mode     byte
	prefix   []byte
	suffix   []byte
	duration time.Duration
	sound    byte
	saved    bool
}

func NewDummyGM65Controller() *DummyGM65Controller {
	return &DummyGM65Controller{
		serial:   400638133393,
		duration: 5 * time.Second,
	}
}

func (c *DummyGM65Controller) SetLogger(l logger.Logger) {
	c.log = l
}

func (c *DummyGM65Controller) Close() error {
	return nil
}

func (c *DummyGM65Controller) Port() string {
	return "x-testing"
}

func (c *DummyGM65Controller) ScanNow(ctx context.Context) ([]byte, error) {
	c.sync.Lock()
	defer c.sync.Unlock()

	c.calls++
	if c.calls%3 != 0 {
		return nil, fmt.Errorf("scan_now: %w", gm65.ErrNoBarcode)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scan_now: %w", err)
	}

	c.serial++
	code := fmt.Sprintf("%012d%d", c.serial, ean13CheckDigit(c.serial))
	if c.log != nil {
		c.log.Debugf("Dummy barcode %s", code)
	}

	out := append([]byte{}, c.prefix...)
	out = append(out, code...)
	return append(out, c.suffix...), nil
}

func (c *DummyGM65Controller) SetupPrefixSuffix(mode byte) error {
	c.sync.Lock()
	defer c.sync.Unlock()

	c.mode = mode
	return nil
}

func (c *DummyGM65Controller) UpdatePrefix(prefix []byte) error {
	c.sync.Lock()
	defer c.sync.Unlock()

	c.prefix = append([]byte{}, prefix...)
	return nil
}

func (c *DummyGM65Controller) UpdateSuffix(suffix []byte) error {
	c.sync.Lock()
	defer c.sync.Unlock()

	c.suffix = append([]byte{}, suffix...)
	return nil
}

func (c *DummyGM65Controller) ReadPrefix() ([]byte, error) {
	c.sync.Lock()
	defer c.sync.Unlock()

	return append([]byte{}, c.prefix...), nil
}

func (c *DummyGM65Controller) ReadSuffix() ([]byte, error) {
	c.sync.Lock()
	defer c.sync.Unlock()

	return append([]byte{}, c.suffix...), nil
}

func (c *DummyGM65Controller) SetScanDuration(d time.Duration) error {
	if d < 0 || d > 25500*time.Millisecond {
		return fmt.Errorf("set_scan_duration: %w: %s", gm65.ErrInvalidDuration, d)
	}

	c.sync.Lock()
	defer c.sync.Unlock()

	c.duration = d
	return nil
}

func (c *DummyGM65Controller) SetSoundLevel(level byte) error {
	c.sync.Lock()
	defer c.sync.Unlock()

	c.sound = level
	return nil
}

func (c *DummyGM65Controller) SaveConfiguration() error {
	c.sync.Lock()
	defer c.sync.Unlock()

	c.saved = true
	return nil
}

// ean13CheckDigit computes the check digit of a 12 digits payload.
func ean13CheckDigit(n uint64) uint64 {
	var sum uint64
	for i := 0; i < 12; i++ {
		d := n % 10
		n /= 10
		if i%2 == 0 {
			sum += 3 * d
		} else {
			sum += d
		}
	}

	return (10 - sum%10) % 10
}
