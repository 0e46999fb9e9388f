package gm65

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/mdouchement/logger"
	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

type Controller struct {
	sync  sync.Mutex
	pname string
	port  Port
	log   logger.Logger
	opts  options
	rbuf  []byte
}

// ListPorts returns every serial port of the host, flagging the GM65 ones.
func ListPorts() ([]PortInfo, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, err
	}

	infos := make([]PortInfo, 0, len(ports))
	for _, p := range ports {
		infos = append(infos, PortInfo{
			Name:         p.Name,
			VID:          p.VID,
			PID:          p.PID,
			SerialNumber: p.SerialNumber,
			Product:      p.Product,
			GM65:         p.IsUSB && isGM65(p.VID, p.PID),
		})
	}

	return infos, nil
}

func isGM65(vid, pid string) bool {
	return strings.EqualFold(vid, VendorID) && strings.EqualFold(pid, ProductID)
}

func OpenAuto(opts ...Option) (*Controller, error) {
	ports, err := ListPorts()
	if err != nil {
		return nil, err
	}

	for _, p := range ports {
		if p.GM65 {
			fmt.Printf("Found GM65 on %s - VID: %s - PID: %s - SN: %s\n", p.Name, p.VID, p.PID, p.SerialNumber)
			return Open(p.Name, opts...)
		}
	}

	return nil, ErrNotFound
}

func Open(name string, opts ...Option) (*Controller, error) {
	port, err := serial.Open(name, &serial.Mode{
		BaudRate: BaudRate,
		DataBits: 8,
		Parity:   serial.EvenParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, err
	}

	if err = port.ResetOutputBuffer(); err != nil {
		port.Close()
		return nil, err
	}

	c, err := New(name, port, opts...)
	if err != nil {
		port.Close()
		return nil, err
	}

	return c, nil
}

// New wraps an already opened port.
func New(name string, port Port, opts ...Option) (*Controller, error) {
	c := &Controller{
		pname: name,
		port:  port,
		opts:  defaultOptions(),
		rbuf:  make([]byte, 1),
	}
	for _, opt := range opts {
		opt(&c.opts)
	}

	// Short reads let the response reader enforce its own deadline.
	if err := c.port.SetReadTimeout(100 * time.Millisecond); err != nil {
		return nil, err
	}

	if err := c.port.ResetInputBuffer(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Controller) SetLogger(l logger.Logger) {
	c.log = l
}

func (c *Controller) Close() error {
	c.sync.Lock()
	defer c.sync.Unlock()

	if err := c.port.ResetInputBuffer(); err != nil {
		return err
	}

	return c.port.Close()
}

func (c *Controller) Port() string {
	return c.pname
}

func (c *Controller) ReadPrefix() ([]byte, error) {
	prefix, err := c.Run(CommandRead, ZonePrefix, AffixReadLength)
	if err != nil {
		return nil, fmt.Errorf("read_prefix: %w", err)
	}

	return prefix, nil
}

func (c *Controller) ReadSuffix() ([]byte, error) {
	suffix, err := c.Run(CommandRead, ZoneSuffix, AffixReadLength)
	if err != nil {
		return nil, fmt.Errorf("read_suffix: %w", err)
	}

	return suffix, nil
}

// SetupPrefixSuffix writes the affix mode bitfield (see ZonePrefixSuffix).
func (c *Controller) SetupPrefixSuffix(mode byte) error {
	if _, err := c.Run(CommandWrite, ZonePrefixSuffix, mode); err != nil {
		return fmt.Errorf("setup_prefix_suffix: %w", err)
	}

	return nil
}

func (c *Controller) UpdatePrefix(prefix []byte) error {
	if err := c.send(CommandWrite, ZonePrefix, prefix...); err != nil {
		return fmt.Errorf("update_prefix: %w", err)
	}

	return nil
}

func (c *Controller) UpdateSuffix(suffix []byte) error {
	if err := c.send(CommandWrite, ZoneSuffix, suffix...); err != nil {
		return fmt.Errorf("update_suffix: %w", err)
	}

	return nil
}

// SetScanDuration sets the single scan duration, encoded in tenths of second.
func (c *Controller) SetScanDuration(d time.Duration) error {
	ds := d.Round(100*time.Millisecond) / (100 * time.Millisecond)
	if d < 0 || ds > 0xFF {
		return fmt.Errorf("set_scan_duration: %w: %s", ErrInvalidDuration, d)
	}

	if _, err := c.Run(CommandWrite, ZoneScanDuration, byte(ds)); err != nil {
		return fmt.Errorf("set_scan_duration: %w", err)
	}

	return nil
}

func (c *Controller) SetSoundLevel(level byte) error {
	if _, err := c.Run(CommandWrite, ZoneSoundLevel, level); err != nil {
		return fmt.Errorf("set_sound_level: %w", err)
	}

	return nil
}

func (c *Controller) SetZone(zone Zone, value byte) error {
	if _, err := c.Run(CommandWrite, zone, value); err != nil {
		return fmt.Errorf("set_zone %s: %w", zone, err)
	}

	return nil
}

// SaveConfiguration persists the current settings in the module EEPROM.
func (c *Controller) SaveConfiguration() error {
	if err := c.send(CommandEEPROM, ZoneEEPROM, 0x00); err != nil {
		return fmt.Errorf("save_configuration: %w", err)
	}

	return nil
}

// ScanNow triggers a scan and polls the port for the decoded barcode line.
func (c *Controller) ScanNow(ctx context.Context) ([]byte, error) {
	c.sync.Lock()
	defer c.sync.Unlock()

	if _, err := c.run(CommandWrite, ZoneTrigger, triggerScan); err != nil {
		return nil, fmt.Errorf("scan_now: %w", err)
	}

	for i := 0; i < c.opts.pollAttempts; i++ {
		line, err := c.readLine()
		if err != nil {
			return nil, fmt.Errorf("scan_now: %w", err)
		}

		line = bytes.TrimRight(line, "\r\n")
		if len(line) > 0 {
			if c.log != nil {
				c.log.Debugf("Barcode read after %d poll(s): %q", i+1, line)
			}
			return line, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("scan_now: %w", ctx.Err())
		case <-time.After(c.opts.pollInterval):
		}
	}

	return nil, fmt.Errorf("scan_now: %w", ErrNoBarcode)
}

// Run sends a command and returns the CRC-validated response payload.
func (c *Controller) Run(t CommandType, zone Zone, data ...byte) ([]byte, error) {
	c.sync.Lock()
	defer c.sync.Unlock()

	return c.run(t, zone, data...)
}

// Write sends a command without waiting for its response.
func (c *Controller) Write(t CommandType, zone Zone, data ...byte) error {
	c.sync.Lock()
	defer c.sync.Unlock()

	frame, err := BuildFrame(zone, data, t)
	if err != nil {
		return err
	}

	return c.write(frame)
}

func (c *Controller) send(t CommandType, zone Zone, data ...byte) error {
	if c.opts.ackWrites {
		_, err := c.Run(t, zone, data...)
		return err
	}

	return c.Write(t, zone, data...)
}

func (c *Controller) run(t CommandType, zone Zone, data ...byte) ([]byte, error) {
	frame, err := BuildFrame(zone, data, t)
	if err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		response, err := c.exchange(frame)
		if err == nil {
			return response, nil
		}

		if !Retryable(err) {
			return nil, err
		}

		if c.log != nil {
			c.log.Warnf("%s %s: attempt %d/%d: %s", t, zone, attempt+1, c.opts.retries+1, err)
		}

		if attempt >= c.opts.retries {
			return nil, err
		}
	}
}

func (c *Controller) exchange(frame []byte) ([]byte, error) {
	if err := c.port.ResetInputBuffer(); err != nil {
		return nil, &TransportError{Op: "flush", Err: err}
	}

	if err := c.write(frame); err != nil {
		return nil, err
	}

	time.Sleep(c.opts.turnaround)

	response, err := ReadResponse(c.port, time.Now().Add(c.opts.timeout))
	if err != nil {
		return nil, err
	}

	if c.log != nil {
		c.log.Debugf("< %s", hexdump(response))
	}
	return response, nil
}

func (c *Controller) write(frame []byte) error {
	if c.log != nil {
		c.log.Debugf("> %s", hexdump(frame))
	}

	n, err := c.port.Write(frame)
	if err != nil {
		return &TransportError{Op: "write", Err: err}
	}
	if n != len(frame) {
		return &TransportError{Op: "write", Err: io.ErrShortWrite}
	}

	return nil
}

// readLine reads until an end of line or until the port has nothing more to give.
func (c *Controller) readLine() ([]byte, error) {
	var line []byte
	for {
		n, err := c.port.Read(c.rbuf)
		if n == 0 {
			if err != nil {
				return nil, &TransportError{Op: "read", Err: err}
			}
			return line, nil
		}

		line = append(line, c.rbuf[0])
		if c.rbuf[0] == CommEndLine {
			return line, nil
		}
	}
}
