package gm65

import "time"

type options struct {
	turnaround   time.Duration
	timeout      time.Duration
	retries      int
	ackWrites    bool
	pollAttempts int
	pollInterval time.Duration
}

func defaultOptions() options {
	return options{
		turnaround:   DefaultTurnaround,
		timeout:      DefaultResponseTimeout,
		retries:      DefaultRetries,
		pollAttempts: ScanPollAttempts,
		pollInterval: ScanPollInterval,
	}
}

type Option func(*options)

// WithTurnaround sets the pause between writing a frame and reading its response.
func WithTurnaround(d time.Duration) Option {
	return func(o *options) {
		o.turnaround = max(d, 0)
	}
}

// WithResponseTimeout bounds the time spent reading a single response.
func WithResponseTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithRetries sets how many times a command is sent again after ErrNoResponse or ErrChecksum.
func WithRetries(n int) Option {
	return func(o *options) {
		o.retries = max(n, 0)
	}
}

// WithAcknowledgedWrites makes prefix/suffix updates and EEPROM saves await the module response.
func WithAcknowledgedWrites(enabled bool) Option {
	return func(o *options) {
		o.ackWrites = enabled
	}
}

// WithScanPolling sets how ScanNow polls for the decoded barcode.
func WithScanPolling(attempts int, interval time.Duration) Option {
	return func(o *options) {
		if attempts > 0 {
			o.pollAttempts = attempts
		}
		o.pollInterval = max(interval, 0)
	}
}
