package gm65d

import (
	"context"
	"time"
)

type Scanner interface {
	ScanNow(ctx context.Context) ([]byte, error)
}

type Configurer interface {
	SetupPrefixSuffix(mode byte) error
	UpdatePrefix(prefix []byte) error
	UpdateSuffix(suffix []byte) error
	SetScanDuration(d time.Duration) error
	SetSoundLevel(level byte) error
	SaveConfiguration() error
	ReadPrefix() ([]byte, error)
	ReadSuffix() ([]byte, error)
}

// A GM65 is what the daemon needs from the module.
type GM65 interface {
	Scanner
	Configurer
	Port() string
	Close() error
}

type Scan struct {
	ID        string    `json:"id"`
	ScannedAt time.Time `json:"scanned_at"`
	Code      string    `json:"code"`
}

func ToPtr[T any](v T) *T {
	return &v
}

const (
	eventScan    = "scan"
	eventWatch   = "watch"
	eventUnwatch = "unwatch"
)

// historySize is the number of scans replayed to a new watcher.
const historySize = 20

type event struct {
	name      string
	scan      Scan
	monitorID int64
	monitor   chan<- Scan
}

func genID() int64 {
	time.Sleep(time.Nanosecond)
	return time.Now().UnixNano()
}
