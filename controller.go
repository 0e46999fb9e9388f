package gm65d

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/mdouchement/gm65d/gm65"
	"github.com/mdouchement/logger"
	"golang.org/x/time/rate"
)

type Controller struct {
	scanner  Scanner
	loop     bool
	limiter  *rate.Limiter
	events   chan event
	stopped  chan struct{}
	done     chan struct{}
	listener net.Listener
	server   *http.Server
}

func New(cfg Config, scanner Scanner) (*Controller, error) {
	c := &Controller{
		scanner: scanner,
		loop:    !cfg.ScanLoop.Disabled,
		limiter: rate.NewLimiter(rate.Every(cfg.ScanLoop.Interval.Duration), cfg.ScanLoop.Burst),
		events:  make(chan event, 10),
		stopped: make(chan struct{}),
		done:    make(chan struct{}),
	}

	err := os.MkdirAll(filepath.Dir(cfg.Socket), 0o755)
	if err != nil {
		return nil, fmt.Errorf("socket: %w", err)
	}

	if _, err := os.Stat(cfg.Socket); err == nil {
		fmt.Printf("Removing existing %s\n", cfg.Socket)
		os.Remove(cfg.Socket)
	}
	c.listener, err = net.Listen("unix", cfg.Socket)
	if err != nil {
		return nil, fmt.Errorf("socket: %w", err)
	}

	return c, nil
}

// Launch starts the event loop, the HTTP server and the scan loop in background.
// Everything stops when ctx is done, Done is closed once the socket is removed.
func (c *Controller) Launch(ctx context.Context) {
	log := logger.LogWith(ctx)

	go c.eventLoop(ctx)

	c.server = &http.Server{
		Handler:     c.Handler(log),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	go func() {
		log.Info("Starting HTTP server on", c.listener.Addr().String())
		err := c.server.Serve(c.listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Could not serve HTTP")
		}
	}()

	if c.loop {
		go c.scanLoop(ctx)
	}

	go func() {
		defer close(c.done)
		<-ctx.Done()

		sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := c.server.Shutdown(sctx); err != nil {
			log.WithError(err).Error("Could not shutdown HTTP server")
		}
		if err := os.Remove(c.listener.Addr().String()); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.WithError(err).Errorf("Could not remove socket %s", c.listener.Addr().String())
		}
	}()
}

func (c *Controller) Done() <-chan struct{} {
	return c.done
}

func (c *Controller) Handler(log logger.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /scans", c.monitor(log))
	mux.HandleFunc("POST /scan", c.trigger(log))
	return mux
}

// Scan triggers a scan on the module and publishes the decoded barcode to the watchers.
func (c *Controller) Scan(ctx context.Context) (Scan, error) {
	code, err := c.scanner.ScanNow(ctx)
	if err != nil {
		return Scan{}, err
	}

	s := Scan{
		ID:        uuid.NewString(),
		ScannedAt: time.Now(),
		Code:      string(code),
	}
	c.publish(event{name: eventScan, scan: s})
	return s, nil
}

func (c *Controller) publish(e event) bool {
	select {
	case c.events <- e:
		return true
	case <-c.stopped:
		return false
	}
}

func (c *Controller) scanLoop(ctx context.Context) {
	log := logger.LogWith(ctx)

	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return
		}

		_, err := c.Scan(ctx)
		switch {
		case err == nil, errors.Is(err, gm65.ErrNoBarcode):
		case ctx.Err() != nil:
			return
		default:
			log.WithError(err).Error("Could not scan")
		}
	}
}

func (c *Controller) eventLoop(ctx context.Context) {
	log := logger.LogWith(ctx)
	watchers := map[int64]chan<- Scan{}
	history := make([]Scan, 0, historySize+1)

	defer close(c.stopped)

	for {
		select {
		case <-ctx.Done():
			for id, watcher := range watchers {
				close(watcher)
				delete(watchers, id)
			}
			return
		case e := <-c.events:
			switch e.name {
			case eventScan:
				log.Infof("Scanned %s", strconv.Quote(e.scan.Code))

				history = append(history, e.scan)
				if len(history) > historySize {
					history = history[1:]
				}

				for id, watcher := range watchers {
					select {
					case watcher <- e.scan:
					default:
						log.Warnf("Watcher %d is too slow, dropping scan %s", id, e.scan.ID)
					}
				}
			case eventWatch:
				watchers[e.monitorID] = e.monitor
				for _, s := range history {
					e.monitor <- s // Buffered with room for the whole history
				}
			case eventUnwatch:
				if watcher, ok := watchers[e.monitorID]; ok {
					close(watcher)
					delete(watchers, e.monitorID)
				}
			}
		}
	}
}

func (c *Controller) monitor(log logger.Logger) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Client connected")

		// Set http headers required for SSE.
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		disconnected := r.Context().Done()

		id := genID()
		ch := make(chan Scan, historySize+10)
		if !c.publish(event{name: eventWatch, monitorID: id, monitor: ch}) {
			http.Error(w, "shutting down", http.StatusServiceUnavailable)
			return
		}

		rc := http.NewResponseController(w)
		w.WriteHeader(http.StatusOK)
		if err := rc.Flush(); err != nil {
			log.WithError(err).Error("Could not flush monitor SSE headers")
			return
		}

		for {
			select {
			case <-disconnected:
				log.Info("Client disconnected")
				c.publish(event{name: eventUnwatch, monitorID: id})
				return
			case s, ok := <-ch:
				if !ok {
					return
				}

				payload, err := json.Marshal(s)
				if err != nil {
					log.WithError(err).Error("Could not serialize scan") // Should never happen
					continue
				}

				err = WriteSSE(w, Event{ID: s.ID, Data: payload})
				if err != nil {
					log.WithError(err).Error("Could not write monitor SSE payload")
					return
				}

				err = rc.Flush()
				if err != nil {
					log.WithError(err).Error("Could not flush monitor SSE payload")
					return
				}
			}
		}
	}
}

func (c *Controller) trigger(log logger.Logger) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := c.Scan(r.Context())
		if errors.Is(err, gm65.ErrNoBarcode) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err != nil {
			log.WithError(err).Error("Could not scan")
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err = json.NewEncoder(w).Encode(s); err != nil {
			log.WithError(err).Error("Could not write scan")
		}
	}
}
