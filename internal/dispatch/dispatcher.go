// Package dispatch runs user requests off the caller's goroutine and
// records every attempt in history.
//
// Each submission moves through
//
//	Validating -> Rejected
//	Validating -> Dispatched -> Completed|Failed -> HistoryAppended -> Delivered
//
// and its callback fires exactly once. Rejected submissions never reach
// the network and are not recorded.
package dispatch

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/sadopc/nanoman/internal/core/history"
	"github.com/sadopc/nanoman/internal/core/urlcheck"
	"github.com/sadopc/nanoman/internal/protocol"
)

const (
	DefaultTimeout = 10 * time.Second
	DefaultWorkers = 4
)

// Recorder receives one history entry per dispatched submission.
type Recorder interface {
	Append(e history.Entry) error
}

// Persister is implemented by recorders that buffer writes. Close calls
// Persist once every callback has run.
type Persister interface {
	Persist() error
}

// Outcome is delivered to the submission callback. Exactly one of Response
// and Err is set.
type Outcome struct {
	ID       string
	Request  protocol.Request
	Response *protocol.Response
	Err      error
	Elapsed  time.Duration
}

// Dispatcher validates and sends requests on background goroutines.
type Dispatcher struct {
	transport protocol.Transport
	recorder  Recorder
	timeout   time.Duration
	workers   int64
	logger    *slog.Logger
	now       func() time.Time

	sem    *semaphore.Weighted
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(disp *Dispatcher) {
		if d > 0 {
			disp.timeout = d
		}
	}
}

// WithWorkers bounds the number of requests in flight at once.
func WithWorkers(n int) Option {
	return func(disp *Dispatcher) {
		if n > 0 {
			disp.workers = int64(n)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(disp *Dispatcher) {
		if l != nil {
			disp.logger = l
		}
	}
}

// WithClock replaces time.Now for timestamps and elapsed measurement.
func WithClock(now func() time.Time) Option {
	return func(disp *Dispatcher) {
		if now != nil {
			disp.now = now
		}
	}
}

// New creates a Dispatcher. recorder may be nil to disable history.
func New(transport protocol.Transport, recorder Recorder, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		transport: transport,
		recorder:  recorder,
		timeout:   DefaultTimeout,
		workers:   DefaultWorkers,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.sem = semaphore.NewWeighted(d.workers)
	d.ctx, d.cancel = context.WithCancel(context.Background())
	return d
}

// Timeout returns the configured per-request timeout.
func (d *Dispatcher) Timeout() time.Duration { return d.timeout }

// Submit validates req and sends it in the background. It never blocks;
// onComplete is called exactly once from another goroutine.
func (d *Dispatcher) Submit(req protocol.Request, onComplete func(Outcome)) {
	if onComplete == nil {
		onComplete = func(Outcome) {}
	}
	id := uuid.NewString()
	req = req.Clone()

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		// Not yet dispatched, so there is nothing to record.
		go onComplete(Outcome{ID: id, Request: req, Err: &RequestError{Kind: KindCancelled, Message: "Dispatcher closed"}})
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	if rejected := d.validate(&req); rejected != nil {
		d.logger.Debug("request rejected", "id", id, "reason", rejected.Message)
		go func() {
			defer d.wg.Done()
			onComplete(Outcome{ID: id, Request: req, Err: rejected})
		}()
		return
	}

	go func() {
		defer d.wg.Done()
		onComplete(d.run(id, req))
	}()
}

// Do is the synchronous form of Submit for callers that already run off
// the interaction goroutine, such as the CLI.
func (d *Dispatcher) Do(req protocol.Request) Outcome {
	ch := make(chan Outcome, 1)
	d.Submit(req, func(o Outcome) { ch <- o })
	return <-ch
}

// validate checks the URL and method and normalizes them in place, so the
// transport and history see exactly what was validated.
func (d *Dispatcher) validate(req *protocol.Request) *RequestError {
	if _, err := urlcheck.Validate(req.URL); err != nil {
		return &RequestError{Kind: KindInvalidURL, Message: err.Error(), Err: err}
	}
	req.URL = strings.TrimSpace(req.URL)
	m, err := protocol.ParseMethod(string(req.Method))
	if err != nil {
		return &RequestError{Kind: KindOther, Message: err.Error(), Err: err}
	}
	req.Method = m
	return nil
}

func (d *Dispatcher) run(id string, req protocol.Request) Outcome {
	out := Outcome{ID: id, Request: req}

	if err := d.sem.Acquire(d.ctx, 1); err != nil {
		out.Err = &RequestError{Kind: KindCancelled, Message: "Request cancelled", Err: err}
		d.record(req, nil, 0)
		return out
	}
	defer d.sem.Release(1)

	ctx, cancel := context.WithTimeout(d.ctx, d.timeout)
	start := d.now()
	resp, err := d.transport.Do(ctx, req)
	elapsed := d.now().Sub(start)
	cancel()
	if elapsed < 0 {
		elapsed = 0
	}
	out.Elapsed = elapsed

	if err != nil {
		reqErr := classify(err, d.ctx, d.timeout)
		out.Err = reqErr
		d.logger.Debug("request failed", "id", id, "method", req.Method, "host", hostOf(req.URL),
			"kind", reqErr.Kind.String(), "elapsed", elapsed)
		d.record(req, nil, elapsed)
		return out
	}

	resp.Elapsed = elapsed
	out.Response = resp
	d.logger.Debug("request completed", "id", id, "method", req.Method, "host", hostOf(req.URL),
		"status", resp.StatusCode, "elapsed", elapsed)
	d.record(req, history.Status(resp.StatusCode), elapsed)
	return out
}

// record builds the history entry from the allowed fields only.
func (d *Dispatcher) record(req protocol.Request, status *int, elapsed time.Duration) {
	if d.recorder == nil {
		return
	}
	entry := history.NewEntry(d.now(), string(req.Method), req.URL, status, elapsed)
	if err := d.recorder.Append(entry); err != nil {
		d.logger.Warn("history append failed", "err", err)
	}
}

// Close cancels in-flight requests, which complete as KindCancelled,
// waits for every pending callback and flushes the recorder if it is a
// Persister. Later submissions are cancelled without network I/O.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	d.cancel()
	d.wg.Wait()

	if p, ok := d.recorder.(Persister); ok {
		if err := p.Persist(); err != nil {
			d.logger.Error("history flush failed", "err", err)
		}
	}
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}
