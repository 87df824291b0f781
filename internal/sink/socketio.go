package sink

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/specialistvlad/gridsweep/internal/ctxlog"
	"github.com/specialistvlad/gridsweep/internal/model"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// DefaultSubmitEvent is the event name jobs are emitted under.
const DefaultSubmitEvent = "submit"

// SocketIOConfig configures the connection to a submission relay.
type SocketIOConfig struct {
	URL                string
	Namespace          string
	Event              string
	InsecureSkipVerify bool
	ConnectTimeout     time.Duration
}

// SocketIO forwards every job to a socket.io relay, which is expected to
// submit it to the cluster. Emission is fire-and-forget.
type SocketIO struct {
	emit         func(event string, args ...any)
	disconnect   func()
	event        string
	disconnected atomic.Bool
}

// DialSocketIO connects to the relay and waits for the connection to be
// acknowledged.
func DialSocketIO(ctx context.Context, cfg SocketIOConfig) (*SocketIO, error) {
	logger := ctxlog.FromContext(ctx).With("sink", "socketio", "url", cfg.URL)
	logger.Info("Connecting to submission relay...")

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	opts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		opts.SetPath(parsedURL.Path)
	}
	if cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(orDefault(cfg.Namespace, "/"), opts)

	s := &SocketIO{
		emit:       func(event string, args ...any) { io.Emit(event, args...) },
		disconnect: func() { io.Disconnect() },
		event:      orDefault(cfg.Event, DefaultSubmitEvent),
	}
	connectChan := make(chan error, 1)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Connected to submission relay", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		connectChan <- err
	})
	io.On(types.EventName("disconnect"), func(reason ...any) {
		logger.Warn("Submission relay disconnected", "reason", reason)
		s.disconnected.Store(true)
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return s, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", timeout)
	}
}

// Name implements sweep.Sink.
func (s *SocketIO) Name() string {
	return "socketio"
}

// Submit implements sweep.Sink.
func (s *SocketIO) Submit(ctx context.Context, job model.JobSpec) error {
	if s.disconnected.Load() {
		return errors.New("relay connection lost")
	}
	ctxlog.FromContext(ctx).Debug("Emitting job.", "event", s.event, "index", job.Index)
	s.emit(s.event, Payload(job))
	return nil
}

// Close disconnects from the relay.
func (s *SocketIO) Close() error {
	s.disconnect()
	return nil
}

// Payload is the JSON-ready form of a job sent to the relay.
func Payload(job model.JobSpec) map[string]any {
	return map[string]any{
		"sweep":       job.Sweep,
		"index":       job.Index,
		"job_type":    job.JobType,
		"command":     job.Command,
		"args":        job.Args,
		"line":        job.Line(),
		"combination": job.Combination.Map(),
		"parameters":  parameters(job.Combination),
	}
}

// parameters returns the combination with typed values. A value that cannot
// be converted is sent as its source text.
func parameters(c model.Combination) map[string]any {
	names, values := c.Names(), c.Values()
	out := make(map[string]any, len(names))
	for i, name := range names {
		v, err := values[i].Native()
		if err != nil {
			v = values[i].Raw
		}
		out[name] = v
	}
	return out
}
