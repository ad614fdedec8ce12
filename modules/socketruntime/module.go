// Package socketruntime drives an interpreter server over a socket.io
// connection: one socket per (test case, run mode) execution, one
// request/reply event pair for all runtime operations.
package socketruntime

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/specialistvlad/simspec/internal/config"
	"github.com/specialistvlad/simspec/internal/ctxlog"
	"github.com/specialistvlad/simspec/internal/model"
	"github.com/specialistvlad/simspec/internal/registry"
	"github.com/specialistvlad/simspec/internal/render"
	"github.com/specialistvlad/simspec/internal/runtime"
)

const (
	requestEvent = "simspec:request"
	replyEvent   = "simspec:reply"

	defaultTimeout = 30 * time.Second
)

// Module implements registry.Module.
type Module struct{}

// Register registers the "socketio" runtime type.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFactory("socketio", newFactory)
}

// Factory dials one socket per runtime instance.
type Factory struct {
	baseURL   string
	path      string
	namespace string
	timeout   time.Duration
	insecure  bool
}

func newFactory(_ context.Context, cfg *config.Runtime) (runtime.Factory, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("socketio runtime: url is required")
	}
	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("socketio runtime: failed to parse URL: %w", err)
	}

	timeout := defaultTimeout
	if cfg.Timeout != "" {
		parsed, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("socketio runtime: invalid timeout %q: %w", cfg.Timeout, err)
		}
		timeout = parsed
	}

	return &Factory{
		baseURL:   fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host),
		path:      parsedURL.Path,
		namespace: cfg.Namespace,
		timeout:   timeout,
		insecure:  cfg.InsecureSkipVerify,
	}, nil
}

// reply is the wire shape of one operation response.
type reply struct {
	ID         int64           `json:"id"`
	OK         bool            `json:"ok"`
	Kind       string          `json:"kind"`
	Error      string          `json:"error"`
	StackTrace string          `json:"stack_trace"`
	Result     json.RawMessage `json:"result"`
}

// session owns one connected socket. Owned by a single run; not safe for
// concurrent use, though the reply listener runs on the client's own
// goroutine and needs the pending map guarded.
type session struct {
	io      *socket.Socket
	timeout time.Duration

	mu       sync.Mutex
	pending  map[int64]chan reply
	nextID   int64
	disposed bool
}

// New connects a fresh socket, waits for the transport to come up, and
// opens an interpreter session in the requested mode.
func (f *Factory) New(ctx context.Context, mode model.RunMode) (runtime.Runtime, error) {
	logger := ctxlog.FromContext(ctx).With("runtime", "socketio", "mode", mode.String())

	opts := socket.DefaultOptions()
	if f.path != "" {
		opts.SetPath(f.path)
	}
	if f.insecure {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(f.baseURL, opts)
	io := manager.Socket(f.namespace, opts)

	s := &session{
		io:      io,
		timeout: f.timeout,
		pending: make(map[int64]chan reply),
	}

	connected := make(chan struct{}, 1)
	connectErr := make(chan error, 1)

	io.On(types.EventName("connect"), func(...any) {
		logger.Debug("Socket connected.", "sid", io.Id())
		connected <- struct{}{}
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if err, ok := errs[0].(error); ok {
				connectErr <- err
				return
			}
		}
		connectErr <- fmt.Errorf("connection failed")
	})
	io.On(types.EventName(replyEvent), s.onReply)

	io.Connect()

	connectCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	select {
	case <-connected:
	case err := <-connectErr:
		io.Disconnect()
		return nil, fmt.Errorf("failed to connect: %w", err)
	case <-connectCtx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("timed out while waiting for initial connection")
	}

	if _, err := s.request(ctx, map[string]any{"op": "open-session", "mode": mode.String()}); err != nil {
		io.Disconnect()
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	return s, nil
}

// onReply routes a server reply to the goroutine waiting on its id.
func (s *session) onReply(data ...any) {
	if len(data) == 0 {
		return
	}
	// Re-encode the decoded payload so one struct definition covers both
	// map and already-typed deliveries.
	raw, err := json.Marshal(data[0])
	if err != nil {
		return
	}
	var r reply
	if err := json.Unmarshal(raw, &r); err != nil {
		return
	}

	s.mu.Lock()
	ch, ok := s.pending[r.ID]
	if ok {
		delete(s.pending, r.ID)
	}
	s.mu.Unlock()
	if ok {
		ch <- r
	}
}

// request emits one operation and blocks for its reply. Failure replies are
// translated into the typed runtime errors the dispatcher discriminates on.
func (s *session) request(ctx context.Context, payload map[string]any) (reply, error) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return reply{}, fmt.Errorf("session already disposed")
	}
	s.nextID++
	id := s.nextID
	ch := make(chan reply, 1)
	s.pending[id] = ch
	s.mu.Unlock()

	payload["id"] = id
	s.io.Emit(requestEvent, payload)

	opCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	select {
	case r := <-ch:
		if r.OK {
			return r, nil
		}
		if r.Kind == "compile" {
			return reply{}, &runtime.CompileError{Message: r.Error}
		}
		return reply{}, &runtime.ExecError{Message: r.Error, StackTrace: r.StackTrace}
	case <-opCtx.Done():
		s.mu.Lock()
		delete(s.pending, id)
		s.mu.Unlock()
		return reply{}, fmt.Errorf("timed out waiting for reply to %v", payload["op"])
	}
}

func (s *session) Compile(ctx context.Context, source string) error {
	_, err := s.request(ctx, map[string]any{"op": "compile", "source": source})
	return err
}

func (s *session) Execute(ctx context.Context, agent model.AgentKind, command string) error {
	_, err := s.request(ctx, map[string]any{"op": "execute", "agent": agent.String(), "command": command})
	return err
}

func (s *session) Evaluate(ctx context.Context, agent model.AgentKind, expression string) (string, error) {
	r, err := s.request(ctx, map[string]any{"op": "evaluate", "agent": agent.String(), "expression": expression})
	if err != nil {
		return "", err
	}
	return render.FromJSON(r.Result)
}

func (s *session) OpenModel(ctx context.Context, path string) error {
	_, err := s.request(ctx, map[string]any{"op": "open-model", "path": path})
	return err
}

// Dispose disconnects the socket. Idempotent.
func (s *session) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	s.mu.Unlock()
	s.io.Disconnect()
}
