// Package httpruntime drives an interpreter server over a small REST
// protocol: one session per (test case, run mode) execution, one endpoint
// per runtime operation.
package httpruntime

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/specialistvlad/simspec/internal/config"
	"github.com/specialistvlad/simspec/internal/ctxlog"
	"github.com/specialistvlad/simspec/internal/model"
	"github.com/specialistvlad/simspec/internal/registry"
	"github.com/specialistvlad/simspec/internal/render"
	"github.com/specialistvlad/simspec/internal/runtime"
)

const defaultTimeout = 30 * time.Second

// Module implements registry.Module.
type Module struct{}

// Register registers the "http" runtime type.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFactory("http", newFactory)
}

// Factory creates HTTP-backed runtime sessions against one server.
type Factory struct {
	baseURL string
	client  *http.Client
}

func newFactory(_ context.Context, cfg *config.Runtime) (runtime.Factory, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("http runtime: url is required")
	}

	timeout := defaultTimeout
	if cfg.Timeout != "" {
		parsed, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("http runtime: invalid timeout %q: %w", cfg.Timeout, err)
		}
		timeout = parsed
	}

	client := &http.Client{Timeout: timeout}
	if cfg.InsecureSkipVerify {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &Factory{
		baseURL: strings.TrimSuffix(cfg.URL, "/"),
		client:  client,
	}, nil
}

// New opens a fresh interpreter session for one run.
func (f *Factory) New(ctx context.Context, mode model.RunMode) (runtime.Runtime, error) {
	logger := ctxlog.FromContext(ctx).With("runtime", "http", "mode", mode.String())

	var created struct {
		ID string `json:"id"`
	}
	err := f.post(ctx, f.baseURL+"/session", map[string]any{"mode": mode.String()}, &created)
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	if created.ID == "" {
		return nil, fmt.Errorf("server returned an empty session id")
	}
	logger.Debug("Session opened.", "session", created.ID)

	return &session{
		factory:    f,
		id:         created.ID,
		sessionURL: f.baseURL + "/session/" + created.ID,
	}, nil
}

// post sends a JSON body and decodes a successful JSON response into out.
// Failure responses are translated into typed runtime errors.
func (f *Factory) post(ctx context.Context, url string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(resp.StatusCode, respBody)
	}
	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// failureBody is the JSON shape of an operation failure.
type failureBody struct {
	Kind       string `json:"kind"`
	Error      string `json:"error"`
	StackTrace string `json:"stack_trace"`
}

// errorFromResponse maps a failure response onto the typed runtime errors
// the dispatcher discriminates on.
func errorFromResponse(status int, body []byte) error {
	var failure failureBody
	if err := json.Unmarshal(body, &failure); err != nil || failure.Error == "" {
		return fmt.Errorf("server returned status %d: %s", status, strings.TrimSpace(string(body)))
	}
	if failure.Kind == "compile" {
		return &runtime.CompileError{Message: failure.Error}
	}
	return &runtime.ExecError{Message: failure.Error, StackTrace: failure.StackTrace}
}

// session is one live interpreter session. Owned by a single run; not safe
// for concurrent use.
type session struct {
	factory    *Factory
	id         string
	sessionURL string
	disposed   bool
}

func (s *session) Compile(ctx context.Context, source string) error {
	return s.factory.post(ctx, s.sessionURL+"/compile", map[string]any{"source": source}, nil)
}

func (s *session) Execute(ctx context.Context, agent model.AgentKind, command string) error {
	body := map[string]any{"agent": agent.String(), "command": command}
	return s.factory.post(ctx, s.sessionURL+"/execute", body, nil)
}

func (s *session) Evaluate(ctx context.Context, agent model.AgentKind, expression string) (string, error) {
	body := map[string]any{"agent": agent.String(), "expression": expression}
	var result struct {
		Result json.RawMessage `json:"result"`
	}
	if err := s.factory.post(ctx, s.sessionURL+"/evaluate", body, &result); err != nil {
		return "", err
	}
	return render.FromJSON(result.Result)
}

func (s *session) OpenModel(ctx context.Context, path string) error {
	return s.factory.post(ctx, s.sessionURL+"/model", map[string]any{"path": path}, nil)
}

// Dispose deletes the server-side session. Idempotent; a delete failure is
// not fatal to the run that owned the session.
func (s *session) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.sessionURL, nil)
	if err != nil {
		return
	}
	if resp, err := s.factory.client.Do(req); err == nil {
		resp.Body.Close()
	}
}
