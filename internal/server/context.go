package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/teemow/calendarenv/internal/calendar"
	"github.com/teemow/calendarenv/internal/environment"
	"github.com/teemow/calendarenv/internal/instrumentation"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx      context.Context
	cancel   context.CancelFunc
	env      *environment.Environment
	metrics  *instrumentation.Metrics
	audit    *instrumentation.AuditLogger
	logger   *slog.Logger
	readOnly bool
	mu       sync.RWMutex
	shutdown bool
}

// Option configures a ServerContext.
type Option func(*ServerContext)

// WithMetrics sets the metrics recorder used by instrumented tools.
func WithMetrics(metrics *instrumentation.Metrics) Option {
	return func(sc *ServerContext) {
		sc.metrics = metrics
	}
}

// WithAuditLogger sets the logger that records every tool invocation.
func WithAuditLogger(audit *instrumentation.AuditLogger) Option {
	return func(sc *ServerContext) {
		sc.audit = audit
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(sc *ServerContext) {
		if logger != nil {
			sc.logger = logger
		}
	}
}

// WithReadOnly marks the server as refusing write operations.
func WithReadOnly(readOnly bool) Option {
	return func(sc *ServerContext) {
		sc.readOnly = readOnly
	}
}

// NewServerContext creates a new server context around env.
// env may be nil, in which case tools report that no environment is loaded.
func NewServerContext(ctx context.Context, env *environment.Environment, opts ...Option) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:    shutdownCtx,
		cancel: cancel,
		env:    env,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(sc)
	}
	return sc, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Environment returns the loaded environment, or nil.
func (sc *ServerContext) Environment() *environment.Environment {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.env
}

// SetEnvironment replaces the environment.
func (sc *ServerContext) SetEnvironment(env *environment.Environment) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.env = env
}

// CalendarClient returns the environment's calendar client.
func (sc *ServerContext) CalendarClient() (*calendar.Client, error) {
	if sc.IsShutdown() {
		return nil, fmt.Errorf("server is shutting down")
	}
	env := sc.Environment()
	if env == nil {
		return nil, fmt.Errorf("calendar environment is not initialized")
	}
	return env.Client(), nil
}

// Metrics returns the metrics recorder, or nil if metrics are disabled.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetMetrics sets the metrics recorder.
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
}

// AuditLogger returns the audit logger, or nil if auditing is off.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.audit
}

// SetAuditLogger sets the audit logger.
func (sc *ServerContext) SetAuditLogger(audit *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.audit = audit
}

// Logger returns the server logger.
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// ReadOnly reports whether write operations are disabled.
func (sc *ServerContext) ReadOnly() bool {
	return sc.readOnly
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
