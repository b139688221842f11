package environment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/teemow/calendarenv/internal/calendar"
	"github.com/teemow/calendarenv/internal/google"
	"github.com/teemow/calendarenv/internal/instrumentation"
)

// Environment owns a calendar client and the loaded scenario configuration.
type Environment struct {
	client     *calendar.Client
	config     map[string]any
	configPath string
	logger     *slog.Logger
	metrics    *instrumentation.Metrics
}

type settings struct {
	logger     *slog.Logger
	metrics    *instrumentation.Metrics
	clientOpts []calendar.Option
}

// Option configures an Environment.
type Option func(*settings)

// WithLogger sets the logger for the environment and the client it builds.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder for the environment and its client.
func WithMetrics(metrics *instrumentation.Metrics) Option {
	return func(s *settings) {
		s.metrics = metrics
	}
}

// WithClientOptions passes extra options to the calendar client New builds.
func WithClientOptions(opts ...calendar.Option) Option {
	return func(s *settings) {
		s.clientOpts = append(s.clientOpts, opts...)
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// New builds an Environment whose client is authorized with the token file
// at tokenPath and whose configuration is read from configFile.
func New(ctx context.Context, tokenPath, configFile string, opts ...Option) (*Environment, error) {
	s := newSettings(opts)

	clientOpts := append([]calendar.Option{
		calendar.WithLogger(s.logger),
		calendar.WithMetrics(s.metrics),
	}, s.clientOpts...)

	provider := google.NewFileTokenProvider(tokenPath)
	if !provider.HasToken() {
		return nil, fmt.Errorf("no Google OAuth token found at %s", tokenPath)
	}

	client, err := calendar.NewClient(ctx, provider, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar client: %w", err)
	}

	return newEnvironment(client, configFile, s)
}

// NewWithClient builds an Environment around an existing client.
func NewWithClient(client *calendar.Client, configFile string, opts ...Option) (*Environment, error) {
	if client == nil {
		return nil, fmt.Errorf("calendar client cannot be nil")
	}
	return newEnvironment(client, configFile, newSettings(opts))
}

func newEnvironment(client *calendar.Client, configFile string, s settings) (*Environment, error) {
	config, err := LoadConfig(configFile)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("loaded environment config",
		slog.String("path", configFile),
		slog.Int("keys", len(config)))

	return &Environment{
		client:     client,
		config:     config,
		configPath: configFile,
		logger:     s.logger,
		metrics:    s.metrics,
	}, nil
}

// LoadConfig reads a JSON object from path.
func LoadConfig(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var config map[string]any
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if config == nil {
		config = map[string]any{}
	}
	return config, nil
}

// Client returns the calendar client.
func (e *Environment) Client() *calendar.Client {
	return e.client
}

// Config returns the configuration as loaded from disk.
func (e *Environment) Config() map[string]any {
	return e.config
}

// ConfigPath returns the path the configuration was read from.
func (e *Environment) ConfigPath() string {
	return e.configPath
}

// Reset restores the environment for the next evaluation run. It has no
// remote side effects and always reports success.
func (e *Environment) Reset(ctx context.Context) bool {
	e.metrics.RecordEnvironmentReset(ctx)
	e.logger.Debug("environment reset", slog.String("config", e.configPath))
	return true
}
