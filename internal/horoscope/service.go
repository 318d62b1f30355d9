package horoscope

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// FailureMode selects how provider failures are surfaced to callers.
type FailureMode int

const (
	// Strict returns provider failures as errors wrapping ErrProvider.
	Strict FailureMode = iota
	// Lenient answers provider failures with FallbackMessage.
	Lenient
)

func (m FailureMode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Lenient:
		return "lenient"
	default:
		return fmt.Sprintf("FailureMode(%d)", int(m))
	}
}

// ParseFailureMode converts a configuration value into a FailureMode.
func ParseFailureMode(s string) (FailureMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict", "":
		return Strict, nil
	case "lenient":
		return Lenient, nil
	default:
		return Strict, fmt.Errorf("failure mode %q must be one of %q or %q", s, "strict", "lenient")
	}
}

// Options configures a Service.
type Options struct {
	Model       string
	Temperature float32
	Timeout     time.Duration
	Mode        FailureMode
	Logger      *slog.Logger
}

// Service orchestrates normalization, prompting, the provider call and formatting.
type Service struct {
	client      ChatClient
	model       string
	temperature float32
	timeout     time.Duration
	mode        FailureMode
	logger      *slog.Logger
}

// NewService constructs a Service backed by client.
func NewService(client ChatClient, opts Options) (*Service, error) {
	if client == nil {
		return nil, errors.New("chat client must not be nil")
	}
	if strings.TrimSpace(opts.Model) == "" {
		return nil, errors.New("model must not be empty")
	}
	if opts.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", opts.Timeout)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		client:      client,
		model:       opts.Model,
		temperature: opts.Temperature,
		timeout:     opts.Timeout,
		mode:        opts.Mode,
		logger:      logger,
	}, nil
}

// Mode reports the configured failure mode.
func (s *Service) Mode() FailureMode {
	return s.mode
}

// Fetch returns the horoscope message for raw. Errors match ErrValidation or ErrProvider.
func (s *Service) Fetch(ctx context.Context, raw string) (string, error) {
	sign, err := NormalizeSign(raw)
	if err != nil {
		return "", err
	}

	req := BuildRequest(sign, s.model, s.temperature)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	reply, err := s.client.Chat(callCtx, req)
	if err != nil {
		if s.mode == Lenient {
			s.logger.WarnContext(ctx, "provider failed, answering with fallback",
				"sign", sign.String(),
				"latency_ms", time.Since(start).Milliseconds(),
				"error", err,
			)
			return FallbackMessage, nil
		}
		return "", fmt.Errorf("%w: %w", ErrProvider, err)
	}

	s.logger.DebugContext(ctx, "provider answered",
		"sign", sign.String(),
		"choices", len(reply.Choices),
		"latency_ms", time.Since(start).Milliseconds(),
	)

	return Format(sign, reply), nil
}
