// Package netsim wraps calls in artificial latency and optional random
// failure, so UI loading and error states can be exercised without a server.
package netsim

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/mmynk/groovematch/internal/apperr"
	"github.com/mmynk/groovematch/internal/metrics"
)

const (
	DefaultMinLatency = 300 * time.Millisecond
	DefaultMaxLatency = 800 * time.Millisecond
)

// Simulator holds the latency window and the random source. Safe for
// concurrent use.
type Simulator struct {
	MinLatency time.Duration
	MaxLatency time.Duration

	// Sleep waits for d or until ctx is done. Replaced in tests.
	Sleep func(ctx context.Context, d time.Duration) error

	Logger  *slog.Logger
	Metrics *metrics.Metrics

	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a simulator with the default 300-800ms window.
func New() *Simulator {
	return &Simulator{
		MinLatency: DefaultMinLatency,
		MaxLatency: DefaultMaxLatency,
		Sleep:      sleepCtx,
		rng:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// WithSource replaces the random source, for reproducible runs.
func (s *Simulator) WithSource(src rand.Source) *Simulator {
	s.mu.Lock()
	s.rng = rand.New(src)
	s.mu.Unlock()
	return s
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// latency draws uniformly from [MinLatency, MaxLatency].
func (s *Simulator) latency() time.Duration {
	lo, hi := s.MinLatency, s.MaxLatency
	if hi < lo {
		hi = lo
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if hi == lo {
		return lo
	}
	return lo + time.Duration(s.rng.Int64N(int64(hi-lo)+1))
}

func (s *Simulator) roll() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *Simulator) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

type callConfig struct {
	errorRate float64
	name      string
}

// CallOption configures one Call.
type CallOption func(*callConfig)

// WithErrorRate makes the call fail with probability rate after the delay.
// The default rate is 0.
func WithErrorRate(rate float64) CallOption {
	return func(c *callConfig) { c.errorRate = rate }
}

// Named labels the call in logs.
func Named(name string) CallOption {
	return func(c *callConfig) { c.name = name }
}

// Call waits a random latency, then either fails with a TransientNetwork error
// without running op, or runs op and returns its result. The wait is always
// paid, on the failure path too. A done ctx aborts the wait and op never runs.
func Call[T any](ctx context.Context, s *Simulator, op func(context.Context) (T, error), opts ...CallOption) (T, error) {
	var zero T
	cfg := callConfig{name: "call"}
	for _, opt := range opts {
		opt(&cfg)
	}

	delay := s.latency()
	if err := s.Sleep(ctx, delay); err != nil {
		return zero, err
	}
	s.Metrics.SimulatedLatency(delay)

	if s.roll() < cfg.errorRate {
		s.Metrics.InjectedFailure()
		s.logger().Debug("Simulated network failure", "call", cfg.name, "delay_ms", delay.Milliseconds())
		return zero, apperr.New(apperr.TransientNetwork, "netsim."+cfg.name, "simulated network failure, try again")
	}

	return op(ctx)
}

// Do is Call for operations without a result.
func Do(ctx context.Context, s *Simulator, op func(context.Context) error, opts ...CallOption) error {
	_, err := Call(ctx, s, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	}, opts...)
	return err
}
