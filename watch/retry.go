package watch

import (
	"context"
	"encoding/xml"
	"errors"
	"io/fs"
	"math"
	"math/rand"
	"time"

	"github.com/willibrandon/gohintpath/msbuild"
	"github.com/willibrandon/gohintpath/pathfix"
)

const (
	DefaultMaxRetries     = 4
	DefaultInitialBackoff = 250 * time.Millisecond
	DefaultMaxBackoff     = 4 * time.Second
	DefaultBackoffFactor  = 2.0
	DefaultJitterFactor   = 0.1
)

// RetryConfig holds retry behavior for project files that are still being written
// by another process when a notification arrives.
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	BackoffFactor  float64
	JitterFactor   float64
}

// DefaultRetryConfig returns retry configuration with sensible defaults
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:     DefaultMaxRetries,
		InitialBackoff: DefaultInitialBackoff,
		MaxBackoff:     DefaultMaxBackoff,
		BackoffFactor:  DefaultBackoffFactor,
		JitterFactor:   DefaultJitterFactor,
	}
}

// IsTransient reports whether a project load error may go away once the writer
// finishes: the file is missing mid-replace, locked, or truncated.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return true
	}

	var syntaxErr *xml.SyntaxError
	return errors.As(err, &syntaxErr)
}

// CalculateBackoff computes exponential backoff with jitter
func (rc *RetryConfig) CalculateBackoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	backoff := float64(rc.InitialBackoff) * math.Pow(rc.BackoffFactor, float64(attempt))
	if backoff > float64(rc.MaxBackoff) {
		backoff = float64(rc.MaxBackoff)
	}

	// backoff * (1 ± jitterFactor)
	backoff += backoff * rc.JitterFactor * (2*rand.Float64() - 1)
	if backoff < 0 {
		backoff = float64(rc.InitialBackoff)
	}

	return time.Duration(backoff)
}

// RetryingLoader wraps load so that transient failures are retried with backoff
// until cfg.MaxRetries is exhausted or ctx is cancelled. A nil load means
// msbuild.LoadProject.
func RetryingLoader(ctx context.Context, load pathfix.ProjectLoader, cfg *RetryConfig) pathfix.ProjectLoader {
	if load == nil {
		load = msbuild.LoadProject
	}
	if cfg == nil {
		cfg = DefaultRetryConfig()
	}

	return func(path string, globals map[string]string) (*msbuild.Project, error) {
		var lastErr error
		for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
			if attempt > 0 {
				timer := time.NewTimer(cfg.CalculateBackoff(attempt - 1))
				select {
				case <-ctx.Done():
					timer.Stop()
					return nil, errors.Join(lastErr, ctx.Err())
				case <-timer.C:
				}
			}

			proj, err := load(path, globals)
			if err == nil {
				return proj, nil
			}
			lastErr = err
			if !IsTransient(err) {
				break
			}
		}
		return nil, lastErr
	}
}
