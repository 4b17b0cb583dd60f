package watch

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/willibrandon/gohintpath/msbuild"
)

func fastRetries(n int) *RetryConfig {
	return &RetryConfig{
		MaxRetries:     n,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		BackoffFactor:  2,
	}
}

func TestIsTransient(t *testing.T) {
	assert.False(t, IsTransient(nil))
	assert.True(t, IsTransient(fmt.Errorf("failed to read project file: %w", fs.ErrNotExist)))
	assert.True(t, IsTransient(fmt.Errorf("failed to read project file: %w", fs.ErrPermission)))
	assert.True(t, IsTransient(fmt.Errorf("failed to parse project XML: %w", &xml.SyntaxError{Msg: "unexpected EOF", Line: 3})))
	assert.False(t, IsTransient(errors.New("failed to parse project XML: root element is not <Project>")))
}

func TestCalculateBackoff(t *testing.T) {
	cfg := &RetryConfig{InitialBackoff: 100 * time.Millisecond, MaxBackoff: time.Second, BackoffFactor: 2}

	assert.Equal(t, 100*time.Millisecond, cfg.CalculateBackoff(0))
	assert.Equal(t, 400*time.Millisecond, cfg.CalculateBackoff(2))
	assert.Equal(t, time.Second, cfg.CalculateBackoff(10))
	assert.Equal(t, 100*time.Millisecond, cfg.CalculateBackoff(-1))

	cfg.JitterFactor = 0.1
	for i := 0; i < 20; i++ {
		d := cfg.CalculateBackoff(1)
		assert.GreaterOrEqual(t, d, 180*time.Millisecond)
		assert.LessOrEqual(t, d, 220*time.Millisecond)
	}
}

func TestRetryingLoader_RecoversFromTransientErrors(t *testing.T) {
	calls := 0
	want, err := msbuild.ParseProject("/sln/App/App.csproj", []byte("<Project />"), nil)
	require.NoError(t, err)

	load := RetryingLoader(context.Background(), func(path string, globals map[string]string) (*msbuild.Project, error) {
		calls++
		if calls < 3 {
			return nil, fmt.Errorf("failed to read project file: %w", fs.ErrNotExist)
		}
		return want, nil
	}, fastRetries(4))

	got, err := load("/sln/App/App.csproj", nil)
	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Equal(t, 3, calls)
}

func TestRetryingLoader_GivesUp(t *testing.T) {
	calls := 0
	load := RetryingLoader(context.Background(), func(string, map[string]string) (*msbuild.Project, error) {
		calls++
		return nil, fs.ErrPermission
	}, fastRetries(2))

	_, err := load("x.csproj", nil)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Equal(t, 3, calls)
}

func TestRetryingLoader_PermanentErrorIsNotRetried(t *testing.T) {
	calls := 0
	permanent := errors.New("root element is not <Project>")
	load := RetryingLoader(context.Background(), func(string, map[string]string) (*msbuild.Project, error) {
		calls++
		return nil, permanent
	}, fastRetries(5))

	_, err := load("x.csproj", nil)
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestRetryingLoader_StopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := fastRetries(5)
	cfg.InitialBackoff = time.Hour
	cfg.MaxBackoff = time.Hour
	load := RetryingLoader(ctx, func(string, map[string]string) (*msbuild.Project, error) {
		return nil, fs.ErrNotExist
	}, cfg)

	_, err := load("x.csproj", nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
