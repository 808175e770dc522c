package service

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// DefaultPollInterval is how often the side channel is checked while
// waiting for the authorization redirect.
const DefaultPollInterval = time.Second

// TextSource is the user-controlled side channel the authorization flow
// watches for the browser's final redirect URL. In practice this is the
// system clipboard: the user completes the consent screen in an external
// browser and copies the address it lands on.
type TextSource interface {
	ReadText() (string, error)
}

// TextSourceFunc adapts a plain function to the TextSource interface.
type TextSourceFunc func() (string, error)

func (f TextSourceFunc) ReadText() (string, error) { return f() }

// RedirectCapture polls a TextSource at a fixed interval until a value
// with an expected prefix appears.
type RedirectCapture struct {
	source   TextSource
	interval time.Duration
	logger   *slog.Logger
}

// NewRedirectCapture creates a capture over the given source. A zero or
// negative interval falls back to DefaultPollInterval.
func NewRedirectCapture(source TextSource, interval time.Duration, logger *slog.Logger) *RedirectCapture {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedirectCapture{source: source, interval: interval, logger: logger}
}

// Await blocks until the source yields a value starting with prefix, the
// budget elapses, or ctx is cancelled. It returns the captured value, or
// "" when nothing appeared in time. Timing out is a normal outcome, not an
// error; the caller decides what an empty capture means.
func (c *RedirectCapture) Await(ctx context.Context, prefix string, budget time.Duration) string {
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		value, err := c.source.ReadText()
		if err != nil {
			c.logger.Debug("failed to read redirect side channel", "error", err)
		} else if strings.HasPrefix(value, prefix) {
			return value
		}

		select {
		case <-ctx.Done():
			return ""
		case <-ticker.C:
		}
	}
}
