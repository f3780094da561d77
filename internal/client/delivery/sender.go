// Package delivery sends one-time verification codes to users.
package delivery

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/ideaboard/internal/logging"
)

// Sender delivers a verification code to an email address.
type Sender interface {
	SendCode(ctx context.Context, email, code string) error
}

// ConsoleSender prints codes to a writer. It is the demo-mode transport:
// whoever runs the client reads the code off the terminal.
type ConsoleSender struct {
	mu     sync.Mutex
	out    io.Writer
	logger logging.Logger
}

func NewConsoleSender(out io.Writer, logger logging.Logger) *ConsoleSender {
	return &ConsoleSender{out: out, logger: logger}
}

func (s *ConsoleSender) SendCode(ctx context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintf(s.out, "[demo] verification code for %s: %s\n", email, code); err != nil {
		return fmt.Errorf("console delivery: %w", err)
	}
	s.logger.Debug(ctx, "verification code printed", "email", email)
	return nil
}
