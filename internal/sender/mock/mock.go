package mock

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Tazdar-Rahim/artmuse-server/internal/sender"
)

// MockSender is a sender implementation that records messages and always
// succeeds. Used in development mode (no SMTP configured) and in tests.
type MockSender struct {
	mu     sync.Mutex
	sent   []sender.Message
	logger *slog.Logger
}

// NewMockSender creates a new mock sender.
func NewMockSender(logger *slog.Logger) *MockSender {
	return &MockSender{logger: logger}
}

// Name returns the name of this sender.
func (s *MockSender) Name() string {
	return "mock"
}

// Send records the message and logs it.
func (s *MockSender) Send(ctx context.Context, msg *sender.Message) error {
	s.mu.Lock()
	s.sent = append(s.sent, *msg)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "mock sender: email sent",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)

	return nil
}

// Sent returns a copy of all messages sent so far.
func (s *MockSender) Sent() []sender.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sender.Message, len(s.sent))
	copy(out, s.sent)
	return out
}
