package notifier

import (
	"context"
	"log"

	"github.com/castellanimarco/trainflow-engine/internal/core/domain"
	"github.com/castellanimarco/trainflow-engine/internal/core/workers"
)

var _ workers.Notifier = (*LogNotifier)(nil)

// LogNotifier writes reminders to the process log. Used when no WhatsApp
// session is configured, so the scheduler can run end to end locally.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Send(ctx context.Context, user *domain.User, text string) error {
	log.Printf("[NOTIFY] user=%s\n%s", user.ID, text)
	return nil
}
