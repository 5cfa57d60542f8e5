package notifier

import (
	"context"
	"fmt"

	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"

	"github.com/castellanimarco/trainflow-engine/internal/core/domain"
	"github.com/castellanimarco/trainflow-engine/internal/core/workers"
)

var _ workers.Notifier = (*WhatsAppNotifier)(nil)

// WhatsAppNotifier sends reminders over a connected whatsmeow client. The
// client's session lifecycle (QR pairing, connect, disconnect) belongs to
// main; this adapter only dispatches.
type WhatsAppNotifier struct {
	client *whatsmeow.Client
}

func NewWhatsAppNotifier(client *whatsmeow.Client) *WhatsAppNotifier {
	return &WhatsAppNotifier{client: client}
}

func (n *WhatsAppNotifier) Send(ctx context.Context, user *domain.User, text string) error {
	if user.Phone == "" {
		return fmt.Errorf("notifier: user %s has no phone number", user.ID)
	}

	jid := types.JID{
		User:   user.Phone,
		Server: types.DefaultUserServer,
	}

	_, err := n.client.SendMessage(ctx, jid, &waE2E.Message{Conversation: &text})
	if err != nil {
		return fmt.Errorf("notifier: whatsapp send to %s failed: %w", jid, err)
	}
	return nil
}
