package ports

import (
	"context"
	"io"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
)

// ImageStorage stores uploaded image bytes and returns the URL they are served from.
type ImageStorage interface {
	Save(ctx context.Context, name, contentType string, body io.Reader) (string, error)
}

// MessageSender forwards a message to the external messaging provider.
type MessageSender interface {
	Send(ctx context.Context, msg domain.OutboundMessage) (*domain.DeliveryAck, error)
}

// DeliveryLog is the audit trail of provider deliveries.
type DeliveryLog interface {
	Record(ctx context.Context, d domain.Delivery) error
	ListByMessage(ctx context.Context, messageID int64) ([]domain.Delivery, error)
}

// DedupChecker claims a key once within its retention window. Claim reports
// false when the key was already claimed.
type DedupChecker interface {
	Claim(ctx context.Context, key string) (bool, error)
}

// NotificationPublisher pushes a notification to the recipient's live sessions.
type NotificationPublisher interface {
	Publish(ctx context.Context, n *domain.Notification) error
}
