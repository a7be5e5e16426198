package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
	"github.com/Mirieri/nikonangombeghani-api/internal/core/ports"
)

// NotificationService stores notifications and pushes new ones to the
// recipient's live websocket sessions.
type NotificationService struct {
	*CRUDService[domain.Notification, domain.NotificationCreate, domain.NotificationPatch]
	repo      ports.NotificationRepository
	publisher ports.NotificationPublisher
	now       func() time.Time
}

// NewNotificationService accepts a nil publisher when push is disabled.
func NewNotificationService(repo ports.NotificationRepository, publisher ports.NotificationPublisher, log zerolog.Logger) *NotificationService {
	return &NotificationService{
		CRUDService: NewCRUDService[domain.Notification, domain.NotificationCreate, domain.NotificationPatch]("notification", repo, log),
		repo:        repo,
		publisher:   publisher,
		now:         time.Now,
	}
}

func (s *NotificationService) Create(ctx context.Context, in domain.NotificationCreate) (*domain.Notification, error) {
	n, err := s.CRUDService.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, n); err != nil {
			s.log.Warn().Err(err).Int64("notification_id", n.ID).Msg("failed to push notification")
		}
	}
	return n, nil
}

func (s *NotificationService) ListForUser(ctx context.Context, userID int64, page domain.Page) ([]*domain.Notification, error) {
	return s.repo.ListForUser(ctx, userID, page.Normalize())
}

// MarkRead stamps read_at on a notification owned by userID. Reading
// someone else's notification is reported as not found.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID int64) (*domain.Notification, error) {
	n, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, domain.NotFound("notification", id)
	}
	if n.ReadAt != nil {
		return n, nil
	}
	at := s.now().UTC()
	return s.Update(ctx, id, domain.NotificationPatch{ReadAt: &at})
}
