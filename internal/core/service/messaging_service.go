package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
	"github.com/Mirieri/nikonangombeghani-api/internal/core/ports"
	"github.com/Mirieri/nikonangombeghani-api/internal/pkg/metrics"
)

// MessagingService stores messages between users and forwards outbound ones
// to the WhatsApp gateway.
type MessagingService struct {
	*RecordService[domain.Message, domain.MessageCreate]
	users      ports.Reader[domain.User]
	sender     ports.MessageSender
	deliveries ports.DeliveryLog
	dedup      ports.DedupChecker
	now        func() time.Time
}

// NewMessagingService wires the collaborators. deliveries and dedup are
// optional and may be nil.
func NewMessagingService(
	messages ports.MessageRepository,
	users ports.Reader[domain.User],
	sender ports.MessageSender,
	deliveries ports.DeliveryLog,
	dedup ports.DedupChecker,
	log zerolog.Logger,
) *MessagingService {
	return &MessagingService{
		RecordService: NewRecordService[domain.Message, domain.MessageCreate]("message", messages, log),
		users:         users,
		sender:        sender,
		deliveries:    deliveries,
		dedup:         dedup,
		now:           time.Now,
	}
}

// lookupParty maps a missing user to a validation error on field.
func (s *MessagingService) lookupParty(ctx context.Context, field string, id int64) (*domain.User, error) {
	u, err := s.users.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.Invalid(field, "user %d does not exist", id)
	}
	return u, err
}

// Send stores the message and then forwards it to the receiver's phone. The
// stored row is kept even when the provider rejects the send.
func (s *MessagingService) Send(ctx context.Context, in domain.MessageCreate) (*domain.MessageReceipt, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	if _, err := s.lookupParty(ctx, "sender_id", in.SenderID); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	receiver, err := s.lookupParty(ctx, "receiver_id", in.ReceiverID)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	if receiver.Phone == nil || *receiver.Phone == "" {
		return nil, domain.Invalid("receiver_id", "receiver has no phone number")
	}

	msg, err := s.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	delivery := domain.Delivery{MessageID: msg.ID, To: *receiver.Phone, AttemptedAt: s.now().UTC()}
	ack, sendErr := s.sender.Send(ctx, domain.OutboundMessage{To: *receiver.Phone, Message: in.Content})
	if sendErr != nil {
		delivery.Status = domain.DeliveryFailed
		delivery.Error = sendErr.Error()
	} else {
		delivery.Status = domain.DeliverySent
		delivery.ProviderID = ack.ProviderID
	}
	metrics.MessagesSentTotal.WithLabelValues(string(delivery.Status)).Inc()
	s.record(ctx, delivery)

	if sendErr != nil {
		s.log.Error().Err(sendErr).Int64("message_id", msg.ID).Msg("message forward failed")
		return nil, fmt.Errorf("send message %d: %w: %v", msg.ID, domain.ErrDelivery, sendErr)
	}

	s.log.Info().Int64("message_id", msg.ID).Str("provider_id", delivery.ProviderID).Msg("message forwarded")
	return &domain.MessageReceipt{Message: msg, Delivery: delivery}, nil
}

// record writes to the audit log. Failures are logged and otherwise ignored.
func (s *MessagingService) record(ctx context.Context, d domain.Delivery) {
	if s.deliveries == nil {
		return
	}
	if err := s.deliveries.Record(ctx, d); err != nil {
		s.log.Warn().Err(err).Int64("message_id", d.MessageID).Msg("failed to record delivery")
	}
}

// Deliveries returns the forward attempts of a stored message.
func (s *MessagingService) Deliveries(ctx context.Context, messageID int64) ([]domain.Delivery, error) {
	if _, err := s.Get(ctx, messageID); err != nil {
		return nil, err
	}
	if s.deliveries == nil {
		return []domain.Delivery{}, nil
	}
	return s.deliveries.ListByMessage(ctx, messageID)
}

// Receive stores an inbound provider callback. A callback whose id was already
// seen is dropped and reported with stored == false.
func (s *MessagingService) Receive(ctx context.Context, in domain.InboundMessage) (msg *domain.Message, stored bool, err error) {
	if err := in.Validate(); err != nil {
		return nil, false, fmt.Errorf("receive message: %w", err)
	}

	if s.dedup != nil {
		first, err := s.dedup.Claim(ctx, in.ID)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("webhook_id", in.ID).Msg("dedup check failed, processing anyway")
		case !first:
			metrics.WebhookDedupTotal.WithLabelValues("hit").Inc()
			s.log.Debug().Str("webhook_id", in.ID).Msg("duplicate webhook skipped")
			return nil, false, nil
		default:
			metrics.WebhookDedupTotal.WithLabelValues("miss").Inc()
		}
	}

	for _, party := range []struct {
		field string
		id    int64
	}{{"sender_id", in.SenderID}, {"receiver_id", in.ReceiverID}} {
		if _, err := s.lookupParty(ctx, party.field, party.id); err != nil {
			return nil, false, fmt.Errorf("receive message: %w", err)
		}
	}

	msg, err = s.Create(ctx, domain.MessageCreate{SenderID: in.SenderID, ReceiverID: in.ReceiverID, Content: in.Content})
	if err != nil {
		return nil, false, err
	}
	s.log.Info().Int64("message_id", msg.ID).Str("webhook_id", in.ID).Msg("inbound message stored")
	return msg, true, nil
}
