package domain

import "time"

// OutboundMessage is the payload handed to the messaging provider.
type OutboundMessage struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// DeliveryAck is the provider's answer to a send.
type DeliveryAck struct {
	ProviderID string `json:"sid"`
	Status     string `json:"status"`
}

type DeliveryStatus string

const (
	DeliverySent   DeliveryStatus = "sent"
	DeliveryFailed DeliveryStatus = "failed"
)

// Delivery is one attempt to forward a stored message to the provider.
type Delivery struct {
	MessageID   int64          `json:"message_id" bson:"message_id"`
	To          string         `json:"to" bson:"to"`
	ProviderID  string         `json:"provider_id,omitempty" bson:"provider_id,omitempty"`
	Status      DeliveryStatus `json:"status" bson:"status"`
	Error       string         `json:"error,omitempty" bson:"error,omitempty"`
	AttemptedAt time.Time      `json:"attempted_at" bson:"attempted_at"`
}

// MessageReceipt is returned when a message is sent.
type MessageReceipt struct {
	Message  *Message `json:"message"`
	Delivery Delivery `json:"delivery"`
}

// InboundMessage is a provider webhook callback. ID is the provider's
// message id and is used to drop redelivered callbacks.
type InboundMessage struct {
	ID         string `json:"id" validate:"required"`
	SenderID   int64  `json:"sender_id" validate:"required,gt=0"`
	ReceiverID int64  `json:"receiver_id" validate:"required,gt=0"`
	Content    string `json:"message" validate:"required,max=1000"`
}

func (in InboundMessage) Validate() error {
	if in.ID == "" {
		return Invalid("id", "is required")
	}
	return MessageCreate{SenderID: in.SenderID, ReceiverID: in.ReceiverID, Content: in.Content}.Validate()
}

// Token is an issued bearer token.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"-"`
}

const TokenTypeBearer = "bearer"
