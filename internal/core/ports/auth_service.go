package ports

import (
	"context"
	"io"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
)

type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	IssueToken(user *domain.User) (*domain.Token, error)
	ValidateToken(token string) (string, error)
	Authorize(user *domain.User) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.Token, *domain.User, error)
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
}

// UserService manages accounts on top of a UserRepository, hashing passwords
// on the way in.
type UserService interface {
	Repository[domain.User, domain.UserCreate, domain.UserPatch]
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// CattleImageService uploads photos and lists them per animal.
type CattleImageService interface {
	RecordRepository[domain.CattleImage, domain.CattleImageCreate]
	Upload(ctx context.Context, cattleID int64, filename, contentType string, body io.Reader) (*domain.CattleImage, error)
	ListByCattle(ctx context.Context, cattleID int64) ([]*domain.CattleImage, error)
}

// MessagingService stores messages, forwards outbound ones and accepts
// provider callbacks.
type MessagingService interface {
	RecordRepository[domain.Message, domain.MessageCreate]
	Send(ctx context.Context, in domain.MessageCreate) (*domain.MessageReceipt, error)
	Deliveries(ctx context.Context, messageID int64) ([]domain.Delivery, error)
	Receive(ctx context.Context, in domain.InboundMessage) (*domain.Message, bool, error)
}

type NotificationService interface {
	Repository[domain.Notification, domain.NotificationCreate, domain.NotificationPatch]
	ListForUser(ctx context.Context, userID int64, page domain.Page) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) (*domain.Notification, error)
}
