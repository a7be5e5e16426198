package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
)

var tradesTable = table[domain.Trade]{
	name:    "trades",
	entity:  "trade",
	key:     "trade_id",
	columns: []string{"trade_id", "seller_id", "buyer_id", "cattle_id", "price", "trade_date", "status", "delivery_date"},
	scan: func(row scanner, t *domain.Trade) error {
		return row.Scan(&t.ID, &t.SellerID, &t.BuyerID, &t.CattleID, &t.Price, &t.TradeDate, &t.Status, &t.DeliveryDate)
	},
}

type TradeRepository struct {
	*store[domain.Trade, domain.TradeCreate, domain.TradePatch]
}

func NewTradeRepository(pool *pgxpool.Pool) *TradeRepository {
	return &TradeRepository{&store[domain.Trade, domain.TradeCreate, domain.TradePatch]{
		records: records[domain.Trade, domain.TradeCreate]{
			pool: pool,
			t:    tradesTable,
			create: func(in domain.TradeCreate) changeset {
				status := in.Status
				if status == "" {
					status = domain.TradePending
				}
				var cs changeset
				cs.set("seller_id", in.SellerID)
				cs.set("buyer_id", in.BuyerID)
				cs.set("cattle_id", in.CattleID)
				cs.set("price", in.Price)
				setIf(&cs, "trade_date", in.TradeDate)
				cs.set("status", string(status))
				cs.set("delivery_date", dateArg(in.DeliveryDate))
				return cs
			},
		},
		patch: func(p domain.TradePatch) changeset {
			var cs changeset
			setIf(&cs, "price", p.Price)
			setIf(&cs, "trade_date", p.TradeDate)
			setEnumIf(&cs, "status", p.Status)
			setDateIf(&cs, "delivery_date", p.DeliveryDate)
			return cs
		},
	}}
}

var favoritesTable = table[domain.Favorite]{
	name:    "favorites",
	entity:  "favorite",
	key:     "favorite_id",
	columns: []string{"favorite_id", "user_id", "cattle_id", "created_at"},
	scan: func(row scanner, f *domain.Favorite) error {
		return row.Scan(&f.ID, &f.UserID, &f.CattleID, &f.CreatedAt)
	},
}

type FavoriteRepository struct {
	*records[domain.Favorite, domain.FavoriteCreate]
}

func NewFavoriteRepository(pool *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{&records[domain.Favorite, domain.FavoriteCreate]{
		pool: pool,
		t:    favoritesTable,
		create: func(in domain.FavoriteCreate) changeset {
			var cs changeset
			cs.set("user_id", in.UserID)
			cs.set("cattle_id", in.CattleID)
			return cs
		},
	}}
}

var notificationsTable = table[domain.Notification]{
	name:    "notifications",
	entity:  "notification",
	key:     "notification_id",
	columns: []string{"notification_id", "user_id", "message", "created_at", "read_at"},
	scan: func(row scanner, n *domain.Notification) error {
		return row.Scan(&n.ID, &n.UserID, &n.Message, &n.CreatedAt, &n.ReadAt)
	},
}

type NotificationRepository struct {
	*store[domain.Notification, domain.NotificationCreate, domain.NotificationPatch]
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{&store[domain.Notification, domain.NotificationCreate, domain.NotificationPatch]{
		records: records[domain.Notification, domain.NotificationCreate]{
			pool: pool,
			t:    notificationsTable,
			create: func(in domain.NotificationCreate) changeset {
				var cs changeset
				cs.set("user_id", in.UserID)
				cs.set("message", in.Message)
				return cs
			},
		},
		patch: func(p domain.NotificationPatch) changeset {
			var cs changeset
			setIf(&cs, "message", p.Message)
			setIf(&cs, "read_at", p.ReadAt)
			return cs
		},
	}}
}

// ListForUser returns one user's notifications, oldest first.
func (r *NotificationRepository) ListForUser(ctx context.Context, userID int64, page domain.Page) ([]*domain.Notification, error) {
	return r.t.list(ctx, r.pool, page, "user_id = $1", userID)
}

var messagesTable = table[domain.Message]{
	name:    "messages",
	entity:  "message",
	key:     "message_id",
	columns: []string{"message_id", "sender_id", "receiver_id", "message_content", "sent_at"},
	scan: func(row scanner, m *domain.Message) error {
		return row.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.SentAt)
	},
}

type MessageRepository struct {
	*records[domain.Message, domain.MessageCreate]
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{&records[domain.Message, domain.MessageCreate]{
		pool: pool,
		t:    messagesTable,
		create: func(in domain.MessageCreate) changeset {
			var cs changeset
			cs.set("sender_id", in.SenderID)
			cs.set("receiver_id", in.ReceiverID)
			cs.set("message_content", in.Content)
			return cs
		},
	}}
}
