package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
)

const deliveriesCollection = "message_deliveries"

// DeliveryLog appends provider delivery attempts to the message_deliveries collection.
type DeliveryLog struct {
	col *mongo.Collection
}

func NewDeliveryLog(db *mongo.Database) *DeliveryLog {
	return &DeliveryLog{col: db.Collection(deliveriesCollection)}
}

// Record inserts one attempt. AttemptedAt defaults to now.
func (l *DeliveryLog) Record(ctx context.Context, d domain.Delivery) error {
	if d.AttemptedAt.IsZero() {
		d.AttemptedAt = time.Now()
	}
	d.AttemptedAt = d.AttemptedAt.UTC()

	if _, err := l.col.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("record delivery of message %d: %w", d.MessageID, err)
	}
	return nil
}

// ListByMessage returns the attempts for one message, oldest first.
func (l *DeliveryLog) ListByMessage(ctx context.Context, messageID int64) ([]domain.Delivery, error) {
	opts := options.Find().SetSort(bson.D{{Key: "attempted_at", Value: 1}})
	cur, err := l.col.Find(ctx, bson.M{"message_id": messageID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer cur.Close(ctx)

	out := []domain.Delivery{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode deliveries: %w", err)
	}
	return out, nil
}

// EnsureIndexes creates the lookup index on message_id.
func (l *DeliveryLog) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := l.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "message_id", Value: 1}, {Key: "attempted_at", Value: 1}},
	})
	return err
}
