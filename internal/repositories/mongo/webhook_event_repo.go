package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// WebhookEventRepository records raw provider callbacks for audit. Writes are
// best-effort: the coordinator logs failures and carries on.
type WebhookEventRepository interface {
	Record(ctx context.Context, sessionToken string, payload []byte) error
}

type webhookEventRepo struct {
	col *mongo.Collection
}

func NewWebhookEventRepo(db *mongo.Database) WebhookEventRepository {
	return &webhookEventRepo{col: db.Collection("webhook_events")}
}

func (r *webhookEventRepo) Record(ctx context.Context, sessionToken string, payload []byte) error {
	var body bson.M
	if err := bson.UnmarshalExtJSON(payload, true, &body); err != nil {
		// Keep malformed bodies too; they are exactly the ones worth auditing.
		body = bson.M{"raw": string(payload)}
	}
	_, err := r.col.InsertOne(ctx, bson.M{
		"session_token": sessionToken,
		"body":          body,
		"received_at":   time.Now().UTC(),
	})
	return err
}
