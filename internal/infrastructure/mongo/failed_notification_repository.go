package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

const failedNotificationPending = "pending"

// FailedNotificationRepository は配送に失敗した通知を pending 状態で保存する。
type FailedNotificationRepository struct {
	collection *mongo.Collection
}

func NewFailedNotificationRepository(db *mongo.Database, collectionName string) *FailedNotificationRepository {
	return &FailedNotificationRepository{collection: db.Collection(collectionName)}
}

// Save は通知 1 件分の失敗記録を追加する。
func (r *FailedNotificationRepository) Save(ctx context.Context, target string, payload map[string]any, errText string, attempts int) error {
	now := time.Now().UTC()
	doc := FailedNotificationDocument{
		Target:      target,
		Payload:     payload,
		Error:       errText,
		Attempts:    attempts,
		Status:      failedNotificationPending,
		CreatedAt:   now,
		LastTriedAt: now,
	}
	_, err := r.collection.InsertOne(ctx, doc)
	return err
}
