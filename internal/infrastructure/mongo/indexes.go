package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexConfig はインデックス作成対象のコレクション名。
type IndexConfig struct {
	SurveyCollection string
	UserCollection   string
}

// EnsureIndexes は起動時に必要なインデックスを作成する。既存の場合は何もしない。
func EnsureIndexes(ctx context.Context, db *mongo.Database, cfg IndexConfig) error {
	_, err := db.Collection(cfg.UserCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "externalUserId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("externalUserId_unique"),
	})
	if err != nil {
		return fmt.Errorf("create user index: %w", err)
	}

	_, err = db.Collection(cfg.SurveyCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("ownerId_createdAt"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("createdAt_desc"),
		},
	})
	if err != nil {
		return fmt.Errorf("create survey indexes: %w", err)
	}
	return nil
}
