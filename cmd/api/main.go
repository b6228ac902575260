package main

import (
	"context"
	"log"

	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/config"
	mongodoc "github.com/MarcelMichau/fake-survey-generator-sub000/internal/infrastructure/mongo"
	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/server"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		cfg.ServerLog.Fatalf("MongoDB 接続に失敗しました: %v", err)
	}

	if err := mongodoc.EnsureIndexes(ctx, client.Database(cfg.MongoDatabase), mongodoc.IndexConfig{
		SurveyCollection: cfg.SurveyCollection,
		UserCollection:   cfg.UserCollection,
	}); err != nil {
		cfg.ServerLog.Fatalf("インデックス作成に失敗しました: %v", err)
	}

	app := server.New(cfg, client)
	if err := app.Run(); err != nil {
		log.Fatalf("サーバー起動に失敗: %v", err)
	}
}
