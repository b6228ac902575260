package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/config"
	mongodoc "github.com/MarcelMichau/fake-survey-generator-sub000/internal/infrastructure/mongo"
	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/survey/application"
	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/survey/domain"
)

type seedOptions struct {
	envName         string
	surveyCount     int
	dropCollections bool
	randomSeed      int64
}

type collections struct {
	surveys             string
	users               string
	failedNotifications string
}

const (
	demoExternalUserID = "seed-demo-user"
	demoDisplayName    = "Demo User"
	demoEmailAddress   = "demo@example.com"
)

func main() {
	opts := parseFlags()

	if err := loadEnvFiles(opts.envName); err != nil {
		log.Fatalf("環境変数の読み込みに失敗しました: %v", err)
	}

	store, err := config.ParseStore()
	if err != nil {
		log.Fatalf("環境変数の解析に失敗しました: %v", err)
	}
	cfg := collections{
		surveys:             store.SurveyCollection,
		users:               store.UserCollection,
		failedNotifications: store.FailedNotificationCollection,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(store.MongoURI))
	if err != nil {
		log.Fatalf("MongoDB 接続に失敗しました: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(store.MongoDatabase)

	if opts.dropCollections {
		dropCollections(ctx, db, cfg)
		log.Printf("既存コレクションを削除しました")
	}

	if err := mongodoc.EnsureIndexes(ctx, db, mongodoc.IndexConfig{
		SurveyCollection: cfg.surveys,
		UserCollection:   cfg.users,
	}); err != nil {
		log.Fatalf("インデックス作成に失敗しました: %v", err)
	}

	surveyRepo := mongodoc.NewSurveyRepository(db, cfg.surveys)
	userRepo := mongodoc.NewUserRepository(db, cfg.users)

	users := application.NewUserService(userRepo)
	_, err = users.Register(ctx, application.RegisterUserCommand{
		ExternalUserID: demoExternalUserID,
		DisplayName:    demoDisplayName,
		EmailAddress:   demoEmailAddress,
	})
	if err != nil && !errors.Is(err, application.ErrUserAlreadyRegistered) {
		log.Fatalf("デモユーザーの登録に失敗しました: %v", err)
	}

	rng := rand.New(rand.NewSource(opts.randomSeed))
	commands := application.NewSurveyCommandService(application.SurveyCommandConfig{
		Surveys: surveyRepo,
		Users:   userRepo,
		Logger:  log.Default(),
		NewRand: func() (domain.Rand, error) { return rng, nil },
	})

	templates := surveyTemplates()
	created := 0
	for i := 0; i < opts.surveyCount; i++ {
		cmd := templates[i%len(templates)]
		cmd.ExternalUserID = demoExternalUserID
		survey, err := commands.Create(ctx, cmd)
		if err != nil {
			log.Fatalf("アンケート %q の生成に失敗しました: %v", cmd.Topic, err)
		}
		created++
		log.Printf("生成: %s %q rigged=%t votes=%d", survey.ID(), cmd.Topic, survey.IsRigged(), survey.TotalVotes())
	}

	log.Printf("Seed 完了: surveys=%d user=%s", created, demoExternalUserID)
	log.Printf("Mongo: %s / %s (env=%s seed=%d)", store.MongoURI, store.MongoDatabase, opts.envName, opts.randomSeed)
}

// surveyTemplates は rigged / one-sided / ランダムの 3 パターンを順に返す。
func surveyTemplates() []application.CreateSurveyCommand {
	return []application.CreateSurveyCommand{
		{
			Topic:               "Which language should we rewrite everything in?",
			NumberOfRespondents: 500,
			RespondentType:      "Senior Engineers",
			Options: []application.SurveyOptionCommand{
				{OptionText: "Go", PreferredNumberOfVotes: 350},
				{OptionText: "Rust"},
				{OptionText: "COBOL"},
			},
		},
		{
			Topic:               "Is a hot dog a sandwich?",
			NumberOfRespondents: 120,
			RespondentType:      "Food Critics",
			OneSided:            true,
			Options: []application.SurveyOptionCommand{
				{OptionText: "Yes"},
				{OptionText: "No"},
			},
		},
		{
			Topic:               "Best time for the weekly sync?",
			NumberOfRespondents: 42,
			RespondentType:      "Remote Workers",
			Options: []application.SurveyOptionCommand{
				{OptionText: "Monday morning"},
				{OptionText: "Wednesday lunch"},
				{OptionText: "Friday afternoon"},
				{OptionText: "Never"},
			},
		},
	}
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.StringVar(&opts.envName, "env", "local", "env ディレクトリ内の env ファイル名 (例: local, staging)")
	flag.IntVar(&opts.surveyCount, "surveys", 9, "生成するアンケート数")
	flag.BoolVar(&opts.dropCollections, "drop", false, "既存コレクションを削除してから投入する")
	defaultSeed := time.Now().UnixNano()
	flag.Int64Var(&opts.randomSeed, "seed", defaultSeed, "乱数シード（再現用）")
	flag.Parse()

	if opts.surveyCount <= 0 {
		log.Fatal("surveys は 1 以上を指定してください")
	}
	return opts
}

// loadEnvFiles は ../env の shared.env と <env>.env を順に読み込む。存在しないファイルは無視する。
func loadEnvFiles(envName string) error {
	base := filepath.Clean(filepath.Join("..", "env"))
	files := []string{
		filepath.Join(base, "shared.env"),
		filepath.Join(base, fmt.Sprintf("%s.env", envName)),
	}
	for _, file := range files {
		if err := loadEnvFile(file); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// loadEnvFile は既存の環境変数を上書きしつつ env ファイルを読み込む。
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	if err := godotenv.Overload(path); err != nil {
		return fmt.Errorf("%s の読み込みに失敗しました: %w", path, err)
	}
	return nil
}

func dropCollections(ctx context.Context, db *mongo.Database, cfg collections) {
	for _, name := range []string{cfg.surveys, cfg.users, cfg.failedNotifications} {
		if err := db.Collection(name).Drop(ctx); err != nil {
			// Drop は存在しない場合も err を返すので warning ログにとどめる
			log.Printf("WARN: コレクション %s の削除に失敗: %v", name, err)
		}
	}
}
