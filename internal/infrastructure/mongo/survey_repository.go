package mongo

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/survey/application"
	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/survey/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SurveyRepository はアンケート集約を MongoDB へ保存・復元するリポジトリ。
type SurveyRepository struct {
	surveys *mongo.Collection
}

// NewSurveyRepository はアンケートコレクションを束縛したリポジトリを生成する。
func NewSurveyRepository(db *mongo.Database, collectionName string) *SurveyRepository {
	return &SurveyRepository{surveys: db.Collection(collectionName)}
}

// Create は集約をドキュメントへ射影して登録し、採番した ID を集約へ書き戻す。
func (r *SurveyRepository) Create(ctx context.Context, survey *domain.Survey) error {
	if survey == nil {
		return errors.New("survey payload is nil")
	}
	doc, err := mapSurveyToDocument(survey)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()
	if _, err := r.surveys.InsertOne(ctx, doc); err != nil {
		return err
	}
	survey.AssignID(doc.ID.Hex())
	return nil
}

// FindByID は ID を ObjectID 化して単一のアンケートを復元する。
func (r *SurveyRepository) FindByID(ctx context.Context, id string) (*domain.Survey, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, application.ErrNotFound
	}
	var doc SurveyDocument
	err = r.surveys.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, application.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return mapSurveyDocument(doc), nil
}

// FindByOwner は作成者のアンケートを新しい順に返す。
func (r *SurveyRepository) FindByOwner(ctx context.Context, ownerID string, paging application.Paging) ([]*domain.Survey, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(ownerID))
	if err != nil {
		return nil, err
	}
	return r.find(ctx, bson.M{"ownerId": objectID}, paging)
}

// FindRecent は全アンケートを新しい順に返す。
func (r *SurveyRepository) FindRecent(ctx context.Context, paging application.Paging) ([]*domain.Survey, error) {
	return r.find(ctx, bson.M{}, paging)
}

func (r *SurveyRepository) find(ctx context.Context, filter bson.M, paging application.Paging) ([]*domain.Survey, error) {
	cursor, err := r.surveys.Find(ctx, filter, buildFindOptions(paging))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	surveys := make([]*domain.Survey, 0)
	for cursor.Next(ctx) {
		var doc SurveyDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		surveys = append(surveys, mapSurveyDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return surveys, nil
}

// buildFindOptions はページング条件を Mongo の skip/limit とソートへ変換する。
func buildFindOptions(paging application.Paging) *options.FindOptions {
	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if paging.Limit > 0 {
		findOpts.SetLimit(int64(paging.Limit))
		if paging.Page > 1 {
			findOpts.SetSkip(skipFor(int64(paging.Page), int64(paging.Limit)))
		}
	}
	return findOpts
}

// skipFor は (page-1)*limit を返す。オーバーフローする場合は math.MaxInt64 に丸める。
func skipFor(page, limit int64) int64 {
	if page-1 > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return (page - 1) * limit
}

// mapSurveyToDocument はドメインのアンケートを保存形式へ射影する。
func mapSurveyToDocument(survey *domain.Survey) (SurveyDocument, error) {
	ownerID, err := primitive.ObjectIDFromHex(strings.TrimSpace(survey.OwnerID()))
	if err != nil {
		return SurveyDocument{}, err
	}

	audit := survey.Audit()
	createdAt := audit.CreatedOn
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	modifiedAt := audit.ModifiedOn
	if modifiedAt.IsZero() {
		modifiedAt = createdAt
	}

	surveyOptions := survey.Options()
	optionDocs := make([]SurveyOptionDocument, 0, len(surveyOptions))
	for _, option := range surveyOptions {
		optionDocs = append(optionDocs, SurveyOptionDocument{
			OptionText:             option.OptionText().Value(),
			PreferredNumberOfVotes: option.PreferredNumberOfVotes(),
			NumberOfVotes:          option.NumberOfVotes(),
		})
	}

	return SurveyDocument{
		OwnerID:             ownerID,
		Topic:               survey.Topic().Value(),
		RespondentType:      survey.RespondentType().Value(),
		NumberOfRespondents: survey.NumberOfRespondents(),
		IsRigged:            survey.IsRigged(),
		Options:             optionDocs,
		CreatedBy:           audit.CreatedBy,
		CreatedAt:           createdAt,
		ModifiedBy:          audit.ModifiedBy,
		ModifiedAt:          modifiedAt,
	}, nil
}

// mapSurveyDocument は保存済みドキュメントから集約を復元する。保存時に検証済みのため再検証はしない。
func mapSurveyDocument(doc SurveyDocument) *domain.Survey {
	snapshots := make([]domain.SurveyOptionSnapshot, 0, len(doc.Options))
	for _, option := range doc.Options {
		snapshots = append(snapshots, domain.SurveyOptionSnapshot{
			OptionText:             option.OptionText,
			PreferredNumberOfVotes: option.PreferredNumberOfVotes,
			NumberOfVotes:          option.NumberOfVotes,
		})
	}
	return domain.RestoreSurvey(domain.SurveySnapshot{
		ID:                  doc.ID.Hex(),
		Owner:               &domain.User{ID: doc.OwnerID.Hex()},
		Topic:               doc.Topic,
		NumberOfRespondents: doc.NumberOfRespondents,
		RespondentType:      doc.RespondentType,
		Options:             snapshots,
		Audit: domain.AuditInfo{
			CreatedBy:  doc.CreatedBy,
			CreatedOn:  doc.CreatedAt,
			ModifiedBy: doc.ModifiedBy,
			ModifiedOn: doc.ModifiedAt,
		},
	})
}
