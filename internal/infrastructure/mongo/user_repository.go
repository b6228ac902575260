package mongo

import (
	"context"
	"errors"
	"strings"

	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/survey/application"
	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/survey/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository はアンケート作成者を externalUserId 単位で保持する。
type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database, collectionName string) *UserRepository {
	return &UserRepository{collection: db.Collection(collectionName)}
}

// Create は新規ユーザーを登録する。externalUserId のユニーク制約違反は登録済みとして扱う。
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user == nil {
		return errors.New("user payload is nil")
	}
	doc := mapUserToDocument(user)
	doc.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return application.ErrUserAlreadyRegistered
		}
		return err
	}
	user.ID = doc.ID.Hex()
	return nil
}

// FindByExternalID は IdP の subject からユーザーを復元する。
func (r *UserRepository) FindByExternalID(ctx context.Context, externalUserID string) (*domain.User, error) {
	externalUserID = strings.TrimSpace(externalUserID)
	if externalUserID == "" {
		return nil, application.ErrNotFound
	}
	var doc UserDocument
	err := r.collection.FindOne(ctx, bson.M{"externalUserId": externalUserID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, application.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return mapUserDocument(doc), nil
}

func mapUserToDocument(user *domain.User) UserDocument {
	return UserDocument{
		DisplayName:    user.DisplayName.Value(),
		EmailAddress:   user.EmailAddress.Value(),
		ExternalUserID: user.ExternalUserID.Value(),
		CreatedAt:      user.CreatedAt,
	}
}

// mapUserDocument は保存済みの値をそのまま復元する。空文字は登録時に弾かれている。
func mapUserDocument(doc UserDocument) *domain.User {
	user := &domain.User{
		ID:        doc.ID.Hex(),
		CreatedAt: doc.CreatedAt,
	}
	user.DisplayName, _ = domain.NewNonEmptyString(doc.DisplayName)
	user.EmailAddress, _ = domain.NewNonEmptyString(doc.EmailAddress)
	user.ExternalUserID, _ = domain.NewNonEmptyString(doc.ExternalUserID)
	return user
}
