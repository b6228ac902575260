package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SurveyDocument は MongoDB 上でのアンケート集約のスキーマ。選択肢は挿入順のまま埋め込む。
type SurveyDocument struct {
	ID                  primitive.ObjectID     `bson:"_id"`
	OwnerID             primitive.ObjectID     `bson:"ownerId"`
	Topic               string                 `bson:"topic"`
	RespondentType      string                 `bson:"respondentType"`
	NumberOfRespondents int                    `bson:"numberOfRespondents"`
	IsRigged            bool                   `bson:"isRigged"`
	Options             []SurveyOptionDocument `bson:"options"`
	CreatedBy           string                 `bson:"createdBy,omitempty"`
	CreatedAt           time.Time              `bson:"createdAt"`
	ModifiedBy          string                 `bson:"modifiedBy,omitempty"`
	ModifiedAt          time.Time              `bson:"modifiedAt"`
}

// SurveyOptionDocument は選択肢 1 件分の埋め込みドキュメント。
type SurveyOptionDocument struct {
	OptionText             string `bson:"optionText"`
	PreferredNumberOfVotes int    `bson:"preferredNumberOfVotes"`
	NumberOfVotes          int    `bson:"numberOfVotes"`
}

// UserDocument はアンケート作成者のスキーマ。externalUserId は IdP の subject。
type UserDocument struct {
	ID             primitive.ObjectID `bson:"_id"`
	DisplayName    string             `bson:"displayName"`
	EmailAddress   string             `bson:"emailAddress"`
	ExternalUserID string             `bson:"externalUserId"`
	CreatedAt      time.Time          `bson:"createdAt"`
}

// FailedNotificationDocument は配送できなかった通知を後で再送するために保持する。
type FailedNotificationDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Target      string             `bson:"target"`
	Payload     map[string]any     `bson:"payload"`
	Error       string             `bson:"error"`
	Attempts    int                `bson:"attempts"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"createdAt"`
	LastTriedAt time.Time          `bson:"lastTriedAt"`
}
