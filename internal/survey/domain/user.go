package domain

import "time"

// User owns surveys. ExternalUserID is the subject issued by the identity provider.
type User struct {
	ID             string
	DisplayName    NonEmptyString
	EmailAddress   NonEmptyString
	ExternalUserID NonEmptyString
	CreatedAt      time.Time
}

func NewUser(displayName, emailAddress, externalUserID NonEmptyString) (*User, error) {
	if displayName.IsZero() {
		return nil, nilArgument("displayName")
	}
	if emailAddress.IsZero() {
		return nil, nilArgument("emailAddress")
	}
	if externalUserID.IsZero() {
		return nil, nilArgument("externalUserID")
	}
	return &User{
		DisplayName:    displayName,
		EmailAddress:   emailAddress,
		ExternalUserID: externalUserID,
		CreatedAt:      time.Now().UTC(),
	}, nil
}
