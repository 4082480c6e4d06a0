package account

import (
	"context"
	"errors"

	"copdcare/internal/store"
)

const profilesCollection = "users"

type Profile struct {
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	ConditionSeverity string   `json:"condition_severity"`
	SmokingHistory    string   `json:"smoking_history"`
	Medications       []string `json:"medications"`
	PrimaryDoctor     string   `json:"primary_doctor"`
	NextAppointment   string   `json:"next_appointment"`
}

type Documents interface {
	GetDocument(ctx context.Context, collection, id string, out any) error
	SetDocument(ctx context.Context, collection, id string, record any) error
}

// GetProfile returns an empty profile seeded with the session email when the
// user has not saved one yet.
func GetProfile(ctx context.Context, docs Documents, s Session) (Profile, error) {
	var p Profile
	err := docs.GetDocument(ctx, profilesCollection, s.UserID, &p)
	if errors.Is(err, store.ErrNotFound) {
		return Profile{Email: s.Email}, nil
	}
	if err != nil {
		return Profile{}, err
	}
	return p, nil
}

func SaveProfile(ctx context.Context, docs Documents, s Session, p Profile) error {
	if p.Email == "" {
		p.Email = s.Email
	}
	return docs.SetDocument(ctx, profilesCollection, s.UserID, p)
}
