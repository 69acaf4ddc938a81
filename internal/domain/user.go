package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username"      json:"username"`
	Email        string             `bson:"email"         json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	CreatedAt    time.Time          `bson:"created_at"    json:"created_at"`
}

// UserRef is the public projection of a user embedded in post views.
type UserRef struct {
	ID       primitive.ObjectID `json:"id"`
	Username string             `json:"username"`
}

func (u *User) Ref() UserRef { return UserRef{ID: u.ID, Username: u.Username} }
