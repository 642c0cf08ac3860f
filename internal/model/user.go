package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered account. Password holds the bcrypt hash and is never serialized.
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username  string             `json:"username" bson:"username"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"`
	FullName  string             `json:"fullName,omitempty" bson:"fullName,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
