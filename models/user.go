package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username        string             `bson:"username" json:"username" binding:"required"`
	Email           string             `bson:"email" json:"email" binding:"required"`
	Password        string             `bson:"password,omitempty" json:"password,omitempty"`
	Role            string             `bson:"role" json:"role"` // "admin", "pharmacist"
	RecoveryCode    string             `bson:"recoveryCode,omitempty" json:"-"`
	RecoveryExpires time.Time          `bson:"recoveryExpires,omitempty" json:"-"`
	CreatedAt       time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt       time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
