package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Supplier struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Name              string               `bson:"name" json:"name" binding:"required"`
	Contact           string               `bson:"contact" json:"contact" binding:"required"`
	Email             string               `bson:"email" json:"email" binding:"required"`
	Address           string               `bson:"address" json:"address" binding:"required"`
	SuppliedMedicines []primitive.ObjectID `bson:"suppliedMedicines" json:"suppliedMedicines"`
	CreatedAt         time.Time            `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt         time.Time            `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// UpdateSupplier deliberately has no suppliedMedicines field: the set is
// maintained only as a side effect of medicine writes.
type UpdateSupplier struct {
	Name    string `json:"name,omitempty"`
	Contact string `json:"contact,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}
