package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SaleItem is one line of a recorded sale. Price is the selling price at
// the moment the sale was processed, so later medicine edits do not
// change past totals.
type SaleItem struct {
	Medicine primitive.ObjectID `bson:"medicine" json:"medicine"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Price    float64            `bson:"price" json:"price"`
}

type Sale struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Medicines     []SaleItem         `bson:"medicines" json:"medicines"`
	TotalAmount   float64            `bson:"totalAmount" json:"totalAmount"`
	CustomerName  string             `bson:"customerName,omitempty" json:"customerName,omitempty"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"` // "cash", "card", "online"
	Pharmacist    primitive.ObjectID `bson:"pharmacist,omitempty" json:"pharmacist,omitempty"`
	Status        string             `bson:"status" json:"status"` // "completed", "pending", "cancelled"
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// MedicineRef is the slice of a medicine that sale and prescription
// read endpoints join into their responses.
type MedicineRef struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Category string             `bson:"category" json:"category"`
}

// UserRef identifies the pharmacist on a joined sale response.
type UserRef struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Username string             `bson:"username" json:"username"`
}

// SaleWithDetails is the read shape of a sale with the sold medicines
// and the recording pharmacist joined in.
type SaleWithDetails struct {
	Sale           `bson:",inline"`
	MedicineInfo   []MedicineRef `bson:"medicineInfo,omitempty" json:"medicineInfo,omitempty"`
	PharmacistInfo *UserRef      `bson:"pharmacistInfo,omitempty" json:"pharmacistInfo,omitempty"`
}

type SaleItemInput struct {
	Medicine string `json:"medicine" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

type SaleInput struct {
	Medicines     []SaleItemInput `json:"medicines" binding:"required"`
	CustomerName  string          `json:"customerName"`
	PaymentMethod string          `json:"paymentMethod"`
}
