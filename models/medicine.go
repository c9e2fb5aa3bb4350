package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Medicine struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name              string             `bson:"name" json:"name" binding:"required"`
	Category          string             `bson:"category" json:"category" binding:"required"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	Manufacturer      string             `bson:"manufacturer" json:"manufacturer" binding:"required"`
	PurchasePrice     float64            `bson:"purchasePrice" json:"purchasePrice"`
	SellingPrice      float64            `bson:"sellingPrice" json:"sellingPrice"`
	StockQuantity     int                `bson:"stockQuantity" json:"stockQuantity"`
	Supplier          primitive.ObjectID `bson:"supplier,omitempty" json:"supplier,omitempty"`
	ExpiryDate        time.Time          `bson:"expiryDate" json:"expiryDate" binding:"required"`
	BatchNumber       string             `bson:"batchNumber" json:"batchNumber" binding:"required"`
	MinStockThreshold int                `bson:"minStockThreshold" json:"minStockThreshold"`
	PhotoURL          string             `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	PhotoPreviewURL   string             `bson:"photoPreviewUrl,omitempty" json:"photoPreviewUrl,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt         time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// UpdateMedicine carries a partial edit. Pointer fields distinguish
// "not sent" from an explicit zero; Supplier set to "" clears the link.
type UpdateMedicine struct {
	Name              string     `json:"name,omitempty"`
	Category          string     `json:"category,omitempty"`
	Description       *string    `json:"description,omitempty"`
	Manufacturer      string     `json:"manufacturer,omitempty"`
	PurchasePrice     *float64   `json:"purchasePrice,omitempty"`
	SellingPrice      *float64   `json:"sellingPrice,omitempty"`
	StockQuantity     *int       `json:"stockQuantity,omitempty"`
	Supplier          *string    `json:"supplier,omitempty"`
	ExpiryDate        *time.Time `json:"expiryDate,omitempty"`
	BatchNumber       string     `json:"batchNumber,omitempty"`
	MinStockThreshold *int       `json:"minStockThreshold,omitempty"`
}

// SupplierRef is the slice of a supplier that read endpoints join into
// medicine responses.
type SupplierRef struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	Name    string             `bson:"name" json:"name"`
	Contact string             `bson:"contact" json:"contact"`
}

// MedicineWithSupplier is the read shape of a medicine with its
// supplier joined in.
type MedicineWithSupplier struct {
	Medicine     `bson:",inline"`
	SupplierInfo *SupplierRef `bson:"supplierInfo,omitempty" json:"supplierInfo,omitempty"`
}

// LowStock reports whether the medicine is at or below its own
// reorder threshold.
func (m Medicine) LowStock() bool {
	return m.StockQuantity <= m.MinStockThreshold
}

// ExpiringSoon reports whether the medicine expires within 30 days of now
// (already-expired stock counts too).
func (m Medicine) ExpiringSoon(now time.Time) bool {
	return !m.ExpiryDate.After(now.AddDate(0, 0, 30))
}
