package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PrescriptionItem struct {
	Medicine primitive.ObjectID `bson:"medicine" json:"medicine" binding:"required"`
	Dosage   string             `bson:"dosage" json:"dosage" binding:"required"`
	Duration string             `bson:"duration" json:"duration" binding:"required"`
}

type Prescription struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PrescriptionNumber string             `bson:"prescriptionNumber" json:"prescriptionNumber" binding:"required"`
	PatientName        string             `bson:"patientName" json:"patientName" binding:"required"`
	DoctorName         string             `bson:"doctorName" json:"doctorName" binding:"required"`
	Medicines          []PrescriptionItem `bson:"medicines" json:"medicines"`
	Status             string             `bson:"status" json:"status"` // "pending", "fulfilled", "cancelled"
	CreatedAt          time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt          time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

type UpdatePrescription struct {
	PrescriptionNumber string             `json:"prescriptionNumber,omitempty"`
	PatientName        string             `json:"patientName,omitempty"`
	DoctorName         string             `json:"doctorName,omitempty"`
	Medicines          []PrescriptionItem `json:"medicines,omitempty"`
	Status             string             `json:"status,omitempty"`
}
