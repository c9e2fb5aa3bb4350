package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pharmacy-backend/config"
	"pharmacy-backend/models"
)

func GetAllPrescriptions(c *gin.Context) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := config.PrescriptionCollection.Find(context.TODO(), bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve prescriptions"})
		return
	}
	defer cursor.Close(context.TODO())

	prescriptions := []models.Prescription{}
	if err := cursor.All(context.TODO(), &prescriptions); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode prescriptions"})
		return
	}

	c.JSON(http.StatusOK, prescriptions)
}

func GetPrescription(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prescription ID"})
		return
	}

	var prescription models.Prescription
	err = config.PrescriptionCollection.FindOne(context.TODO(), bson.M{"_id": id}).Decode(&prescription)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prescription not found"})
		return
	}

	c.JSON(http.StatusOK, prescription)
}

func GetPrescriptionByNumber(c *gin.Context) {
	number := c.Param("prescriptionNumber")

	var prescription models.Prescription
	err := config.PrescriptionCollection.FindOne(context.TODO(),
		bson.M{"prescriptionNumber": number}).Decode(&prescription)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prescription not found"})
		return
	}

	c.JSON(http.StatusOK, prescription)
}

func CreatePrescription(c *gin.Context) {
	var prescription models.Prescription
	if err := c.ShouldBindJSON(&prescription); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if prescription.Status == "" {
		prescription.Status = "pending"
	}
	if err := prescription.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prescription.ID = primitive.NewObjectID()
	prescription.CreatedAt = time.Now()
	prescription.UpdatedAt = prescription.CreatedAt

	if _, err := config.PrescriptionCollection.InsertOne(context.TODO(), prescription); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A prescription with this number already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create prescription"})
		return
	}

	c.JSON(http.StatusCreated, prescription)
}

func UpdatePrescription(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prescription ID"})
		return
	}

	var input models.UpdatePrescription
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.PrescriptionNumber != "" {
		set["prescriptionNumber"] = input.PrescriptionNumber
	}
	if input.PatientName != "" {
		set["patientName"] = input.PatientName
	}
	if input.DoctorName != "" {
		set["doctorName"] = input.DoctorName
	}
	if input.Medicines != nil {
		for _, item := range input.Medicines {
			if item.Dosage == "" || item.Duration == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "every prescription item needs a dosage and a duration"})
				return
			}
		}
		set["medicines"] = input.Medicines
	}
	if input.Status != "" {
		if !models.ValidPrescriptionStatus(input.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid prescription status: %s", input.Status)})
			return
		}
		set["status"] = input.Status
	}

	res, err := config.PrescriptionCollection.UpdateOne(context.TODO(), bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A prescription with this number already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update prescription"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prescription not found"})
		return
	}

	var updated models.Prescription
	if err := config.PrescriptionCollection.FindOne(context.TODO(), bson.M{"_id": id}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load updated prescription"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// UpdatePrescriptionStatus transitions only the status field.
// Prescription status never touches medicine stock.
func UpdatePrescriptionStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prescription ID"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidPrescriptionStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid prescription status: %s", input.Status)})
		return
	}

	res, err := config.PrescriptionCollection.UpdateOne(context.TODO(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": input.Status, "updatedAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update prescription"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prescription not found"})
		return
	}

	var updated models.Prescription
	if err := config.PrescriptionCollection.FindOne(context.TODO(), bson.M{"_id": id}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load updated prescription"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func DeletePrescription(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prescription ID"})
		return
	}

	res, err := config.PrescriptionCollection.DeleteOne(context.TODO(), bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete prescription"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prescription not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Prescription removed"})
}

func GetPendingPrescriptions(c *gin.Context) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := config.PrescriptionCollection.Find(context.TODO(), bson.M{"status": "pending"}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve prescriptions"})
		return
	}
	defer cursor.Close(context.TODO())

	prescriptions := []models.Prescription{}
	if err := cursor.All(context.TODO(), &prescriptions); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode prescriptions"})
		return
	}

	c.JSON(http.StatusOK, prescriptions)
}
