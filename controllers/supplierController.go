package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"pharmacy-backend/config"
	"pharmacy-backend/models"
)

func GetAllSuppliers(c *gin.Context) {
	cursor, err := config.SupplierCollection.Find(context.TODO(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve suppliers"})
		return
	}
	defer cursor.Close(context.TODO())

	suppliers := []models.Supplier{}
	if err := cursor.All(context.TODO(), &suppliers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode suppliers"})
		return
	}

	c.JSON(http.StatusOK, suppliers)
}

func GetSupplier(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid supplier ID"})
		return
	}

	var supplier models.Supplier
	err = config.SupplierCollection.FindOne(context.TODO(), bson.M{"_id": id}).Decode(&supplier)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		return
	}

	c.JSON(http.StatusOK, supplier)
}

func CreateSupplier(c *gin.Context) {
	var supplier models.Supplier
	if err := c.ShouldBindJSON(&supplier); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	supplier.Email = strings.ToLower(supplier.Email)
	if err := supplier.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	supplier.ID = primitive.NewObjectID()
	supplier.SuppliedMedicines = []primitive.ObjectID{}
	supplier.CreatedAt = time.Now()
	supplier.UpdatedAt = supplier.CreatedAt

	if _, err := config.SupplierCollection.InsertOne(context.TODO(), supplier); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A supplier with this email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create supplier"})
		return
	}

	c.JSON(http.StatusCreated, supplier)
}

func UpdateSupplier(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid supplier ID"})
		return
	}

	var input models.UpdateSupplier
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.Contact != "" {
		set["contact"] = input.Contact
	}
	if input.Email != "" {
		set["email"] = strings.ToLower(input.Email)
	}
	if input.Address != "" {
		set["address"] = input.Address
	}

	res, err := config.SupplierCollection.UpdateOne(context.TODO(), bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A supplier with this email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update supplier"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		return
	}

	var updated models.Supplier
	if err := config.SupplierCollection.FindOne(context.TODO(), bson.M{"_id": id}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load updated supplier"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteSupplier refuses while any medicine still references the
// supplier. The live count is authoritative, not the cached
// suppliedMedicines set.
func DeleteSupplier(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid supplier ID"})
		return
	}

	var supplier models.Supplier
	err = config.SupplierCollection.FindOne(context.TODO(), bson.M{"_id": id}).Decode(&supplier)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		return
	}

	count, err := config.MedicineCollection.CountDocuments(context.TODO(), bson.M{"supplier": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check supplier medicines"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Cannot delete supplier with associated medicines"})
		return
	}

	if _, err := config.SupplierCollection.DeleteOne(context.TODO(), bson.M{"_id": id}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete supplier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Supplier removed"})
}
