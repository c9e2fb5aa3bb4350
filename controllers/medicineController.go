package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"pharmacy-backend/config"
	"pharmacy-backend/models"
)

// addMedicineToSupplier registers a medicine in its supplier's
// suppliedMedicines set. The supplier must exist.
func addMedicineToSupplier(ctx context.Context, supplierID, medicineID primitive.ObjectID) error {
	res, err := config.SupplierCollection.UpdateOne(ctx,
		bson.M{"_id": supplierID},
		bson.M{"$addToSet": bson.M{"suppliedMedicines": medicineID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// removeMedicineFromSupplier drops a medicine from its supplier's set.
// A supplier that no longer exists is not an error.
func removeMedicineFromSupplier(ctx context.Context, supplierID, medicineID primitive.ObjectID) error {
	_, err := config.SupplierCollection.UpdateOne(ctx,
		bson.M{"_id": supplierID},
		bson.M{"$pull": bson.M{"suppliedMedicines": medicineID}})
	return err
}

// findMedicinesWithSupplier runs the given filter through an aggregation
// that joins each medicine's supplier in as supplierInfo.
func findMedicinesWithSupplier(ctx context.Context, filter bson.M, sort bson.D) ([]models.MedicineWithSupplier, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: filter}},
	}
	if sort != nil {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: sort}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "suppliers",
			"localField":   "supplier",
			"foreignField": "_id",
			"as":           "supplierInfo",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$supplierInfo",
			"preserveNullAndEmptyArrays": true,
		}}},
	)

	cursor, err := config.MedicineCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	medicines := []models.MedicineWithSupplier{}
	if err := cursor.All(ctx, &medicines); err != nil {
		return nil, err
	}
	return medicines, nil
}

func GetAllMedicines(c *gin.Context) {
	medicines, err := findMedicinesWithSupplier(context.TODO(), bson.M{}, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve medicines"})
		return
	}

	c.JSON(http.StatusOK, medicines)
}

func GetMedicine(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid medicine ID"})
		return
	}

	medicines, err := findMedicinesWithSupplier(context.TODO(), bson.M{"_id": id}, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve medicine"})
		return
	}
	if len(medicines) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medicine not found"})
		return
	}

	c.JSON(http.StatusOK, medicines[0])
}

func CreateMedicine(c *gin.Context) {
	var input struct {
		models.Medicine
		MinStockThreshold *int `json:"minStockThreshold"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	medicine := input.Medicine
	// The threshold defaults only when the field is absent; an explicit
	// zero disables the low-stock alert for this medicine.
	if input.MinStockThreshold != nil {
		medicine.MinStockThreshold = *input.MinStockThreshold
	} else {
		medicine.MinStockThreshold = models.DefaultMinStockThreshold
	}
	if err := medicine.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	medicine.ID = primitive.NewObjectID()
	medicine.CreatedAt = time.Now()
	medicine.UpdatedAt = medicine.CreatedAt

	session, err := config.Client.StartSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create medicine"})
		return
	}
	defer session.EndSession(context.TODO())

	_, err = session.WithTransaction(context.TODO(), func(sc mongo.SessionContext) (interface{}, error) {
		if !medicine.Supplier.IsZero() {
			if err := addMedicineToSupplier(sc, medicine.Supplier, medicine.ID); err != nil {
				return nil, err
			}
		}
		if _, err := config.MedicineCollection.InsertOne(sc, medicine); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Supplier not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create medicine"})
		}
		return
	}

	c.JSON(http.StatusCreated, medicine)
}

func UpdateMedicine(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid medicine ID"})
		return
	}

	var input models.UpdateMedicine
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var medicine models.Medicine
	err = config.MedicineCollection.FindOne(context.TODO(), bson.M{"_id": id}).Decode(&medicine)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medicine not found"})
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	unset := bson.M{}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.Category != "" {
		set["category"] = input.Category
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if input.Manufacturer != "" {
		set["manufacturer"] = input.Manufacturer
	}
	if input.PurchasePrice != nil {
		if *input.PurchasePrice < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "purchasePrice must not be negative"})
			return
		}
		set["purchasePrice"] = *input.PurchasePrice
	}
	if input.SellingPrice != nil {
		if *input.SellingPrice < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sellingPrice must not be negative"})
			return
		}
		set["sellingPrice"] = *input.SellingPrice
	}
	if input.StockQuantity != nil {
		if *input.StockQuantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "stockQuantity must not be negative"})
			return
		}
		set["stockQuantity"] = *input.StockQuantity
	}
	if input.ExpiryDate != nil {
		set["expiryDate"] = *input.ExpiryDate
	}
	if input.BatchNumber != "" {
		set["batchNumber"] = input.BatchNumber
	}
	if input.MinStockThreshold != nil {
		if *input.MinStockThreshold < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "minStockThreshold must not be negative"})
			return
		}
		set["minStockThreshold"] = *input.MinStockThreshold
	}

	// Supplier reassignment: "" clears the link, otherwise the medicine
	// moves from the old supplier's set to the new one's.
	oldSupplier := medicine.Supplier
	clearSupplier := false
	newSupplier := primitive.NilObjectID
	if input.Supplier != nil {
		if *input.Supplier == "" {
			clearSupplier = !oldSupplier.IsZero()
			unset["supplier"] = ""
		} else {
			parsed, err := primitive.ObjectIDFromHex(*input.Supplier)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid supplier ID"})
				return
			}
			if parsed != oldSupplier {
				newSupplier = parsed
				set["supplier"] = newSupplier
			}
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	session, err := config.Client.StartSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update medicine"})
		return
	}
	defer session.EndSession(context.TODO())

	_, err = session.WithTransaction(context.TODO(), func(sc mongo.SessionContext) (interface{}, error) {
		if !newSupplier.IsZero() {
			if err := addMedicineToSupplier(sc, newSupplier, medicine.ID); err != nil {
				return nil, err
			}
		}
		if clearSupplier || (!newSupplier.IsZero() && !oldSupplier.IsZero()) {
			if err := removeMedicineFromSupplier(sc, oldSupplier, medicine.ID); err != nil {
				return nil, err
			}
		}
		if _, err := config.MedicineCollection.UpdateOne(sc, bson.M{"_id": id}, update); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Supplier not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update medicine"})
		}
		return
	}

	var updated models.Medicine
	if err := config.MedicineCollection.FindOne(context.TODO(), bson.M{"_id": id}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load updated medicine"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func DeleteMedicine(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid medicine ID"})
		return
	}

	var medicine models.Medicine
	err = config.MedicineCollection.FindOne(context.TODO(), bson.M{"_id": id}).Decode(&medicine)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medicine not found"})
		return
	}

	session, err := config.Client.StartSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete medicine"})
		return
	}
	defer session.EndSession(context.TODO())

	_, err = session.WithTransaction(context.TODO(), func(sc mongo.SessionContext) (interface{}, error) {
		if !medicine.Supplier.IsZero() {
			if err := removeMedicineFromSupplier(sc, medicine.Supplier, medicine.ID); err != nil {
				return nil, err
			}
		}
		if _, err := config.MedicineCollection.DeleteOne(sc, bson.M{"_id": id}); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete medicine"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Medicine removed"})
}

// GetLowStockMedicines returns medicines at or below their own
// minStockThreshold, compared row by row.
func GetLowStockMedicines(c *gin.Context) {
	filter := bson.M{"$expr": bson.M{"$lte": bson.A{"$stockQuantity", "$minStockThreshold"}}}
	medicines, err := findMedicinesWithSupplier(context.TODO(), filter, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve medicines"})
		return
	}

	c.JSON(http.StatusOK, medicines)
}

// GetExpiringMedicines returns medicines whose expiry date is within the
// next 30 days, including stock that already expired.
func GetExpiringMedicines(c *gin.Context) {
	cutoff := time.Now().AddDate(0, 0, 30)
	filter := bson.M{"expiryDate": bson.M{"$lte": cutoff}}

	medicines, err := findMedicinesWithSupplier(context.TODO(), filter, bson.D{{Key: "expiryDate", Value: 1}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve medicines"})
		return
	}

	c.JSON(http.StatusOK, medicines)
}
