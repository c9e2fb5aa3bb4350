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

	"pharmacy-backend/config"
	"pharmacy-backend/models"
)

// saleError carries the HTTP status a failed sale maps to, so the
// handler can distinguish not-found, validation and stock conflicts.
type saleError struct {
	Status  int
	Message string
}

func (e *saleError) Error() string { return e.Message }

// ProcessSale runs the whole checkout as one MongoDB transaction: every
// item is looked up, its stock checked and decremented, and the sale
// document inserted; any failure aborts the transaction and rolls every
// decrement back. The decrement filter re-checks stockQuantity, so two
// concurrent sales of the last unit cannot both commit. The pharmacist
// is an explicit argument, not ambient request state.
func ProcessSale(ctx context.Context, input models.SaleInput, pharmacistID primitive.ObjectID) (*models.Sale, error) {
	session, err := config.Client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		now := time.Now()
		items := []models.SaleItem{}

		for _, req := range input.Medicines {
			medID, err := primitive.ObjectIDFromHex(req.Medicine)
			if err != nil {
				return nil, &saleError{http.StatusBadRequest, fmt.Sprintf("Invalid medicine ID: %s", req.Medicine)}
			}

			var medicine models.Medicine
			err = config.MedicineCollection.FindOne(sc, bson.M{"_id": medID}).Decode(&medicine)
			if err != nil {
				if err == mongo.ErrNoDocuments {
					return nil, &saleError{http.StatusNotFound, fmt.Sprintf("Medicine not found: %s", req.Medicine)}
				}
				return nil, err
			}

			if medicine.StockQuantity < req.Quantity {
				return nil, &saleError{http.StatusBadRequest,
					fmt.Sprintf("Insufficient stock for %s. Available: %d", medicine.Name, medicine.StockQuantity)}
			}

			// Conditional decrement: a concurrent sale may have taken the
			// stock since the read above, in which case nothing matches
			// and the transaction aborts.
			res, err := config.MedicineCollection.UpdateOne(sc,
				bson.M{"_id": medID, "stockQuantity": bson.M{"$gte": req.Quantity}},
				bson.M{
					"$inc": bson.M{"stockQuantity": -req.Quantity},
					"$set": bson.M{"updatedAt": now},
				})
			if err != nil {
				return nil, err
			}
			if res.ModifiedCount == 0 {
				return nil, &saleError{http.StatusConflict,
					fmt.Sprintf("Insufficient stock for %s", medicine.Name)}
			}

			items = append(items, models.SaleItem{
				Medicine: medID,
				Quantity: req.Quantity,
				Price:    medicine.SellingPrice,
			})
		}

		sale := models.Sale{
			ID:            primitive.NewObjectID(),
			Medicines:     items,
			TotalAmount:   models.SaleTotal(items),
			CustomerName:  input.CustomerName,
			PaymentMethod: input.PaymentMethod,
			Pharmacist:    pharmacistID,
			Status:        "completed",
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		if _, err := config.SaleCollection.InsertOne(sc, sale); err != nil {
			return nil, err
		}
		return &sale, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*models.Sale), nil
}

func CreateSale(c *gin.Context) {
	var input models.SaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.PaymentMethod == "" {
		input.PaymentMethod = "cash"
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pharmacistID, err := primitive.ObjectIDFromHex(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user identity"})
		return
	}

	sale, err := ProcessSale(context.TODO(), input, pharmacistID)
	if err != nil {
		if se, ok := err.(*saleError); ok {
			c.JSON(se.Status, gin.H{"error": se.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process sale"})
		return
	}

	c.JSON(http.StatusCreated, sale)
}

// findSalesWithDetails runs the given filter through an aggregation that
// joins the sold medicines in as medicineInfo and the recording
// pharmacist as pharmacistInfo, newest sale first.
func findSalesWithDetails(ctx context.Context, filter bson.M) ([]models.SaleWithDetails, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: filter}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "medicines",
			"localField":   "medicines.medicine",
			"foreignField": "_id",
			"as":           "medicineInfo",
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "pharmacist",
			"foreignField": "_id",
			"as":           "pharmacistInfo",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$pharmacistInfo",
			"preserveNullAndEmptyArrays": true,
		}}},
	}

	cursor, err := config.SaleCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	sales := []models.SaleWithDetails{}
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func GetAllSales(c *gin.Context) {
	sales, err := findSalesWithDetails(context.TODO(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sales"})
		return
	}

	c.JSON(http.StatusOK, sales)
}

func GetSale(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sale ID"})
		return
	}

	sales, err := findSalesWithDetails(context.TODO(), bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sale"})
		return
	}
	if len(sales) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		return
	}

	c.JSON(http.StatusOK, sales[0])
}

// GetSalesReport returns sales in the inclusive startDate..endDate range
// (all sales when no range is given) together with their count and the
// revenue sum. Dates are YYYY-MM-DD; the end date covers its whole day.
func GetSalesReport(c *gin.Context) {
	filter := bson.M{}

	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	if startDate != "" && endDate != "" {
		start, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate, expected YYYY-MM-DD"})
			return
		}
		end, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate, expected YYYY-MM-DD"})
			return
		}
		filter["createdAt"] = bson.M{
			"$gte": start,
			"$lt":  end.AddDate(0, 0, 1),
		}
	}

	sales, err := findSalesWithDetails(context.TODO(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sales"})
		return
	}

	var totalRevenue float64
	for _, sale := range sales {
		totalRevenue += sale.TotalAmount
	}

	c.JSON(http.StatusOK, gin.H{
		"sales":        sales,
		"totalSales":   len(sales),
		"totalRevenue": models.Round2(totalRevenue),
	})
}
