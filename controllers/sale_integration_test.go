package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pharmacy-backend/config"
	"pharmacy-backend/models"
)

func seedMedicine(t *testing.T, ctx context.Context, name string, price float64, stock int) primitive.ObjectID {
	t.Helper()
	med := models.Medicine{
		ID:                primitive.NewObjectID(),
		Name:              name,
		Category:          "Test",
		Manufacturer:      "Test Pharma",
		PurchasePrice:     price / 2,
		SellingPrice:      price,
		StockQuantity:     stock,
		ExpiryDate:        time.Now().AddDate(1, 0, 0),
		BatchNumber:       "B-" + name,
		MinStockThreshold: 10,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	if _, err := config.MedicineCollection.InsertOne(ctx, med); err != nil {
		t.Fatalf("failed to seed medicine %s: %v", name, err)
	}
	return med.ID
}

func stockOf(t *testing.T, ctx context.Context, id primitive.ObjectID) int {
	t.Helper()
	var med models.Medicine
	if err := config.MedicineCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&med); err != nil {
		t.Fatalf("failed to load medicine %s: %v", id.Hex(), err)
	}
	return med.StockQuantity
}

func saleCount(t *testing.T, ctx context.Context) int64 {
	t.Helper()
	count, err := config.SaleCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("failed to count sales: %v", err)
	}
	return count
}

func TestProcessSaleDecrementsStockAndRecordsTotal(t *testing.T) {
	ctx := setupTestDB(t)

	medA := seedMedicine(t, ctx, "Paracetamol", 12.50, 10)
	medB := seedMedicine(t, ctx, "Ibuprofen", 4.00, 5)
	pharmacist := primitive.NewObjectID()

	input := models.SaleInput{
		Medicines: []models.SaleItemInput{
			{Medicine: medA.Hex(), Quantity: 3},
			{Medicine: medB.Hex(), Quantity: 2},
		},
		CustomerName:  "Walk-in",
		PaymentMethod: "cash",
	}

	sale, err := ProcessSale(ctx, input, pharmacist)
	if err != nil {
		t.Fatalf("ProcessSale failed: %v", err)
	}

	if sale.TotalAmount != 45.50 {
		t.Errorf("TotalAmount = %v, want 45.50", sale.TotalAmount)
	}
	if len(sale.Medicines) != 2 {
		t.Fatalf("recorded %d line items, want 2", len(sale.Medicines))
	}
	if sale.Medicines[0].Price != 12.50 || sale.Medicines[1].Price != 4.00 {
		t.Errorf("line prices = %v, %v; want prices captured at sale time",
			sale.Medicines[0].Price, sale.Medicines[1].Price)
	}
	if sale.Pharmacist != pharmacist {
		t.Errorf("Pharmacist = %v, want %v", sale.Pharmacist, pharmacist)
	}
	if sale.Status != "completed" {
		t.Errorf("Status = %q, want completed", sale.Status)
	}

	if got := stockOf(t, ctx, medA); got != 7 {
		t.Errorf("medicine A stock = %d, want 7", got)
	}
	if got := stockOf(t, ctx, medB); got != 3 {
		t.Errorf("medicine B stock = %d, want 3", got)
	}

	if got := saleCount(t, ctx); got != 1 {
		t.Errorf("sale count = %d, want 1", got)
	}

	var stored models.Sale
	if err := config.SaleCollection.FindOne(ctx, bson.M{"_id": sale.ID}).Decode(&stored); err != nil {
		t.Fatalf("failed to load persisted sale: %v", err)
	}
	if stored.TotalAmount != models.SaleTotal(stored.Medicines) {
		t.Errorf("persisted total %v does not equal sum of line totals %v",
			stored.TotalAmount, models.SaleTotal(stored.Medicines))
	}

	// the list endpoint joins the sold medicines in
	w := callHandler(t, GetAllSales, http.MethodGet, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GetAllSales returned %d: %s", w.Code, w.Body.String())
	}
	var listed []models.SaleWithDetails
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("failed to decode sales list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("sales list length = %d, want 1", len(listed))
	}
	names := map[string]bool{}
	for _, ref := range listed[0].MedicineInfo {
		names[ref.Name] = true
	}
	if !names["Paracetamol"] || !names["Ibuprofen"] {
		t.Errorf("medicineInfo names = %v, want both sold medicines joined in", names)
	}
}

// A sale must never be recorded against a zero pharmacist ID; a request
// without a usable identity claim is rejected before any stock changes.
func TestCreateSaleRequiresIdentity(t *testing.T) {
	w := callHandler(t, CreateSale, http.MethodPost, gin.H{
		"medicines": []gin.H{{"medicine": primitive.NewObjectID().Hex(), "quantity": 1}},
	}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("CreateSale without identity returned %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestProcessSaleInsufficientStockLeavesNothingBehind(t *testing.T) {
	ctx := setupTestDB(t)

	medA := seedMedicine(t, ctx, "Amoxicillin", 9.00, 5)
	medB := seedMedicine(t, ctx, "Cetirizine", 3.50, 1)

	input := models.SaleInput{
		Medicines: []models.SaleItemInput{
			{Medicine: medA.Hex(), Quantity: 2}, // satisfiable
			{Medicine: medB.Hex(), Quantity: 5}, // exceeds stock
		},
	}

	_, err := ProcessSale(ctx, input, primitive.NewObjectID())
	if err == nil {
		t.Fatal("ProcessSale succeeded with insufficient stock")
	}
	se, ok := err.(*saleError)
	if !ok {
		t.Fatalf("error type = %T, want *saleError", err)
	}
	if se.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", se.Status, http.StatusBadRequest)
	}

	// the transaction must roll back the first item's decrement
	if got := stockOf(t, ctx, medA); got != 5 {
		t.Errorf("medicine A stock = %d after failed sale, want 5", got)
	}
	if got := stockOf(t, ctx, medB); got != 1 {
		t.Errorf("medicine B stock = %d after failed sale, want 1", got)
	}
	if got := saleCount(t, ctx); got != 0 {
		t.Errorf("sale count = %d after failed sale, want 0", got)
	}
}

func TestProcessSaleUnknownMedicine(t *testing.T) {
	ctx := setupTestDB(t)

	medA := seedMedicine(t, ctx, "Aspirin", 2.00, 8)
	missing := primitive.NewObjectID()

	input := models.SaleInput{
		Medicines: []models.SaleItemInput{
			{Medicine: medA.Hex(), Quantity: 1},
			{Medicine: missing.Hex(), Quantity: 1},
		},
	}

	_, err := ProcessSale(ctx, input, primitive.NewObjectID())
	se, ok := err.(*saleError)
	if !ok {
		t.Fatalf("error = %v, want *saleError", err)
	}
	if se.Status != http.StatusNotFound {
		t.Errorf("status = %d, want %d", se.Status, http.StatusNotFound)
	}

	if got := stockOf(t, ctx, medA); got != 8 {
		t.Errorf("medicine A stock = %d after failed sale, want 8", got)
	}
	if got := saleCount(t, ctx); got != 0 {
		t.Errorf("sale count = %d after failed sale, want 0", got)
	}
}

func TestConcurrentSalesOfLastUnit(t *testing.T) {
	ctx := setupTestDB(t)

	med := seedMedicine(t, ctx, "Insulin", 30.00, 1)

	input := models.SaleInput{
		Medicines: []models.SaleItemInput{{Medicine: med.Hex(), Quantity: 1}},
	}

	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := ProcessSale(context.Background(), input, primitive.NewObjectID())
			results <- err
		}()
	}

	var succeeded, failed int
	for i := 0; i < 2; i++ {
		if err := <-results; err == nil {
			succeeded++
		} else {
			failed++
		}
	}

	if succeeded != 1 || failed != 1 {
		t.Errorf("concurrent sales of the last unit: %d succeeded, %d failed; want exactly one of each",
			succeeded, failed)
	}
	if got := stockOf(t, ctx, med); got != 0 {
		t.Errorf("stock = %d after concurrent sales, want 0", got)
	}
	if got := saleCount(t, ctx); got != 1 {
		t.Errorf("sale count = %d, want 1", got)
	}
}
