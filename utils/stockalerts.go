package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"pharmacy-backend/config"
	"pharmacy-backend/models"
)

// CheckStockAlerts runs once a day from the scheduler. It mails the
// address in ALERT_EMAIL a digest of medicines that are at or below
// their reorder threshold, or expire within the next 30 days.
func CheckStockAlerts() {
	log.Println("Running stock alert check")

	alertEmail := os.Getenv("ALERT_EMAIL")
	if alertEmail == "" {
		log.Println("ALERT_EMAIL not set, skipping stock alert check")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cursor, err := config.MedicineCollection.Find(ctx, bson.M{})
	if err != nil {
		log.Printf("Stock alert check failed: %v", err)
		return
	}
	defer cursor.Close(ctx)

	now := time.Now()
	var lowStock, expiring []models.Medicine

	for cursor.Next(ctx) {
		var med models.Medicine
		if err := cursor.Decode(&med); err != nil {
			log.Printf("Failed to decode medicine: %v", err)
			continue
		}
		if med.LowStock() {
			lowStock = append(lowStock, med)
		}
		if med.ExpiringSoon(now) {
			expiring = append(expiring, med)
		}
	}
	if err := cursor.Err(); err != nil {
		log.Printf("Stock alert cursor error: %v", err)
		return
	}

	if len(lowStock) == 0 && len(expiring) == 0 {
		log.Println("Stock alert check: nothing to report")
		return
	}

	var b strings.Builder
	if len(lowStock) > 0 {
		b.WriteString("Low stock medicines:\n")
		for _, med := range lowStock {
			fmt.Fprintf(&b, "- %s (%s): %d left, threshold %d\n",
				med.Name, med.BatchNumber, med.StockQuantity, med.MinStockThreshold)
		}
		b.WriteString("\n")
	}
	if len(expiring) > 0 {
		b.WriteString("Expiring within 30 days:\n")
		for _, med := range expiring {
			fmt.Fprintf(&b, "- %s (%s): expires %s\n",
				med.Name, med.BatchNumber, med.ExpiryDate.Format("2006-01-02"))
		}
	}

	subject := fmt.Sprintf("Pharmacy stock alert: %d low stock, %d expiring", len(lowStock), len(expiring))
	if err := SendEmail(alertEmail, subject, b.String()); err != nil {
		log.Printf("Failed to send stock alert email: %v", err)
		return
	}

	log.Printf("Stock alert sent to %s", alertEmail)
}
