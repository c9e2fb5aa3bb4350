package models

import (
	"errors"
	"fmt"
	"math"
)

const DefaultMinStockThreshold = 10

var paymentMethods = map[string]bool{"cash": true, "card": true, "online": true}
var saleStatuses = map[string]bool{"completed": true, "pending": true, "cancelled": true}
var prescriptionStatuses = map[string]bool{"pending": true, "fulfilled": true, "cancelled": true}
var userRoles = map[string]bool{"admin": true, "pharmacist": true}

func ValidPaymentMethod(m string) bool      { return paymentMethods[m] }
func ValidSaleStatus(s string) bool         { return saleStatuses[s] }
func ValidPrescriptionStatus(s string) bool { return prescriptionStatuses[s] }
func ValidRole(r string) bool               { return userRoles[r] }

// Round2 rounds money values to two decimals, the precision every amount
// is stored with.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SaleTotal sums the recorded line totals of a sale.
func SaleTotal(items []SaleItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return Round2(total)
}

func (m *Medicine) Validate() error {
	if m.Name == "" || m.Category == "" || m.Manufacturer == "" || m.BatchNumber == "" {
		return errors.New("name, category, manufacturer and batchNumber are required")
	}
	if m.PurchasePrice < 0 || m.SellingPrice < 0 {
		return errors.New("prices must not be negative")
	}
	if m.StockQuantity < 0 {
		return errors.New("stockQuantity must not be negative")
	}
	if m.MinStockThreshold < 0 {
		return errors.New("minStockThreshold must not be negative")
	}
	if m.ExpiryDate.IsZero() {
		return errors.New("expiryDate is required")
	}
	return nil
}

func (s *Supplier) Validate() error {
	if s.Name == "" || s.Contact == "" || s.Email == "" || s.Address == "" {
		return errors.New("name, contact, email and address are required")
	}
	return nil
}

func (p *Prescription) Validate() error {
	if p.PrescriptionNumber == "" || p.PatientName == "" || p.DoctorName == "" {
		return errors.New("prescriptionNumber, patientName and doctorName are required")
	}
	if p.Status != "" && !ValidPrescriptionStatus(p.Status) {
		return fmt.Errorf("invalid prescription status: %s", p.Status)
	}
	for _, item := range p.Medicines {
		if item.Dosage == "" || item.Duration == "" {
			return errors.New("every prescription item needs a dosage and a duration")
		}
	}
	return nil
}

func (in *SaleInput) Validate() error {
	if len(in.Medicines) == 0 {
		return errors.New("a sale needs at least one item")
	}
	for _, item := range in.Medicines {
		if item.Medicine == "" {
			return errors.New("every sale item needs a medicine id")
		}
		if item.Quantity < 1 {
			return fmt.Errorf("quantity must be at least 1, got %d", item.Quantity)
		}
	}
	if in.PaymentMethod != "" && !ValidPaymentMethod(in.PaymentMethod) {
		return fmt.Errorf("invalid payment method: %s", in.PaymentMethod)
	}
	return nil
}
