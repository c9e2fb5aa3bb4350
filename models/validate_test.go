package models

import (
	"testing"
	"time"
)

func validMedicine() Medicine {
	return Medicine{
		Name:              "Paracetamol",
		Category:          "Analgesic",
		Manufacturer:      "Acme Pharma",
		PurchasePrice:     8.00,
		SellingPrice:      12.50,
		StockQuantity:     100,
		ExpiryDate:        time.Now().AddDate(1, 0, 0),
		BatchNumber:       "B-2025-001",
		MinStockThreshold: 10,
	}
}

func TestMedicineValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Medicine)
		expectErr bool
	}{
		{"valid", func(m *Medicine) {}, false},
		{"missing name", func(m *Medicine) { m.Name = "" }, true},
		{"missing category", func(m *Medicine) { m.Category = "" }, true},
		{"missing manufacturer", func(m *Medicine) { m.Manufacturer = "" }, true},
		{"missing batch number", func(m *Medicine) { m.BatchNumber = "" }, true},
		{"negative purchase price", func(m *Medicine) { m.PurchasePrice = -1 }, true},
		{"negative selling price", func(m *Medicine) { m.SellingPrice = -0.01 }, true},
		{"negative stock", func(m *Medicine) { m.StockQuantity = -1 }, true},
		{"negative threshold", func(m *Medicine) { m.MinStockThreshold = -5 }, true},
		{"zero expiry", func(m *Medicine) { m.ExpiryDate = time.Time{} }, true},
		{"zero prices are allowed", func(m *Medicine) { m.PurchasePrice = 0; m.SellingPrice = 0 }, false},
		{"zero stock is allowed", func(m *Medicine) { m.StockQuantity = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMedicine()
			tt.mutate(&m)
			err := m.Validate()
			if (err != nil) != tt.expectErr {
				t.Errorf("Validate() error = %v, expectErr %v", err, tt.expectErr)
			}
		})
	}
}

func TestSupplierValidate(t *testing.T) {
	s := Supplier{Name: "MedSupply", Contact: "+1 555 0100", Email: "sales@medsupply.test", Address: "1 Main St"}
	if err := s.Validate(); err != nil {
		t.Errorf("valid supplier rejected: %v", err)
	}

	s.Email = ""
	if err := s.Validate(); err == nil {
		t.Error("supplier without email accepted")
	}
}

func TestPrescriptionValidate(t *testing.T) {
	valid := Prescription{
		PrescriptionNumber: "RX-1001",
		PatientName:        "John Doe",
		DoctorName:         "Dr. Smith",
		Status:             "pending",
		Medicines:          []PrescriptionItem{{Dosage: "500mg", Duration: "5 days"}},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid prescription rejected: %v", err)
	}

	badStatus := valid
	badStatus.Status = "expired"
	if err := badStatus.Validate(); err == nil {
		t.Error("invalid status accepted")
	}

	badItem := valid
	badItem.Medicines = []PrescriptionItem{{Dosage: "", Duration: "5 days"}}
	if err := badItem.Validate(); err == nil {
		t.Error("prescription item without dosage accepted")
	}

	noNumber := valid
	noNumber.PrescriptionNumber = ""
	if err := noNumber.Validate(); err == nil {
		t.Error("prescription without number accepted")
	}
}

func TestSaleInputValidate(t *testing.T) {
	tests := []struct {
		name      string
		input     SaleInput
		expectErr bool
	}{
		{
			"valid",
			SaleInput{Medicines: []SaleItemInput{{Medicine: "abc", Quantity: 2}}, PaymentMethod: "card"},
			false,
		},
		{
			"empty items",
			SaleInput{Medicines: []SaleItemInput{}},
			true,
		},
		{
			"zero quantity",
			SaleInput{Medicines: []SaleItemInput{{Medicine: "abc", Quantity: 0}}},
			true,
		},
		{
			"negative quantity",
			SaleInput{Medicines: []SaleItemInput{{Medicine: "abc", Quantity: -3}}},
			true,
		},
		{
			"missing medicine id",
			SaleInput{Medicines: []SaleItemInput{{Medicine: "", Quantity: 1}}},
			true,
		},
		{
			"bad payment method",
			SaleInput{Medicines: []SaleItemInput{{Medicine: "abc", Quantity: 1}}, PaymentMethod: "crypto"},
			true,
		},
		{
			"empty payment method defaults later",
			SaleInput{Medicines: []SaleItemInput{{Medicine: "abc", Quantity: 1}}},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if (err != nil) != tt.expectErr {
				t.Errorf("Validate() error = %v, expectErr %v", err, tt.expectErr)
			}
		})
	}
}

func TestEnums(t *testing.T) {
	for _, m := range []string{"cash", "card", "online"} {
		if !ValidPaymentMethod(m) {
			t.Errorf("payment method %q rejected", m)
		}
	}
	if ValidPaymentMethod("cheque") {
		t.Error("unknown payment method accepted")
	}

	for _, s := range []string{"completed", "pending", "cancelled"} {
		if !ValidSaleStatus(s) {
			t.Errorf("sale status %q rejected", s)
		}
	}
	for _, s := range []string{"pending", "fulfilled", "cancelled"} {
		if !ValidPrescriptionStatus(s) {
			t.Errorf("prescription status %q rejected", s)
		}
	}
	if ValidPrescriptionStatus("fulfilled ") {
		t.Error("prescription status with trailing space accepted")
	}
	if !ValidRole("admin") || !ValidRole("pharmacist") || ValidRole("cashier") {
		t.Error("role validation mismatch")
	}
}

func TestSaleTotal(t *testing.T) {
	// 3 x 12.50 + 2 x 4.00 = 45.50
	items := []SaleItem{
		{Quantity: 3, Price: 12.50},
		{Quantity: 2, Price: 4.00},
	}
	if got := SaleTotal(items); got != 45.50 {
		t.Errorf("SaleTotal = %v, want 45.50", got)
	}

	if got := SaleTotal(nil); got != 0 {
		t.Errorf("SaleTotal(nil) = %v, want 0", got)
	}

	// rounding of float drift
	drift := []SaleItem{{Quantity: 3, Price: 0.1}}
	if got := SaleTotal(drift); got != 0.3 {
		t.Errorf("SaleTotal with drift = %v, want 0.3", got)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{45.499999999, 45.50},
		{45.506, 45.51},
		{0, 0},
		{12.5, 12.5},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
