package utils

import (
	"CarePoint/models"
	"errors"
	"testing"
	"time"
)

func TestValidateOrderRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     models.CreateOrderRequest
		wantErr bool
	}{
		{
			name: "valid single item",
			req: models.CreateOrderRequest{
				Items: []models.OrderItemRequest{{MedicineID: "MD-000001", Quantity: 2}},
			},
			wantErr: false,
		},
		{
			name:    "empty items",
			req:     models.CreateOrderRequest{},
			wantErr: true,
		},
		{
			name: "missing medicine reference",
			req: models.CreateOrderRequest{
				Items: []models.OrderItemRequest{{Quantity: 2}},
			},
			wantErr: true,
		},
		{
			name: "zero quantity",
			req: models.CreateOrderRequest{
				Items: []models.OrderItemRequest{{MedicineID: "MD-000001", Quantity: 0}},
			},
			wantErr: true,
		},
		{
			name: "negative quantity",
			req: models.CreateOrderRequest{
				Items: []models.OrderItemRequest{{MedicineID: "MD-000001", Quantity: -3}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOrderRequest(tt.req)
			if tt.wantErr {
				if !errors.Is(err, models.ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("expected valid request, got %v", err)
			}
		})
	}
}

func TestValidatePrescriptionRequest(t *testing.T) {
	future := time.Now().Add(30 * 24 * time.Hour)
	tests := []struct {
		name    string
		req     models.CreatePrescriptionRequest
		wantErr bool
	}{
		{
			name: "valid",
			req: models.CreatePrescriptionRequest{
				AppointmentID: 1,
				ExpiryDate:    future,
				Items:         []models.PrescriptionItemRequest{{MedicineID: "MD-000001", Quantity: 10}},
			},
			wantErr: false,
		},
		{
			name: "missing appointment",
			req: models.CreatePrescriptionRequest{
				ExpiryDate: future,
				Items:      []models.PrescriptionItemRequest{{MedicineID: "MD-000001", Quantity: 10}},
			},
			wantErr: true,
		},
		{
			name: "expiry in the past",
			req: models.CreatePrescriptionRequest{
				AppointmentID: 1,
				ExpiryDate:    time.Now().Add(-time.Hour),
				Items:         []models.PrescriptionItemRequest{{MedicineID: "MD-000001", Quantity: 10}},
			},
			wantErr: true,
		},
		{
			name: "no items",
			req: models.CreatePrescriptionRequest{
				AppointmentID: 1,
				ExpiryDate:    future,
			},
			wantErr: true,
		},
		{
			name: "zero quantity item",
			req: models.CreatePrescriptionRequest{
				AppointmentID: 1,
				ExpiryDate:    future,
				Items:         []models.PrescriptionItemRequest{{MedicineID: "MD-000001", Quantity: 0}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePrescriptionRequest(tt.req)
			if tt.wantErr {
				if !errors.Is(err, models.ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("expected valid request, got %v", err)
			}
		})
	}
}
