package validator_test

import (
	"lendr/shared/validator"
	"strings"
	"testing"
)

// Test structs for validation
type listingPayload struct {
	Name        string  `validate:"required"                json:"name"`
	OwnerEmail  string  `validate:"required,email"          json:"owner_email"`
	PricePerDay float64 `validate:"required,gt=0"           json:"price_per_day"`
	Status      string  `validate:"omitempty,oneof=pending approved rejected completed cancelled" json:"status"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *listingPayload
		expectError bool
	}{
		{
			name: "valid struct",
			data: &listingPayload{
				Name:        "Cordless drill",
				OwnerEmail:  "owner@example.com",
				PricePerDay: 12.5,
				Status:      "pending",
			},
			expectError: false,
		},
		{
			name: "missing required field",
			data: &listingPayload{
				OwnerEmail:  "owner@example.com",
				PricePerDay: 12.5,
			},
			expectError: true,
		},
		{
			name: "invalid email",
			data: &listingPayload{
				Name:        "Cordless drill",
				OwnerEmail:  "invalid-email",
				PricePerDay: 12.5,
			},
			expectError: true,
		},
		{
			name: "non-positive price",
			data: &listingPayload{
				Name:        "Cordless drill",
				OwnerEmail:  "owner@example.com",
				PricePerDay: 0,
			},
			expectError: true,
		},
		{
			name: "invalid status",
			data: &listingPayload{
				Name:        "Cordless drill",
				OwnerEmail:  "owner@example.com",
				PricePerDay: 12.5,
				Status:      "booked",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		value       any
		tag         string
		expectError bool
	}{
		{name: "valid uuid", value: "8d7c9a52-4b8a-4f2e-9a1d-0f6f9a3e2b11", tag: "uuid", expectError: false},
		{name: "invalid uuid", value: "not-a-uuid", tag: "uuid", expectError: true},
		{name: "valid email", value: "renter@example.com", tag: "email", expectError: false},
		{name: "invalid email", value: "renter@", tag: "email", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.value, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate_DecodesAndValidates(t *testing.T) {
	body := strings.NewReader(`{"name":"Cordless drill","owner_email":"owner@example.com","price_per_day":10}`)

	payload := listingPayload{}
	if err := validator.Validate(body, &payload); err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if payload.Name != "Cordless drill" {
		t.Errorf("expected decoded name, got %q", payload.Name)
	}
}

func TestValidate_RejectsMalformedJSON(t *testing.T) {
	body := strings.NewReader(`{"name": `)

	payload := listingPayload{}
	if err := validator.Validate(body, &payload); err == nil {
		t.Error("expected decode error, got nil")
	}
}
