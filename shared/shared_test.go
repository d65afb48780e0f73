package shared_test

import (
	"lendr/shared"
	"lendr/shared/constant"
	"lendr/shared/dto"
	"testing"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string", input: "", expected: nil},
		{name: "true", input: "true", expected: boolPtr(true)},
		{name: "false", input: "false", expected: boolPtr(false)},
		{name: "numeric true", input: "1", expected: boolPtr(true)},
		{name: "garbage", input: "maybe", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.ConvertStringToBool(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", *result)
				}

				return
			}

			if result == nil || *result != *tt.expected {
				t.Errorf("expected %v, got %v", *tt.expected, result)
			}
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total", total: 0, limit: 10, expected: 1},
		{name: "zero limit", total: 25, limit: 0, expected: 1},
		{name: "exact division", total: 20, limit: 10, expected: 2},
		{name: "rounds up", total: 21, limit: 10, expected: 3},
		{name: "single page", total: 5, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := shared.CalculateTotalPage(tt.total, tt.limit); result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestTransformFields(t *testing.T) {
	type updateRequest struct {
		Name        string  `db:"name"`
		PricePerDay float64 `db:"price_per_day"`
		Ignored     string
	}

	fields := shared.TransformFields(updateRequest{Name: "Mountain bike", PricePerDay: 15}, "user-1")

	if fields["name"] != "Mountain bike" {
		t.Errorf("expected name field, got %v", fields["name"])
	}
	if fields["price_per_day"] != 15.0 {
		t.Errorf("expected price_per_day field, got %v", fields["price_per_day"])
	}
	if _, ok := fields["Ignored"]; ok {
		t.Error("fields without db tags must be skipped")
	}
	if fields[constant.FieldModifiedBy] != "user-1" {
		t.Errorf("expected modified_by to be set, got %v", fields[constant.FieldModifiedBy])
	}
	if _, ok := fields[constant.FieldModifiedAt]; !ok {
		t.Error("expected modified_at to be set")
	}
}

func TestTransformFields_SkipsZeroValues(t *testing.T) {
	type updateRequest struct {
		Name      string `db:"name"`
		Available *bool  `db:"available"`
	}

	fields := shared.TransformFields(updateRequest{}, "user-1")

	if _, ok := fields["name"]; ok {
		t.Error("zero-valued fields must be skipped")
	}
	if _, ok := fields["available"]; ok {
		t.Error("nil pointer fields must be skipped")
	}
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("item-1", "id", "items")

	where, args := group.GetWhereClause()

	if where != "(items.id = :id)" {
		t.Errorf("unexpected where clause: %q", where)
	}
	if args["id"] != "item-1" {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestBuildCacheKey(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		parts    []string
		expected string
	}{
		{name: "prefix only", prefix: "item:get", parts: nil, expected: "item:get"},
		{name: "single part", prefix: "item:get", parts: []string{"item-1"}, expected: "item:get:item-1"},
		{name: "multiple parts", prefix: "limiter", parts: []string{"1.2.3.4", "curl"}, expected: "limiter:1.2.3.4:curl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := shared.BuildCacheKey(tt.prefix, tt.parts...); result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestBuildCacheKeyWithQuery_Distinct(t *testing.T) {
	paramsA := dto.QueryParams{Page: 1, Limit: 10}
	paramsB := dto.QueryParams{Page: 2, Limit: 10}

	filter := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "status", Operator: dto.FilterOperatorEq, Value: "pending", Table: "rentals"},
		},
	}

	keyA := shared.BuildCacheKeyWithQuery("rental:gets", paramsA, filter)
	keyB := shared.BuildCacheKeyWithQuery("rental:gets", paramsB, filter)

	if keyA == keyB {
		t.Error("expected distinct cache keys for distinct pages")
	}
}

func boolPtr(b bool) *bool {
	return &b
}
