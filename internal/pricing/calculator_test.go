package pricing

import (
	"testing"

	"woninglabel_backend/platform/apperr"
)

func TestCalculateBaseAmounts(t *testing.T) {
	tests := []struct {
		propertyType PropertyType
		surfaceArea  int
		rush         bool
		wantTotal    int
	}{
		{PropertyApartment, 100, false, 285},
		{PropertyTerraced, 100, false, 285},
		{PropertySemiDetached, 100, false, 285},
		{PropertyOther, 100, false, 285},
		{PropertyDetached, 100, false, 350},
	}

	for _, tc := range tests {
		quote, err := Calculate(tc.propertyType, tc.surfaceArea, tc.rush)
		if err != nil {
			t.Fatalf("Calculate(%s, %d, %v) unexpected error: %v", tc.propertyType, tc.surfaceArea, tc.rush, err)
		}
		if quote.TotalAmount != tc.wantTotal {
			t.Errorf("Calculate(%s, %d, %v) = %d, want %d", tc.propertyType, tc.surfaceArea, tc.rush, quote.TotalAmount, tc.wantTotal)
		}
	}
}

func TestCalculateThresholdBoundary(t *testing.T) {
	// Exactly at the included area: no surcharge.
	quote, err := Calculate(PropertyApartment, 150, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.TotalAmount != 285 {
		t.Errorf("apartment at 150 m² = %d, want 285", quote.TotalAmount)
	}
	if len(quote.Surcharges) != 0 {
		t.Errorf("apartment at 150 m² has %d surcharges, want 0", len(quote.Surcharges))
	}

	// One square meter above: exactly one 10 m² step.
	quote, err = Calculate(PropertyApartment, 151, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.TotalAmount != 300 {
		t.Errorf("apartment at 151 m² = %d, want 300", quote.TotalAmount)
	}

	// Detached threshold sits at 200 m².
	quote, err = Calculate(PropertyDetached, 200, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.TotalAmount != 350 {
		t.Errorf("detached at 200 m² = %d, want 350", quote.TotalAmount)
	}

	quote, err = Calculate(PropertyDetached, 220, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.TotalAmount != 380 {
		t.Errorf("detached at 220 m² = %d, want 380 (two 10 m² steps)", quote.TotalAmount)
	}
}

func TestCalculateRushSurcharge(t *testing.T) {
	quote, err := Calculate(PropertyApartment, 150, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.TotalAmount != 380 {
		t.Errorf("apartment at 150 m² with rush = %d, want 380", quote.TotalAmount)
	}
	if len(quote.Surcharges) != 1 || quote.Surcharges[0].Amount != 95 {
		t.Errorf("expected a single 95 rush surcharge, got %+v", quote.Surcharges)
	}
}

func TestCalculateCombinedSurcharges(t *testing.T) {
	// 175 m² terraced: 3 steps of 15 above 150, plus rush.
	quote, err := Calculate(PropertyTerraced, 175, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 285 + 3*15 + 95
	if quote.TotalAmount != want {
		t.Errorf("terraced at 175 m² with rush = %d, want %d", quote.TotalAmount, want)
	}
	if len(quote.Surcharges) != 2 {
		t.Fatalf("expected 2 surcharges, got %+v", quote.Surcharges)
	}

	sum := quote.BaseAmount
	for _, s := range quote.Surcharges {
		sum += s.Amount
	}
	if sum != quote.TotalAmount {
		t.Errorf("total %d does not equal base plus surcharges %d", quote.TotalAmount, sum)
	}
}

func TestCalculateInvalidSurfaceArea(t *testing.T) {
	for _, area := range []int{0, -1, -150} {
		_, err := Calculate(PropertyApartment, area, false)
		if err == nil {
			t.Fatalf("Calculate with surface area %d should fail", area)
		}
		if !apperr.Is(err, apperr.KindValidation) {
			t.Errorf("Calculate with surface area %d returned kind %v, want validation", area, apperr.GetKind(err))
		}
	}
}

func TestCalculateUnknownTypeFallsBack(t *testing.T) {
	quote, err := Calculate(PropertyType("houseboat"), 160, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Unknown types price like non-detached: 285 plus one step.
	if quote.TotalAmount != 300 {
		t.Errorf("unknown type at 160 m² = %d, want 300", quote.TotalAmount)
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	first, err := Calculate(PropertyDetached, 233, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Calculate(PropertyDetached, 233, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.TotalAmount != second.TotalAmount || len(first.Surcharges) != len(second.Surcharges) {
		t.Errorf("identical inputs produced different quotes: %+v vs %+v", first, second)
	}
}
