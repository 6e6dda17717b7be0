package intake

import (
	"errors"
	"testing"

	addrtransport "woninglabel_backend/internal/address/transport"
	"woninglabel_backend/internal/pricing"
)

var errTest = errors.New("registry unreachable")

func TestStaleLookupResponseIsDiscarded(t *testing.T) {
	state := NewFormState()
	state = ApplyAddressInput(state, "1234 AB", "10", "")

	// Lookup A goes out, then the user edits before it resolves.
	state, seqA := BeginLookup(state)
	state = ApplyAddressInput(state, "5678 CD", "22", "")
	state, seqB := BeginLookup(state)

	addrA := &addrtransport.Address{Street: "Oudegracht", City: "Utrecht", Postcode: "1234 AB", SurfaceArea: 90}
	addrB := &addrtransport.Address{Street: "Herengracht", City: "Amsterdam", Postcode: "5678 CD", SurfaceArea: 140}

	// A's response arrives late and must not win.
	state = ApplyLookupResult(state, seqA, addrA, nil)
	if state.Address != nil {
		t.Fatalf("stale response was applied: %+v", state.Address)
	}
	if !state.LookupPending {
		t.Fatal("a lookup is still in flight, pending flag should hold")
	}

	state = ApplyLookupResult(state, seqB, addrB, nil)
	if state.Address == nil || state.Address.City != "Amsterdam" {
		t.Fatalf("latest response was not applied: %+v", state.Address)
	}
	if state.LookupPending {
		t.Fatal("pending flag should clear after the latest response")
	}
}

func TestAddressEditDropsResolvedAddress(t *testing.T) {
	state := NewFormState()
	state, seq := BeginLookup(state)
	state = ApplyLookupResult(state, seq, &addrtransport.Address{City: "Utrecht", SurfaceArea: 100}, nil)
	if state.Address == nil {
		t.Fatal("expected resolved address")
	}

	state = ApplyAddressInput(state, "9999 ZZ", "1", "")
	if state.Address != nil {
		t.Fatal("editing the address input must drop the previous resolution")
	}
}

func TestQuoteRecomputesOnInputChanges(t *testing.T) {
	state := NewFormState()
	state = ApplyPropertyType(state, pricing.PropertyApartment)
	if state.Quote != nil {
		t.Fatal("no quote without a surface area")
	}

	state, seq := BeginLookup(state)
	state = ApplyLookupResult(state, seq, &addrtransport.Address{SurfaceArea: 150}, nil)
	if state.Quote == nil || state.Quote.TotalAmount != 285 {
		t.Fatalf("quote = %+v, want total 285", state.Quote)
	}

	state = ApplyRushService(state, true)
	if state.Quote == nil || state.Quote.TotalAmount != 380 {
		t.Fatalf("quote with rush = %+v, want total 380", state.Quote)
	}

	state = ApplyPropertyType(state, pricing.PropertyDetached)
	if state.Quote == nil || state.Quote.TotalAmount != 445 {
		t.Fatalf("quote for detached = %+v, want total 445", state.Quote)
	}
}

func TestSurfaceAreaOverride(t *testing.T) {
	state := NewFormState()
	state = ApplyPropertyType(state, pricing.PropertyApartment)
	state, seq := BeginLookup(state)
	state = ApplyLookupResult(state, seq, &addrtransport.Address{SurfaceArea: 100}, nil)

	next, ok := ApplySurfaceAreaOverride(state, 0)
	if ok {
		t.Fatal("zero override must be rejected")
	}
	if next.EffectiveSurfaceArea() != 100 {
		t.Fatalf("rejected override changed the area to %d", next.EffectiveSurfaceArea())
	}

	next, ok = ApplySurfaceAreaOverride(state, -20)
	if ok {
		t.Fatal("negative override must be rejected")
	}

	state, ok = ApplySurfaceAreaOverride(state, 180)
	if !ok {
		t.Fatal("positive override should be accepted")
	}
	if state.EffectiveSurfaceArea() != 180 {
		t.Fatalf("effective area = %d, want 180", state.EffectiveSurfaceArea())
	}
	// 180 m² apartment: 285 plus three 10 m² steps.
	if state.Quote == nil || state.Quote.TotalAmount != 330 {
		t.Fatalf("quote after override = %+v, want total 330", state.Quote)
	}

	state = ClearSurfaceAreaOverride(state)
	if state.EffectiveSurfaceArea() != 100 {
		t.Fatalf("effective area after clear = %d, want 100", state.EffectiveSurfaceArea())
	}
}

func TestLookupErrorDegradesToManualEntry(t *testing.T) {
	state := NewFormState()
	state = ApplyPropertyType(state, pricing.PropertyTerraced)
	state, seq := BeginLookup(state)
	state = ApplyLookupResult(state, seq, nil, errTest)

	if state.Address != nil {
		t.Fatal("failed lookup must not leave an address")
	}
	if state.LookupPending {
		t.Fatal("failed lookup should clear the pending flag")
	}

	// Manual entry still produces a quote.
	state, ok := ApplySurfaceAreaOverride(state, 120)
	if !ok || state.Quote == nil || state.Quote.TotalAmount != 285 {
		t.Fatalf("manual entry quote = %+v, want total 285", state.Quote)
	}
}
