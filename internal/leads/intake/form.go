// Package intake implements the lead intake flow: the form state machine that
// drives address resolution and live price quoting, and the submission
// service that persists the finished lead.
package intake

import (
	addrtransport "woninglabel_backend/internal/address/transport"
	"woninglabel_backend/internal/pricing"
)

// FormState is the whole intake form as one value. Every change goes through
// an Apply function that returns the next state, so lookup races and quote
// recomputation are testable without any HTTP or timing machinery.
type FormState struct {
	Name    string
	Email   string
	Phone   string
	Message string

	Postcode            string
	HouseNumber         string
	HouseNumberAddition string

	PropertyType pricing.PropertyType
	RushService  bool

	// Address is the registry result currently applied to the form.
	Address *addrtransport.Address
	// SurfaceAreaOverride replaces the resolved surface area when positive.
	SurfaceAreaOverride int

	// LookupSeq is the sequence number of the most recently issued lookup.
	// Only a response carrying this sequence may be applied; anything older
	// was superseded by a newer edit and is discarded.
	LookupSeq     uint64
	LookupPending bool

	Quote    *pricing.Quote
	QuoteErr error
}

// NewFormState returns an empty form ready for input.
func NewFormState() FormState {
	return FormState{}
}

// ApplyContact updates the contact fields. They do not affect the quote.
func ApplyContact(state FormState, name, email, phone, message string) FormState {
	state.Name = name
	state.Email = email
	state.Phone = phone
	state.Message = message
	return state
}

// ApplyAddressInput records edited address fields. Any previously resolved
// address and pending lookup no longer match the input, so both are dropped.
// The caller decides whether to issue a new lookup (see BeginLookup).
func ApplyAddressInput(state FormState, postcode, houseNumber, addition string) FormState {
	if state.Postcode == postcode && state.HouseNumber == houseNumber && state.HouseNumberAddition == addition {
		return state
	}

	state.Postcode = postcode
	state.HouseNumber = houseNumber
	state.HouseNumberAddition = addition
	state.Address = nil
	state.LookupPending = false
	return recomputeQuote(state)
}

// BeginLookup marks a lookup in flight for the current address input and
// returns the sequence number the response must carry to be applied.
func BeginLookup(state FormState) (FormState, uint64) {
	state.LookupSeq++
	state.LookupPending = true
	return state, state.LookupSeq
}

// ApplyLookupResult applies a resolver response. A response whose sequence is
// not the latest issued one belongs to superseded input and is ignored, which
// keeps a slow early response from overwriting a newer edit.
func ApplyLookupResult(state FormState, seq uint64, addr *addrtransport.Address, err error) FormState {
	if seq != state.LookupSeq {
		return state
	}

	state.LookupPending = false
	if err != nil {
		// Lookup failures degrade to manual entry; the form stays usable.
		state.Address = nil
		return recomputeQuote(state)
	}

	state.Address = addr
	return recomputeQuote(state)
}

// ApplyPropertyType switches the dwelling category and refreshes the quote.
func ApplyPropertyType(state FormState, propertyType pricing.PropertyType) FormState {
	state.PropertyType = propertyType
	return recomputeQuote(state)
}

// ApplyRushService toggles the rush add-on and refreshes the quote.
func ApplyRushService(state FormState, rush bool) FormState {
	state.RushService = rush
	return recomputeQuote(state)
}

// ApplySurfaceAreaOverride replaces the registry surface area with a manual
// value. Non-positive values are rejected and leave the state untouched.
func ApplySurfaceAreaOverride(state FormState, area int) (FormState, bool) {
	if area <= 0 {
		return state, false
	}
	state.SurfaceAreaOverride = area
	return recomputeQuote(state), true
}

// ClearSurfaceAreaOverride reverts to the registry-sourced surface area.
func ClearSurfaceAreaOverride(state FormState) FormState {
	state.SurfaceAreaOverride = 0
	return recomputeQuote(state)
}

// EffectiveSurfaceArea is the area used for pricing: the manual override when
// set, otherwise the resolved registry value, otherwise zero.
func (s FormState) EffectiveSurfaceArea() int {
	if s.SurfaceAreaOverride > 0 {
		return s.SurfaceAreaOverride
	}
	if s.Address != nil {
		return s.Address.SurfaceArea
	}
	return 0
}

func recomputeQuote(state FormState) FormState {
	area := state.EffectiveSurfaceArea()
	if area <= 0 || state.PropertyType == "" {
		state.Quote = nil
		state.QuoteErr = nil
		return state
	}

	quote, err := pricing.Calculate(state.PropertyType, area, state.RushService)
	if err != nil {
		state.Quote = nil
		state.QuoteErr = err
		return state
	}

	state.Quote = &quote
	state.QuoteErr = nil
	return state
}
