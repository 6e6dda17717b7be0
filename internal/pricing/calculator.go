// Package pricing computes inspection price quotes. The calculation is a
// pure function of (property type, surface area, rush flag) so the quote can
// be recomputed live while the customer edits the form, and recomputed
// server-side at submission time for the persisted snapshot.
package pricing

import (
	"woninglabel_backend/platform/apperr"
)

// PropertyType enumerates the dwelling categories the form offers.
type PropertyType string

const (
	PropertyApartment    PropertyType = "apartment"
	PropertyTerraced     PropertyType = "terraced"
	PropertySemiDetached PropertyType = "semi_detached"
	PropertyDetached     PropertyType = "detached"
	PropertyOther        PropertyType = "other"
)

// Known reports whether t is one of the enumerated property types.
func (t PropertyType) Known() bool {
	switch t {
	case PropertyApartment, PropertyTerraced, PropertySemiDetached, PropertyDetached, PropertyOther:
		return true
	}
	return false
}

// Canonical rule set. Detached dwellings take longer to inspect, so they
// carry a higher base price but also a larger included surface area.
const (
	baseAmountDefault  = 285
	baseAmountDetached = 350

	includedAreaDefault  = 150
	includedAreaDetached = 200

	surchargeStepM2     = 10
	surchargeStepAmount = 15

	rushSurchargeAmount = 95
)

// Surcharge is a single labeled addition on top of the base amount.
type Surcharge struct {
	Reason string `json:"reason"`
	Amount int    `json:"amount"`
}

// Quote is the price breakdown for one set of inputs. TotalAmount is always
// BaseAmount plus the sum of Surcharges; amounts are whole euros.
type Quote struct {
	BaseAmount  int         `json:"baseAmount"`
	Surcharges  []Surcharge `json:"surcharges"`
	TotalAmount int         `json:"totalAmount"`
}

// Calculate computes the quote for the given inputs.
//
// Unknown property types are priced with the non-detached rule so the form
// stays usable for the "other" category; a non-positive surface area is
// rejected rather than treated as zero surcharge.
func Calculate(propertyType PropertyType, surfaceArea int, rushService bool) (Quote, error) {
	if surfaceArea <= 0 {
		return Quote{}, apperr.Validation("surface area must be a positive number of square meters").WithOp("pricing.Calculate")
	}

	base := baseAmountDefault
	included := includedAreaDefault
	if propertyType == PropertyDetached {
		base = baseAmountDetached
		included = includedAreaDetached
	}

	quote := Quote{
		BaseAmount: base,
		Surcharges: []Surcharge{},
	}

	if extra := surfaceArea - included; extra > 0 {
		chunks := (extra + surchargeStepM2 - 1) / surchargeStepM2
		quote.Surcharges = append(quote.Surcharges, Surcharge{
			Reason: "surface area above included maximum",
			Amount: chunks * surchargeStepAmount,
		})
	}

	if rushService {
		quote.Surcharges = append(quote.Surcharges, Surcharge{
			Reason: "rush service",
			Amount: rushSurchargeAmount,
		})
	}

	quote.TotalAmount = quote.BaseAmount
	for _, s := range quote.Surcharges {
		quote.TotalAmount += s.Amount
	}

	return quote, nil
}
