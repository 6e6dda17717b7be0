// Package transport defines the data shapes for address resolution.
package transport

// Address is a resolved property location.
// It is created per lookup and only consumed to populate a submission.
type Address struct {
	Street      string `json:"street"`
	HouseNumber string `json:"houseNumber"`
	Addition    string `json:"addition,omitempty"`
	Postcode    string `json:"postcode"`
	City        string `json:"city"`
	// SurfaceArea is the usable floor area in square meters. Zero means the
	// registry did not supply one and no estimate could be made.
	SurfaceArea int `json:"surfaceArea"`
	// SurfaceAreaEstimated marks a fallback estimate rather than a registry
	// figure, so the caller can prompt for manual confirmation.
	SurfaceAreaEstimated bool `json:"surfaceAreaEstimated"`
}

// LookupRequest binds the public address lookup query parameters.
type LookupRequest struct {
	Postcode     string `form:"postcode" binding:"required"`
	HouseNumber  string `form:"houseNumber" binding:"required"`
	Addition     string `form:"addition"`
	PropertyType string `form:"propertyType"`
}
